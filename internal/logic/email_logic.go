package logic

import (
	"errors"
	"sync"
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logger"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/mq"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// EmailLogic admin campaigns and transactional sends. Delivery itself
// happens in the queue consumer; this layer only expands audiences and
// enqueues.
type EmailLogic struct {
	db        *gorm.DB
	publisher *mq.Publisher
	poolSize  int
}

// NewEmailLogic creates the email business logic. publisher may be nil in
// tests; queued rows are then left for the dispatch job.
func NewEmailLogic(db *gorm.DB, publisher *mq.Publisher, poolSize int) *EmailLogic {
	if poolSize < 1 {
		poolSize = 8
	}
	return &EmailLogic{db: db, publisher: publisher, poolSize: poolSize}
}

// CreateCampaign stores a draft or scheduled campaign.
func (e *EmailLogic) CreateCampaign(adminId int64, campaign *model.EmailCampaignModel) error {
	if campaign.Subject == "" || campaign.Body == "" {
		return validationError("campaign subject and body are required")
	}
	switch campaign.Audience {
	case "", "all":
		campaign.Audience = "all"
	case "clients", "freelancers":
	default:
		return validationError("invalid audience")
	}

	campaign.CreatedBy = adminId
	campaign.Status = model.CampaignStatusDraft
	if campaign.ScheduledAt != nil {
		campaign.Status = model.CampaignStatusScheduled
	}
	return e.db.Create(campaign).Error
}

// GetCampaigns lists campaigns newest first.
func (e *EmailLogic) GetCampaigns(page, pageSize int) ([]model.EmailCampaignModel, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := e.db.Model(&model.EmailCampaignModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaigns []model.EmailCampaignModel
	err := e.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&campaigns).Error
	return campaigns, total, err
}

// Broadcast expands the audience, writes one log row per recipient and
// fans the send events onto the queue through a worker pool.
func (e *EmailLogic) Broadcast(campaignId int64) (int, error) {
	var campaign model.EmailCampaignModel
	if err := e.db.First(&campaign, campaignId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if campaign.Status == model.CampaignStatusDispatched {
		return 0, conflictError("campaign already dispatched")
	}

	query := e.db.Model(&model.UserModel{})
	switch campaign.Audience {
	case "clients":
		query = query.Where("role = ?", model.UserRoleClient)
	case "freelancers":
		query = query.Where("role = ?", model.UserRoleFreelancer)
	}

	var recipients []model.UserModel
	if err := query.Find(&recipients).Error; err != nil {
		return 0, err
	}

	// mark dispatched first so a concurrent broadcast call is a conflict
	now := time.Now()
	result := e.db.Model(&model.EmailCampaignModel{}).
		Where("id = ? AND status <> ?", campaignId, model.CampaignStatusDispatched).
		Updates(map[string]interface{}{
			"status":          model.CampaignStatusDispatched,
			"dispatched_at":   &now,
			"recipient_count": len(recipients),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, conflictError("campaign already dispatched")
	}

	pool, err := ants.NewPool(e.poolSize)
	if err != nil {
		return 0, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, user := range recipients {
		user := user
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			e.enqueueOne(&campaign, user.Email)
		}); err != nil {
			wg.Done()
			logger.Error("Failed to submit broadcast task: %v", err)
		}
	}
	wg.Wait()

	return len(recipients), nil
}

// enqueueOne writes the log row and publishes the send event. A publish
// failure leaves the row queued for the retry job.
func (e *EmailLogic) enqueueOne(campaign *model.EmailCampaignModel, recipient string) {
	log := &model.EmailLogModel{
		CampaignId: campaign.Id,
		Recipient:  recipient,
		Subject:    campaign.Subject,
		Status:     model.EmailStatusQueued,
	}
	if err := e.db.Create(log).Error; err != nil {
		logger.Error("Failed to create email log for %s: %v", recipient, err)
		return
	}
	if e.publisher == nil {
		return
	}

	if err := e.publisher.Publish(mq.RoutingKeyEmailSend, mq.EmailSendPayload{
		LogId:      log.Id,
		CampaignId: campaign.Id,
		Recipient:  recipient,
		Subject:    campaign.Subject,
		Body:       campaign.Body,
		QueuedAt:   time.Now(),
	}); err != nil {
		logger.Error("Failed to publish email send for %s: %v", recipient, err)
	}
}

// SendSingle enqueues one transactional email.
func (e *EmailLogic) SendSingle(recipient, subject, body string) (*model.EmailLogModel, error) {
	if recipient == "" || subject == "" || body == "" {
		return nil, validationError("recipient, subject and body are required")
	}

	log := &model.EmailLogModel{
		Recipient: recipient,
		Subject:   subject,
		Status:    model.EmailStatusQueued,
	}
	if err := e.db.Create(log).Error; err != nil {
		return nil, err
	}
	if e.publisher == nil {
		return log, nil
	}

	if err := e.publisher.Publish(mq.RoutingKeyEmailSend, mq.EmailSendPayload{
		LogId:     log.Id,
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		QueuedAt:  time.Now(),
	}); err != nil {
		return nil, err
	}
	return log, nil
}

// DispatchDue broadcasts scheduled campaigns whose time has come. Called
// by the campaign dispatch job.
func (e *EmailLogic) DispatchDue() (int, error) {
	var campaigns []model.EmailCampaignModel
	err := e.db.Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?",
		model.CampaignStatusScheduled, time.Now()).
		Find(&campaigns).Error
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, campaign := range campaigns {
		if _, err := e.Broadcast(campaign.Id); err != nil {
			logger.Error("Failed to dispatch campaign %d: %v", campaign.Id, err)
			continue
		}
		dispatched++
	}
	return dispatched, nil
}

// MarkSent records a successful delivery.
func (e *EmailLogic) MarkSent(logId int64) error {
	now := time.Now()
	return e.db.Model(&model.EmailLogModel{}).
		Where("id = ?", logId).
		Updates(map[string]interface{}{
			"status":  model.EmailStatusSent,
			"sent_at": &now,
		}).Error
}

// MarkFailed records a failed delivery.
func (e *EmailLogic) MarkFailed(logId int64, reason string) error {
	return e.db.Model(&model.EmailLogModel{}).
		Where("id = ?", logId).
		Updates(map[string]interface{}{
			"status": model.EmailStatusFailed,
			"error":  reason,
		}).Error
}

// GetCampaignLogs lists delivery rows for one campaign.
func (e *EmailLogic) GetCampaignLogs(campaignId int64) ([]model.EmailLogModel, error) {
	var logs []model.EmailLogModel
	err := e.db.Where("campaign_id = ?", campaignId).
		Order("id ASC").
		Find(&logs).Error
	return logs, err
}
