package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logger"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/metrics"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/payment"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentLogic funding intents, provider webhooks and reconciliation
type PaymentLogic struct {
	db             *gorm.DB
	payClient      *payment.Client
	milestoneLogic *MilestoneLogic
	currency       string
}

// NewPaymentLogic creates the payment business logic.
func NewPaymentLogic(db *gorm.DB, payClient *payment.Client, milestoneLogic *MilestoneLogic, currency string) *PaymentLogic {
	if currency == "" {
		currency = "usd"
	}
	return &PaymentLogic{
		db:             db,
		payClient:      payClient,
		milestoneLogic: milestoneLogic,
		currency:       currency,
	}
}

// CreateFundingIntent creates a provider intent for one milestone. The
// amount always comes from the milestone row, never from the request. The
// returned record carries the provider client secret for the front end.
func (p *PaymentLogic) CreateFundingIntent(ctx context.Context, milestoneId, userId int64) (*model.PaymentRecordModel, string, error) {
	milestone, err := p.milestoneLogic.GetMilestone(milestoneId)
	if err != nil {
		return nil, "", err
	}

	var project model.ProjectModel
	if err := p.db.First(&project, milestone.ProjectId).Error; err != nil {
		return nil, "", err
	}
	if project.UserId != userId {
		return nil, "", ErrForbidden
	}
	if milestone.Status != model.EscrowStatusCreated {
		return nil, "", conflictError("milestone is already funded")
	}

	// reuse an existing pending intent instead of stacking duplicates
	var existing model.PaymentRecordModel
	err = p.db.Where("milestone_id = ? AND kind = ? AND status = ?",
		milestoneId, model.PaymentKindFunding, model.PaymentStatusPending).
		First(&existing).Error
	if err == nil {
		return &existing, "", nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	record := &model.PaymentRecordModel{
		ProjectId:      milestone.ProjectId,
		MilestoneId:    milestone.Id,
		Kind:           model.PaymentKindFunding,
		Amount:         milestone.Amount,
		Currency:       p.currency,
		Status:         model.PaymentStatusPending,
		IdempotencyKey: uuid.NewString(),
	}
	if err := p.db.Create(record).Error; err != nil {
		return nil, "", err
	}

	intent, err := p.payClient.CreateIntent(ctx, milestone.Amount, p.currency, record.IdempotencyKey,
		map[string]string{
			"project_id":   fmt.Sprintf("%d", milestone.ProjectId),
			"milestone_id": fmt.Sprintf("%d", milestone.Id),
		})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	if err := p.db.Model(record).Update("provider_intent_id", intent.Id).Error; err != nil {
		return nil, "", err
	}
	record.ProviderIntentId = intent.Id

	return record, intent.ClientSecret, nil
}

// ListProjectPayments lists payment records for a project.
func (p *PaymentLogic) ListProjectPayments(projectId int64) ([]model.PaymentRecordModel, error) {
	var records []model.PaymentRecordModel
	err := p.db.Where("project_id = ?", projectId).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// webhookEventPayload the provider event envelope
type webhookEventPayload struct {
	Id   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			Id     string `json:"id"`
			Status string `json:"status"`
		} `json:"object"`
	} `json:"data"`
}

// HandleWebhookEvent persists and applies one provider event. Redelivered
// events hit the unique provider event id and are acknowledged without
// reprocessing.
func (p *PaymentLogic) HandleWebhookEvent(body []byte) error {
	var event webhookEventPayload
	if err := json.Unmarshal(body, &event); err != nil {
		return validationError("malformed webhook payload")
	}
	if event.Id == "" || event.Type == "" {
		return validationError("webhook event missing id or type")
	}

	record := &model.WebhookEventModel{
		ProviderEventId: event.Id,
		EventType:       event.Type,
		Payload:         string(body),
		Status:          model.WebhookEventStatusReceived,
	}
	if err := p.db.Create(record).Error; err != nil {
		if isDuplicateKeyError(err) {
			metrics.WebhookEventCount.WithLabelValues(event.Type, "duplicate").Inc()
			logger.Debug("Duplicate webhook event %s ignored", event.Id)
			return nil
		}
		return err
	}

	if err := p.applyEvent(&event); err != nil {
		metrics.WebhookEventCount.WithLabelValues(event.Type, "failed").Inc()
		p.db.Model(record).Updates(map[string]interface{}{
			"status":     model.WebhookEventStatusFailed,
			"last_error": err.Error(),
		})
		return err
	}

	metrics.WebhookEventCount.WithLabelValues(event.Type, "processed").Inc()
	now := time.Now()
	return p.db.Model(record).Updates(map[string]interface{}{
		"status":       model.WebhookEventStatusProcessed,
		"processed_at": &now,
	}).Error
}

// applyEvent routes one event to its processor.
func (p *PaymentLogic) applyEvent(event *webhookEventPayload) error {
	switch event.Type {
	case model.EventTypePaymentSucceeded:
		return p.applyIntentOutcome(event.Data.Object.Id, model.PaymentStatusSucceeded, "")
	case model.EventTypePaymentFailed:
		return p.applyIntentOutcome(event.Data.Object.Id, model.PaymentStatusFailed, event.Data.Object.Status)
	case model.EventTypeTransferPaid:
		return p.applyTransferPaid(event.Data.Object.Id)
	default:
		logger.Debug("Ignoring unhandled webhook event type %s", event.Type)
		return nil
	}
}

// applyIntentOutcome settles a funding payment and, on success, funds the
// milestone.
func (p *PaymentLogic) applyIntentOutcome(intentId string, status model.PaymentStatus, reason string) error {
	var record model.PaymentRecordModel
	err := p.db.Where("provider_intent_id = ? AND kind = ?", intentId, model.PaymentKindFunding).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Webhook references unknown intent %s", intentId)
			return nil
		}
		return err
	}
	if record.Status != model.PaymentStatusPending {
		return nil // already settled
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       status,
		"confirmed_at": &now,
	}
	if reason != "" {
		updates["failure_reason"] = reason
	}
	if err := p.db.Model(&record).Updates(updates).Error; err != nil {
		return err
	}

	if status == model.PaymentStatusSucceeded {
		if err := p.milestoneLogic.MarkFunded(record.MilestoneId); err != nil &&
			!errors.Is(err, ErrInvalidTransition) {
			return err
		}
	}
	return nil
}

// applyTransferPaid confirms a release payout.
func (p *PaymentLogic) applyTransferPaid(transferId string) error {
	var record model.PaymentRecordModel
	err := p.db.Where("provider_intent_id = ? AND kind = ?", transferId, model.PaymentKindRelease).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Webhook references unknown transfer %s", transferId)
			return nil
		}
		return err
	}
	if record.Status != model.PaymentStatusPending {
		return nil
	}

	now := time.Now()
	return p.db.Model(&record).Updates(map[string]interface{}{
		"status":       model.PaymentStatusSucceeded,
		"confirmed_at": &now,
	}).Error
}

// ReconcilePending re-queries the provider for funding intents that have
// sat pending past the threshold, covering lost webhooks, and re-attempts
// release payouts whose transfer was never created at the provider.
func (p *PaymentLogic) ReconcilePending(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	var records []model.PaymentRecordModel
	err := p.db.Where("status = ? AND kind = ? AND provider_intent_id <> '' AND created_at < ?",
		model.PaymentStatusPending, model.PaymentKindFunding, cutoff).
		Find(&records).Error
	if err != nil {
		return 0, err
	}

	settled := 0
	for _, record := range records {
		intent, err := p.payClient.GetIntent(ctx, record.ProviderIntentId)
		if err != nil {
			logger.Error("Failed to reconcile intent %s: %v", record.ProviderIntentId, err)
			continue
		}

		switch intent.Status {
		case "succeeded":
			if err := p.applyIntentOutcome(record.ProviderIntentId, model.PaymentStatusSucceeded, ""); err != nil {
				logger.Error("Failed to settle reconciled intent %s: %v", record.ProviderIntentId, err)
				continue
			}
			settled++
		case "failed", "canceled":
			if err := p.applyIntentOutcome(record.ProviderIntentId, model.PaymentStatusFailed, intent.Status); err != nil {
				logger.Error("Failed to settle reconciled intent %s: %v", record.ProviderIntentId, err)
				continue
			}
			settled++
		}
	}

	// a release whose transfer call failed has no provider id and no webhook
	// coming; re-create the transfer under its original idempotency key
	var stuck []model.PaymentRecordModel
	err = p.db.Where("status = ? AND kind = ? AND provider_intent_id = '' AND created_at < ?",
		model.PaymentStatusPending, model.PaymentKindRelease, cutoff).
		Find(&stuck).Error
	if err != nil {
		return settled, err
	}
	for _, record := range stuck {
		if err := p.retryReleaseTransfer(ctx, &record); err != nil {
			logger.Error("Failed to retry release payout %d: %v", record.Id, err)
		}
	}

	return settled, nil
}

// retryReleaseTransfer re-attempts the provider payout for a release
// record with no transfer on file. The stored idempotency key keeps a
// half-applied earlier attempt from paying the team twice.
func (p *PaymentLogic) retryReleaseTransfer(ctx context.Context, record *model.PaymentRecordModel) error {
	var project model.ProjectModel
	if err := p.db.First(&project, record.ProjectId).Error; err != nil {
		return err
	}
	if project.TeamId == 0 {
		return conflictError("release record has no awarded team")
	}

	transfer, err := p.payClient.CreateTransfer(ctx, record.Amount, record.Currency,
		fmt.Sprintf("team_%d", project.TeamId), record.IdempotencyKey,
		map[string]string{
			"project_id":   fmt.Sprintf("%d", record.ProjectId),
			"milestone_id": fmt.Sprintf("%d", record.MilestoneId),
		})
	if err != nil {
		return err
	}
	return p.db.Model(record).Update("provider_intent_id", transfer.Id).Error
}

// isDuplicateKeyError matches unique constraint violations across postgres
// and the sqlite test driver.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
