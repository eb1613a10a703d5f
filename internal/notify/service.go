package notify

import (
	"context"
	"encoding/json"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logger"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/metrics"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/mq"
	"gorm.io/gorm"
)

// Service drains the email and notification queues.
type Service struct {
	db         *gorm.DB
	sender     *EmailSender
	emailLogic *logic.EmailLogic

	consumers []*mq.Consumer
}

func NewService(db *gorm.DB, sender *EmailSender, emailLogic *logic.EmailLogic) *Service {
	return &Service{db: db, sender: sender, emailLogic: emailLogic}
}

// Start binds the consumers and drains them in background goroutines.
func (s *Service) Start(queueURL string) error {
	emailConsumer, err := mq.NewConsumer(queueURL, "linkup.email.send", mq.RoutingKeyEmailSend)
	if err != nil {
		return err
	}
	emailConsumer.SetHandler(s.handleEmailSend)

	notifyConsumer, err := mq.NewConsumer(queueURL, "linkup.notify.user", mq.RoutingKeyNotification)
	if err != nil {
		emailConsumer.Close()
		return err
	}
	notifyConsumer.SetHandler(s.handleNotification)

	s.consumers = []*mq.Consumer{emailConsumer, notifyConsumer}
	for _, consumer := range s.consumers {
		c := consumer
		go func() {
			if err := c.StartConsuming(); err != nil {
				logger.Error("Consumer stopped: %v", err)
			}
		}()
	}
	return nil
}

func (s *Service) Stop() {
	for _, c := range s.consumers {
		c.Close()
	}
}

// handleEmailSend delivers one queued email and settles its log row. A
// provider failure marks the row failed and acks; redelivering a
// hard-failed address forever helps nobody.
func (s *Service) handleEmailSend(ctx context.Context, data json.RawMessage) error {
	var payload mq.EmailSendPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		logger.Error("Dropping malformed email payload: %v", err)
		return nil
	}

	if err := s.sender.Send(ctx, payload.Recipient, payload.Subject, payload.Body); err != nil {
		metrics.EmailSendCount.WithLabelValues("failed").Inc()
		logger.Error("Failed to send email to %s: %v", payload.Recipient, err)
		if err := s.emailLogic.MarkFailed(payload.LogId, err.Error()); err != nil {
			logger.Error("Failed to mark email log %d failed: %v", payload.LogId, err)
		}
		return nil
	}

	metrics.EmailSendCount.WithLabelValues("sent").Inc()
	return s.emailLogic.MarkSent(payload.LogId)
}

// handleNotification forwards an in-app notification to the user's email.
func (s *Service) handleNotification(ctx context.Context, data json.RawMessage) error {
	var payload mq.NotificationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		logger.Error("Dropping malformed notification payload: %v", err)
		return nil
	}

	var user model.UserModel
	if err := s.db.First(&user, payload.UserId).Error; err != nil {
		logger.Warn("Notification for unknown user %d dropped", payload.UserId)
		return nil
	}

	log, err := s.emailLogic.SendSingle(user.Email, "Activity on your project", payload.Message)
	if err != nil {
		logger.Error("Failed to queue notification email for user %d: %v", payload.UserId, err)
		return nil
	}
	logger.Debug("Notification %s queued as email log %d", payload.Kind, log.Id)
	return nil
}
