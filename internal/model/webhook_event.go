package model

import (
	"time"
)

// WebhookEventModel payment provider event, persisted before processing.
// The unique provider event id deduplicates redelivered webhooks.
type WebhookEventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProviderEventId string `json:"provider_event_id" gorm:"uniqueIndex;not null"`
	EventType       string `json:"event_type" gorm:"not null"`
	Payload         string `json:"payload" gorm:"type:text"`

	Status      WebhookEventStatus `json:"status" gorm:"default:'received'"`
	ProcessedAt *time.Time         `json:"processed_at"`
	LastError   string             `json:"last_error"`
}

// WebhookEventStatus processing state
type WebhookEventStatus string

const (
	WebhookEventStatusReceived  WebhookEventStatus = "received"
	WebhookEventStatusProcessed WebhookEventStatus = "processed"
	WebhookEventStatusFailed    WebhookEventStatus = "failed"
)

// provider event types handled by the dispatcher
const (
	EventTypePaymentSucceeded = "payment_intent.succeeded"
	EventTypePaymentFailed    = "payment_intent.payment_failed"
	EventTypeTransferPaid     = "transfer.paid"
)

// TableName custom table name
func (WebhookEventModel) TableName() string {
	return "webhook_event"
}
