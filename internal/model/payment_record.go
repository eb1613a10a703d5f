package model

import (
	"time"
)

// PaymentRecordModel money movement against a milestone
type PaymentRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId   int64 `json:"project_id" gorm:"not null;index"`
	MilestoneId int64 `json:"milestone_id" gorm:"not null;index"`

	Kind     PaymentKind `json:"kind" gorm:"not null"`
	Amount   int64       `json:"amount" gorm:"not null"` // cents
	Currency string      `json:"currency" gorm:"not null"`

	Status PaymentStatus `json:"status" gorm:"default:'pending'"`

	// provider references
	ProviderIntentId string `json:"provider_intent_id" gorm:"index"`
	IdempotencyKey   string `json:"idempotency_key" gorm:"uniqueIndex"`
	FailureReason    string `json:"failure_reason"`
	ConfirmedAt      *time.Time `json:"confirmed_at"`
}

// PaymentKind direction of the movement
type PaymentKind string

const (
	PaymentKindFunding PaymentKind = "funding" // client -> escrow
	PaymentKindRelease PaymentKind = "release" // escrow -> team
)

// PaymentStatus provider-confirmed state
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// TableName custom table name
func (PaymentRecordModel) TableName() string {
	return "payment_record"
}
