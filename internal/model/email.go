package model

import (
	"time"
)

// EmailCampaignModel admin broadcast campaign
type EmailCampaignModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Subject string `json:"subject" gorm:"not null" binding:"required"`
	Body    string `json:"body" gorm:"type:text;not null" binding:"required"`

	// audience filter: all, clients, freelancers
	Audience string `json:"audience" gorm:"default:'all'"`

	ScheduledAt *time.Time `json:"scheduled_at"`

	Status         CampaignStatus `json:"status" gorm:"default:'draft'"`
	DispatchedAt   *time.Time     `json:"dispatched_at"`
	RecipientCount int            `json:"recipient_count" gorm:"default:0"`

	CreatedBy int64 `json:"created_by" gorm:"not null"`
}

// CampaignStatus campaign lifecycle
type CampaignStatus string

const (
	CampaignStatusDraft      CampaignStatus = "draft"
	CampaignStatusScheduled  CampaignStatus = "scheduled"
	CampaignStatusDispatched CampaignStatus = "dispatched"
)

// TableName custom table name
func (EmailCampaignModel) TableName() string {
	return "email_campaign"
}

// EmailLogModel one delivery attempt per recipient
type EmailLogModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId int64  `json:"campaign_id" gorm:"index"` // zero for transactional sends
	Recipient  string `json:"recipient" gorm:"not null;index"`
	Subject    string `json:"subject" gorm:"not null"`

	Status EmailStatus `json:"status" gorm:"default:'queued'"`
	SentAt *time.Time  `json:"sent_at"`
	Error  string      `json:"error"`
}

// EmailStatus delivery state
type EmailStatus string

const (
	EmailStatusQueued EmailStatus = "queued"
	EmailStatusSent   EmailStatus = "sent"
	EmailStatusFailed EmailStatus = "failed"
)

// TableName custom table name
func (EmailLogModel) TableName() string {
	return "email_log"
}
