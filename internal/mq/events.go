package mq

import "time"

// EmailSendPayload one outbound email
type EmailSendPayload struct {
	LogId      int64     `json:"log_id"`
	CampaignId int64     `json:"campaign_id,omitempty"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	QueuedAt   time.Time `json:"queued_at"`
}

// NotificationPayload in-app notification event
type NotificationPayload struct {
	UserId    int64     `json:"user_id"`
	ProjectId int64     `json:"project_id,omitempty"`
	Kind      string    `json:"kind"` // chat_message, milestone_due, invitation
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
