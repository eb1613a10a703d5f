package model

import (
	"time"
)

// TeamInvitationModel client inviting a team to a project. The composite
// unique index makes a double-submitted invitation a no-op.
type TeamInvitationModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64 `json:"project_id" gorm:"not null;uniqueIndex:idx_invitation_project_team"`
	TeamId    int64 `json:"team_id" gorm:"not null;uniqueIndex:idx_invitation_project_team"`
	UserId    int64 `json:"user_id" gorm:"not null"` // inviting client

	Message string `json:"message" gorm:"type:text"`

	Status      InvitationStatus `json:"status" gorm:"default:'pending'"`
	RespondedAt *time.Time       `json:"responded_at"`
}

// InvitationStatus invitation state
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

// TableName custom table name
func (TeamInvitationModel) TableName() string {
	return "team_invitation"
}
