package model

import (
	"time"
)

// ProjectMilestoneModel budget tranche held in escrow
type ProjectMilestoneModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId   int64  `json:"project_id" gorm:"not null;index"`
	OrderIndex  int    `json:"order_index" gorm:"not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`

	// share of the project budget, all milestones of a project sum to 100
	Percentage int   `json:"percentage" gorm:"not null"`
	Amount     int64 `json:"amount" gorm:"not null"` // cents

	DueDate     *time.Time `json:"due_date"`
	SubmittedAt *time.Time `json:"submitted_at"`
	ReleasedAt  *time.Time `json:"released_at"`

	Status EscrowStatus `json:"status" gorm:"default:'created'"`

	// association
	Project ProjectModel `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
}

// EscrowStatus milestone escrow state
type EscrowStatus string

const (
	EscrowStatusCreated           EscrowStatus = "created"            // milestone exists, no verified funding yet
	EscrowStatusFunded            EscrowStatus = "funded"             // provider confirmed the funding payment
	EscrowStatusPendingSubmission EscrowStatus = "pending_submission" // work window open, waiting on the team
	EscrowStatusPendingApproval   EscrowStatus = "pending_approval"   // deliverable submitted, waiting on the client
	EscrowStatusReleased          EscrowStatus = "released"           // funds released to the team
)

// escrowTransitions is the only legal edge set. Funding is driven by
// provider webhooks, never by a client call.
var escrowTransitions = map[EscrowStatus]EscrowStatus{
	EscrowStatusCreated:           EscrowStatusFunded,
	EscrowStatusFunded:            EscrowStatusPendingSubmission,
	EscrowStatusPendingSubmission: EscrowStatusPendingApproval,
	EscrowStatusPendingApproval:   EscrowStatusReleased,
}

// CanTransition reports whether from -> to is a legal escrow transition.
func CanTransition(from, to EscrowStatus) bool {
	next, ok := escrowTransitions[from]
	return ok && next == to
}

// TableName custom table name
func (ProjectMilestoneModel) TableName() string {
	return "project_milestone"
}
