package model

import (
	"time"
)

// ProjectModel client project posting
type ProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// basic info
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	Industry    string `json:"industry"`

	// required skills, stored as JSON
	SkillsRequired []string `json:"skills_required" gorm:"serializer:json"`

	// budget in cents
	BudgetAmount int64  `json:"budget_amount" gorm:"not null"`
	Currency     string `json:"currency" gorm:"default:'usd'"`
	Timeline     string `json:"timeline"`

	Status ProjectStatus `json:"status" gorm:"default:'matching'"`

	// owner
	UserId int64 `json:"user_id" gorm:"not null;index"`

	// awarded team, zero until an invitation is accepted
	TeamId int64 `json:"team_id" gorm:"index"`

	// associations
	Milestones []ProjectMilestoneModel `json:"milestones,omitempty" gorm:"foreignKey:ProjectId"`
	Files      []ProjectFileModel      `json:"files,omitempty" gorm:"foreignKey:ProjectId"`
}

// ProjectStatus project lifecycle state
type ProjectStatus string

const (
	ProjectStatusMatching  ProjectStatus = "matching"  // posted, looking for a team
	ProjectStatusActive    ProjectStatus = "active"    // team accepted, work in progress
	ProjectStatusCompleted ProjectStatus = "completed" // all milestones released
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// TableName custom table name
func (ProjectModel) TableName() string {
	return "project"
}
