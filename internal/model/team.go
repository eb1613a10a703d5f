package model

import (
	"time"
)

// TeamModel freelance team profile
type TeamModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `json:"name" gorm:"not null" binding:"required"`
	Bio      string `json:"bio" gorm:"type:text"`
	LogoURL  string `json:"logo_url"`
	Location string `json:"location"`

	Skills     []string `json:"skills" gorm:"serializer:json"`
	Industries []string `json:"industries" gorm:"serializer:json"`

	// hourly rate band in cents
	RateMin int64 `json:"rate_min" gorm:"default:0"`
	RateMax int64 `json:"rate_max" gorm:"default:0"`

	Rating       float64 `json:"rating" gorm:"default:0"` // 0-5
	ProjectsDone int     `json:"projects_done" gorm:"default:0"`

	// owning user
	OwnerId int64 `json:"owner_id" gorm:"not null;index"`

	IsActive bool `json:"is_active" gorm:"default:true"`

	// associations
	Members []TeamMemberModel `json:"members,omitempty" gorm:"foreignKey:TeamId"`
}

// TableName custom table name
func (TeamModel) TableName() string {
	return "team"
}

// TeamMemberModel member of a team profile
type TeamMemberModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TeamId     int64     `json:"team_id" gorm:"not null;index"`
	MemberName string    `json:"member_name" gorm:"not null"`
	MemberRole string    `json:"member_role" gorm:"not null"` // lead, developer, designer, marketer, advisor
	Email      string    `json:"email"`
	Bio        string    `json:"bio" gorm:"type:text"`
	AvatarURL  string    `json:"avatar_url"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	JoinTime   time.Time `json:"join_time"`
}

// MemberRole team member role
type MemberRole string

const (
	MemberRoleLead      MemberRole = "lead"
	MemberRoleDeveloper MemberRole = "developer"
	MemberRoleDesigner  MemberRole = "designer"
	MemberRoleMarketer  MemberRole = "marketer"
	MemberRoleAdvisor   MemberRole = "advisor"
)

// TableName custom table name
func (TeamMemberModel) TableName() string {
	return "team_member"
}
