package model

import (
	"time"
)

// UserModel marketplace account
type UserModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `json:"email" gorm:"uniqueIndex;not null" binding:"required,email"`
	PasswordHash string `json:"-" gorm:"not null"`
	Name         string `json:"name" gorm:"not null"`
	Role         UserRole `json:"role" gorm:"default:'client'"`
	AvatarURL    string `json:"avatar_url"`
}

// UserRole account role
type UserRole string

const (
	UserRoleClient     UserRole = "client"     // posts projects
	UserRoleFreelancer UserRole = "freelancer" // belongs to teams
	UserRoleAdmin      UserRole = "admin"      // email console, ops
)

// TableName custom table name
func (UserModel) TableName() string {
	return "user"
}
