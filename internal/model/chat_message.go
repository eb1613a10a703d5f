package model

import (
	"time"
)

// ChatMessageModel project chat message
type ChatMessageModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;index"`
	UserId    int64  `json:"user_id" gorm:"not null"`
	Body      string `json:"body" gorm:"type:text;not null"`
}

// TableName custom table name
func (ChatMessageModel) TableName() string {
	return "chat_message"
}
