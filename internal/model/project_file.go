package model

import (
	"time"
)

// ProjectFileModel uploaded project attachment
type ProjectFileModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ProjectId int64 `json:"project_id" gorm:"index"` // zero until attached to a project
	UserId    int64 `json:"user_id" gorm:"not null;index"`

	FileName    string `json:"file_name" gorm:"not null"`   // original name
	StoredName  string `json:"stored_name" gorm:"not null"` // uuid name on disk
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	PublicURL   string `json:"public_url" gorm:"not null"`
}

// TableName custom table name
func (ProjectFileModel) TableName() string {
	return "project_file"
}
