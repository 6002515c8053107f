package domain

import (
	"github.com/google/uuid"
)

// File is metadata for a blob uploaded against a project or deliverable.
type File struct {
	BaseModel
	ProjectID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_files_project_id" json:"project_id"`
	DeliverableID *uuid.UUID `gorm:"type:uuid;index:idx_files_deliverable_id" json:"deliverable_id,omitempty"`
	FileName      string     `gorm:"type:varchar(255);not null" json:"file_name"`
	FileURL       string     `gorm:"type:text;not null" json:"file_url"`
	StorageKey    string     `gorm:"type:text;not null" json:"-"`
	FileType      string     `gorm:"type:varchar(100)" json:"file_type"`
	FileSize      int64      `gorm:"not null" json:"file_size"`
	UploadedBy    UserType   `gorm:"type:varchar(10);not null" json:"uploaded_by"`
}

func (File) TableName() string {
	return "files"
}
