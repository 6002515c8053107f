package domain

import (
	"github.com/google/uuid"
)

// UserType distinguishes the two roles that can write to a project.
type UserType string

const (
	UserTypeAdmin  UserType = "admin"
	UserTypeClient UserType = "client"
)

// Comment is an append-only note on a deliverable.
type Comment struct {
	BaseModel
	DeliverableID uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_deliverable_id" json:"deliverable_id"`
	ProjectID     uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_project_id" json:"project_id"`
	UserType      UserType  `gorm:"type:varchar(10);not null" json:"user_type"`
	UserName      string    `gorm:"type:varchar(255);not null" json:"user_name"`
	Message       string    `gorm:"type:text;not null" json:"message"`
}

func (Comment) TableName() string {
	return "comments"
}
