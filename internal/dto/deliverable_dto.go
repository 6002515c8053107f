package dto

import (
	"time"

	"github.com/google/uuid"
)

// UpdateDeliverableRequest represents the request to update a deliverable
type UpdateDeliverableRequest struct {
	Status  *string `json:"status,omitempty" example:"review"`
	FileURL *string `json:"fileUrl,omitempty" example:"https://cdn.example.com/project-files/brief.pdf"`
}

// DeliverableResponse represents a deliverable
type DeliverableResponse struct {
	ID               uuid.UUID `json:"deliverableId"`
	PhaseID          uuid.UUID `json:"phaseId"`
	Name             string    `json:"name" example:"Mood Board"`
	Status           string    `json:"status" example:"not-started"`
	FileURL          *string   `json:"fileUrl,omitempty"`
	DeliverableOrder int       `json:"deliverableOrder"`
}

// CreateCommentRequest represents the request to add a comment to a deliverable
type CreateCommentRequest struct {
	Message string `json:"message" binding:"required" example:"Looks great, one small change on the header"`
}

// CommentResponse represents a comment
type CommentResponse struct {
	ID            uuid.UUID `json:"commentId"`
	DeliverableID uuid.UUID `json:"deliverableId"`
	ProjectID     uuid.UUID `json:"projectId"`
	UserType      string    `json:"userType" example:"client"`
	UserName      string    `json:"userName" example:"Acme Corp"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FileResponse represents uploaded file metadata
type FileResponse struct {
	ID            uuid.UUID  `json:"fileId"`
	ProjectID     uuid.UUID  `json:"projectId"`
	DeliverableID *uuid.UUID `json:"deliverableId,omitempty"`
	FileName      string     `json:"fileName" example:"brief.pdf"`
	FileURL       string     `json:"fileUrl"`
	FileType      string     `json:"fileType" example:"application/pdf"`
	FileSize      int64      `json:"fileSize" example:"20480"`
	UploadedBy    string     `json:"uploadedBy" example:"admin"`
	CreatedAt     time.Time  `json:"createdAt"`
}
