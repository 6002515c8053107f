package dto

import "github.com/google/uuid"

// VerifyPasscodeRequest checks a passcode against a known project
type VerifyPasscodeRequest struct {
	ProjectID string `json:"projectId" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Passcode  string `json:"passcode" example:"WXYZ-2345"`
}

// VerifyPasscodeResponse keeps the original endpoint's body shape
type VerifyPasscodeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AccessRequest resolves a project from a passcode alone
type AccessRequest struct {
	Passcode string `json:"passcode" binding:"required" example:"WXYZ-2345"`
}

// AccessResponse identifies the project a passcode opens
type AccessResponse struct {
	ProjectID   uuid.UUID `json:"projectId"`
	ProjectName string    `json:"projectName"`
	ClientName  string    `json:"clientName"`
}
