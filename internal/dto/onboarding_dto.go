package dto

import (
	"time"

	"github.com/google/uuid"
)

// OnboardingStatusResponse tells the client whether the questionnaire was submitted
type OnboardingStatusResponse struct {
	OnboardingCompleted   bool       `json:"onboardingCompleted"`
	OnboardingCompletedAt *time.Time `json:"onboardingCompletedAt,omitempty"`
}

// SubmitOnboardingResponse acknowledges a stored questionnaire
type SubmitOnboardingResponse struct {
	ResponseID      uuid.UUID `json:"responseId"`
	SchemaVersion   int       `json:"schemaVersion" example:"1"`
	SubmittedAt     time.Time `json:"submittedAt"`
	ConfirmedAssets int64     `json:"confirmedAssets" example:"3"`
}

// OnboardingAssetResponse represents an uploaded questionnaire asset
type OnboardingAssetResponse struct {
	ID        uuid.UUID  `json:"assetId"`
	AssetType string     `json:"assetType" example:"logo"`
	FileName  string     `json:"fileName" example:"logo.svg"`
	FileURL   string     `json:"fileUrl"`
	FileSize  int64      `json:"fileSize"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// OnboardingField is one rendered label and value
type OnboardingField struct {
	Label string `json:"label" example:"Company Name"`
	Value string `json:"value" example:"Acme Corp"`
}

// OnboardingSection is a titled group of rendered fields
type OnboardingSection struct {
	Title  string            `json:"title" example:"Company Information"`
	Fields []OnboardingField `json:"fields"`
}

// OnboardingViewResponse is the admin's read-only view of the latest submission
type OnboardingViewResponse struct {
	ResponseID    uuid.UUID           `json:"responseId"`
	SchemaVersion int                 `json:"schemaVersion"`
	SubmittedAt   time.Time           `json:"submittedAt"`
	Sections      []OnboardingSection `json:"sections"`
}
