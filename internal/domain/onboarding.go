package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OnboardingResponse stores one submitted questionnaire as a JSON document.
type OnboardingResponse struct {
	BaseModel
	ProjectID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_onboarding_responses_project_id" json:"project_id"`
	SchemaVersion int            `gorm:"not null;default:1" json:"schema_version"`
	ResponseData  datatypes.JSON `json:"response_data"`
	SubmittedAt   time.Time      `gorm:"not null;index:idx_onboarding_responses_submitted_at" json:"submitted_at"`
}

func (OnboardingResponse) TableName() string {
	return "onboarding_responses"
}

// AssetType is the questionnaire slot an uploaded asset belongs to.
type AssetType string

const (
	AssetTypeBrandGuide AssetType = "brand_guide"
	AssetTypeLogo       AssetType = "logo"
	AssetTypeFont       AssetType = "font"
	AssetTypeMedia      AssetType = "media"
)

func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeBrandGuide, AssetTypeLogo, AssetTypeFont, AssetTypeMedia:
		return true
	}
	return false
}

// AssetStatus marks whether a submitted response references the asset yet.
type AssetStatus string

const (
	AssetStatusTemp      AssetStatus = "TEMP"
	AssetStatusConfirmed AssetStatus = "CONFIRMED"
)

// OnboardingAsset is a blob uploaded while the client fills in the questionnaire.
// TEMP assets that are never referenced by a submission expire and are removed by the cleanup job.
type OnboardingAsset struct {
	BaseModel
	ProjectID   uuid.UUID   `gorm:"type:uuid;not null;index:idx_onboarding_assets_project_id" json:"project_id"`
	AssetType   AssetType   `gorm:"type:varchar(20);not null" json:"asset_type"`
	Status      AssetStatus `gorm:"type:varchar(20);not null;default:'TEMP';index:idx_onboarding_assets_status" json:"status"`
	FileName    string      `gorm:"type:varchar(255);not null" json:"file_name"`
	StorageKey  string      `gorm:"type:text;not null" json:"-"`
	FileURL     string      `gorm:"type:text;not null" json:"file_url"`
	FileSize    int64       `gorm:"not null" json:"file_size"`
	ContentType string      `gorm:"type:varchar(100)" json:"content_type"`
	ExpiresAt   *time.Time  `gorm:"index:idx_onboarding_assets_expires_at" json:"expires_at,omitempty"`
}

func (OnboardingAsset) TableName() string {
	return "onboarding_assets"
}
