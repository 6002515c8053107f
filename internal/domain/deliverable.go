package domain

import (
	"github.com/google/uuid"
)

// DeliverableStatus tracks a deliverable through review.
type DeliverableStatus string

const (
	DeliverableStatusNotStarted DeliverableStatus = "not-started"
	DeliverableStatusInProgress DeliverableStatus = "in-progress"
	DeliverableStatusReview     DeliverableStatus = "review"
	DeliverableStatusDelivered  DeliverableStatus = "delivered"
)

func (s DeliverableStatus) Valid() bool {
	switch s {
	case DeliverableStatusNotStarted, DeliverableStatusInProgress, DeliverableStatusReview, DeliverableStatusDelivered:
		return true
	}
	return false
}

// Deliverable is an output artifact of a phase.
type Deliverable struct {
	BaseModel
	PhaseID          uuid.UUID         `gorm:"type:uuid;not null;index:idx_deliverables_phase_id" json:"phase_id"`
	Name             string            `gorm:"type:varchar(255);not null" json:"name"`
	Status           DeliverableStatus `gorm:"type:varchar(20);not null;default:'not-started'" json:"status"`
	FileURL          *string           `gorm:"type:text" json:"file_url,omitempty"`
	DeliverableOrder int               `gorm:"not null;default:0" json:"deliverable_order"`
}

func (Deliverable) TableName() string {
	return "deliverables"
}
