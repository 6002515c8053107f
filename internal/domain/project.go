package domain

import (
	"time"

	"github.com/google/uuid"
)

// PhaseCount is the fixed number of phases every project carries.
const PhaseCount = 5

// Project is the root of a client's project tree.
type Project struct {
	BaseModel
	ClientName            string     `gorm:"type:varchar(255);not null" json:"client_name"`
	ProjectName           string     `gorm:"type:varchar(255);not null" json:"project_name"`
	Passcode              string     `gorm:"type:varchar(32);not null;uniqueIndex:uq_projects_passcode" json:"passcode"`
	StartDate             *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	LaunchDate            *time.Time `gorm:"type:date" json:"launch_date,omitempty"`
	CurrentPhase          int        `gorm:"not null;default:0" json:"current_phase"`
	OnboardingCompleted   bool       `gorm:"not null;default:false" json:"onboarding_completed"`
	OnboardingCompletedAt *time.Time `json:"onboarding_completed_at,omitempty"`
	Phases                []Phase    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"phases,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// PhaseStatus is the lifecycle state of a phase.
type PhaseStatus string

const (
	PhaseStatusUpcoming   PhaseStatus = "upcoming"
	PhaseStatusInProgress PhaseStatus = "in-progress"
	PhaseStatusComplete   PhaseStatus = "complete"
)

func (s PhaseStatus) Valid() bool {
	switch s {
	case PhaseStatusUpcoming, PhaseStatusInProgress, PhaseStatusComplete:
		return true
	}
	return false
}

// Phase is one of the five ordered stages of a project.
type Phase struct {
	BaseModel
	ProjectID    uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:uq_phases_project_order,priority:1" json:"project_id"`
	PhaseOrder   int           `gorm:"not null;uniqueIndex:uq_phases_project_order,priority:2" json:"phase_order"`
	Name         string        `gorm:"type:varchar(100);not null" json:"name"`
	Status       PhaseStatus   `gorm:"type:varchar(20);not null;default:'upcoming'" json:"status"`
	Completion   int           `gorm:"not null;default:0" json:"completion"`
	NextSteps    string        `gorm:"type:text" json:"next_steps"`
	Tasks        []Task        `gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	Deliverables []Deliverable `gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE" json:"deliverables,omitempty"`
}

func (Phase) TableName() string {
	return "phases"
}

// Task is a checklist item owned by a single phase.
type Task struct {
	BaseModel
	PhaseID   uuid.UUID `gorm:"type:uuid;not null;index:idx_tasks_phase_id" json:"phase_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	TaskOrder int       `gorm:"not null;default:0" json:"task_order"`
}

func (Task) TableName() string {
	return "tasks"
}
