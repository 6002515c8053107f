package dto

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for project start and launch dates.
const DateLayout = "2006-01-02"

// CreateProjectRequest represents the request to create a new project
// @Description Dates use YYYY-MM-DD. The passcode is generated when omitted.
type CreateProjectRequest struct {
	ClientName  string  `json:"clientName" binding:"required" example:"Acme Corp"`
	ProjectName string  `json:"projectName" binding:"required" example:"Acme Site"`
	Passcode    *string `json:"passcode,omitempty" example:"WXYZ-2345"`
	StartDate   *string `json:"startDate,omitempty" example:"2026-01-05"`
	LaunchDate  *string `json:"launchDate,omitempty" example:"2026-04-01"`
}

// UpdateProjectRequest represents the request to update a project
// @Description All fields are optional. An empty string clears a date.
type UpdateProjectRequest struct {
	ClientName   *string `json:"clientName,omitempty" example:"Acme Corp"`
	ProjectName  *string `json:"projectName,omitempty" example:"Acme Site"`
	Passcode     *string `json:"passcode,omitempty" example:"WXYZ-2345"`
	StartDate    *string `json:"startDate,omitempty" example:"2026-01-05"`
	LaunchDate   *string `json:"launchDate,omitempty" example:"2026-04-01"`
	CurrentPhase *int    `json:"currentPhase,omitempty" example:"2"`
}

// UpdatePhaseRequest represents the request to edit a phase's status or next steps
type UpdatePhaseRequest struct {
	Status    *string `json:"status,omitempty" example:"in-progress"`
	NextSteps *string `json:"nextSteps,omitempty" example:"Review homepage design"`
}

// SetPhaseCompletionRequest overrides a phase's completion percentage
type SetPhaseCompletionRequest struct {
	Completion *int `json:"completion" binding:"required" example:"75"`
}

// ToggleTaskRequest sets a task's checked state
type ToggleTaskRequest struct {
	Completed *bool `json:"completed" binding:"required" example:"true"`
}

// ProjectResponse represents the project response
type ProjectResponse struct {
	ID                    uuid.UUID  `json:"projectId" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	ClientName            string     `json:"clientName" example:"Acme Corp"`
	ProjectName           string     `json:"projectName" example:"Acme Site"`
	Passcode              string     `json:"passcode,omitempty" example:"WXYZ-2345"`
	StartDate             *string    `json:"startDate,omitempty" example:"2026-01-05"`
	LaunchDate            *string    `json:"launchDate,omitempty" example:"2026-04-01"`
	CurrentPhase          int        `json:"currentPhase" example:"0"`
	OnboardingCompleted   bool       `json:"onboardingCompleted" example:"false"`
	OnboardingCompletedAt *time.Time `json:"onboardingCompletedAt,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// ProjectTreeResponse is a project with its phases, tasks and deliverables
type ProjectTreeResponse struct {
	ProjectResponse
	Phases []PhaseResponse `json:"phases"`
}

// PhaseResponse represents a phase with its children
type PhaseResponse struct {
	ID           uuid.UUID             `json:"phaseId"`
	ProjectID    uuid.UUID             `json:"projectId"`
	PhaseOrder   int                   `json:"phaseOrder" example:"0"`
	Name         string                `json:"name" example:"Discovery"`
	Status       string                `json:"status" example:"in-progress"`
	Completion   int                   `json:"completion" example:"40"`
	NextSteps    string                `json:"nextSteps"`
	Tasks        []TaskResponse        `json:"tasks"`
	Deliverables []DeliverableResponse `json:"deliverables"`
}

// TaskResponse represents a checklist item
type TaskResponse struct {
	ID        uuid.UUID `json:"taskId"`
	PhaseID   uuid.UUID `json:"phaseId"`
	Name      string    `json:"name" example:"Define project goals"`
	Completed bool      `json:"completed"`
	TaskOrder int       `json:"taskOrder"`
}

// ToggleTaskResponse reports the task and the phase completion it produced
// @Description phaseCompletionUpdated is false when the phase has no tasks to count
type ToggleTaskResponse struct {
	Task                   TaskResponse `json:"task"`
	PhaseCompletion        int          `json:"phaseCompletion" example:"60"`
	PhaseCompletionUpdated bool         `json:"phaseCompletionUpdated"`
}

// DashboardStats summarises the project list
type DashboardStats struct {
	Total         int `json:"total" example:"12"`
	Active        int `json:"active" example:"9"`
	LaunchingSoon int `json:"launchingSoon" example:"2"`
}

// DashboardResponse is the admin landing page payload
type DashboardResponse struct {
	Stats    DashboardStats     `json:"stats"`
	Projects []*ProjectResponse `json:"projects"`
}

// DuplicateProjectResponse carries the id of the new copy
type DuplicateProjectResponse struct {
	ProjectID uuid.UUID `json:"projectId"`
	Passcode  string    `json:"passcode" example:"KHTR-7QPM"`
}
