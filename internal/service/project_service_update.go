package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"client-portal-api/internal/domain"
	"client-portal-api/internal/dto"
	"client-portal-api/internal/response"
)

// UpdateProject applies the fields present in req.
func (s *projectServiceImpl) UpdateProject(ctx context.Context, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, projectLookupError(err)
	}

	updates := make(map[string]interface{})

	if req.ClientName != nil {
		name := strings.TrimSpace(*req.ClientName)
		if name == "" {
			return nil, response.NewValidationError("Client name cannot be empty", "")
		}
		updates["client_name"] = name
	}
	if req.ProjectName != nil {
		name := strings.TrimSpace(*req.ProjectName)
		if name == "" {
			return nil, response.NewValidationError("Project name cannot be empty", "")
		}
		updates["project_name"] = name
	}
	if req.Passcode != nil {
		code, err := s.checkPasscode(ctx, *req.Passcode, project.ID)
		if err != nil {
			return nil, err
		}
		updates["passcode"] = code
	}

	start, launch := project.StartDate, project.LaunchDate
	if req.StartDate != nil {
		if start, err = parseOptionalDate("startDate", req.StartDate); err != nil {
			return nil, err
		}
		updates["start_date"] = start
	}
	if req.LaunchDate != nil {
		if launch, err = parseOptionalDate("launchDate", req.LaunchDate); err != nil {
			return nil, err
		}
		updates["launch_date"] = launch
	}
	if err := validateDateRange(start, launch); err != nil {
		return nil, err
	}

	if req.CurrentPhase != nil {
		if *req.CurrentPhase < 0 || *req.CurrentPhase > lastPhaseOrder {
			return nil, response.NewValidationError("Current phase must be between 0 and 4", "")
		}
		updates["current_phase"] = *req.CurrentPhase
	}

	if len(updates) == 0 {
		return toProjectResponse(project), nil
	}

	if err := s.projectRepo.Update(ctx, project.ID, updates); err != nil {
		return nil, projectLookupError(err)
	}

	updated, err := s.projectRepo.FindByID(ctx, project.ID)
	if err != nil {
		return nil, projectLookupError(err)
	}
	return toProjectResponse(updated), nil
}

// UpdatePhase edits a phase's status and next steps.
func (s *projectServiceImpl) UpdatePhase(ctx context.Context, phaseID uuid.UUID, req *dto.UpdatePhaseRequest) (*dto.PhaseResponse, error) {
	phase, err := s.phaseRepo.FindByID(ctx, phaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Phase not found", "")
		}
		return nil, response.NewGatewayError("Failed to load phase", err)
	}

	updates := make(map[string]interface{})
	if req.Status != nil {
		status := domain.PhaseStatus(*req.Status)
		if !status.Valid() {
			return nil, response.NewValidationError("Invalid phase status", "upcoming, in-progress or complete")
		}
		updates["status"] = status
		phase.Status = status
	}
	if req.NextSteps != nil {
		updates["next_steps"] = *req.NextSteps
		phase.NextSteps = *req.NextSteps
	}

	if len(updates) > 0 {
		if err := s.phaseRepo.Update(ctx, phase.ID, updates); err != nil {
			s.logger.Error("Failed to update phase", zap.String("phase_id", phase.ID.String()), zap.Error(err))
			return nil, response.NewGatewayError("Failed to update phase", err)
		}
	}
	return toPhaseResponse(phase), nil
}
