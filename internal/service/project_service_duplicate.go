package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"client-portal-api/internal/domain"
	"client-portal-api/internal/dto"
	"client-portal-api/internal/response"
)

// cloneRun tracks what a duplication has written so far.
type cloneRun struct {
	sourceID uuid.UUID
	target   *domain.Project
	written  []string
}

func (r *cloneRun) record(kind string, id uuid.UUID) {
	r.written = append(r.written, fmt.Sprintf("%s:%s", kind, id))
}

// DuplicateProject copies the structure of a project into a new one with all progress reset.
// Steps run one after another and stop at the first failure. Rows already written stay in place
// and are reported in the PARTIAL_SEQUENCE_FAILURE details.
func (s *projectServiceImpl) DuplicateProject(ctx context.Context, sourceID uuid.UUID) (*dto.DuplicateProjectResponse, error) {
	source, err := s.projectRepo.FindTree(ctx, sourceID)
	if err != nil {
		return nil, projectLookupError(err)
	}

	passcode, err := s.generateUniquePasscode(ctx)
	if err != nil {
		return nil, err
	}

	run := &cloneRun{sourceID: source.ID}
	run.target = &domain.Project{
		ClientName:   source.ClientName + copyNameSuffix,
		ProjectName:  source.ProjectName + copyNameSuffix,
		Passcode:     passcode,
		StartDate:    source.StartDate,
		LaunchDate:   source.LaunchDate,
		CurrentPhase: 0,
	}
	if err := s.projectRepo.Create(ctx, run.target); err != nil {
		s.logCloneFailure(run, "create_project", uuid.Nil, err)
		return nil, response.NewGatewayError("Failed to create project copy", err)
	}
	run.record("project", run.target.ID)

	// Each phase is written with its tasks and deliverables before the next phase starts.
	for _, src := range source.Phases {
		phase := &domain.Phase{
			ProjectID:  run.target.ID,
			PhaseOrder: src.PhaseOrder,
			Name:       src.Name,
			Status:     initialPhaseStatus(src.PhaseOrder),
			Completion: 0,
			NextSteps:  src.NextSteps,
		}
		if err := s.phaseRepo.Create(ctx, phase); err != nil {
			return nil, s.cloneFailed(run, "create_phase", uuid.Nil, err)
		}
		run.record("phase", phase.ID)

		if len(src.Tasks) > 0 {
			tasks := lo.Map(src.Tasks, func(t domain.Task, _ int) *domain.Task {
				return &domain.Task{
					PhaseID:   phase.ID,
					Name:      t.Name,
					Completed: false,
					TaskOrder: t.TaskOrder,
				}
			})
			if err := s.taskRepo.CreateBatch(ctx, tasks); err != nil {
				return nil, s.cloneFailed(run, "create_tasks", phase.ID, err)
			}
			run.record("tasks", phase.ID)
		}

		if len(src.Deliverables) > 0 {
			deliverables := lo.Map(src.Deliverables, func(d domain.Deliverable, _ int) *domain.Deliverable {
				return &domain.Deliverable{
					PhaseID:          phase.ID,
					Name:             d.Name,
					Status:           domain.DeliverableStatusNotStarted,
					DeliverableOrder: d.DeliverableOrder,
				}
			})
			if err := s.deliverableRepo.CreateBatch(ctx, deliverables); err != nil {
				return nil, s.cloneFailed(run, "create_deliverables", phase.ID, err)
			}
			run.record("deliverables", phase.ID)
		}
	}

	s.metrics.IncrementProjectDuplicated()
	s.logger.Info("Project duplicated",
		zap.String("source_project_id", source.ID.String()),
		zap.String("project_id", run.target.ID.String()),
		zap.Int("phases", len(source.Phases)),
	)

	return &dto.DuplicateProjectResponse{ProjectID: run.target.ID, Passcode: run.target.Passcode}, nil
}

func (s *projectServiceImpl) cloneFailed(run *cloneRun, step string, phaseID uuid.UUID, err error) error {
	s.logCloneFailure(run, step, phaseID, err)
	return response.NewPartialSequenceError(step, run.written, err)
}

func (s *projectServiceImpl) logCloneFailure(run *cloneRun, step string, phaseID uuid.UUID, err error) {
	fields := []zap.Field{
		zap.String("step", step),
		zap.String("source_project_id", run.sourceID.String()),
		zap.Strings("written", run.written),
		zap.Error(err),
	}
	if len(run.written) > 0 {
		fields = append(fields, zap.String("project_id", run.target.ID.String()))
	}
	if phaseID != uuid.Nil {
		fields = append(fields, zap.String("phase_id", phaseID.String()))
	}
	s.logger.Error("Project duplication stopped", fields...)
}
