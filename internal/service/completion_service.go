package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"client-portal-api/internal/domain"
	"client-portal-api/internal/dto"
	"client-portal-api/internal/metrics"
	"client-portal-api/internal/repository"
	"client-portal-api/internal/response"
)

// CompletionService keeps phase completion percentages in step with task checkboxes.
type CompletionService interface {
	SetTaskCompletion(ctx context.Context, taskID uuid.UUID, completed bool) (*dto.ToggleTaskResponse, error)
	SetPhaseCompletionDirect(ctx context.Context, phaseID uuid.UUID, value int) (*dto.PhaseResponse, error)
}

type completionServiceImpl struct {
	taskRepo  repository.TaskRepository
	phaseRepo repository.PhaseRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewCompletionService creates a new instance of CompletionService
func NewCompletionService(taskRepo repository.TaskRepository, phaseRepo repository.PhaseRepository, m *metrics.Metrics, logger *zap.Logger) CompletionService {
	return &completionServiceImpl{
		taskRepo:  taskRepo,
		phaseRepo: phaseRepo,
		metrics:   m,
		logger:    logger,
	}
}

// CompletionPercent rounds 100*completed/total half up. ok is false when total is zero.
func CompletionPercent(completed, total int) (percent int, ok bool) {
	if total <= 0 {
		return 0, false
	}
	return (200*completed + total) / (2 * total), true
}

// SetTaskCompletion writes the task flag and then the recomputed phase completion.
// The two writes are independent: when the second fails the task change stays committed.
func (s *completionServiceImpl) SetTaskCompletion(ctx context.Context, taskID uuid.UUID, completed bool) (*dto.ToggleTaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Task not found", "")
		}
		return nil, response.NewGatewayError("Failed to load task", err)
	}

	if err := s.taskRepo.UpdateCompleted(ctx, task.ID, completed); err != nil {
		return nil, response.NewGatewayError("Failed to update task", err)
	}
	task.Completed = completed
	s.metrics.IncrementTaskToggle()

	result := &dto.ToggleTaskResponse{Task: toTaskResponse(task)}

	tasks, err := s.taskRepo.FindByPhaseID(ctx, task.PhaseID)
	if err != nil {
		s.logSequenceFailure("load_phase_tasks", task, err)
		return nil, response.NewPartialSequenceError("load_phase_tasks", []string{"task:" + task.ID.String()}, err)
	}

	// Count the toggled task with the value just written.
	done := lo.CountBy(tasks, func(t *domain.Task) bool {
		if t.ID == task.ID {
			return completed
		}
		return t.Completed
	})

	percent, ok := CompletionPercent(done, len(tasks))
	if !ok {
		return result, nil
	}

	if err := s.phaseRepo.UpdateCompletion(ctx, task.PhaseID, percent); err != nil {
		s.logSequenceFailure("update_phase_completion", task, err)
		return nil, response.NewPartialSequenceError("update_phase_completion", []string{"task:" + task.ID.String()}, err)
	}

	result.PhaseCompletion = percent
	result.PhaseCompletionUpdated = true
	return result, nil
}

// SetPhaseCompletionDirect overrides the phase completion without looking at its tasks.
// The next task toggle in the phase overwrites it again.
func (s *completionServiceImpl) SetPhaseCompletionDirect(ctx context.Context, phaseID uuid.UUID, value int) (*dto.PhaseResponse, error) {
	if value < 0 || value > 100 {
		return nil, response.NewValidationError("Completion must be between 0 and 100", "")
	}

	phase, err := s.phaseRepo.FindByID(ctx, phaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Phase not found", "")
		}
		return nil, response.NewGatewayError("Failed to load phase", err)
	}

	if err := s.phaseRepo.UpdateCompletion(ctx, phase.ID, value); err != nil {
		return nil, response.NewGatewayError("Failed to update phase completion", err)
	}
	phase.Completion = value

	return toPhaseResponse(phase), nil
}

func (s *completionServiceImpl) logSequenceFailure(step string, task *domain.Task, err error) {
	s.logger.Error("Task completion sequence stopped",
		zap.String("step", step),
		zap.String("task_id", task.ID.String()),
		zap.String("phase_id", task.PhaseID.String()),
		zap.Error(err),
	)
}
