package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"client-portal-api/internal/domain"
	"client-portal-api/internal/response"
)

// phaseFixture keeps tasks and the phase completion in memory behind the repository mocks.
type phaseFixture struct {
	phase       *domain.Phase
	tasks       []*domain.Task
	completions []int
}

func newPhaseFixture(total, completed int) *phaseFixture {
	f := &phaseFixture{phase: &domain.Phase{BaseModel: domain.BaseModel{ID: uuid.New()}}}
	for i := 0; i < total; i++ {
		f.tasks = append(f.tasks, &domain.Task{
			BaseModel: domain.BaseModel{ID: uuid.New()},
			PhaseID:   f.phase.ID,
			TaskOrder: i,
			Completed: i < completed,
		})
	}
	return f
}

func (f *phaseFixture) taskRepo() *MockTaskRepository {
	return &MockTaskRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			for _, t := range f.tasks {
				if t.ID == id {
					copied := *t
					return &copied, nil
				}
			}
			return nil, gorm.ErrRecordNotFound
		},
		UpdateCompletedFunc: func(ctx context.Context, id uuid.UUID, completed bool) error {
			for _, t := range f.tasks {
				if t.ID == id {
					t.Completed = completed
				}
			}
			return nil
		},
		FindByPhaseIDFunc: func(ctx context.Context, phaseID uuid.UUID) ([]*domain.Task, error) {
			out := make([]*domain.Task, 0, len(f.tasks))
			for _, t := range f.tasks {
				copied := *t
				out = append(out, &copied)
			}
			return out, nil
		},
	}
}

func (f *phaseFixture) phaseRepo() *MockPhaseRepository {
	return &MockPhaseRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Phase, error) {
			if id != f.phase.ID {
				return nil, gorm.ErrRecordNotFound
			}
			copied := *f.phase
			return &copied, nil
		},
		UpdateCompletionFunc: func(ctx context.Context, id uuid.UUID, completion int) error {
			f.phase.Completion = completion
			f.completions = append(f.completions, completion)
			return nil
		},
	}
}

func TestCompletionPercent(t *testing.T) {
	tests := []struct {
		completed, total, want int
		ok                     bool
	}{
		{0, 5, 0, true},
		{2, 5, 40, true},
		{3, 5, 60, true},
		{1, 3, 33, true},
		{2, 3, 67, true},
		{1, 8, 13, true},
		{5, 5, 100, true},
		{0, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := CompletionPercent(tt.completed, tt.total)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.want, got, "%d/%d", tt.completed, tt.total)
	}
}

func TestProperty_CompletionMatchesRoundedRatio(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("completion equals round(100*c/n) for 0<=c<=n", prop.ForAll(
		func(n, c int) bool {
			c = c % (n + 1)
			got, ok := CompletionPercent(c, n)
			want := int(math.Floor(100*float64(c)/float64(n) + 0.5))
			return ok && got == want && got >= 0 && got <= 100
		},
		gen.IntRange(1, 200),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}

func TestProperty_ToggleRecomputesOverAllTasks(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("after any toggle, completion reflects the full task set", prop.ForAll(
		func(flags []bool, pick int, value bool) bool {
			if len(flags) == 0 {
				return true
			}
			f := newPhaseFixture(len(flags), 0)
			for i, done := range flags {
				f.tasks[i].Completed = done
			}
			svc := NewCompletionService(f.taskRepo(), f.phaseRepo(), nil, zap.NewNop())

			target := f.tasks[pick%len(flags)]
			resp, err := svc.SetTaskCompletion(context.Background(), target.ID, value)
			if err != nil {
				return false
			}

			done := 0
			for _, task := range f.tasks {
				if task.Completed {
					done++
				}
			}
			want, _ := CompletionPercent(done, len(f.tasks))
			return resp.PhaseCompletion == want && f.phase.Completion == want
		},
		gen.SliceOfN(12, gen.Bool()),
		gen.IntRange(0, 100),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestCompletionService_ToggleScenario(t *testing.T) {
	f := newPhaseFixture(5, 2)
	svc := NewCompletionService(f.taskRepo(), f.phaseRepo(), nil, zap.NewNop())
	ctx := context.Background()
	third := f.tasks[2].ID

	// 2 of 5 done, toggling the third on gives 60, toggling it back gives 40
	resp, err := svc.SetTaskCompletion(ctx, third, true)
	require.NoError(t, err)
	assert.True(t, resp.Task.Completed)
	assert.True(t, resp.PhaseCompletionUpdated)
	assert.Equal(t, 60, resp.PhaseCompletion)

	resp, err = svc.SetTaskCompletion(ctx, third, false)
	require.NoError(t, err)
	assert.Equal(t, 40, resp.PhaseCompletion)
	assert.Equal(t, []int{60, 40}, f.completions)
}

func TestCompletionService_NoTasksLeavesPhaseAlone(t *testing.T) {
	taskID := uuid.New()
	phaseWrites := 0
	svc := NewCompletionService(
		&MockTaskRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return &domain.Task{BaseModel: domain.BaseModel{ID: taskID}, PhaseID: uuid.New()}, nil
			},
			FindByPhaseIDFunc: func(ctx context.Context, phaseID uuid.UUID) ([]*domain.Task, error) {
				return nil, nil
			},
		},
		&MockPhaseRepository{
			UpdateCompletionFunc: func(ctx context.Context, id uuid.UUID, completion int) error {
				phaseWrites++
				return nil
			},
		},
		nil, zap.NewNop(),
	)

	resp, err := svc.SetTaskCompletion(context.Background(), taskID, true)
	require.NoError(t, err)
	assert.False(t, resp.PhaseCompletionUpdated)
	assert.Zero(t, phaseWrites)
}

func TestCompletionService_PhaseWriteFailureKeepsTaskWrite(t *testing.T) {
	f := newPhaseFixture(4, 0)
	phases := f.phaseRepo()
	phases.UpdateCompletionFunc = func(ctx context.Context, id uuid.UUID, completion int) error {
		return errors.New("connection reset")
	}
	svc := NewCompletionService(f.taskRepo(), phases, nil, zap.NewNop())

	_, err := svc.SetTaskCompletion(context.Background(), f.tasks[0].ID, true)

	appErr := requireAppError(t, err, response.ErrCodePartialSequence)
	assert.Contains(t, appErr.Details, "update_phase_completion")
	assert.True(t, f.tasks[0].Completed, "task write stays committed")
	assert.Equal(t, 0, f.phase.Completion, "phase completion is stale")
}

func TestCompletionService_SetTaskCompletionErrors(t *testing.T) {
	tests := []struct {
		name     string
		repo     *MockTaskRepository
		wantCode string
	}{
		{
			name: "fail: unknown task",
			repo: &MockTaskRepository{
				FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
					return nil, gorm.ErrRecordNotFound
				},
			},
			wantCode: response.ErrCodeNotFound,
		},
		{
			name: "fail: task write fails",
			repo: &MockTaskRepository{
				FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
					return &domain.Task{BaseModel: domain.BaseModel{ID: id}}, nil
				},
				UpdateCompletedFunc: func(ctx context.Context, id uuid.UUID, completed bool) error {
					return errors.New("timeout")
				},
			},
			wantCode: response.ErrCodeGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCompletionService(tt.repo, &MockPhaseRepository{}, nil, zap.NewNop())
			_, err := svc.SetTaskCompletion(context.Background(), uuid.New(), true)
			requireAppError(t, err, tt.wantCode)
		})
	}
}

func TestCompletionService_DirectOverride(t *testing.T) {
	f := newPhaseFixture(5, 2)
	svc := NewCompletionService(f.taskRepo(), f.phaseRepo(), nil, zap.NewNop())
	ctx := context.Background()

	resp, err := svc.SetPhaseCompletionDirect(ctx, f.phase.ID, 90)
	require.NoError(t, err)
	assert.Equal(t, 90, resp.Completion)
	assert.Equal(t, 90, f.phase.Completion)

	// the next toggle recomputes from tasks and replaces the override
	_, err = svc.SetTaskCompletion(ctx, f.tasks[4].ID, true)
	require.NoError(t, err)
	assert.Equal(t, 60, f.phase.Completion)

	_, err = svc.SetPhaseCompletionDirect(ctx, f.phase.ID, 101)
	requireAppError(t, err, response.ErrCodeValidation)

	_, err = svc.SetPhaseCompletionDirect(ctx, f.phase.ID, -1)
	requireAppError(t, err, response.ErrCodeValidation)

	_, err = svc.SetPhaseCompletionDirect(ctx, uuid.New(), 50)
	requireAppError(t, err, response.ErrCodeNotFound)
}
