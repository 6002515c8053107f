package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"client-portal-api/internal/domain"
	"client-portal-api/internal/repository"
)

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	CreateFunc                  func(ctx context.Context, project *domain.Project) error
	CreateWithTreeFunc          func(ctx context.Context, project *domain.Project) error
	FindByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindTreeFunc                func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindAllFunc                 func(ctx context.Context) ([]*domain.Project, error)
	FindByPasscodeFunc          func(ctx context.Context, passcode string) (*domain.Project, error)
	PasscodeExistsFunc          func(ctx context.Context, passcode string, excludeID uuid.UUID) (bool, error)
	UpdateFunc                  func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	MarkOnboardingCompletedFunc func(ctx context.Context, id uuid.UUID, at time.Time) error
	DeleteCascadeFunc           func(ctx context.Context, id uuid.UUID) (*repository.DeletedBlobs, error)
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) CreateWithTree(ctx context.Context, project *domain.Project) error {
	if m.CreateWithTreeFunc != nil {
		return m.CreateWithTreeFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindTree(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if m.FindTreeFunc != nil {
		return m.FindTreeFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindAll(ctx context.Context) ([]*domain.Project, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindByPasscode(ctx context.Context, passcode string) (*domain.Project, error) {
	if m.FindByPasscodeFunc != nil {
		return m.FindByPasscodeFunc(ctx, passcode)
	}
	return nil, nil
}

func (m *MockProjectRepository) PasscodeExists(ctx context.Context, passcode string, excludeID uuid.UUID) (bool, error) {
	if m.PasscodeExistsFunc != nil {
		return m.PasscodeExistsFunc(ctx, passcode, excludeID)
	}
	return false, nil
}

func (m *MockProjectRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, updates)
	}
	return nil
}

func (m *MockProjectRepository) MarkOnboardingCompleted(ctx context.Context, id uuid.UUID, at time.Time) error {
	if m.MarkOnboardingCompletedFunc != nil {
		return m.MarkOnboardingCompletedFunc(ctx, id, at)
	}
	return nil
}

func (m *MockProjectRepository) DeleteCascade(ctx context.Context, id uuid.UUID) (*repository.DeletedBlobs, error) {
	if m.DeleteCascadeFunc != nil {
		return m.DeleteCascadeFunc(ctx, id)
	}
	return &repository.DeletedBlobs{}, nil
}

// MockPhaseRepository is a mock implementation of PhaseRepository
type MockPhaseRepository struct {
	CreateFunc           func(ctx context.Context, phase *domain.Phase) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Phase, error)
	FindByProjectIDFunc  func(ctx context.Context, projectID uuid.UUID) ([]*domain.Phase, error)
	UpdateCompletionFunc func(ctx context.Context, id uuid.UUID, completion int) error
	UpdateFunc           func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

func (m *MockPhaseRepository) Create(ctx context.Context, phase *domain.Phase) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, phase)
	}
	return nil
}

func (m *MockPhaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Phase, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPhaseRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Phase, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockPhaseRepository) UpdateCompletion(ctx context.Context, id uuid.UUID, completion int) error {
	if m.UpdateCompletionFunc != nil {
		return m.UpdateCompletionFunc(ctx, id, completion)
	}
	return nil
}

func (m *MockPhaseRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, updates)
	}
	return nil
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	CreateBatchFunc     func(ctx context.Context, tasks []*domain.Task) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByPhaseIDFunc   func(ctx context.Context, phaseID uuid.UUID) ([]*domain.Task, error)
	UpdateCompletedFunc func(ctx context.Context, id uuid.UUID, completed bool) error
}

func (m *MockTaskRepository) CreateBatch(ctx context.Context, tasks []*domain.Task) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tasks)
	}
	return nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByPhaseID(ctx context.Context, phaseID uuid.UUID) ([]*domain.Task, error) {
	if m.FindByPhaseIDFunc != nil {
		return m.FindByPhaseIDFunc(ctx, phaseID)
	}
	return nil, nil
}

func (m *MockTaskRepository) UpdateCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	if m.UpdateCompletedFunc != nil {
		return m.UpdateCompletedFunc(ctx, id, completed)
	}
	return nil
}

// MockDeliverableRepository is a mock implementation of DeliverableRepository
type MockDeliverableRepository struct {
	CreateBatchFunc   func(ctx context.Context, deliverables []*domain.Deliverable) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Deliverable, error)
	FindByPhaseIDFunc func(ctx context.Context, phaseID uuid.UUID) ([]*domain.Deliverable, error)
	FindInProjectFunc func(ctx context.Context, projectID, deliverableID uuid.UUID) (*domain.Deliverable, error)
	UpdateFunc        func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

func (m *MockDeliverableRepository) CreateBatch(ctx context.Context, deliverables []*domain.Deliverable) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, deliverables)
	}
	return nil
}

func (m *MockDeliverableRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Deliverable, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockDeliverableRepository) FindByPhaseID(ctx context.Context, phaseID uuid.UUID) ([]*domain.Deliverable, error) {
	if m.FindByPhaseIDFunc != nil {
		return m.FindByPhaseIDFunc(ctx, phaseID)
	}
	return nil, nil
}

func (m *MockDeliverableRepository) FindInProject(ctx context.Context, projectID, deliverableID uuid.UUID) (*domain.Deliverable, error) {
	if m.FindInProjectFunc != nil {
		return m.FindInProjectFunc(ctx, projectID, deliverableID)
	}
	return &domain.Deliverable{BaseModel: domain.BaseModel{ID: deliverableID}}, nil
}

func (m *MockDeliverableRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, updates)
	}
	return nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc              func(ctx context.Context, comment *domain.Comment) error
	FindByDeliverableIDFunc func(ctx context.Context, deliverableID uuid.UUID) ([]*domain.Comment, error)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) FindByDeliverableID(ctx context.Context, deliverableID uuid.UUID) ([]*domain.Comment, error) {
	if m.FindByDeliverableIDFunc != nil {
		return m.FindByDeliverableIDFunc(ctx, deliverableID)
	}
	return nil, nil
}

// MockFileRepository is a mock implementation of FileRepository
type MockFileRepository struct {
	CreateFunc          func(ctx context.Context, file *domain.File) error
	FindByProjectIDFunc func(ctx context.Context, projectID uuid.UUID, deliverableID *uuid.UUID) ([]*domain.File, error)
}

func (m *MockFileRepository) Create(ctx context.Context, file *domain.File) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, file)
	}
	return nil
}

func (m *MockFileRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID, deliverableID *uuid.UUID) ([]*domain.File, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID, deliverableID)
	}
	return nil, nil
}

// MockAdminUserRepository is a mock implementation of AdminUserRepository
type MockAdminUserRepository struct {
	CreateFunc      func(ctx context.Context, admin *domain.AdminUser) error
	FindByEmailFunc func(ctx context.Context, email string) (*domain.AdminUser, error)
}

func (m *MockAdminUserRepository) Create(ctx context.Context, admin *domain.AdminUser) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, admin)
	}
	return nil
}

func (m *MockAdminUserRepository) FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

// failingProjectRepository wraps a real repository and fails the onboarding flag write.
type failingProjectRepository struct {
	repository.ProjectRepository
	markErr error
}

func (r *failingProjectRepository) MarkOnboardingCompleted(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.markErr
}

// failingTaskRepository wraps a real repository and fails batch inserts after okBatches successes.
type failingTaskRepository struct {
	repository.TaskRepository
	okBatches int
	err       error
}

func (r *failingTaskRepository) CreateBatch(ctx context.Context, tasks []*domain.Task) error {
	if r.okBatches <= 0 {
		return r.err
	}
	r.okBatches--
	return r.TaskRepository.CreateBatch(ctx, tasks)
}

// failingDeliverableRepository wraps a real repository and fails every batch insert.
type failingDeliverableRepository struct {
	repository.DeliverableRepository
	err error
}

func (r *failingDeliverableRepository) CreateBatch(ctx context.Context, deliverables []*domain.Deliverable) error {
	return r.err
}
