package handler

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"client-portal-api/internal/auth"
	"client-portal-api/internal/domain"
	"client-portal-api/internal/dto"
	"client-portal-api/internal/service"
)

// MockProjectService is a mock implementation of ProjectService
type MockProjectService struct {
	CreateProjectFunc    func(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectTreeResponse, error)
	GetProjectTreeFunc   func(ctx context.Context, projectID uuid.UUID) (*dto.ProjectTreeResponse, error)
	ListProjectsFunc     func(ctx context.Context) ([]*dto.ProjectResponse, error)
	DashboardFunc        func(ctx context.Context) (*dto.DashboardResponse, error)
	UpdateProjectFunc    func(ctx context.Context, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	UpdatePhaseFunc      func(ctx context.Context, phaseID uuid.UUID, req *dto.UpdatePhaseRequest) (*dto.PhaseResponse, error)
	DeleteProjectFunc    func(ctx context.Context, projectID uuid.UUID) error
	DuplicateProjectFunc func(ctx context.Context, sourceID uuid.UUID) (*dto.DuplicateProjectResponse, error)
}

func (m *MockProjectService) CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectTreeResponse, error) {
	if m.CreateProjectFunc != nil {
		return m.CreateProjectFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockProjectService) GetProjectTree(ctx context.Context, projectID uuid.UUID) (*dto.ProjectTreeResponse, error) {
	if m.GetProjectTreeFunc != nil {
		return m.GetProjectTreeFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockProjectService) ListProjects(ctx context.Context) ([]*dto.ProjectResponse, error) {
	if m.ListProjectsFunc != nil {
		return m.ListProjectsFunc(ctx)
	}
	return nil, nil
}

func (m *MockProjectService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	if m.DashboardFunc != nil {
		return m.DashboardFunc(ctx)
	}
	return nil, nil
}

func (m *MockProjectService) UpdateProject(ctx context.Context, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if m.UpdateProjectFunc != nil {
		return m.UpdateProjectFunc(ctx, projectID, req)
	}
	return nil, nil
}

func (m *MockProjectService) UpdatePhase(ctx context.Context, phaseID uuid.UUID, req *dto.UpdatePhaseRequest) (*dto.PhaseResponse, error) {
	if m.UpdatePhaseFunc != nil {
		return m.UpdatePhaseFunc(ctx, phaseID, req)
	}
	return nil, nil
}

func (m *MockProjectService) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	if m.DeleteProjectFunc != nil {
		return m.DeleteProjectFunc(ctx, projectID)
	}
	return nil
}

func (m *MockProjectService) DuplicateProject(ctx context.Context, sourceID uuid.UUID) (*dto.DuplicateProjectResponse, error) {
	if m.DuplicateProjectFunc != nil {
		return m.DuplicateProjectFunc(ctx, sourceID)
	}
	return nil, nil
}

func (m *MockProjectService) ProjectCounts(ctx context.Context) (int, int, int, error) {
	return 0, 0, 0, nil
}

// MockCompletionService is a mock implementation of CompletionService
type MockCompletionService struct {
	SetTaskCompletionFunc        func(ctx context.Context, taskID uuid.UUID, completed bool) (*dto.ToggleTaskResponse, error)
	SetPhaseCompletionDirectFunc func(ctx context.Context, phaseID uuid.UUID, value int) (*dto.PhaseResponse, error)
}

func (m *MockCompletionService) SetTaskCompletion(ctx context.Context, taskID uuid.UUID, completed bool) (*dto.ToggleTaskResponse, error) {
	if m.SetTaskCompletionFunc != nil {
		return m.SetTaskCompletionFunc(ctx, taskID, completed)
	}
	return nil, nil
}

func (m *MockCompletionService) SetPhaseCompletionDirect(ctx context.Context, phaseID uuid.UUID, value int) (*dto.PhaseResponse, error) {
	if m.SetPhaseCompletionDirectFunc != nil {
		return m.SetPhaseCompletionDirectFunc(ctx, phaseID, value)
	}
	return nil, nil
}

// MockPasscodeService is a mock implementation of PasscodeService
type MockPasscodeService struct {
	VerifyFunc            func(ctx context.Context, projectID uuid.UUID, code string) (*service.VerifyResult, error)
	ResolveByPasscodeFunc func(ctx context.Context, code string) (*domain.Project, error)
}

func (m *MockPasscodeService) Verify(ctx context.Context, projectID uuid.UUID, code string) (*service.VerifyResult, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, projectID, code)
	}
	return &service.VerifyResult{}, nil
}

func (m *MockPasscodeService) ResolveByPasscode(ctx context.Context, code string) (*domain.Project, error) {
	if m.ResolveByPasscodeFunc != nil {
		return m.ResolveByPasscodeFunc(ctx, code)
	}
	return nil, nil
}

// MockDeliverableService is a mock implementation of DeliverableService
type MockDeliverableService struct {
	UpdateDeliverableFunc func(ctx context.Context, deliverableID uuid.UUID, req *dto.UpdateDeliverableRequest) (*dto.DeliverableResponse, error)
	AddCommentFunc        func(ctx context.Context, projectID, deliverableID uuid.UUID, role domain.UserType, message string) (*dto.CommentResponse, error)
	ListCommentsFunc      func(ctx context.Context, projectID, deliverableID uuid.UUID) ([]*dto.CommentResponse, error)
}

func (m *MockDeliverableService) UpdateDeliverable(ctx context.Context, deliverableID uuid.UUID, req *dto.UpdateDeliverableRequest) (*dto.DeliverableResponse, error) {
	if m.UpdateDeliverableFunc != nil {
		return m.UpdateDeliverableFunc(ctx, deliverableID, req)
	}
	return nil, nil
}

func (m *MockDeliverableService) AddComment(ctx context.Context, projectID, deliverableID uuid.UUID, role domain.UserType, message string) (*dto.CommentResponse, error) {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, projectID, deliverableID, role, message)
	}
	return nil, nil
}

func (m *MockDeliverableService) ListComments(ctx context.Context, projectID, deliverableID uuid.UUID) ([]*dto.CommentResponse, error) {
	if m.ListCommentsFunc != nil {
		return m.ListCommentsFunc(ctx, projectID, deliverableID)
	}
	return nil, nil
}

// MockFileService is a mock implementation of FileService
type MockFileService struct {
	UploadFileFunc func(ctx context.Context, projectID uuid.UUID, deliverableID *uuid.UUID, role domain.UserType, upload *service.Upload) (*dto.FileResponse, error)
	ListFilesFunc  func(ctx context.Context, projectID uuid.UUID, deliverableID *uuid.UUID) ([]*dto.FileResponse, error)
}

func (m *MockFileService) UploadFile(ctx context.Context, projectID uuid.UUID, deliverableID *uuid.UUID, role domain.UserType, upload *service.Upload) (*dto.FileResponse, error) {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, projectID, deliverableID, role, upload)
	}
	return nil, nil
}

func (m *MockFileService) ListFiles(ctx context.Context, projectID uuid.UUID, deliverableID *uuid.UUID) ([]*dto.FileResponse, error) {
	if m.ListFilesFunc != nil {
		return m.ListFilesFunc(ctx, projectID, deliverableID)
	}
	return nil, nil
}

// MockOnboardingService is a mock implementation of OnboardingService
type MockOnboardingService struct {
	SubmitFunc      func(ctx context.Context, projectID uuid.UUID, payload json.RawMessage) (*dto.SubmitOnboardingResponse, error)
	UploadAssetFunc func(ctx context.Context, projectID uuid.UUID, assetType domain.AssetType, upload *service.Upload) (*dto.OnboardingAssetResponse, error)
	StatusFunc      func(ctx context.Context, projectID uuid.UUID) (*dto.OnboardingStatusResponse, error)
	LatestFunc      func(ctx context.Context, projectID uuid.UUID) (*domain.OnboardingResponse, *domain.Project, error)
	ViewFunc        func(ctx context.Context, projectID uuid.UUID) (*dto.OnboardingViewResponse, error)
}

func (m *MockOnboardingService) Submit(ctx context.Context, projectID uuid.UUID, payload json.RawMessage) (*dto.SubmitOnboardingResponse, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, projectID, payload)
	}
	return nil, nil
}

func (m *MockOnboardingService) UploadAsset(ctx context.Context, projectID uuid.UUID, assetType domain.AssetType, upload *service.Upload) (*dto.OnboardingAssetResponse, error) {
	if m.UploadAssetFunc != nil {
		return m.UploadAssetFunc(ctx, projectID, assetType, upload)
	}
	return nil, nil
}

func (m *MockOnboardingService) Status(ctx context.Context, projectID uuid.UUID) (*dto.OnboardingStatusResponse, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockOnboardingService) Latest(ctx context.Context, projectID uuid.UUID) (*domain.OnboardingResponse, *domain.Project, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx, projectID)
	}
	return nil, nil, nil
}

func (m *MockOnboardingService) View(ctx context.Context, projectID uuid.UUID) (*dto.OnboardingViewResponse, error) {
	if m.ViewFunc != nil {
		return m.ViewFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockOnboardingService) CleanupExpiredAssets(ctx context.Context) (int, error) {
	return 0, nil
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	LoginFunc  func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	LogoutFunc func(ctx context.Context, session *auth.Session) error
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Logout(ctx context.Context, session *auth.Session) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, session)
	}
	return nil
}
