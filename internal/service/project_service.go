package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"client-portal-api/internal/auth"
	"client-portal-api/internal/client"
	"client-portal-api/internal/domain"
	"client-portal-api/internal/dto"
	"client-portal-api/internal/metrics"
	"client-portal-api/internal/repository"
	"client-portal-api/internal/response"
)

const (
	passcodeAttempts  = 5
	launchingSoonDays = 30
	lastPhaseOrder    = domain.PhaseCount - 1
	copyNameSuffix    = " (Copy)"
)

// ProjectService defines the interface for project administration
type ProjectService interface {
	CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectTreeResponse, error)
	GetProjectTree(ctx context.Context, projectID uuid.UUID) (*dto.ProjectTreeResponse, error)
	ListProjects(ctx context.Context) ([]*dto.ProjectResponse, error)
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	UpdateProject(ctx context.Context, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	UpdatePhase(ctx context.Context, phaseID uuid.UUID, req *dto.UpdatePhaseRequest) (*dto.PhaseResponse, error)
	DeleteProject(ctx context.Context, projectID uuid.UUID) error
	DuplicateProject(ctx context.Context, sourceID uuid.UUID) (*dto.DuplicateProjectResponse, error)
	ProjectCounts(ctx context.Context) (total, active, launchingSoon int, err error)
}

// Buckets names the object storage buckets a service writes to.
type Buckets struct {
	Files      string
	Onboarding string
}

type projectServiceImpl struct {
	projectRepo     repository.ProjectRepository
	phaseRepo       repository.PhaseRepository
	taskRepo        repository.TaskRepository
	deliverableRepo repository.DeliverableRepository
	blobs           client.BlobStore
	buckets         Buckets
	metrics         *metrics.Metrics
	logger          *zap.Logger
	now             func() time.Time
	newPasscode     func() (string, error)
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	phaseRepo repository.PhaseRepository,
	taskRepo repository.TaskRepository,
	deliverableRepo repository.DeliverableRepository,
	blobs client.BlobStore,
	buckets Buckets,
	m *metrics.Metrics,
	logger *zap.Logger,
) ProjectService {
	return &projectServiceImpl{
		projectRepo:     projectRepo,
		phaseRepo:       phaseRepo,
		taskRepo:        taskRepo,
		deliverableRepo: deliverableRepo,
		blobs:           blobs,
		buckets:         buckets,
		metrics:         m,
		logger:          logger,
		now:             time.Now,
		newPasscode:     auth.GeneratePasscode,
	}
}

// CreateProject stores the project with its default phase tree in one transaction.
func (s *projectServiceImpl) CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectTreeResponse, error) {
	clientName := strings.TrimSpace(req.ClientName)
	projectName := strings.TrimSpace(req.ProjectName)
	if clientName == "" || projectName == "" {
		return nil, response.NewValidationError("Client name and project name are required", "")
	}

	startDate, err := parseOptionalDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	launchDate, err := parseOptionalDate("launchDate", req.LaunchDate)
	if err != nil {
		return nil, err
	}
	if err := validateDateRange(startDate, launchDate); err != nil {
		return nil, err
	}

	var passcode string
	if req.Passcode != nil && strings.TrimSpace(*req.Passcode) != "" {
		passcode, err = s.checkPasscode(ctx, *req.Passcode, uuid.Nil)
	} else {
		passcode, err = s.generateUniquePasscode(ctx)
	}
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		ClientName:   clientName,
		ProjectName:  projectName,
		Passcode:     passcode,
		StartDate:    startDate,
		LaunchDate:   launchDate,
		CurrentPhase: 0,
		Phases:       buildDefaultPhases(),
	}

	if err := s.projectRepo.CreateWithTree(ctx, project); err != nil {
		s.logger.Error("Failed to create project",
			zap.String("step", "create_project_tree"),
			zap.String("project_name", projectName),
			zap.Error(err),
		)
		return nil, response.NewGatewayError("Failed to create project", err)
	}

	s.metrics.IncrementProjectCreated()
	s.logger.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.Int("phases", len(project.Phases)),
	)

	return toProjectTreeResponse(project), nil
}

func (s *projectServiceImpl) GetProjectTree(ctx context.Context, projectID uuid.UUID) (*dto.ProjectTreeResponse, error) {
	project, err := s.projectRepo.FindTree(ctx, projectID)
	if err != nil {
		return nil, projectLookupError(err)
	}
	return toProjectTreeResponse(project), nil
}

// ListProjects returns every project, newest first.
func (s *projectServiceImpl) ListProjects(ctx context.Context) ([]*dto.ProjectResponse, error) {
	projects, err := s.projectRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewGatewayError("Failed to list projects", err)
	}
	out := make([]*dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out, nil
}

func (s *projectServiceImpl) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	projects, err := s.projectRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewGatewayError("Failed to load dashboard", err)
	}

	resp := &dto.DashboardResponse{
		Stats:    ComputeDashboardStats(projects, s.now()),
		Projects: make([]*dto.ProjectResponse, 0, len(projects)),
	}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, toProjectResponse(p))
	}
	return resp, nil
}

// ProjectCounts feeds the project gauges.
func (s *projectServiceImpl) ProjectCounts(ctx context.Context) (int, int, int, error) {
	projects, err := s.projectRepo.FindAll(ctx)
	if err != nil {
		return 0, 0, 0, err
	}
	stats := ComputeDashboardStats(projects, s.now())
	return stats.Total, stats.Active, stats.LaunchingSoon, nil
}

// DeleteProject removes the project tree in one transaction and then its blobs on a best-effort basis.
func (s *projectServiceImpl) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	blobs, err := s.projectRepo.DeleteCascade(ctx, projectID)
	if err != nil {
		return projectLookupError(err)
	}

	s.deleteBlobs(ctx, projectID, s.buckets.Files, blobs.FileKeys)
	s.deleteBlobs(ctx, projectID, s.buckets.Onboarding, blobs.AssetKeys)

	s.logger.Info("Project deleted",
		zap.String("project_id", projectID.String()),
		zap.Int("files", len(blobs.FileKeys)),
		zap.Int("assets", len(blobs.AssetKeys)),
	)
	return nil
}

func (s *projectServiceImpl) deleteBlobs(ctx context.Context, projectID uuid.UUID, bucket string, keys []string) {
	for _, key := range keys {
		if err := s.blobs.Delete(ctx, bucket, key); err != nil {
			s.logger.Warn("Failed to delete blob of removed project",
				zap.String("project_id", projectID.String()),
				zap.String("bucket", bucket),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}

// generateUniquePasscode retries on collision with an existing project.
func (s *projectServiceImpl) generateUniquePasscode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < passcodeAttempts; attempt++ {
		code, err := s.newPasscode()
		if err != nil {
			return "", response.NewAppError(response.ErrCodeInternal, "Failed to generate passcode", err.Error())
		}
		exists, err := s.projectRepo.PasscodeExists(ctx, code, uuid.Nil)
		if err != nil {
			return "", response.NewGatewayError("Failed to check passcode", err)
		}
		if !exists {
			return code, nil
		}
		s.logger.Debug("Generated passcode already in use, retrying", zap.Int("attempt", attempt+1))
	}
	return "", response.NewAppError(response.ErrCodeInternal, "Could not generate a unique passcode", "")
}

// checkPasscode normalizes a chosen passcode and rejects blanks and duplicates.
// Chosen codes may use any characters; only generated codes follow the reduced alphabet.
func (s *projectServiceImpl) checkPasscode(ctx context.Context, raw string, excludeID uuid.UUID) (string, error) {
	code := auth.NormalizePasscode(raw)
	if code == "" {
		return "", response.NewValidationError("Passcode must not be empty", "")
	}
	exists, err := s.projectRepo.PasscodeExists(ctx, code, excludeID)
	if err != nil {
		return "", response.NewGatewayError("Failed to check passcode", err)
	}
	if exists {
		return "", response.NewAlreadyExistsError("Passcode is already used by another project", "")
	}
	return code, nil
}

// ComputeDashboardStats counts active projects and those launching within 30 days.
func ComputeDashboardStats(projects []*domain.Project, now time.Time) dto.DashboardStats {
	stats := dto.DashboardStats{Total: len(projects)}
	for _, p := range projects {
		if p.CurrentPhase < lastPhaseOrder {
			stats.Active++
		}
		if p.LaunchDate != nil {
			days := daysUntil(now, *p.LaunchDate)
			if days > 0 && days <= launchingSoonDays {
				stats.LaunchingSoon++
			}
		}
	}
	return stats
}

// daysUntil rounds the distance to target up to whole days.
func daysUntil(now, target time.Time) int {
	d := target.Sub(now)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(*value))
	if err != nil {
		return nil, response.NewValidationError("Invalid date, expected YYYY-MM-DD", field)
	}
	return &t, nil
}

func validateDateRange(start, launch *time.Time) error {
	if start != nil && launch != nil && launch.Before(*start) {
		return response.NewValidationError("Launch date must not be before start date", "")
	}
	return nil
}

func projectLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewNotFoundError("Project not found", "")
	}
	return response.NewGatewayError("Failed to load project", err)
}
