package service

import (
	"context"
	"errors"
	"strings"

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

const (
	adminCommentAuthor   = "Team"
	fallbackClientAuthor = "Client"
)

// DeliverableService defines deliverable status edits and the comment thread
type DeliverableService interface {
	UpdateDeliverable(ctx context.Context, deliverableID uuid.UUID, req *dto.UpdateDeliverableRequest) (*dto.DeliverableResponse, error)
	AddComment(ctx context.Context, projectID, deliverableID uuid.UUID, role domain.UserType, message string) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, projectID, deliverableID uuid.UUID) ([]*dto.CommentResponse, error)
}

type deliverableServiceImpl struct {
	projectRepo     repository.ProjectRepository
	deliverableRepo repository.DeliverableRepository
	commentRepo     repository.CommentRepository
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewDeliverableService creates a new instance of DeliverableService
func NewDeliverableService(
	projectRepo repository.ProjectRepository,
	deliverableRepo repository.DeliverableRepository,
	commentRepo repository.CommentRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) DeliverableService {
	return &deliverableServiceImpl{
		projectRepo:     projectRepo,
		deliverableRepo: deliverableRepo,
		commentRepo:     commentRepo,
		metrics:         m,
		logger:          logger,
	}
}

func (s *deliverableServiceImpl) UpdateDeliverable(ctx context.Context, deliverableID uuid.UUID, req *dto.UpdateDeliverableRequest) (*dto.DeliverableResponse, error) {
	deliverable, err := s.deliverableRepo.FindByID(ctx, deliverableID)
	if err != nil {
		return nil, deliverableLookupError(err)
	}

	updates := make(map[string]interface{})
	if req.Status != nil {
		status := domain.DeliverableStatus(*req.Status)
		if !status.Valid() {
			return nil, response.NewValidationError("Invalid deliverable status", "not-started, in-progress, review or delivered")
		}
		updates["status"] = status
		deliverable.Status = status
	}
	if req.FileURL != nil {
		url := strings.TrimSpace(*req.FileURL)
		if url == "" {
			updates["file_url"] = nil
			deliverable.FileURL = nil
		} else {
			updates["file_url"] = url
			deliverable.FileURL = &url
		}
	}

	if len(updates) > 0 {
		if err := s.deliverableRepo.Update(ctx, deliverable.ID, updates); err != nil {
			return nil, response.NewGatewayError("Failed to update deliverable", err)
		}
	}
	return toDeliverableResponse(deliverable), nil
}

// AddComment appends a comment. Admin comments are signed "Team"; client comments carry the client's name.
func (s *deliverableServiceImpl) AddComment(ctx context.Context, projectID, deliverableID uuid.UUID, role domain.UserType, message string) (*dto.CommentResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, response.NewValidationError("Comment message cannot be empty", "")
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, projectLookupError(err)
	}
	if _, err := s.deliverableRepo.FindInProject(ctx, projectID, deliverableID); err != nil {
		return nil, deliverableLookupError(err)
	}

	comment := &domain.Comment{
		DeliverableID: deliverableID,
		ProjectID:     projectID,
		UserType:      role,
		UserName:      commentAuthor(role, project),
		Message:       message,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, response.NewGatewayError("Failed to add comment", err)
	}

	s.metrics.IncrementCommentCreated(string(role))
	return toCommentResponse(comment), nil
}

// ListComments returns the thread oldest first.
func (s *deliverableServiceImpl) ListComments(ctx context.Context, projectID, deliverableID uuid.UUID) ([]*dto.CommentResponse, error) {
	if _, err := s.deliverableRepo.FindInProject(ctx, projectID, deliverableID); err != nil {
		return nil, deliverableLookupError(err)
	}

	comments, err := s.commentRepo.FindByDeliverableID(ctx, deliverableID)
	if err != nil {
		return nil, response.NewGatewayError("Failed to load comments", err)
	}
	return lo.Map(comments, func(c *domain.Comment, _ int) *dto.CommentResponse {
		return toCommentResponse(c)
	}), nil
}

func commentAuthor(role domain.UserType, project *domain.Project) string {
	if role == domain.UserTypeAdmin {
		return adminCommentAuthor
	}
	if name := strings.TrimSpace(project.ClientName); name != "" {
		return name
	}
	return fallbackClientAuthor
}

func deliverableLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewNotFoundError("Deliverable not found", "")
	}
	return response.NewGatewayError("Failed to load deliverable", err)
}
