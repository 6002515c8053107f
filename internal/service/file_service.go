package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"client-portal-api/internal/client"
	"client-portal-api/internal/domain"
	"client-portal-api/internal/dto"
	"client-portal-api/internal/repository"
	"client-portal-api/internal/response"
)

// Upload is a file received from a multipart form.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (u *Upload) validate(maxBytes int64) error {
	if strings.TrimSpace(u.FileName) == "" {
		return response.NewValidationError("File name is required", "")
	}
	if u.Size <= 0 {
		return response.NewValidationError("File is empty", "")
	}
	if u.Size > maxBytes {
		return response.NewValidationError("File is too large", fmt.Sprintf("max %d bytes", maxBytes))
	}
	if u.ContentType == "" {
		u.ContentType = "application/octet-stream"
	}
	return nil
}

// FileService defines project file attachments
type FileService interface {
	UploadFile(ctx context.Context, projectID uuid.UUID, deliverableID *uuid.UUID, role domain.UserType, upload *Upload) (*dto.FileResponse, error)
	ListFiles(ctx context.Context, projectID uuid.UUID, deliverableID *uuid.UUID) ([]*dto.FileResponse, error)
}

type fileServiceImpl struct {
	projectRepo     repository.ProjectRepository
	deliverableRepo repository.DeliverableRepository
	fileRepo        repository.FileRepository
	blobs           client.BlobStore
	bucket          string
	maxBytes        int64
	logger          *zap.Logger
	now             func() time.Time
}

// NewFileService creates a new instance of FileService
func NewFileService(
	projectRepo repository.ProjectRepository,
	deliverableRepo repository.DeliverableRepository,
	fileRepo repository.FileRepository,
	blobs client.BlobStore,
	bucket string,
	maxBytes int64,
	logger *zap.Logger,
) FileService {
	return &fileServiceImpl{
		projectRepo:     projectRepo,
		deliverableRepo: deliverableRepo,
		fileRepo:        fileRepo,
		blobs:           blobs,
		bucket:          bucket,
		maxBytes:        maxBytes,
		logger:          logger,
		now:             time.Now,
	}
}

// UploadFile stores the blob and then its metadata row.
func (s *fileServiceImpl) UploadFile(ctx context.Context, projectID uuid.UUID, deliverableID *uuid.UUID, role domain.UserType, upload *Upload) (*dto.FileResponse, error) {
	if err := upload.validate(s.maxBytes); err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, projectLookupError(err)
	}
	if deliverableID != nil {
		if _, err := s.deliverableRepo.FindInProject(ctx, projectID, *deliverableID); err != nil {
			return nil, deliverableLookupError(err)
		}
	}

	key := client.ProjectFileKey(projectID, upload.FileName, s.now())
	if err := s.blobs.Upload(ctx, s.bucket, key, upload.Body, upload.Size, upload.ContentType); err != nil {
		s.logger.Error("Failed to upload project file",
			zap.String("project_id", projectID.String()),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, response.NewGatewayError("Failed to upload file", err)
	}

	file := &domain.File{
		ProjectID:     projectID,
		DeliverableID: deliverableID,
		FileName:      filepath.Base(upload.FileName),
		FileURL:       s.blobs.PublicURL(s.bucket, key),
		StorageKey:    key,
		FileType:      upload.ContentType,
		FileSize:      upload.Size,
		UploadedBy:    role,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		s.logger.Error("Failed to record uploaded file",
			zap.String("step", "create_file_row"),
			zap.String("project_id", projectID.String()),
			zap.String("key", key),
			zap.Error(err),
		)
		if delErr := s.blobs.Delete(ctx, s.bucket, key); delErr != nil {
			s.logger.Warn("Failed to remove orphaned upload", zap.String("key", key), zap.Error(delErr))
		}
		return nil, response.NewGatewayError("Failed to save file", err)
	}

	return toFileResponse(file), nil
}

// ListFiles returns the project's files newest first, optionally for one deliverable.
func (s *fileServiceImpl) ListFiles(ctx context.Context, projectID uuid.UUID, deliverableID *uuid.UUID) ([]*dto.FileResponse, error) {
	files, err := s.fileRepo.FindByProjectID(ctx, projectID, deliverableID)
	if err != nil {
		return nil, response.NewGatewayError("Failed to load files", err)
	}
	return lo.Map(files, func(f *domain.File, _ int) *dto.FileResponse {
		return toFileResponse(f)
	}), nil
}
