package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"client-portal-api/internal/domain"
)

// FileRepository defines the interface for file metadata access
type FileRepository interface {
	Create(ctx context.Context, file *domain.File) error
	FindByProjectID(ctx context.Context, projectID uuid.UUID, deliverableID *uuid.UUID) ([]*domain.File, error)
}

type fileRepositoryImpl struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepositoryImpl{db: db}
}

func (r *fileRepositoryImpl) Create(ctx context.Context, file *domain.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

// FindByProjectID returns the project's files newest first, optionally narrowed to one deliverable.
func (r *fileRepositoryImpl) FindByProjectID(ctx context.Context, projectID uuid.UUID, deliverableID *uuid.UUID) ([]*domain.File, error) {
	var files []*domain.File
	q := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if deliverableID != nil {
		q = q.Where("deliverable_id = ?", *deliverableID)
	}
	if err := q.Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}
