package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"client-portal-api/internal/domain"
)

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByDeliverableID(ctx context.Context, deliverableID uuid.UUID) ([]*domain.Comment, error)
}

type commentRepositoryImpl struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindByDeliverableID returns the thread oldest first.
func (r *commentRepositoryImpl) FindByDeliverableID(ctx context.Context, deliverableID uuid.UUID) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	if err := r.db.WithContext(ctx).
		Where("deliverable_id = ?", deliverableID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
