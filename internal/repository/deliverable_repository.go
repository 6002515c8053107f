package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"client-portal-api/internal/domain"
)

// DeliverableRepository defines the interface for deliverable data access
type DeliverableRepository interface {
	CreateBatch(ctx context.Context, deliverables []*domain.Deliverable) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Deliverable, error)
	FindByPhaseID(ctx context.Context, phaseID uuid.UUID) ([]*domain.Deliverable, error)
	FindInProject(ctx context.Context, projectID, deliverableID uuid.UUID) (*domain.Deliverable, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

type deliverableRepositoryImpl struct {
	db *gorm.DB
}

func NewDeliverableRepository(db *gorm.DB) DeliverableRepository {
	return &deliverableRepositoryImpl{db: db}
}

func (r *deliverableRepositoryImpl) CreateBatch(ctx context.Context, deliverables []*domain.Deliverable) error {
	if len(deliverables) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&deliverables).Error
}

func (r *deliverableRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Deliverable, error) {
	var deliverable domain.Deliverable
	if err := r.db.WithContext(ctx).First(&deliverable, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &deliverable, nil
}

func (r *deliverableRepositoryImpl) FindByPhaseID(ctx context.Context, phaseID uuid.UUID) ([]*domain.Deliverable, error) {
	var deliverables []*domain.Deliverable
	if err := r.db.WithContext(ctx).
		Where("phase_id = ?", phaseID).
		Order("deliverable_order ASC").
		Order("created_at ASC").
		Find(&deliverables).Error; err != nil {
		return nil, err
	}
	return deliverables, nil
}

// FindInProject returns the deliverable only when its phase belongs to projectID.
func (r *deliverableRepositoryImpl) FindInProject(ctx context.Context, projectID, deliverableID uuid.UUID) (*domain.Deliverable, error) {
	var deliverable domain.Deliverable
	if err := r.db.WithContext(ctx).
		Joins("JOIN phases ON phases.id = deliverables.phase_id").
		Where("deliverables.id = ? AND phases.project_id = ?", deliverableID, projectID).
		First(&deliverable).Error; err != nil {
		return nil, err
	}
	return &deliverable, nil
}

func (r *deliverableRepositoryImpl) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&domain.Deliverable{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
