package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"client-portal-api/internal/domain"
)

// PhaseRepository defines the interface for phase data access
type PhaseRepository interface {
	Create(ctx context.Context, phase *domain.Phase) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Phase, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Phase, error)
	UpdateCompletion(ctx context.Context, id uuid.UUID, completion int) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

type phaseRepositoryImpl struct {
	db *gorm.DB
}

func NewPhaseRepository(db *gorm.DB) PhaseRepository {
	return &phaseRepositoryImpl{db: db}
}

func (r *phaseRepositoryImpl) Create(ctx context.Context, phase *domain.Phase) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(phase).Error
}

func (r *phaseRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Phase, error) {
	var phase domain.Phase
	if err := r.db.WithContext(ctx).First(&phase, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &phase, nil
}

// FindByProjectID returns the project's phases ordered by phase_order.
func (r *phaseRepositoryImpl) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Phase, error) {
	var phases []*domain.Phase
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("phase_order ASC").
		Find(&phases).Error; err != nil {
		return nil, err
	}
	return phases, nil
}

func (r *phaseRepositoryImpl) UpdateCompletion(ctx context.Context, id uuid.UUID, completion int) error {
	return r.Update(ctx, id, map[string]interface{}{"completion": completion})
}

func (r *phaseRepositoryImpl) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&domain.Phase{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
