package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"client-portal-api/internal/domain"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	CreateBatch(ctx context.Context, tasks []*domain.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByPhaseID(ctx context.Context, phaseID uuid.UUID) ([]*domain.Task, error)
	UpdateCompleted(ctx context.Context, id uuid.UUID, completed bool) error
}

type taskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepositoryImpl{db: db}
}

// CreateBatch inserts all tasks in a single statement.
func (r *taskRepositoryImpl) CreateBatch(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tasks).Error
}

func (r *taskRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepositoryImpl) FindByPhaseID(ctx context.Context, phaseID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Where("phase_id = ?", phaseID).
		Order("task_order ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepositoryImpl) UpdateCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	result := r.db.WithContext(ctx).Model(&domain.Task{}).Where("id = ?", id).Update("completed", completed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
