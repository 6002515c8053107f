package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"client-portal-api/internal/domain"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	CreateWithTree(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindTree(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindAll(ctx context.Context) ([]*domain.Project, error)
	FindByPasscode(ctx context.Context, passcode string) (*domain.Project, error)
	PasscodeExists(ctx context.Context, passcode string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	MarkOnboardingCompleted(ctx context.Context, id uuid.UUID, at time.Time) error
	DeleteCascade(ctx context.Context, id uuid.UUID) (*DeletedBlobs, error)
}

// DeletedBlobs lists the storage keys whose rows were removed with a project.
type DeletedBlobs struct {
	FileKeys  []string
	AssetKeys []string
}

type projectRepositoryImpl struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

// Create inserts only the project row.
func (r *projectRepositoryImpl) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// CreateWithTree inserts the project with its phases, tasks and deliverables in one transaction.
func (r *projectRepositoryImpl) CreateWithTree(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		for i := range project.Phases {
			phase := &project.Phases[i]
			phase.ProjectID = project.ID
			if err := tx.Omit(clause.Associations).Create(phase).Error; err != nil {
				return err
			}
			for j := range phase.Tasks {
				phase.Tasks[j].PhaseID = phase.ID
			}
			if len(phase.Tasks) > 0 {
				if err := tx.Create(&phase.Tasks).Error; err != nil {
					return err
				}
			}
			for j := range phase.Deliverables {
				phase.Deliverables[j].PhaseID = phase.ID
			}
			if len(phase.Deliverables) > 0 {
				if err := tx.Create(&phase.Deliverables).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *projectRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindTree loads the project with phases, tasks and deliverables in display order.
func (r *projectRepositoryImpl) FindTree(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).
		Preload("Phases", func(db *gorm.DB) *gorm.DB {
			return db.Order("phase_order ASC")
		}).
		Preload("Phases.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_order ASC")
		}).
		Preload("Phases.Deliverables", func(db *gorm.DB) *gorm.DB {
			return db.Order("deliverable_order ASC").Order("created_at ASC")
		}).
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindAll returns every project, newest first.
func (r *projectRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Project, error) {
	var projects []*domain.Project
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// FindByPasscode matches the passcode case-insensitively.
func (r *projectRepositoryImpl) FindByPasscode(ctx context.Context, passcode string) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).
		Where("UPPER(passcode) = UPPER(?)", passcode).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepositoryImpl) PasscodeExists(ctx context.Context, passcode string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&domain.Project{}).Where("UPPER(passcode) = UPPER(?)", passcode)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *projectRepositoryImpl) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&domain.Project{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *projectRepositoryImpl) MarkOnboardingCompleted(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.Update(ctx, id, map[string]interface{}{
		"onboarding_completed":    true,
		"onboarding_completed_at": at,
	})
}

type cascadeStep struct {
	model interface{}
	query string
	arg   interface{}
}

// DeleteCascade removes the project and every row beneath it in one transaction.
func (r *projectRepositoryImpl) DeleteCascade(ctx context.Context, id uuid.UUID) (*DeletedBlobs, error) {
	blobs := &DeletedBlobs{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project domain.Project
		if err := tx.Select("id").First(&project, "id = ?", id).Error; err != nil {
			return err
		}

		var phaseIDs []uuid.UUID
		if err := tx.Model(&domain.Phase{}).Where("project_id = ?", id).Pluck("id", &phaseIDs).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.File{}).Where("project_id = ?", id).Pluck("storage_key", &blobs.FileKeys).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.OnboardingAsset{}).Where("project_id = ?", id).Pluck("storage_key", &blobs.AssetKeys).Error; err != nil {
			return err
		}

		steps := []cascadeStep{
			{&domain.File{}, "project_id = ?", id},
			{&domain.Comment{}, "project_id = ?", id},
			{&domain.OnboardingResponse{}, "project_id = ?", id},
			{&domain.OnboardingAsset{}, "project_id = ?", id},
		}
		if len(phaseIDs) > 0 {
			steps = append(steps,
				cascadeStep{&domain.Deliverable{}, "phase_id IN ?", phaseIDs},
				cascadeStep{&domain.Task{}, "phase_id IN ?", phaseIDs},
			)
		}
		steps = append(steps,
			cascadeStep{&domain.Phase{}, "project_id = ?", id},
			cascadeStep{&domain.Project{}, "id = ?", id},
		)

		for _, s := range steps {
			if err := tx.Where(s.query, s.arg).Delete(s.model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blobs, nil
}
