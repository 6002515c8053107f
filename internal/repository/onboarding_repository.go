package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"client-portal-api/internal/domain"
)

// OnboardingRepository stores questionnaire responses and the assets uploaded for them.
type OnboardingRepository interface {
	CreateResponse(ctx context.Context, response *domain.OnboardingResponse) error
	FindLatestByProjectID(ctx context.Context, projectID uuid.UUID) (*domain.OnboardingResponse, error)
	CountByProjectID(ctx context.Context, projectID uuid.UUID) (int64, error)

	CreateAsset(ctx context.Context, asset *domain.OnboardingAsset) error
	ConfirmAssetsByURL(ctx context.Context, projectID uuid.UUID, urls []string) (int64, error)
	FindExpiredTempAssets(ctx context.Context, now time.Time) ([]*domain.OnboardingAsset, error)
	DeleteAssets(ctx context.Context, ids []uuid.UUID) error
}

type onboardingRepositoryImpl struct {
	db *gorm.DB
}

func NewOnboardingRepository(db *gorm.DB) OnboardingRepository {
	return &onboardingRepositoryImpl{db: db}
}

func (r *onboardingRepositoryImpl) CreateResponse(ctx context.Context, response *domain.OnboardingResponse) error {
	return r.db.WithContext(ctx).Create(response).Error
}

// FindLatestByProjectID returns the most recently submitted response.
func (r *onboardingRepositoryImpl) FindLatestByProjectID(ctx context.Context, projectID uuid.UUID) (*domain.OnboardingResponse, error) {
	var response domain.OnboardingResponse
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("submitted_at DESC").
		First(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *onboardingRepositoryImpl) CountByProjectID(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.OnboardingResponse{}).
		Where("project_id = ?", projectID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *onboardingRepositoryImpl) CreateAsset(ctx context.Context, asset *domain.OnboardingAsset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

// ConfirmAssetsByURL marks the project's TEMP assets referenced by urls as confirmed.
func (r *onboardingRepositoryImpl) ConfirmAssetsByURL(ctx context.Context, projectID uuid.UUID, urls []string) (int64, error) {
	if len(urls) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&domain.OnboardingAsset{}).
		Where("project_id = ? AND status = ? AND file_url IN ?", projectID, domain.AssetStatusTemp, urls).
		Updates(map[string]interface{}{
			"status":     domain.AssetStatusConfirmed,
			"expires_at": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *onboardingRepositoryImpl) FindExpiredTempAssets(ctx context.Context, now time.Time) ([]*domain.OnboardingAsset, error) {
	var assets []*domain.OnboardingAsset
	if err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", domain.AssetStatusTemp, now).
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *onboardingRepositoryImpl) DeleteAssets(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.OnboardingAsset{}).Error
}
