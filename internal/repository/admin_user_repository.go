package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"client-portal-api/internal/domain"
)

// AdminUserRepository defines the interface for admin account access
type AdminUserRepository interface {
	Create(ctx context.Context, admin *domain.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
}

type adminUserRepositoryImpl struct {
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &adminUserRepositoryImpl{db: db}
}

// Create stores the email lower-cased so lookups are case-insensitive.
func (r *adminUserRepositoryImpl) Create(ctx context.Context, admin *domain.AdminUser) error {
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminUserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	var admin domain.AdminUser
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
