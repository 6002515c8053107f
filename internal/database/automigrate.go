package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"client-portal-api/internal/domain"
)

// Models lists every persisted entity in migration order.
func Models() []interface{} {
	return []interface{}{
		&domain.Project{},
		&domain.Phase{},
		&domain.Task{},
		&domain.Deliverable{},
		&domain.Comment{},
		&domain.File{},
		&domain.OnboardingResponse{},
		&domain.OnboardingAsset{},
		&domain.AdminUser{},
	}
}

// AutoMigrate creates or updates every table, logging each one.
func AutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()

	for _, model := range Models() {
		existed := migrator.HasTable(model)
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
		logger.Debug("Migrated table",
			zap.String("model", fmt.Sprintf("%T", model)),
			zap.Bool("was_existing", existed),
		)
	}

	logger.Info("Auto-migration completed", zap.Int("tables", len(Models())))
	return nil
}
