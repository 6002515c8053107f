package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"client-portal-api/internal/database"
	"client-portal-api/internal/response"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewInMemory()
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func requireAppError(t *testing.T, err error, code string) *response.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*response.AppError)
	require.True(t, ok, "expected *response.AppError, got %T", err)
	require.Equal(t, code, appErr.Code)
	return appErr
}
