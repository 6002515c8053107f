package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"client-portal-api/internal/auth"
	"client-portal-api/internal/domain"
	"client-portal-api/internal/dto"
	"client-portal-api/internal/response"
)

func newAuthServiceForTest(t *testing.T, admin *domain.AdminUser, verifier auth.Verifier) (AuthService, *auth.SessionManager) {
	t.Helper()
	repo := &MockAdminUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.AdminUser, error) {
			if admin != nil && email == admin.Email {
				return admin, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	sessions := auth.NewSessionManager("test-secret", time.Hour, auth.NewMemoryRevocationStore())
	return NewAuthService(repo, verifier, sessions, zap.NewNop()), sessions
}

func TestAuthService_Login(t *testing.T) {
	admin := &domain.AdminUser{BaseModel: domain.BaseModel{ID: uuid.New()}, Email: "team@agency.test", PasswordHash: "hunter2", Name: "Team"}
	svc, sessions := newAuthServiceForTest(t, admin, auth.PlaintextVerifier{})
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "  Team@Agency.TEST ", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, resp.Admin.ID)
	assert.NotEmpty(t, resp.Token)

	session, err := sessions.Parse(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, session.AdminID)
	assert.WithinDuration(t, session.IssuedAt.Add(time.Hour), resp.ExpiresAt, time.Second)
}

func TestAuthService_LoginRejects(t *testing.T) {
	admin := &domain.AdminUser{BaseModel: domain.BaseModel{ID: uuid.New()}, Email: "team@agency.test", PasswordHash: "hunter2"}

	tests := []struct {
		name string
		req  *dto.LoginRequest
	}{
		{name: "wrong password", req: &dto.LoginRequest{Email: "team@agency.test", Password: "Hunter2"}},
		{name: "unknown email", req: &dto.LoginRequest{Email: "other@agency.test", Password: "hunter2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newAuthServiceForTest(t, admin, auth.PlaintextVerifier{})
			_, err := svc.Login(context.Background(), tt.req)
			appErr := requireAppError(t, err, response.ErrCodeUnauthorized)
			assert.Equal(t, "Invalid email or password", appErr.Message)
		})
	}
}

func TestAuthService_LoginBcrypt(t *testing.T) {
	hash, err := auth.HashPassword("bcrypt", "hunter2")
	require.NoError(t, err)
	admin := &domain.AdminUser{BaseModel: domain.BaseModel{ID: uuid.New()}, Email: "team@agency.test", PasswordHash: hash}
	svc, _ := newAuthServiceForTest(t, admin, auth.BcryptVerifier{})

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "team@agency.test", Password: "hunter2"})
	require.NoError(t, err)
}

func TestAuthService_LoginStoreFailure(t *testing.T) {
	repo := &MockAdminUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.AdminUser, error) { return nil, errors.New("db down") },
	}
	sessions := auth.NewSessionManager("test-secret", time.Hour, auth.NewMemoryRevocationStore())
	svc := NewAuthService(repo, auth.PlaintextVerifier{}, sessions, zap.NewNop())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "a@b.test", Password: "x"})
	requireAppError(t, err, response.ErrCodeGateway)
}

func TestAuthService_Logout(t *testing.T) {
	admin := &domain.AdminUser{BaseModel: domain.BaseModel{ID: uuid.New()}, Email: "team@agency.test", PasswordHash: "hunter2"}
	svc, sessions := newAuthServiceForTest(t, admin, auth.PlaintextVerifier{})
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "team@agency.test", Password: "hunter2"})
	require.NoError(t, err)
	session, err := sessions.Parse(ctx, resp.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session))
	_, err = sessions.Parse(ctx, resp.Token)
	assert.ErrorIs(t, err, auth.ErrSessionRevoked)

	requireAppError(t, svc.Logout(ctx, nil), response.ErrCodeUnauthorized)
}
