package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"client-portal-api/internal/auth"
	"client-portal-api/internal/dto"
	"client-portal-api/internal/repository"
	"client-portal-api/internal/response"
)

// AuthService defines admin login and logout
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, session *auth.Session) error
}

type authServiceImpl struct {
	adminRepo repository.AdminUserRepository
	verifier  auth.Verifier
	sessions  *auth.SessionManager
	logger    *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(adminRepo repository.AdminUserRepository, verifier auth.Verifier, sessions *auth.SessionManager, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		adminRepo: adminRepo,
		verifier:  verifier,
		sessions:  sessions,
		logger:    logger,
	}
}

var errInvalidCredentials = response.NewUnauthorizedError("Invalid email or password", "")

// Login checks the password with the configured Verifier and issues a session token.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, response.NewGatewayError("Failed to load admin", err)
	}

	if !s.verifier.Verify(admin.PasswordHash, req.Password) {
		s.logger.Info("Admin login rejected", zap.String("admin_id", admin.ID.String()))
		return nil, errInvalidCredentials
	}

	token, session, err := s.sessions.Issue(admin.ID, admin.Email)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create session", err.Error())
	}

	s.logger.Info("Admin logged in",
		zap.String("admin_id", admin.ID.String()),
		zap.String("token_id", session.TokenID),
	)
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Admin: dto.AdminResponse{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Name,
		},
	}, nil
}

// Logout revokes the session's token for the rest of its lifetime.
func (s *authServiceImpl) Logout(ctx context.Context, session *auth.Session) error {
	if session == nil {
		return response.NewUnauthorizedError("No active session", "")
	}
	if err := s.sessions.Revoke(ctx, session); err != nil {
		return response.NewGatewayError("Failed to revoke session", err)
	}
	s.logger.Info("Admin logged out", zap.String("admin_id", session.AdminID.String()))
	return nil
}
