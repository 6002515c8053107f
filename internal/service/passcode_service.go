package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"client-portal-api/internal/auth"
	"client-portal-api/internal/domain"
	"client-portal-api/internal/metrics"
	"client-portal-api/internal/repository"
	"client-portal-api/internal/response"
)

// Passcode verification outcomes recorded in metrics.
const (
	PasscodeResultGranted = "granted"
	PasscodeResultDenied  = "denied"
	PasscodeResultUnknown = "unknown_project"
)

// VerifyResult is the Passcode Gate's answer. Granted is never true when Found is false.
type VerifyResult struct {
	Found   bool
	Granted bool
}

// PasscodeService grants client access by passcode.
type PasscodeService interface {
	Verify(ctx context.Context, projectID uuid.UUID, code string) (*VerifyResult, error)
	ResolveByPasscode(ctx context.Context, code string) (*domain.Project, error)
}

type passcodeServiceImpl struct {
	projectRepo repository.ProjectRepository
	verifier    auth.Verifier
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewPasscodeService creates a new instance of PasscodeService
func NewPasscodeService(projectRepo repository.ProjectRepository, verifier auth.Verifier, m *metrics.Metrics, logger *zap.Logger) PasscodeService {
	return &passcodeServiceImpl{
		projectRepo: projectRepo,
		verifier:    verifier,
		metrics:     m,
		logger:      logger,
	}
}

// Verify fails closed: an unknown project is reported as not found and not granted, never as an error.
func (s *passcodeServiceImpl) Verify(ctx context.Context, projectID uuid.UUID, code string) (*VerifyResult, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.RecordPasscodeVerification(PasscodeResultUnknown)
			return &VerifyResult{}, nil
		}
		return nil, response.NewGatewayError("Failed to load project", err)
	}

	granted := s.verifier.Verify(project.Passcode, code)
	if granted {
		s.metrics.RecordPasscodeVerification(PasscodeResultGranted)
	} else {
		s.metrics.RecordPasscodeVerification(PasscodeResultDenied)
		s.logger.Info("Passcode rejected", zap.String("project_id", project.ID.String()))
	}
	return &VerifyResult{Found: true, Granted: granted}, nil
}

// ResolveByPasscode finds the project a passcode belongs to.
func (s *passcodeServiceImpl) ResolveByPasscode(ctx context.Context, code string) (*domain.Project, error) {
	normalized := auth.NormalizePasscode(code)
	if normalized == "" {
		return nil, response.NewValidationError("Passcode is required", "")
	}

	project, err := s.projectRepo.FindByPasscode(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.RecordPasscodeVerification(PasscodeResultDenied)
			return nil, response.NewUnauthorizedError("Invalid passcode", "")
		}
		return nil, response.NewGatewayError("Failed to look up passcode", err)
	}
	if !s.verifier.Verify(project.Passcode, normalized) {
		s.metrics.RecordPasscodeVerification(PasscodeResultDenied)
		return nil, response.NewUnauthorizedError("Invalid passcode", "")
	}

	s.metrics.RecordPasscodeVerification(PasscodeResultGranted)
	return project, nil
}
