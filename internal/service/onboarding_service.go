package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"client-portal-api/internal/client"
	"client-portal-api/internal/domain"
	"client-portal-api/internal/dto"
	"client-portal-api/internal/metrics"
	"client-portal-api/internal/repository"
	"client-portal-api/internal/response"
)

// OnboardingService defines the client questionnaire
type OnboardingService interface {
	Submit(ctx context.Context, projectID uuid.UUID, payload json.RawMessage) (*dto.SubmitOnboardingResponse, error)
	UploadAsset(ctx context.Context, projectID uuid.UUID, assetType domain.AssetType, upload *Upload) (*dto.OnboardingAssetResponse, error)
	Status(ctx context.Context, projectID uuid.UUID) (*dto.OnboardingStatusResponse, error)
	Latest(ctx context.Context, projectID uuid.UUID) (*domain.OnboardingResponse, *domain.Project, error)
	View(ctx context.Context, projectID uuid.UUID) (*dto.OnboardingViewResponse, error)
	CleanupExpiredAssets(ctx context.Context) (int, error)
}

type onboardingServiceImpl struct {
	projectRepo    repository.ProjectRepository
	onboardingRepo repository.OnboardingRepository
	blobs          client.BlobStore
	bucket         string
	maxBytes       int64
	assetTTL       time.Duration
	metrics        *metrics.Metrics
	logger         *zap.Logger
	now            func() time.Time
}

// NewOnboardingService creates a new instance of OnboardingService
func NewOnboardingService(
	projectRepo repository.ProjectRepository,
	onboardingRepo repository.OnboardingRepository,
	blobs client.BlobStore,
	bucket string,
	maxBytes int64,
	assetTTL time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) OnboardingService {
	return &onboardingServiceImpl{
		projectRepo:    projectRepo,
		onboardingRepo: onboardingRepo,
		blobs:          blobs,
		bucket:         bucket,
		maxBytes:       maxBytes,
		assetTTL:       assetTTL,
		metrics:        m,
		logger:         logger,
		now:            time.Now,
	}
}

// Submit appends the response and then flags the project. The two writes are independent;
// if the flag fails the stored response remains and the client is asked to submit again.
func (s *onboardingServiceImpl) Submit(ctx context.Context, projectID uuid.UUID, payload json.RawMessage) (*dto.SubmitOnboardingResponse, error) {
	doc, err := parseOnboardingDocument(payload)
	if err != nil {
		return nil, err
	}

	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, projectLookupError(err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, response.NewValidationError("Invalid onboarding document", err.Error())
	}

	submittedAt := s.now().UTC()
	record := &domain.OnboardingResponse{
		ProjectID:     projectID,
		SchemaVersion: doc.SchemaVersion,
		ResponseData:  datatypes.JSON(data),
		SubmittedAt:   submittedAt,
	}
	if err := s.onboardingRepo.CreateResponse(ctx, record); err != nil {
		s.logger.Error("Failed to store onboarding response",
			zap.String("step", "insert_response"),
			zap.String("project_id", projectID.String()),
			zap.Error(err),
		)
		return nil, response.NewGatewayError("Failed to save onboarding response", err)
	}

	if err := s.projectRepo.MarkOnboardingCompleted(ctx, projectID, submittedAt); err != nil {
		s.logger.Error("Onboarding response stored but project not flagged",
			zap.String("step", "mark_onboarding_completed"),
			zap.String("project_id", projectID.String()),
			zap.String("response_id", record.ID.String()),
			zap.Error(err),
		)
		return nil, response.NewPartialSequenceError("mark_onboarding_completed", []string{"onboarding_response:" + record.ID.String()}, err)
	}

	confirmed, err := s.onboardingRepo.ConfirmAssetsByURL(ctx, projectID, doc.AssetURLs())
	if err != nil {
		s.logger.Warn("Failed to confirm onboarding assets",
			zap.String("project_id", projectID.String()),
			zap.String("response_id", record.ID.String()),
			zap.Error(err),
		)
	}

	s.metrics.IncrementOnboardingSubmission()
	return &dto.SubmitOnboardingResponse{
		ResponseID:      record.ID,
		SchemaVersion:   record.SchemaVersion,
		SubmittedAt:     submittedAt,
		ConfirmedAssets: confirmed,
	}, nil
}

// UploadAsset stores an asset the client attaches while filling in the form. It stays TEMP
// until a submitted response references its URL.
func (s *onboardingServiceImpl) UploadAsset(ctx context.Context, projectID uuid.UUID, assetType domain.AssetType, upload *Upload) (*dto.OnboardingAssetResponse, error) {
	if !assetType.Valid() {
		return nil, response.NewValidationError("Invalid asset type", "brand_guide, logo, font or media")
	}
	if err := upload.validate(s.maxBytes); err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, projectLookupError(err)
	}

	now := s.now()
	key := client.OnboardingAssetKey(projectID, string(assetType), upload.FileName, now)
	if err := s.blobs.Upload(ctx, s.bucket, key, upload.Body, upload.Size, upload.ContentType); err != nil {
		return nil, response.NewGatewayError("Failed to upload asset", err)
	}

	expires := now.Add(s.assetTTL)
	asset := &domain.OnboardingAsset{
		ProjectID:   projectID,
		AssetType:   assetType,
		Status:      domain.AssetStatusTemp,
		FileName:    upload.FileName,
		StorageKey:  key,
		FileURL:     s.blobs.PublicURL(s.bucket, key),
		FileSize:    upload.Size,
		ContentType: upload.ContentType,
		ExpiresAt:   &expires,
	}
	if err := s.onboardingRepo.CreateAsset(ctx, asset); err != nil {
		if delErr := s.blobs.Delete(ctx, s.bucket, key); delErr != nil {
			s.logger.Warn("Failed to remove orphaned asset", zap.String("key", key), zap.Error(delErr))
		}
		return nil, response.NewGatewayError("Failed to save asset", err)
	}

	return toAssetResponse(asset), nil
}

func (s *onboardingServiceImpl) Status(ctx context.Context, projectID uuid.UUID) (*dto.OnboardingStatusResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, projectLookupError(err)
	}
	return &dto.OnboardingStatusResponse{
		OnboardingCompleted:   project.OnboardingCompleted,
		OnboardingCompletedAt: project.OnboardingCompletedAt,
	}, nil
}

// Latest returns the most recent response together with its project.
func (s *onboardingServiceImpl) Latest(ctx context.Context, projectID uuid.UUID) (*domain.OnboardingResponse, *domain.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, nil, projectLookupError(err)
	}
	latest, err := s.onboardingRepo.FindLatestByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewNotFoundError("No onboarding response submitted", "")
		}
		return nil, nil, response.NewGatewayError("Failed to load onboarding response", err)
	}
	return latest, project, nil
}

func (s *onboardingServiceImpl) View(ctx context.Context, projectID uuid.UUID) (*dto.OnboardingViewResponse, error) {
	latest, _, err := s.Latest(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var doc domain.OnboardingDocumentV1
	if err := json.Unmarshal(latest.ResponseData, &doc); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Stored onboarding response is unreadable", err.Error())
	}

	return &dto.OnboardingViewResponse{
		ResponseID:    latest.ID,
		SchemaVersion: doc.SchemaVersion,
		SubmittedAt:   latest.SubmittedAt,
		Sections:      RenderOnboarding(&doc),
	}, nil
}

// CleanupExpiredAssets removes TEMP assets past their expiry: the blob first, then the row.
// Rows whose blob could not be deleted are kept for the next run.
func (s *onboardingServiceImpl) CleanupExpiredAssets(ctx context.Context) (int, error) {
	assets, err := s.onboardingRepo.FindExpiredTempAssets(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if len(assets) == 0 {
		return 0, nil
	}

	removed := lo.Filter(assets, func(a *domain.OnboardingAsset, _ int) bool {
		if err := s.blobs.Delete(ctx, s.bucket, a.StorageKey); err != nil {
			s.logger.Warn("Failed to delete expired onboarding asset",
				zap.String("asset_id", a.ID.String()),
				zap.String("key", a.StorageKey),
				zap.Error(err),
			)
			return false
		}
		return true
	})

	ids := lo.Map(removed, func(a *domain.OnboardingAsset, _ int) uuid.UUID { return a.ID })
	if err := s.onboardingRepo.DeleteAssets(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

func parseOnboardingDocument(payload json.RawMessage) (*domain.OnboardingDocumentV1, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil || probe == nil {
		return nil, response.NewValidationError("Onboarding response must be a JSON object", "")
	}

	var doc domain.OnboardingDocumentV1
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, response.NewValidationError("Invalid onboarding response", err.Error())
	}
	if doc.SchemaVersion != domain.OnboardingSchemaVersion {
		return nil, response.NewValidationError("Unsupported onboarding schema version", "")
	}
	return &doc, nil
}
