package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"client-portal-api/internal/auth"
	"client-portal-api/internal/client"
	"client-portal-api/internal/handler"
	"client-portal-api/internal/metrics"
	"client-portal-api/internal/middleware"
	"client-portal-api/internal/repository"
	"client-portal-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *zap.Logger

	BasePath       string
	AllowedOrigins []string

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	Sessions         *auth.SessionManager
	PasscodeVerifier auth.Verifier
	PasswordVerifier auth.Verifier

	Blobs          client.BlobStore
	Buckets        service.Buckets
	MaxUploadBytes int64
	AssetRetention time.Duration
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger, cfg.Metrics))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Prometheus metrics endpoint
	metricsHandler := gin.WrapH(promhttp.Handler())
	if cfg.Gatherer != nil {
		metricsHandler = gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	r.GET("/metrics", metricsHandler)

	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)

	// Initialize repositories
	projectRepo := repository.NewProjectRepository(cfg.DB)
	phaseRepo := repository.NewPhaseRepository(cfg.DB)
	taskRepo := repository.NewTaskRepository(cfg.DB)
	deliverableRepo := repository.NewDeliverableRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	fileRepo := repository.NewFileRepository(cfg.DB)
	onboardingRepo := repository.NewOnboardingRepository(cfg.DB)
	adminRepo := repository.NewAdminUserRepository(cfg.DB)

	// Initialize services
	projectService := service.NewProjectService(projectRepo, phaseRepo, taskRepo, deliverableRepo, cfg.Blobs, cfg.Buckets, cfg.Metrics, cfg.Logger)
	completionService := service.NewCompletionService(taskRepo, phaseRepo, cfg.Metrics, cfg.Logger)
	passcodeService := service.NewPasscodeService(projectRepo, cfg.PasscodeVerifier, cfg.Metrics, cfg.Logger)
	deliverableService := service.NewDeliverableService(projectRepo, deliverableRepo, commentRepo, cfg.Metrics, cfg.Logger)
	fileService := service.NewFileService(projectRepo, deliverableRepo, fileRepo, cfg.Blobs, cfg.Buckets.Files, cfg.MaxUploadBytes, cfg.Logger)
	onboardingService := service.NewOnboardingService(projectRepo, onboardingRepo, cfg.Blobs, cfg.Buckets.Onboarding, cfg.MaxUploadBytes, cfg.AssetRetention, cfg.Metrics, cfg.Logger)
	authService := service.NewAuthService(adminRepo, cfg.PasswordVerifier, cfg.Sessions, cfg.Logger)

	// Initialize handlers
	projectHandler := handler.NewProjectHandler(projectService)
	completionHandler := handler.NewCompletionHandler(completionService)
	accessHandler := handler.NewAccessHandler(passcodeService)
	deliverableHandler := handler.NewDeliverableHandler(deliverableService)
	fileHandler := handler.NewFileHandler(fileService)
	onboardingHandler := handler.NewOnboardingHandler(onboardingService)
	authHandler := handler.NewAuthHandler(authService)

	api := r.Group(cfg.BasePath)
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ============================================================
	// Public routes
	// ============================================================
	api.POST("/verify-passcode", accessHandler.VerifyPasscode)
	api.POST("/access", accessHandler.Access)
	api.POST("/admin/login", authHandler.Login)

	// ============================================================
	// Admin routes (bearer session)
	// ============================================================
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg.Sessions))
	{
		admin.POST("/logout", authHandler.Logout)
		admin.GET("/dashboard", projectHandler.Dashboard)

		projects := admin.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:projectId", projectHandler.GetProject)
			projects.PATCH("/:projectId", projectHandler.UpdateProject)
			projects.DELETE("/:projectId", projectHandler.DeleteProject)
			projects.POST("/:projectId/duplicate", projectHandler.DuplicateProject)

			projects.GET("/:projectId/deliverables/:deliverableId/comments", deliverableHandler.ListComments)
			projects.POST("/:projectId/deliverables/:deliverableId/comments", deliverableHandler.AddComment)

			projects.GET("/:projectId/files", fileHandler.ListFiles)
			projects.POST("/:projectId/files", fileHandler.UploadFile)

			projects.GET("/:projectId/onboarding", onboardingHandler.View)
			projects.GET("/:projectId/onboarding/download", onboardingHandler.Download)
		}

		admin.PATCH("/tasks/:taskId", completionHandler.ToggleTask)
		admin.PATCH("/phases/:phaseId", projectHandler.UpdatePhase)
		admin.PUT("/phases/:phaseId/completion", completionHandler.SetPhaseCompletion)
		admin.PATCH("/deliverables/:deliverableId", deliverableHandler.UpdateDeliverable)
	}

	// ============================================================
	// Client routes (project passcode)
	// ============================================================
	clientProject := api.Group("/client/projects/:projectId")
	clientProject.Use(middleware.ClientAccess(passcodeService, cfg.Logger))
	{
		clientProject.GET("", projectHandler.GetClientProject)

		clientProject.GET("/deliverables/:deliverableId/comments", deliverableHandler.ListComments)
		clientProject.POST("/deliverables/:deliverableId/comments", deliverableHandler.AddComment)

		clientProject.GET("/files", fileHandler.ListFiles)
		clientProject.POST("/files", fileHandler.UploadFile)

		clientProject.GET("/onboarding/status", onboardingHandler.Status)
		clientProject.POST("/onboarding", onboardingHandler.Submit)
		clientProject.POST("/onboarding/assets", onboardingHandler.UploadAsset)
	}

	return r
}
