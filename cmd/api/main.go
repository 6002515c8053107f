// @title           Client Portal API
// @version         1.0
// @description     Project tracking portal for agency clients: phases, tasks, deliverables, files and onboarding.

// @contact.name   API Support
// @contact.email  support@client-portal.test

// @host      localhost:8080
// @BasePath  /api/portal

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin session token.

// @securityDefinitions.apikey PasscodeAuth
// @in header
// @name X-Project-Passcode

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "client-portal-api/docs" // Swagger docs import

	"client-portal-api/internal/auth"
	"client-portal-api/internal/client"
	"client-portal-api/internal/config"
	"client-portal-api/internal/database"
	"client-portal-api/internal/job"
	"client-portal-api/internal/metrics"
	"client-portal-api/internal/repository"
	"client-portal-api/internal/router"
	"client-portal-api/internal/service"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Client Portal API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("database_driver", cfg.Database.Driver),
	)

	// Initialize metrics
	m := metrics.NewWithLogger(logger)

	db, err := database.New(database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Database connected successfully")

	if err := database.AutoMigrate(db, logger); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.Info("Database migrations completed")

	if err := database.RegisterMetricsCallbacks(db, m); err != nil {
		logger.Warn("Failed to register database metrics callbacks", zap.Error(err))
	}
	stopDBStats := database.StartDBStatsCollector(db, m, cfg.Metrics.StatsInterval)
	defer close(stopDBStats)

	redisClient, err := database.NewRedis(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-process session revocation", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	s3Client, err := client.NewS3Client(&cfg.S3, m)
	if err != nil {
		logger.Fatal("Failed to initialize S3 client", zap.Error(err))
	}
	logger.Info("S3 client initialized",
		zap.String("region", cfg.S3.Region),
		zap.String("endpoint", cfg.S3.Endpoint),
		zap.String("files_bucket", cfg.S3.FilesBucket),
		zap.String("onboarding_bucket", cfg.S3.OnboardingBucket),
	)

	passcodeVerifier, err := auth.NewPasscodeVerifier(cfg.Auth.PasscodeMode)
	if err != nil {
		logger.Fatal("Invalid passcode mode", zap.Error(err))
	}
	passwordVerifier, err := auth.NewPasswordVerifier(cfg.Auth.AdminPasswordMode)
	if err != nil {
		logger.Fatal("Invalid admin password mode", zap.Error(err))
	}
	sessions := auth.NewSessionManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL, auth.NewRevocationStore(redisClient))

	buckets := service.Buckets{Files: cfg.S3.FilesBucket, Onboarding: cfg.S3.OnboardingBucket}

	// Background workers get their own service instances over the same database.
	projectRepo := repository.NewProjectRepository(db)
	projectService := service.NewProjectService(
		projectRepo,
		repository.NewPhaseRepository(db),
		repository.NewTaskRepository(db),
		repository.NewDeliverableRepository(db),
		s3Client, buckets, m, logger,
	)
	onboardingService := service.NewOnboardingService(
		projectRepo,
		repository.NewOnboardingRepository(db),
		s3Client, buckets.Onboarding, cfg.S3.MaxUploadBytes, cfg.Jobs.AssetRetention, m, logger,
	)

	collector := metrics.NewBusinessMetricsCollector(projectService, m, logger, cfg.Metrics.StatsInterval)
	collector.Start()
	defer collector.Stop()

	scheduler, err := job.NewScheduler(cfg.Jobs.CleanupSchedule, onboardingService, logger)
	if err != nil {
		logger.Fatal("Failed to schedule onboarding asset cleanup", zap.Error(err))
	}
	scheduler.Start()

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:               db,
		Redis:            redisClient,
		Logger:           logger,
		BasePath:         cfg.Server.BasePath,
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		Metrics:          m,
		Sessions:         sessions,
		PasscodeVerifier: passcodeVerifier,
		PasswordVerifier: passwordVerifier,
		Blobs:            s3Client,
		Buckets:          buckets,
		MaxUploadBytes:   cfg.S3.MaxUploadBytes,
		AssetRetention:   cfg.Jobs.AssetRetention,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Client Portal API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	scheduler.Stop(ctx)

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
