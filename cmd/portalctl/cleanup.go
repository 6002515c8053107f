package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"client-portal-api/internal/client"
	"client-portal-api/internal/database"
	"client-portal-api/internal/repository"
	"client-portal-api/internal/service"
)

func newCleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired onboarding uploads now instead of waiting for the schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCleanup(cmd)
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "log the cleanup pass")
	return cmd
}

func runCleanup(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	blobs, err := client.NewS3Client(&cfg.S3, nil)
	if err != nil {
		return fmt.Errorf("connect to object storage: %w", err)
	}

	logger := newLogger(cmd)
	onboarding := service.NewOnboardingService(
		repository.NewProjectRepository(db),
		repository.NewOnboardingRepository(db),
		blobs, cfg.S3.OnboardingBucket, cfg.S3.MaxUploadBytes, cfg.Jobs.AssetRetention, nil, logger,
	)

	removed, err := onboarding.CleanupExpiredAssets(cmd.Context())
	if err != nil {
		return fmt.Errorf("cleanup onboarding assets: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired onboarding assets\n", removed)
	return nil
}
