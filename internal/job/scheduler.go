package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AssetCleaner removes onboarding uploads that were never referenced by a submission.
type AssetCleaner interface {
	CleanupExpiredAssets(ctx context.Context) (int, error)
}

// cronParser accepts an optional seconds field and descriptors such as "@hourly".
var cronParser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Scheduler runs the onboarding asset cleanup on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	cleaner AssetCleaner
	logger  *zap.Logger
	timeout time.Duration
}

// NewScheduler registers the cleanup under spec. Overlapping runs are skipped.
func NewScheduler(spec string, cleaner AssetCleaner, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cleaner: cleaner,
		logger:  logger,
		timeout: 5 * time.Minute,
	}
	s.cron = cron.New(
		cron.WithParser(cronParser),
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := s.cron.AddFunc(spec, func() { s.RunCleanup(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Cleanup scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop prevents new runs and waits for a running cleanup to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Cleanup scheduler stopped before the running job finished")
	}
}

// RunCleanup performs one cleanup pass and returns the number of assets removed.
func (s *Scheduler) RunCleanup(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	removed, err := s.cleaner.CleanupExpiredAssets(ctx)
	if err != nil {
		s.logger.Error("Onboarding asset cleanup failed", zap.Error(err))
		return 0
	}
	if removed > 0 {
		s.logger.Info("Onboarding asset cleanup finished",
			zap.Int("removed", removed),
			zap.Duration("duration", time.Since(start)),
		)
	}
	return removed
}
