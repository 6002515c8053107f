package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ProjectStatsSource supplies the dashboard counters published as gauges.
type ProjectStatsSource interface {
	ProjectCounts(ctx context.Context) (total, active, launchingSoon int, err error)
}

// BusinessMetricsCollector refreshes the project gauges periodically
type BusinessMetricsCollector struct {
	source   ProjectStatsSource
	metrics  *Metrics
	logger   *zap.Logger
	interval time.Duration
	done     chan struct{}
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(source ProjectStatsSource, metrics *Metrics, logger *zap.Logger, interval time.Duration) *BusinessMetricsCollector {
	if interval <= 0 {
		interval = time.Minute
	}
	return &BusinessMetricsCollector{
		source:   source,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	close(c.done)
}

func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	total, active, soon, err := c.source.ProjectCounts(ctx)
	if err != nil {
		c.logger.Error("Failed to collect project counts", zap.Error(err))
		return
	}
	c.metrics.SetProjectGauges(total, active, soon)
}
