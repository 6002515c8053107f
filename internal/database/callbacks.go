package database

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats sql.DBStats)
}

const startTimeKey = "metrics:start_time"

// RegisterMetricsCallbacks times every query, create, update and delete issued through db.
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(startTimeKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			start, ok := tx.InstanceGet(startTimeKey)
			if !ok {
				return
			}
			recorder.RecordDBQuery(operation, tx.Statement.Table, time.Since(start.(time.Time)), tx.Error)
		}
	}

	cb := db.Callback()
	steps := []struct {
		register func(name string, fn func(*gorm.DB)) error
		name     string
		fn       func(*gorm.DB)
	}{
		{cb.Query().Before("gorm:query").Register, "metrics:query_before", before},
		{cb.Query().After("gorm:query").Register, "metrics:query_after", after("select")},
		{cb.Create().Before("gorm:create").Register, "metrics:create_before", before},
		{cb.Create().After("gorm:create").Register, "metrics:create_after", after("insert")},
		{cb.Update().Before("gorm:update").Register, "metrics:update_before", before},
		{cb.Update().After("gorm:update").Register, "metrics:update_after", after("update")},
		{cb.Delete().Before("gorm:delete").Register, "metrics:delete_before", before},
		{cb.Delete().After("gorm:delete").Register, "metrics:delete_after", after("delete")},
	}
	for _, s := range steps {
		if err := s.register(s.name, s.fn); err != nil {
			return err
		}
	}
	return nil
}

// StartDBStatsCollector publishes connection pool stats until the returned channel is closed.
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder, interval time.Duration) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
