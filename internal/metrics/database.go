package metrics

import (
	"database/sql"
	"time"
)

// slowQueryThreshold marks a statement as slow for DBSlowQueriesTotal.
const slowQueryThreshold = 500 * time.Millisecond

var knownDBOperations = map[string]bool{"select": true, "insert": true, "update": true, "delete": true}

// UpdateDBStats publishes a connection pool snapshot.
func (m *Metrics) UpdateDBStats(stats sql.DBStats) {
	m.safeExecute("UpdateDBStats", func() {
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
		m.DBConnectionsMax.Set(float64(stats.MaxOpenConnections))
		// WaitCount is cumulative in sql.DBStats, so it is set rather than added.
		m.DBConnectionsWaitCount.Set(float64(stats.WaitCount))
	})
}

// RecordDBQuery records one statement issued by the gorm callbacks.
// Unknown operations collapse into "other" and a missing table into "unknown".
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		if !knownDBOperations[operation] {
			operation = "other"
		}
		if table == "" {
			table = "unknown"
		}
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
		if err != nil {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
		if duration >= slowQueryThreshold {
			m.DBSlowQueriesTotal.WithLabelValues(table).Inc()
		}
	})
}
