package metrics

import (
	"time"
)

// RecordBlobOperation records an object storage call.
func (m *Metrics) RecordBlobOperation(bucket, operation string, duration time.Duration, err error) {
	m.safeExecute("RecordBlobOperation", func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		m.BlobOperationsTotal.WithLabelValues(bucket, operation, status).Inc()
		m.BlobOperationDuration.WithLabelValues(bucket, operation).Observe(duration.Seconds())
	})
}
