package metrics

import (
	"strconv"
	"strings"
	"time"
)

// unmatchedRoute labels requests that hit no registered route, keeping 404 scans out of the label set.
const unmatchedRoute = "unmatched"

var probePaths = map[string]bool{"/metrics": true, "/health": true, "/ready": true}

// RecordHTTPRequest records one request under its route template.
func (m *Metrics) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	m.safeExecute("RecordHTTPRequest", func() {
		if route == "" {
			route = unmatchedRoute
		}
		m.HTTPRequestsTotal.WithLabelValues(method, route, statusClass(statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	})
}

// RecordPanic counts a handler panic caught by the recovery middleware.
func (m *Metrics) RecordPanic(route string) {
	m.safeExecute("RecordPanic", func() {
		if route == "" {
			route = unmatchedRoute
		}
		m.HTTPPanicsTotal.WithLabelValues(route).Inc()
	})
}

// statusClass maps a status code to 2xx..5xx.
func statusClass(code int) string {
	if code < 200 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}

// ShouldSkipEndpoint reports whether path is a probe or docs path left out of request metrics and logs.
func ShouldSkipEndpoint(path string) bool {
	return probePaths[path] || strings.Contains(path, "/swagger/")
}
