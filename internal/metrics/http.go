package metrics

import (
	"strings"
	"time"
)

// RecordHTTPRequest records one served request. endpoint should be the
// route pattern, not the raw path.
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.safeExecute("RecordHTTPRequest", func() {
		m.HTTPRequestsTotal.WithLabelValues(method, endpoint, categorizeStatus(statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	})
}

func categorizeStatus(code int) string {
	if code < 200 || code >= 600 {
		return "unknown"
	}
	return string(rune('0'+code/100)) + "xx"
}

var infraSuffixes = []string{"/metrics", "/health", "/ready"}

// ShouldSkipEndpoint reports whether path is an infra route excluded from
// metrics, either at the root or under the API base path
func ShouldSkipEndpoint(path string) bool {
	for _, suffix := range infraSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return strings.Contains(path, "/swagger/")
}
