package metrics

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// RecordExternalAPICall records a call to a downstream service. A non-nil
// err or a status of 400 and above also counts as an error.
func (m *Metrics) RecordExternalAPICall(endpoint, method string, statusCode int, duration time.Duration, err error) {
	m.safeExecute("RecordExternalAPICall", func() {
		endpoint = normalizeEndpoint(endpoint)
		status := strconv.Itoa(statusCode)

		m.ExternalAPIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
		m.ExternalAPIRequestDuration.WithLabelValues(endpoint, status).Observe(duration.Seconds())

		if err != nil || statusCode >= 400 {
			m.ExternalAPIErrors.WithLabelValues(endpoint, getErrorType(statusCode, err)).Inc()
		}
	})
}

// normalizeEndpoint replaces ids with {id}:
// /api/internal/orders/123e4567-e89b-12d3-a456-426614174000 -> /api/internal/orders/{id}
func normalizeEndpoint(endpoint string) string {
	return uuidPattern.ReplaceAllString(endpoint, "{id}")
}

var statusErrorTypes = map[int]string{
	400: "bad_request",
	401: "unauthorized",
	403: "forbidden",
	404: "not_found",
	408: "request_timeout",
	409: "conflict",
	429: "too_many_requests",
	500: "internal_server_error",
	502: "bad_gateway",
	503: "service_unavailable",
	504: "gateway_timeout",
}

var transportErrorTypes = []struct {
	needle    string
	errorType string
}{
	{"connection refused", "connection_refused"},
	{"no such host", "dns_error"},
	{"timeout", "timeout"},
	{"deadline exceeded", "timeout"},
	{"EOF", "connection_reset"},
	{"connection reset", "connection_reset"},
	{"certificate", "tls_error"},
	{"TLS", "tls_error"},
}

func getErrorType(statusCode int, err error) string {
	if t, ok := statusErrorTypes[statusCode]; ok {
		return t
	}
	switch {
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode >= 500 && statusCode < 600:
		return "server_error"
	case err == nil:
		return "unknown"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}

	msg := err.Error()
	for _, t := range transportErrorTypes {
		if strings.Contains(msg, t.needle) {
			return t.errorType
		}
	}
	return "network_error"
}
