package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func getTestMetrics() (*Metrics, *prometheus.Registry) {
	registry := prometheus.NewRegistry()
	return NewWithRegistry(registry, zap.NewNop()), registry
}

func TestMetricsInitialization(t *testing.T) {
	m, _ := getTestMetrics()

	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.DBQueryDuration)
	assert.NotNil(t, m.DBQueryErrors)
	assert.NotNil(t, m.ExternalAPIRequestsTotal)
	assert.NotNil(t, m.TemplatesTotal)
	assert.NotNil(t, m.SubmissionsTotal)
	assert.NotNil(t, m.TemplateCreatedTotal)
	assert.NotNil(t, m.SubmissionCreatedTotal)
	assert.NotNil(t, m.SequenceEventsTotal)
	assert.NotNil(t, m.FormValidationFailures)
	assert.NotNil(t, m.UploadsCleanedUpTotal)
}

// 모든 메트릭은 form_service_ 접두사의 snake_case 이름과 help 를 가진다
func TestMetricNamingAndHelp(t *testing.T) {
	m, registry := getTestMetrics()

	// vectors only appear in Gather once a child exists
	m.RecordHTTPRequest("GET", "/api/form-templates", 200, 0)
	m.RecordDBQuery("select", "form_templates", 0, assert.AnError)
	m.RecordExternalAPICall("order-service", "POST", 500, 0, nil)
	m.RecordSequenceEvent(SequenceStarted)
	m.RecordValidationFailure("submission")

	families, err := registry.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	snake := regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	for _, mf := range families {
		assert.True(t, strings.HasPrefix(mf.GetName(), namespace+"_"), mf.GetName())
		assert.Regexp(t, snake, mf.GetName())
		assert.NotEmpty(t, strings.TrimSpace(mf.GetHelp()), mf.GetName())
	}
}

// 누적값인 대기 횟수는 차이만 카운터에 더해진다
func TestUpdateDBStats_WaitDelta(t *testing.T) {
	m, _ := getTestMetrics()

	m.UpdateDBStats(sql.DBStats{OpenConnections: 3, WaitCount: 4})
	m.UpdateDBStats(sql.DBStats{OpenConnections: 5, WaitCount: 6})
	assert.Equal(t, 6.0, testutil.ToFloat64(m.DBConnectionWaitTotal))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.DBConnectionsOpen))

	// pool reset
	m.UpdateDBStats(sql.DBStats{WaitCount: 1})
	assert.Equal(t, 7.0, testutil.ToFloat64(m.DBConnectionWaitTotal))
}

func TestShouldSkipEndpoint(t *testing.T) {
	assert.True(t, ShouldSkipEndpoint("/api/metrics"))
	assert.True(t, ShouldSkipEndpoint("/api/swagger/index.html"))
	assert.True(t, ShouldSkipEndpoint("/metrics"))
	assert.True(t, ShouldSkipEndpoint("/health"))
	assert.True(t, ShouldSkipEndpoint("/ready"))
	assert.True(t, ShouldSkipEndpoint("/swagger/index.html"))
	assert.False(t, ShouldSkipEndpoint("/api/form-templates"))
}

func TestCategorizeStatus(t *testing.T) {
	assert.Equal(t, "2xx", categorizeStatus(201))
	assert.Equal(t, "4xx", categorizeStatus(422))
	assert.Equal(t, "5xx", categorizeStatus(503))
	assert.Equal(t, "unknown", categorizeStatus(0))
}

func TestGetErrorType(t *testing.T) {
	assert.Equal(t, "not_found", getErrorType(404, nil))
	assert.Equal(t, "service_unavailable", getErrorType(503, nil))
	assert.Equal(t, "connection_refused", getErrorType(0, &testErr{"dial tcp: connection refused"}))
	assert.Equal(t, "timeout", getErrorType(0, &testErr{"context deadline exceeded"}))
	assert.Equal(t, "network_error", getErrorType(0, &testErr{"boom"}))
	assert.Equal(t, "client_error", getErrorType(422, nil))
	assert.Equal(t, "timeout", getErrorType(0, fmt.Errorf("post: %w", context.DeadlineExceeded)))
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "/api/internal/orders/{id}/forms-completed",
		normalizeEndpoint("/api/internal/orders/123e4567-e89b-12d3-a456-426614174000/forms-completed"))
}

type testErr struct{ msg string }

func (e *testErr) Error() string { return e.msg }
