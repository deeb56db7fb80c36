package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// 메트릭 기록 중 에러나 panic 이 발생해도 요청 처리는 계속된다
func TestMetricOperationsDoNotPanic(t *testing.T) {
	operations := map[string]func(*Metrics){
		"RecordHTTPRequest":       func(m *Metrics) { m.RecordHTTPRequest("GET", "/api/form-templates", 200, time.Second) },
		"RecordDBQuery":           func(m *Metrics) { m.RecordDBQuery("SELECT", "form_elements", time.Millisecond, errors.New("x")) },
		"RecordExternalAPICall":   func(m *Metrics) { m.RecordExternalAPICall("order-service", "POST", 0, time.Second, errors.New("timeout")) },
		"IncrementTemplateCreated": func(m *Metrics) { m.IncrementTemplateCreated() },
		"AddSubmissionsCreated":   func(m *Metrics) { m.AddSubmissionsCreated(2) },
		"RecordSequenceEvent":     func(m *Metrics) { m.RecordSequenceEvent(SequenceCancelled) },
		"RecordValidationFailure": func(m *Metrics) { m.RecordValidationFailure("sequence") },
		"AddUploadsCleanedUp":     func(m *Metrics) { m.AddUploadsCleanedUp(5) },
		"UpdateDBStats": func(m *Metrics) {
			m.UpdateDBStats(sql.DBStats{OpenConnections: 10, InUse: 5, Idle: 5})
		},
		"UpdateDBStats wrong type": func(m *Metrics) { m.UpdateDBStats("not stats") },
	}

	for name, op := range operations {
		t.Run(name, func(t *testing.T) {
			m := NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
			assert.NotPanics(t, func() { op(m) })
		})
	}
}

func TestSafeExecuteWithPanic(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), nil)
	assert.NotPanics(t, func() {
		m.safeExecute("test_panic", func() {
			panic("intentional panic for testing")
		})
	})
}

func TestCollectorPanicRecovery(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	collector := &BusinessMetricsCollector{metrics: m, logger: zap.NewNop()}

	assert.NotPanics(t, func() {
		collector.collect()
	})
}

func TestNilMetricsIsNoOp(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementTemplateCreated()
		m.RecordSequenceEvent(SequenceStarted)
		m.RecordExternalAPICall("order-service", "POST", 200, time.Millisecond, nil)
	})
}
