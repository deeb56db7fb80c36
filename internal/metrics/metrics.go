package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	namespace = "form_service"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database
	DBConnectionsOpen        prometheus.Gauge
	DBConnectionsInUse       prometheus.Gauge
	DBConnectionsIdle        prometheus.Gauge
	DBConnectionsMax         prometheus.Gauge
	DBConnectionWaitTotal    prometheus.Counter
	DBConnectionWaitDuration prometheus.Counter
	DBQueryDuration          *prometheus.HistogramVec
	DBQueryErrors            *prometheus.CounterVec

	// External APIs (order service)
	ExternalAPIRequestDuration *prometheus.HistogramVec
	ExternalAPIRequestsTotal   *prometheus.CounterVec
	ExternalAPIErrors          *prometheus.CounterVec

	// Business
	TemplatesTotal         prometheus.Gauge
	SubmissionsTotal       prometheus.Gauge
	TemplateCreatedTotal   prometheus.Counter
	SubmissionCreatedTotal prometheus.Counter
	SequenceEventsTotal    *prometheus.CounterVec
	FormValidationFailures *prometheus.CounterVec
	UploadsCleanedUpTotal  prometheus.Counter

	// sql.DBStats wait figures are cumulative; counters get the difference
	statsMu          sync.Mutex
	lastWaitCount    int64
	lastWaitDuration time.Duration

	logger *zap.Logger
}

// New creates and registers all metrics with the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, nil)
}

// NewWithLogger creates and registers all metrics with the default registry and a logger
func NewWithLogger(logger *zap.Logger) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, logger)
}

// NewWithRegistry creates and registers all metrics with a custom registry
func NewWithRegistry(registerer prometheus.Registerer, logger *zap.Logger) *Metrics {
	f := promauto.With(registerer)
	if logger == nil {
		logger = zap.NewNop()
	}

	counter := func(name, help string) prometheus.Counter {
		return f.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return f.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
	}
	gauge := func(name, help string) prometheus.Gauge {
		return f.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}
	histogramVec := func(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
		return f.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: name, Help: help, Buckets: buckets}, labels)
	}

	return &Metrics{
		HTTPRequestsTotal: counterVec("http_requests_total", "Total number of HTTP requests",
			"method", "endpoint", "status"),
		HTTPRequestDuration: histogramVec("http_request_duration_seconds", "HTTP request duration in seconds",
			[]float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}, "method", "endpoint"),

		DBConnectionsOpen:  gauge("db_connections_open", "Current number of open database connections"),
		DBConnectionsInUse: gauge("db_connections_in_use", "Current number of in-use database connections"),
		DBConnectionsIdle:  gauge("db_connections_idle", "Current number of idle database connections"),
		DBConnectionsMax:   gauge("db_connections_max", "Maximum number of open database connections configured"),
		DBConnectionWaitTotal: counter("db_connection_wait_total",
			"Total number of times waited for a database connection"),
		DBConnectionWaitDuration: counter("db_connection_wait_duration_seconds_total",
			"Total duration waited for database connections in seconds"),
		DBQueryDuration: histogramVec("db_query_duration_seconds", "Database query duration in seconds",
			[]float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}, "operation", "table"),
		DBQueryErrors: counterVec("db_query_errors_total", "Total number of database query errors",
			"operation", "table"),

		ExternalAPIRequestDuration: histogramVec("external_api_request_duration_seconds",
			"External API request duration in seconds",
			[]float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}, "endpoint", "status"),
		ExternalAPIRequestsTotal: counterVec("external_api_requests_total", "Total number of external API requests",
			"endpoint", "method", "status"),
		ExternalAPIErrors: counterVec("external_api_errors_total", "Total number of external API errors",
			"endpoint", "error_type"),

		TemplatesTotal:         gauge("templates_total", "Total number of form templates"),
		SubmissionsTotal:       gauge("submissions_total", "Total number of form submissions"),
		TemplateCreatedTotal:   counter("template_created_total", "Total number of template creation events"),
		SubmissionCreatedTotal: counter("submission_created_total", "Total number of stored form submissions"),
		SequenceEventsTotal: counterVec("sequence_events_total",
			"Multi-step sequence lifecycle events", "event"),
		FormValidationFailures: counterVec("form_validation_failures_total",
			"Form submissions rejected by field validation", "source"),
		UploadsCleanedUpTotal: counter("uploads_cleaned_up_total", "Expired temporary uploads removed"),

		logger: logger,
	}
}

// safeExecute wraps metric operations with panic recovery. A nil *Metrics
// records nothing.
func (m *Metrics) safeExecute(operation string, fn func()) {
	if m == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Panic in metrics operation",
				zap.String("operation", operation),
				zap.Any("panic", r),
			)
		}
	}()
	fn()
}
