package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"form-template-api/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupMetricsRouter() (*gin.Engine, *metrics.Metrics) {
	gin.SetMode(gin.TestMode)
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	router := gin.New()
	router.Use(Metrics(m))
	return router, m
}

func requestCount(t *testing.T, m *metrics.Metrics, method, endpoint, status string) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, m.HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Write(metric))
	return metric.Counter.GetValue()
}

// 모든 요청은 라우트 패턴 기준으로 한 번씩 카운트된다
func TestProperty_HTTPRequestMetricsIncrement(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("counter grows by the number of requests", prop.ForAll(
		func(n int, statusCode int) bool {
			router, m := setupMetricsRouter()
			router.GET("/api/form-templates/:templateId", func(c *gin.Context) {
				c.Status(statusCode)
			})

			for i := 0; i < n; i++ {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/form-templates/abc", nil))
			}

			status := map[bool]string{true: "2xx", false: "4xx"}[statusCode < 400]
			return requestCount(t, m, "GET", "/api/form-templates/:templateId", status) == float64(n)
		},
		gen.IntRange(1, 20),
		gen.OneConstOf(http.StatusOK, http.StatusCreated, http.StatusNotFound, http.StatusUnprocessableEntity),
	))

	properties.TestingRun(t)
}

func TestMetricsMiddleware_ExcludedEndpoints(t *testing.T) {
	router, m := setupMetricsRouter()
	for _, path := range []string{"/metrics", "/health", "/ready"} {
		router.GET(path, func(c *gin.Context) { c.Status(http.StatusOK) })
	}

	for _, path := range []string{"/metrics", "/health", "/ready"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, requestCount(t, m, "GET", path, "2xx"))
	}
}

func TestMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	router, m := setupMetricsRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1.0, requestCount(t, m, "GET", "unmatched", "4xx"))
}
