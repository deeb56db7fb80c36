package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"form-template-api/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FormsCompletedEvent tells the order service that every form for an order was submitted
type FormsCompletedEvent struct {
	OrderID       uuid.UUID   `json:"orderId"`
	CustomerID    uuid.UUID   `json:"customerId"`
	SequenceID    uuid.UUID   `json:"sequenceId"`
	SubmissionIDs []uuid.UUID `json:"submissionIds"`
	CompletedAt   string      `json:"completedAt,omitempty"`
}

// OrderClient defines the interface for order service communication
type OrderClient interface {
	NotifyFormsCompleted(ctx context.Context, event FormsCompletedEvent) error
}

type orderClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewOrderClient creates a new order service client
func NewOrderClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) OrderClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &orderClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    m,
	}
}

// NotifyFormsCompleted posts the event. Transport failures and non-2xx
// statuses are logged and swallowed; only marshalling errors are returned.
func (c *orderClient) NotifyFormsCompleted(ctx context.Context, event FormsCompletedEvent) error {
	url := fmt.Sprintf("%s/api/internal/orders/%s/forms-completed", c.baseURL, event.OrderID)

	if event.CompletedAt == "" {
		event.CompletedAt = time.Now().UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(event)
	if err != nil {
		c.logger.Error("Failed to marshal forms completed event", zap.Error(err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("Failed to create order request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Internal-API-Key", c.apiKey)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall("order-service", http.MethodPost, statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Failed to notify order service",
			zap.Error(err),
			zap.String("order_id", event.OrderID.String()),
			zap.Duration("duration", duration),
		)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Info("Order service notified",
			zap.String("order_id", event.OrderID.String()),
			zap.Int("submissions", len(event.SubmissionIDs)),
			zap.Duration("duration", duration),
		)
		return nil
	}

	c.logger.Warn("Order service returned non-success status",
		zap.Int("status_code", resp.StatusCode),
		zap.String("order_id", event.OrderID.String()),
	)
	return nil
}

// NoOpOrderClient is used when no order service is configured
type NoOpOrderClient struct{}

func NewNoOpOrderClient() OrderClient {
	return &NoOpOrderClient{}
}

func (c *NoOpOrderClient) NotifyFormsCompleted(ctx context.Context, event FormsCompletedEvent) error {
	return nil
}
