package metrics

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BusinessMetricsCollector periodically refreshes the business gauges
type BusinessMetricsCollector struct {
	db       *gorm.DB
	metrics  *Metrics
	logger   *zap.Logger
	interval time.Duration
	done     chan struct{}
	once     sync.Once
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		db:       db,
		metrics:  metrics,
		logger:   logger,
		interval: 60 * time.Second,
		done:     make(chan struct{}),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector. It is safe to call more than once.
func (c *BusinessMetricsCollector) Stop() {
	c.once.Do(func() { close(c.done) })
}

func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var templates int64
	if err := c.db.WithContext(ctx).Table("form_templates").Where("deleted_at IS NULL").Count(&templates).Error; err != nil {
		c.logger.Error("Failed to count templates", zap.Error(err))
	} else {
		c.metrics.SetTemplatesTotal(templates)
	}

	var submissions int64
	if err := c.db.WithContext(ctx).Table("form_submissions").Where("deleted_at IS NULL").Count(&submissions).Error; err != nil {
		c.logger.Error("Failed to count submissions", zap.Error(err))
	} else {
		c.metrics.SetSubmissionsTotal(submissions)
	}
}
