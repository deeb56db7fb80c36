// @title           Form Template API
// @version         1.0
// @description     인쇄 주문용 동적 폼 템플릿 API

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	_ "form-template-api/docs" // Swagger docs import

	"form-template-api/internal/client"
	"form-template-api/internal/config"
	"form-template-api/internal/database"
	"form-template-api/internal/job"
	"form-template-api/internal/metrics"
	"form-template-api/internal/repository"
	"form-template-api/internal/router"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Form Template API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	m := metrics.NewWithLogger(logger)

	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db := connectDatabase(dbConfig, logger)
	if db == nil {
		logger.Info("Shutdown requested before database became available")
		return
	}

	database.RegisterMetricsCallbacks(db, m)
	statsDone := database.StartDBStatsCollector(db, m, 15*time.Second)
	defer close(statsDone)

	businessCollector := metrics.NewBusinessMetricsCollector(db, m, logger)
	businessCollector.Start()
	defer businessCollector.Stop()

	// Sequence state lives in redis when configured so any replica can serve it
	var stateRepo repository.SequenceStateRepository
	if cfg.Redis.Enabled() {
		redisClient, err := database.NewRedis(cfg.Redis, logger)
		if err != nil {
			logger.Warn("Failed to connect to redis, keeping form sequences in memory", zap.Error(err))
		} else {
			defer redisClient.Close()
			stateRepo = repository.NewRedisSequenceStateRepository(redisClient, cfg.FormSequence.TTL)
		}
	}
	if stateRepo == nil {
		stateRepo = repository.NewMemorySequenceStateRepository(cfg.FormSequence.TTL)
	}

	var s3Client client.S3ClientInterface
	if cfg.S3.Enabled() {
		c, err := client.NewS3Client(&cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, file uploads disabled", zap.Error(err))
		} else {
			s3Client = c
			logger.Info("S3 client initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	} else {
		logger.Warn("S3 configuration incomplete, file uploads disabled")
	}

	orderClient := client.NewNoOpOrderClient()
	if cfg.OrderAPI.BaseURL != "" {
		orderClient = client.NewOrderClient(cfg.OrderAPI.BaseURL, cfg.OrderAPI.APIKey, cfg.OrderAPI.Timeout, logger, m)
		logger.Info("Order client initialized", zap.String("order_api_url", cfg.OrderAPI.BaseURL))
	}

	if s3Client != nil {
		cleanup := job.NewUploadCleanupJob(repository.NewFormUploadRepository(db), s3Client, m, logger)
		scheduler, err := job.NewScheduler(cfg.Upload.CleanupSchedule, cleanup, logger)
		if err != nil {
			logger.Warn("Upload cleanup job disabled", zap.Error(err))
		} else {
			scheduler.Start()
			defer scheduler.Stop()
			logger.Info("Upload cleanup job scheduled", zap.String("schedule", cfg.Upload.CleanupSchedule))
		}
	}

	r := router.Setup(router.Config{
		DB:             db,
		Logger:         logger,
		JWTSecret:      cfg.JWT.Secret,
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        m,
		S3Client:       s3Client,
		OrderClient:    orderClient,
		StateRepo:      stateRepo,
		SequenceTTL:    cfg.FormSequence.TTL,
		UploadTTL:      cfg.Upload.TTL,
		MaxFileSize:    cfg.Upload.MaxFileSize,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Form Template API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// connectDatabase connects and migrates. When the database is not reachable
// yet it keeps retrying in the background and blocks until it is, or returns
// nil if a shutdown signal arrives first.
func connectDatabase(cfg database.Config, logger *zap.Logger) *gorm.DB {
	db, err := database.New(cfg)
	if err == nil {
		logger.Info("Database connected successfully")
		if err := database.SafeAutoMigrate(db, logger); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		}
		return db
	}

	logger.Warn("Failed to connect to database on startup, will retry in background", zap.Error(err))
	ready := make(chan *gorm.DB, 1)
	database.NewAsync(cfg, 5*time.Second, logger, func(db *gorm.DB) { ready <- db })

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case db := <-ready:
		return db
	case <-quit:
		return nil
	}
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
