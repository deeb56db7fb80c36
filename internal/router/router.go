package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"form-template-api/internal/client"
	"form-template-api/internal/database"
	"form-template-api/internal/handler"
	"form-template-api/internal/metrics"
	"form-template-api/internal/middleware"
	"form-template-api/internal/repository"
	"form-template-api/internal/service"
)

const serviceName = "form-template-api"

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	JWTSecret      string
	BasePath       string
	AllowedOrigins []string
	Metrics        *metrics.Metrics

	// S3Client may be nil; presigned uploads then answer 503
	S3Client    client.S3ClientInterface
	OrderClient client.OrderClient

	// StateRepo defaults to an in-memory store using SequenceTTL
	StateRepo   repository.SequenceStateRepository
	SequenceTTL time.Duration
	UploadTTL   time.Duration
	MaxFileSize int64
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.UploadTTL <= 0 {
		cfg.UploadTTL = time.Hour
	}
	if cfg.SequenceTTL <= 0 {
		cfg.SequenceTTL = 24 * time.Hour
	}
	if cfg.StateRepo == nil {
		cfg.StateRepo = repository.NewMemorySequenceStateRepository(cfg.SequenceTTL)
	}

	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Prometheus scrapes the root path; ingress only forwards the base path
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := database.Ping(c.Request.Context(), cfg.DB); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "service": serviceName})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "service": serviceName})
	})

	// Initialize repositories
	templateRepo := repository.NewFormTemplateRepository(cfg.DB)
	elementRepo := repository.NewFormElementRepository(cfg.DB)
	categoryRepo := repository.NewFormCategoryRepository(cfg.DB)
	submissionRepo := repository.NewFormSubmissionRepository(cfg.DB)
	uploadRepo := repository.NewFormUploadRepository(cfg.DB)

	// Initialize services
	templateService := service.NewFormTemplateService(templateRepo, categoryRepo, cfg.Metrics, cfg.Logger)
	elementService := service.NewFormElementService(templateRepo, elementRepo, cfg.Logger)
	categoryService := service.NewFormCategoryService(categoryRepo, templateRepo, cfg.Logger)
	submissionService := service.NewFormSubmissionService(templateRepo, submissionRepo, uploadRepo, cfg.Metrics, cfg.Logger)
	sequenceService := service.NewFormSequenceService(
		categoryService,
		templateRepo,
		submissionRepo,
		uploadRepo,
		cfg.StateRepo,
		cfg.OrderClient,
		cfg.Metrics,
		cfg.Logger,
	)
	uploadService := service.NewFormUploadService(elementRepo, uploadRepo, cfg.S3Client, cfg.UploadTTL, cfg.MaxFileSize, cfg.Logger)

	// Initialize handlers
	templateHandler := handler.NewFormTemplateHandler(templateService, cfg.Logger)
	elementHandler := handler.NewFormElementHandler(elementService, cfg.Logger)
	categoryHandler := handler.NewFormCategoryHandler(categoryService, cfg.Logger)
	submissionHandler := handler.NewFormSubmissionHandler(submissionService, cfg.Logger)
	sequenceHandler := handler.NewFormSequenceHandler(sequenceService, cfg.Logger)
	uploadHandler := handler.NewFormUploadHandler(uploadService, cfg.Logger)

	api := r.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
		})
	}
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.JWTSecret != "" {
		api.Use(middleware.Auth(cfg.JWTSecret))
	} else {
		cfg.Logger.Warn("JWT secret not configured, API routes are unauthenticated")
	}

	// ============================================================
	// Template routes
	// ============================================================
	templates := api.Group("/form-templates")
	{
		templates.GET("", templateHandler.ListTemplates)
		templates.POST("", templateHandler.CreateTemplate)
		templates.POST("/import", templateHandler.ImportTemplate)
		templates.GET("/:templateId", templateHandler.GetTemplate)
		templates.PUT("/:templateId", templateHandler.UpdateTemplate)
		templates.DELETE("/:templateId", templateHandler.DeleteTemplate)
		templates.GET("/:templateId/render", templateHandler.RenderTemplate)

		templates.GET("/:templateId/elements", elementHandler.ListElements)
		templates.POST("/:templateId/elements", elementHandler.AddElement)
		templates.PUT("/:templateId/elements/reorder", elementHandler.ReorderElements)
	}

	elements := api.Group("/form-elements")
	{
		elements.PUT("/:elementId", elementHandler.UpdateElement)
		elements.DELETE("/:elementId", elementHandler.DeleteElement)
	}

	// ============================================================
	// Category mapping routes
	// ============================================================
	categories := api.Group("/form-categories")
	{
		categories.GET("", categoryHandler.ListCategories)
		categories.PUT("/:categoryId", categoryHandler.UpsertCategory)
		categories.GET("/:categoryId/template", categoryHandler.GetTemplate)
		categories.PUT("/:categoryId/template", categoryHandler.SetMapping)
	}

	// ============================================================
	// Submission routes
	// ============================================================
	submissions := api.Group("/form-submissions")
	{
		submissions.GET("", submissionHandler.ListSubmissions)
		submissions.POST("", submissionHandler.CreateSubmission)
		submissions.GET("/:submissionId", submissionHandler.GetSubmission)
	}

	// ============================================================
	// Multi-step sequence routes
	// ============================================================
	sequences := api.Group("/form-sequences")
	{
		sequences.POST("", sequenceHandler.StartSequence)
		sequences.GET("/:sequenceId", sequenceHandler.GetSequence)
		sequences.DELETE("/:sequenceId", sequenceHandler.CancelSequence)
		sequences.PUT("/:sequenceId/selections", sequenceHandler.Select)
		sequences.POST("/:sequenceId/steps", sequenceHandler.SubmitStep)
		sequences.POST("/:sequenceId/back", sequenceHandler.GoBack)
		sequences.PUT("/:sequenceId/cart", sequenceHandler.UpdateCart)
	}

	api.POST("/form-uploads/presigned-url", uploadHandler.GeneratePresignedURL)

	return r
}
