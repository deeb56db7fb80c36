package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"form-template-api/internal/database"
	"form-template-api/internal/domain"
	"form-template-api/internal/dto"
	"form-template-api/internal/metrics"
	"form-template-api/internal/repository"
	"form-template-api/internal/response"
)

// testEnv wires every service over an in-memory database
type testEnv struct {
	db *gorm.DB

	templateRepo   repository.FormTemplateRepository
	elementRepo    repository.FormElementRepository
	categoryRepo   repository.FormCategoryRepository
	submissionRepo repository.FormSubmissionRepository
	uploadRepo     repository.FormUploadRepository
	stateRepo      repository.SequenceStateRepository

	orders  *recordingOrderClient
	metrics *metrics.Metrics

	templates   FormTemplateService
	elements    FormElementService
	categories  FormCategoryService
	submissions FormSubmissionService
	sequences   FormSequenceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	env := &testEnv{
		db:             db,
		templateRepo:   repository.NewFormTemplateRepository(db),
		elementRepo:    repository.NewFormElementRepository(db),
		categoryRepo:   repository.NewFormCategoryRepository(db),
		submissionRepo: repository.NewFormSubmissionRepository(db),
		uploadRepo:     repository.NewFormUploadRepository(db),
		stateRepo:      repository.NewMemorySequenceStateRepository(time.Hour),
		orders:         &recordingOrderClient{},
		metrics:        metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop()),
	}
	env.wire()
	return env
}

func (e *testEnv) wire() {
	log := zap.NewNop()
	e.templates = NewFormTemplateService(e.templateRepo, e.categoryRepo, e.metrics, log)
	e.elements = NewFormElementService(e.templateRepo, e.elementRepo, log)
	e.categories = NewFormCategoryService(e.categoryRepo, e.templateRepo, log)
	e.submissions = NewFormSubmissionService(e.templateRepo, e.submissionRepo, e.uploadRepo, e.metrics, log)
	e.sequences = NewFormSequenceService(e.categories, e.templateRepo, e.submissionRepo, e.uploadRepo,
		e.stateRepo, e.orders, e.metrics, log)
}

func (e *testEnv) category(t *testing.T, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := e.categories.UpsertCategory(context.Background(), id, &dto.UpsertCategoryRequest{Name: name})
	require.NoError(t, err)
	return id
}

func (e *testEnv) template(t *testing.T, name string, categoryID *uuid.UUID) uuid.UUID {
	t.Helper()
	resp, err := e.templates.CreateTemplate(context.Background(), &dto.CreateFormTemplateRequest{
		Name:       name,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return resp.ID
}

func (e *testEnv) element(t *testing.T, templateID uuid.UUID, req dto.CreateFormElementRequest) uuid.UUID {
	t.Helper()
	resp, err := e.elements.AddElement(context.Background(), templateID, &req)
	require.NoError(t, err)
	return resp.ID
}

func (e *testEnv) upload(t *testing.T, elementID, owner uuid.UUID) uuid.UUID {
	t.Helper()
	expires := time.Now().Add(time.Hour)
	u := &domain.FormUpload{
		ElementID:   elementID,
		Status:      domain.UploadStatusTemp,
		FileName:    "desain.pdf",
		FileKey:     "form/uploads/" + elementID.String() + "/desain.pdf",
		FileSize:    1024,
		ContentType: "application/pdf",
		UploadedBy:  owner,
		ExpiresAt:   &expires,
	}
	require.NoError(t, e.uploadRepo.Create(context.Background(), u))
	return u.ID
}

func requireAppError(t *testing.T, err error, code string) *response.AppError {
	t.Helper()
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code, appErr.Error())
	return appErr
}

func strPtr(s string) *string { return &s }
