package job

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"form-template-api/internal/client"
	"form-template-api/internal/domain"
	"form-template-api/internal/metrics"
)

type MockFormUploadRepository struct {
	mock.Mock
}

func (m *MockFormUploadRepository) Create(ctx context.Context, upload *domain.FormUpload) error {
	return m.Called(ctx, upload).Error(0)
}

func (m *MockFormUploadRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FormUpload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FormUpload), args.Error(1)
}

func (m *MockFormUploadRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.FormUpload, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FormUpload), args.Error(1)
}

func (m *MockFormUploadRepository) FindExpiredTempUploads(ctx context.Context) ([]*domain.FormUpload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FormUpload), args.Error(1)
}

func (m *MockFormUploadRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

func newUpload(key string) *domain.FormUpload {
	u := &domain.FormUpload{FileKey: key, Status: domain.UploadStatusTemp}
	u.ID = uuid.New()
	return u
}

func TestUploadCleanupJob_DeletesS3ThenDB(t *testing.T) {
	a, b := newUpload("form/uploads/a.pdf"), newUpload("form/uploads/b.pdf")

	repo := new(MockFormUploadRepository)
	repo.On("FindExpiredTempUploads", mock.Anything).Return([]*domain.FormUpload{a, b}, nil)
	repo.On("DeleteBatch", mock.Anything, []uuid.UUID{a.ID, b.ID}).Return(nil)

	s3 := client.NewMockS3Client()
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())

	NewUploadCleanupJob(repo, s3, m, zap.NewNop()).RunContext(context.Background())

	assert.Equal(t, []string{"form/uploads/a.pdf", "form/uploads/b.pdf"}, s3.Deleted)
	repo.AssertExpectations(t)
}

func TestUploadCleanupJob_KeepsRowsWhenS3Fails(t *testing.T) {
	ok, broken := newUpload("ok.pdf"), newUpload("broken.pdf")

	repo := new(MockFormUploadRepository)
	repo.On("FindExpiredTempUploads", mock.Anything).Return([]*domain.FormUpload{ok, broken}, nil)
	repo.On("DeleteBatch", mock.Anything, []uuid.UUID{ok.ID}).Return(nil)

	s3 := client.NewMockS3Client()
	s3.DeleteFileFunc = func(ctx context.Context, key string) error {
		if key == "broken.pdf" {
			return errors.New("access denied")
		}
		return nil
	}

	NewUploadCleanupJob(repo, s3, nil, zap.NewNop()).Run()
	repo.AssertExpectations(t)
}

func TestUploadCleanupJob_NothingExpired(t *testing.T) {
	repo := new(MockFormUploadRepository)
	repo.On("FindExpiredTempUploads", mock.Anything).Return([]*domain.FormUpload{}, nil)

	NewUploadCleanupJob(repo, client.NewMockS3Client(), nil, zap.NewNop()).Run()

	repo.AssertNotCalled(t, "DeleteBatch", mock.Anything, mock.Anything)
}

func TestUploadCleanupJob_FindError(t *testing.T) {
	repo := new(MockFormUploadRepository)
	repo.On("FindExpiredTempUploads", mock.Anything).Return(nil, errors.New("db down"))

	assert.NotPanics(t, func() {
		NewUploadCleanupJob(repo, client.NewMockS3Client(), nil, zap.NewNop()).Run()
	})
	repo.AssertNotCalled(t, "DeleteBatch", mock.Anything, mock.Anything)
}

func TestNewScheduler(t *testing.T) {
	repo := new(MockFormUploadRepository)
	j := NewUploadCleanupJob(repo, client.NewMockS3Client(), nil, zap.NewNop())

	c, err := NewScheduler("0 * * * *", j, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = NewScheduler("not a schedule", j, zap.NewNop())
	assert.Error(t, err)
}
