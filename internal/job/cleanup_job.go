package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"form-template-api/internal/client"
	"form-template-api/internal/metrics"
	"form-template-api/internal/repository"
)

// UploadCleanupJob deletes temporary uploads that were never attached to a submission
type UploadCleanupJob struct {
	uploadRepo repository.FormUploadRepository
	s3Client   client.S3ClientInterface
	metrics    *metrics.Metrics
	logger     *zap.Logger
	timeout    time.Duration
}

// NewUploadCleanupJob creates a new UploadCleanupJob. m may be nil.
func NewUploadCleanupJob(
	uploadRepo repository.FormUploadRepository,
	s3Client client.S3ClientInterface,
	m *metrics.Metrics,
	logger *zap.Logger,
) *UploadCleanupJob {
	return &UploadCleanupJob{
		uploadRepo: uploadRepo,
		s3Client:   s3Client,
		metrics:    m,
		logger:     logger,
		timeout:    5 * time.Minute,
	}
}

// Run implements cron.Job
func (j *UploadCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	j.RunContext(ctx)
}

// RunContext removes expired TEMP uploads from S3 first and then from the
// database. Rows whose object could not be deleted are kept for the next run.
func (j *UploadCleanupJob) RunContext(ctx context.Context) {
	expired, err := j.uploadRepo.FindExpiredTempUploads(ctx)
	if err != nil {
		j.logger.Error("Failed to find expired temporary uploads", zap.Error(err))
		return
	}
	if len(expired) == 0 {
		j.logger.Debug("No expired temporary uploads found")
		return
	}

	var deleted []uuid.UUID
	failCount := 0
	for _, upload := range expired {
		if upload.FileKey == "" {
			deleted = append(deleted, upload.ID)
			continue
		}
		if err := j.s3Client.DeleteFile(ctx, upload.FileKey); err != nil {
			j.logger.Error("Failed to delete file from S3",
				zap.String("upload_id", upload.ID.String()),
				zap.String("file_key", upload.FileKey),
				zap.Error(err),
			)
			failCount++
			continue
		}
		deleted = append(deleted, upload.ID)
	}

	if len(deleted) > 0 {
		if err := j.uploadRepo.DeleteBatch(ctx, deleted); err != nil {
			j.logger.Error("Failed to delete uploads from database",
				zap.Int("count", len(deleted)),
				zap.Error(err),
			)
			return
		}
		if j.metrics != nil {
			j.metrics.AddUploadsCleanedUp(len(deleted))
		}
	}

	j.logger.Info("Upload cleanup completed",
		zap.Int("total_expired", len(expired)),
		zap.Int("success", len(deleted)),
		zap.Int("failed", failCount),
	)
}
