package service

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"form-template-api/internal/client"
	"form-template-api/internal/domain"
	"form-template-api/internal/dto"
	"form-template-api/internal/repository"
	"form-template-api/internal/response"
)

// FormUploadService issues presigned upload URLs for file elements
type FormUploadService interface {
	CreatePresignedUpload(ctx context.Context, userID *uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error)
}

// formUploadServiceImpl is the implementation of FormUploadService
type formUploadServiceImpl struct {
	elementRepo repository.FormElementRepository
	uploadRepo  repository.FormUploadRepository
	s3Client    client.S3ClientInterface
	ttl         time.Duration
	maxFileSize int64
	logger      *zap.Logger
}

// NewFormUploadService creates a new instance of FormUploadService.
// s3Client may be nil when storage is not configured.
func NewFormUploadService(
	elementRepo repository.FormElementRepository,
	uploadRepo repository.FormUploadRepository,
	s3Client client.S3ClientInterface,
	ttl time.Duration,
	maxFileSize int64,
	logger *zap.Logger,
) FormUploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &formUploadServiceImpl{
		elementRepo: elementRepo,
		uploadRepo:  uploadRepo,
		s3Client:    s3Client,
		ttl:         ttl,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// CreatePresignedUpload registers a temporary upload and returns the URL to
// PUT the file to. The upload id is what a submission references.
func (s *formUploadServiceImpl) CreatePresignedUpload(ctx context.Context, userID *uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error) {
	if s.s3Client == nil {
		return nil, response.NewAppError(response.ErrCodeUnavailable, "File storage is not configured", "")
	}

	element, err := s.elementRepo.FindByID(ctx, req.ElementID)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Form element not found", "")
		}
		return nil, internalError("Failed to fetch form element", err)
	}
	if element.Type != domain.ElementTypeFile {
		return nil, response.NewValidationError("Form element does not accept files", "")
	}

	if req.FileSize <= 0 {
		return nil, response.NewValidationError("File size must be positive", "")
	}
	if s.maxFileSize > 0 && req.FileSize > s.maxFileSize {
		return nil, response.NewValidationError(
			fmt.Sprintf("File size exceeds the limit of %d bytes", s.maxFileSize), "")
	}
	if element.FileAccept != nil && !accepts(*element.FileAccept, req.FileName, req.ContentType) {
		return nil, response.NewValidationError("File type is not accepted", *element.FileAccept)
	}

	uploadURL, fileKey, err := s.s3Client.GeneratePresignedURL(ctx, req.ElementID.String(), req.FileName, req.ContentType)
	if err != nil {
		return nil, internalError("Failed to generate upload URL", err)
	}

	expiresAt := time.Now().Add(s.ttl)
	upload := &domain.FormUpload{
		ElementID:   element.ID,
		Status:      domain.UploadStatusTemp,
		FileName:    req.FileName,
		FileKey:     fileKey,
		FileSize:    req.FileSize,
		ContentType: req.ContentType,
		ExpiresAt:   &expiresAt,
	}
	if userID != nil {
		upload.UploadedBy = *userID
	}
	if err := s.uploadRepo.Create(ctx, upload); err != nil {
		return nil, internalError("Failed to save upload", err)
	}

	s.logger.Debug("Presigned upload issued",
		zap.String("upload_id", upload.ID.String()),
		zap.String("element_id", element.ID.String()),
		zap.String("file_key", fileKey),
	)

	return &dto.PresignedURLResponse{
		UploadID:  upload.ID,
		UploadURL: uploadURL,
		FileKey:   fileKey,
		FileURL:   s.s3Client.GetFileURL(fileKey),
		ExpiresIn: int(client.DefaultPresignExpiry.Seconds()),
	}, nil
}

// accepts matches a file against an HTML accept list such as
// ".pdf,image/*,application/zip"
func accepts(accept, fileName, contentType string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	listed := false
	for _, item := range strings.Split(accept, ",") {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		listed = true
		switch {
		case strings.HasPrefix(item, "."):
			if ext == item {
				return true
			}
		case strings.HasSuffix(item, "/*"):
			if strings.HasPrefix(mediaType, strings.TrimSuffix(item, "*")) {
				return true
			}
		default:
			if mediaType == item {
				return true
			}
		}
	}
	return !listed
}
