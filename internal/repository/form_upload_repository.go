package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"form-template-api/internal/domain"
)

// FormUploadRepository defines the interface for uploaded file data access
type FormUploadRepository interface {
	Create(ctx context.Context, upload *domain.FormUpload) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.FormUpload, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.FormUpload, error)
	FindExpiredTempUploads(ctx context.Context) ([]*domain.FormUpload, error)
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
}

// formUploadRepositoryImpl is the GORM implementation of FormUploadRepository
type formUploadRepositoryImpl struct {
	db *gorm.DB
}

// NewFormUploadRepository creates a new instance of FormUploadRepository
func NewFormUploadRepository(db *gorm.DB) FormUploadRepository {
	return &formUploadRepositoryImpl{db: db}
}

// Create creates a new upload record
func (r *formUploadRepositoryImpl) Create(ctx context.Context, upload *domain.FormUpload) error {
	return r.db.WithContext(ctx).Create(upload).Error
}

// FindByID finds an upload by its ID
func (r *formUploadRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.FormUpload, error) {
	var upload domain.FormUpload
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&upload).Error; err != nil {
		return nil, err
	}
	return &upload, nil
}

// FindByIDs finds uploads by their IDs
func (r *formUploadRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.FormUpload, error) {
	if len(ids) == 0 {
		return []*domain.FormUpload{}, nil
	}

	var uploads []*domain.FormUpload
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}

// FindExpiredTempUploads finds temporary uploads past their expiration time
func (r *formUploadRepositoryImpl) FindExpiredTempUploads(ctx context.Context) ([]*domain.FormUpload, error) {
	var uploads []*domain.FormUpload
	if err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", domain.UploadStatusTemp, time.Now()).
		Find(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}

// DeleteBatch deletes several uploads by ID
func (r *formUploadRepositoryImpl) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.FormUpload{}).Error
}
