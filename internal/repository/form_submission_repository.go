package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"form-template-api/internal/domain"
)

// SubmissionFilter narrows List results. Nil fields are ignored.
type SubmissionFilter struct {
	TemplateID *uuid.UUID
	OrderID    *uuid.UUID
	CustomerID *uuid.UUID
}

// FormSubmissionRepository defines the interface for submission data access
type FormSubmissionRepository interface {
	CreateBatch(ctx context.Context, submissions []*domain.FormSubmission) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.FormSubmission, error)
	List(ctx context.Context, filter SubmissionFilter, offset, limit int) ([]*domain.FormSubmission, int64, error)
	Count(ctx context.Context) (int64, error)
}

// formSubmissionRepositoryImpl is the GORM implementation of FormSubmissionRepository
type formSubmissionRepositoryImpl struct {
	db *gorm.DB
}

// NewFormSubmissionRepository creates a new instance of FormSubmissionRepository
func NewFormSubmissionRepository(db *gorm.DB) FormSubmissionRepository {
	return &formSubmissionRepositoryImpl{db: db}
}

// CreateBatch stores submissions with their values and confirms every
// referenced upload, all in one transaction
func (r *formSubmissionRepositoryImpl) CreateBatch(ctx context.Context, submissions []*domain.FormSubmission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sub := range submissions {
			if err := tx.Create(sub).Error; err != nil {
				return err
			}

			var uploadIDs []uuid.UUID
			for _, v := range sub.Values {
				if v.FileUploadID != nil {
					uploadIDs = append(uploadIDs, *v.FileUploadID)
				}
			}
			if len(uploadIDs) == 0 {
				continue
			}

			result := tx.Model(&domain.FormUpload{}).
				Where("id IN ? AND status = ?", uploadIDs, domain.UploadStatusTemp).
				Updates(map[string]interface{}{
					"status":        domain.UploadStatusConfirmed,
					"submission_id": sub.ID,
					"expires_at":    nil,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected != int64(len(uploadIDs)) {
				return fmt.Errorf("expected to confirm %d upload(s) but only confirmed %d",
					len(uploadIDs), result.RowsAffected)
			}
		}
		return nil
	})
}

// FindByID finds a submission with its values in position order
func (r *formSubmissionRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.FormSubmission, error) {
	var submission domain.FormSubmission
	if err := r.db.WithContext(ctx).
		Preload("Values", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// List returns submissions matching filter, newest first
func (r *formSubmissionRepositoryImpl) List(ctx context.Context, filter SubmissionFilter, offset, limit int) ([]*domain.FormSubmission, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.FormSubmission{})
	if filter.TemplateID != nil {
		query = query.Where("template_id = ?", *filter.TemplateID)
	}
	if filter.OrderID != nil {
		query = query.Where("order_id = ?", *filter.OrderID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []*domain.FormSubmission
	if err := query.
		Preload("Values", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&submissions).Error; err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

// Count returns the number of submissions
func (r *formSubmissionRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.FormSubmission{}).Count(&total).Error
	return total, err
}
