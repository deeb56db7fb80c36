package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"form-template-api/internal/domain"
)

// FormCategoryRepository defines the interface for category mapping data access
type FormCategoryRepository interface {
	FindByID(ctx context.Context, categoryID uuid.UUID) (*domain.FormCategoryMapping, error)
	FindByIDs(ctx context.Context, categoryIDs []uuid.UUID) ([]*domain.FormCategoryMapping, error)
	FindEligible(ctx context.Context) ([]*domain.FormCategoryMapping, error)
	FindByTemplateID(ctx context.Context, templateID uuid.UUID) ([]*domain.FormCategoryMapping, error)
	Upsert(ctx context.Context, mapping *domain.FormCategoryMapping) error
	SetTemplate(ctx context.Context, categoryID uuid.UUID, templateID *uuid.UUID) error
}

// formCategoryRepositoryImpl is the GORM implementation of FormCategoryRepository
type formCategoryRepositoryImpl struct {
	db *gorm.DB
}

// NewFormCategoryRepository creates a new instance of FormCategoryRepository
func NewFormCategoryRepository(db *gorm.DB) FormCategoryRepository {
	return &formCategoryRepositoryImpl{db: db}
}

// FindByID finds a mapping by category ID. Returns nil, nil when the category is unknown.
func (r *formCategoryRepositoryImpl) FindByID(ctx context.Context, categoryID uuid.UUID) (*domain.FormCategoryMapping, error) {
	var mapping domain.FormCategoryMapping
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).First(&mapping).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mapping, nil
}

// FindByIDs finds mappings for several categories
func (r *formCategoryRepositoryImpl) FindByIDs(ctx context.Context, categoryIDs []uuid.UUID) ([]*domain.FormCategoryMapping, error) {
	if len(categoryIDs) == 0 {
		return []*domain.FormCategoryMapping{}, nil
	}
	var mappings []*domain.FormCategoryMapping
	if err := r.db.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// FindEligible returns categories that may carry a form, with their template preloaded
func (r *formCategoryRepositoryImpl) FindEligible(ctx context.Context) ([]*domain.FormCategoryMapping, error) {
	var mappings []*domain.FormCategoryMapping
	if err := r.db.WithContext(ctx).
		Preload("FormTemplate").
		Where("eligible = ?", true).
		Order("category_name ASC").
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// FindByTemplateID returns the categories mapped to a template
func (r *formCategoryRepositoryImpl) FindByTemplateID(ctx context.Context, templateID uuid.UUID) ([]*domain.FormCategoryMapping, error) {
	var mappings []*domain.FormCategoryMapping
	if err := r.db.WithContext(ctx).
		Where("form_template_id = ?", templateID).
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// Upsert creates a category or updates its name and eligibility.
// The mapped template is left untouched.
func (r *formCategoryRepositoryImpl) Upsert(ctx context.Context, mapping *domain.FormCategoryMapping) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"category_name", "eligible", "updated_at"}),
	}).Create(mapping).Error
}

// SetTemplate replaces the template of one category and keeps
// form_templates.category_id in step, in a single transaction
func (r *formCategoryRepositoryImpl) SetTemplate(ctx context.Context, categoryID uuid.UUID, templateID *uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return setCategoryTemplate(tx, categoryID, templateID)
	})
}

// setCategoryTemplate points a category at templateID (or at nothing) inside
// tx. The category must exist.
func setCategoryTemplate(tx *gorm.DB, categoryID uuid.UUID, templateID *uuid.UUID) error {
	var mapping domain.FormCategoryMapping
	if err := tx.Where("category_id = ?", categoryID).First(&mapping).Error; err != nil {
		return err
	}

	// the previous template no longer belongs to this category
	if mapping.FormTemplateID != nil {
		if err := tx.Model(&domain.FormTemplate{}).
			Where("id = ? AND category_id = ?", *mapping.FormTemplateID, categoryID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
	}

	if templateID != nil {
		// a template maps to at most one category
		if err := tx.Model(&domain.FormCategoryMapping{}).
			Where("form_template_id = ? AND category_id <> ?", *templateID, categoryID).
			Update("form_template_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.FormTemplate{}).
			Where("id = ?", *templateID).
			Update("category_id", categoryID).Error; err != nil {
			return err
		}
	}

	return tx.Model(&domain.FormCategoryMapping{}).
		Where("category_id = ?", categoryID).
		Update("form_template_id", templateID).Error
}
