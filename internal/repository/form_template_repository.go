package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"form-template-api/internal/domain"
)

// FormTemplateRepository defines the interface for form template data access
type FormTemplateRepository interface {
	Create(ctx context.Context, template *domain.FormTemplate) error
	CreateWithElements(ctx context.Context, template *domain.FormTemplate) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.FormTemplate, error)
	FindByIDWithElements(ctx context.Context, id uuid.UUID) (*domain.FormTemplate, error)
	FindByIDsWithElements(ctx context.Context, ids []uuid.UUID) ([]*domain.FormTemplate, error)
	List(ctx context.Context, offset, limit int) ([]*domain.FormTemplate, int64, error)
	CountElements(ctx context.Context, templateIDs []uuid.UUID) (map[uuid.UUID]int, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, template *domain.FormTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// formTemplateRepositoryImpl is the GORM implementation of FormTemplateRepository
type formTemplateRepositoryImpl struct {
	db *gorm.DB
}

// NewFormTemplateRepository creates a new instance of FormTemplateRepository
func NewFormTemplateRepository(db *gorm.DB) FormTemplateRepository {
	return &formTemplateRepositoryImpl{db: db}
}

func preloadOrderedElements(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC")
}

// Create creates a new template without elements. When the template has a
// category, the category is mapped to it in the same transaction.
func (r *formTemplateRepositoryImpl) Create(ctx context.Context, template *domain.FormTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Elements").Create(template).Error; err != nil {
			return err
		}
		return mapTemplateCategory(tx, template)
	})
}

// CreateWithElements creates a template, its elements and its category
// mapping in one transaction. Element orders are assigned from their position
// in the slice.
func (r *formTemplateRepositoryImpl) CreateWithElements(ctx context.Context, template *domain.FormTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		elements := template.Elements
		template.Elements = nil
		if err := tx.Create(template).Error; err != nil {
			return err
		}
		for i := range elements {
			elements[i].TemplateID = template.ID
			elements[i].Order = i + 1
		}
		if len(elements) > 0 {
			if err := tx.Create(&elements).Error; err != nil {
				return err
			}
		}
		template.Elements = elements
		return mapTemplateCategory(tx, template)
	})
}

func mapTemplateCategory(tx *gorm.DB, template *domain.FormTemplate) error {
	if template.CategoryID == nil {
		return nil
	}
	return setCategoryTemplate(tx, *template.CategoryID, &template.ID)
}

// FindByID finds a template by ID without its elements
func (r *formTemplateRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.FormTemplate, error) {
	var template domain.FormTemplate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// FindByIDWithElements finds a template with its elements ordered by display_order
func (r *formTemplateRepositoryImpl) FindByIDWithElements(ctx context.Context, id uuid.UUID) (*domain.FormTemplate, error) {
	var template domain.FormTemplate
	if err := r.db.WithContext(ctx).
		Preload("Elements", preloadOrderedElements).
		Where("id = ?", id).
		First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// FindByIDsWithElements finds templates by IDs. Missing ids are skipped.
func (r *formTemplateRepositoryImpl) FindByIDsWithElements(ctx context.Context, ids []uuid.UUID) ([]*domain.FormTemplate, error) {
	if len(ids) == 0 {
		return []*domain.FormTemplate{}, nil
	}

	var templates []*domain.FormTemplate
	if err := r.db.WithContext(ctx).
		Preload("Elements", preloadOrderedElements).
		Where("id IN ?", ids).
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// List returns a page of templates ordered by creation time, newest first
func (r *formTemplateRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*domain.FormTemplate, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.FormTemplate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var templates []*domain.FormTemplate
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&templates).Error; err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

type elementCount struct {
	TemplateID uuid.UUID
	Count      int
}

// CountElements returns the number of elements per template
func (r *formTemplateRepositoryImpl) CountElements(ctx context.Context, templateIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(templateIDs))
	if len(templateIDs) == 0 {
		return counts, nil
	}

	var rows []elementCount
	if err := r.db.WithContext(ctx).
		Model(&domain.FormElement{}).
		Select("template_id, COUNT(*) AS count").
		Where("template_id IN ?", templateIDs).
		Group("template_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TemplateID] = row.Count
	}
	return counts, nil
}

// Count returns the number of templates
func (r *formTemplateRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.FormTemplate{}).Count(&total).Error
	return total, err
}

// Update saves template metadata. Elements are never written here. Moving a
// template to another category releases the old mapping and claims the new
// one in the same transaction.
func (r *formTemplateRepositoryImpl) Update(ctx context.Context, template *domain.FormTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current domain.FormTemplate
		if err := tx.Select("id", "category_id").Where("id = ?", template.ID).First(&current).Error; err != nil {
			return err
		}

		if err := tx.Model(template).
			Updates(map[string]interface{}{
				"name":        template.Name,
				"description": template.Description,
				"category_id": template.CategoryID,
			}).Error; err != nil {
			return err
		}

		if sameCategory(current.CategoryID, template.CategoryID) {
			return nil
		}
		if current.CategoryID != nil {
			if err := tx.Model(&domain.FormCategoryMapping{}).
				Where("category_id = ? AND form_template_id = ?", *current.CategoryID, template.ID).
				Update("form_template_id", nil).Error; err != nil {
				return err
			}
		}
		return mapTemplateCategory(tx, template)
	})
}

func sameCategory(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Delete soft deletes a template and its elements, and clears every category
// mapping that pointed to it
func (r *formTemplateRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.FormCategoryMapping{}).
			Where("form_template_id = ?", id).
			Update("form_template_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", id).Delete(&domain.FormElement{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&domain.FormTemplate{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
