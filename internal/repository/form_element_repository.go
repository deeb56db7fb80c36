package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"form-template-api/internal/domain"
)

// FormElementRepository defines the interface for form element data access
type FormElementRepository interface {
	Append(ctx context.Context, element *domain.FormElement) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.FormElement, error)
	FindByTemplateID(ctx context.Context, templateID uuid.UUID) ([]*domain.FormElement, error)
	Update(ctx context.Context, element *domain.FormElement) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, templateID uuid.UUID, ids []uuid.UUID) error
}

// formElementRepositoryImpl is the GORM implementation of FormElementRepository
type formElementRepositoryImpl struct {
	db *gorm.DB
}

// NewFormElementRepository creates a new instance of FormElementRepository
func NewFormElementRepository(db *gorm.DB) FormElementRepository {
	return &formElementRepositoryImpl{db: db}
}

// Append creates an element at the end of its template: order = count + 1
func (r *formElementRepositoryImpl) Append(ctx context.Context, element *domain.FormElement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.FormElement{}).
			Where("template_id = ?", element.TemplateID).
			Count(&count).Error; err != nil {
			return err
		}
		element.Order = int(count) + 1
		return tx.Create(element).Error
	})
}

// FindByID finds an element by ID
func (r *formElementRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.FormElement, error) {
	var element domain.FormElement
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&element).Error; err != nil {
		return nil, err
	}
	return &element, nil
}

// FindByTemplateID finds all elements of a template ordered by display_order
func (r *formElementRepositoryImpl) FindByTemplateID(ctx context.Context, templateID uuid.UUID) ([]*domain.FormElement, error) {
	var elements []*domain.FormElement
	if err := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("display_order ASC").
		Find(&elements).Error; err != nil {
		return nil, err
	}
	return elements, nil
}

// Update saves an element. The order column is managed by Append, Delete and Reorder.
func (r *formElementRepositoryImpl) Update(ctx context.Context, element *domain.FormElement) error {
	return r.db.WithContext(ctx).Omit("display_order", "template_id", "created_at").Save(element).Error
}

// Delete soft deletes an element and closes the gap in its template's order
func (r *formElementRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var element domain.FormElement
		if err := tx.Where("id = ?", id).First(&element).Error; err != nil {
			return err
		}
		if err := tx.Delete(&element).Error; err != nil {
			return err
		}
		return tx.Model(&domain.FormElement{}).
			Where("template_id = ? AND display_order > ?", element.TemplateID, element.Order).
			Update("display_order", gorm.Expr("display_order - 1")).Error
	})
}

// Reorder assigns order i+1 to ids[i] in a single transaction. ids must be
// exactly the template's current elements; the service checks this first.
func (r *formElementRepositoryImpl) Reorder(ctx context.Context, templateID uuid.UUID, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			result := tx.Model(&domain.FormElement{}).
				Where("id = ? AND template_id = ?", id, templateID).
				Update("display_order", i+1)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected != 1 {
				return fmt.Errorf("element %s does not belong to template %s", id, templateID)
			}
		}
		return nil
	})
}
