package dto

import (
	"time"

	"github.com/google/uuid"
)

// FormCategoryResponse represents a product category and its mapped template
type FormCategoryResponse struct {
	CategoryID       uuid.UUID  `json:"categoryId"`
	CategoryName     string     `json:"categoryName"`
	FormTemplateID   *uuid.UUID `json:"formTemplateId"`
	FormTemplateName string     `json:"formTemplateName,omitempty"`
	Eligible         bool       `json:"eligible"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// UpsertCategoryRequest registers or renames a product category
type UpsertCategoryRequest struct {
	Name     string `json:"name" binding:"required,max=255" example:"Kartu Nama"`
	Eligible *bool  `json:"eligible"`
}

// SetMappingRequest assigns a template to a category. null clears it.
type SetMappingRequest struct {
	FormTemplateID *uuid.UUID `json:"formTemplateId"`
}
