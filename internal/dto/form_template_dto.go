package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateFormTemplateRequest represents the request to create a form template
type CreateFormTemplateRequest struct {
	Name        string     `json:"name" binding:"required,max=255" example:"Kartu Nama"`
	Description string     `json:"description" binding:"max=2000" example:"Detail pesanan kartu nama"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
}

// UpdateFormTemplateRequest replaces a template's metadata.
// @Description Only name, description and category_id can be changed; elements have their own endpoints.
// @Description A null category_id removes the category association.
type UpdateFormTemplateRequest struct {
	Name        string     `json:"name" binding:"required,max=255" example:"Kartu Nama Premium"`
	Description string     `json:"description" binding:"max=2000"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// FormTemplateResponse represents a template. Elements are omitted in list responses.
type FormTemplateResponse struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	CategoryID   *uuid.UUID            `json:"category_id"`
	ElementCount int                   `json:"element_count"`
	Elements     []FormElementResponse `json:"elements,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// PaginatedFormTemplatesResponse is a page of templates
type PaginatedFormTemplatesResponse struct {
	Items   []FormTemplateResponse `json:"items"`
	Total   int64                  `json:"total"`
	Page    int                    `json:"page"`
	Limit   int                    `json:"limit"`
	HasMore bool                   `json:"hasMore"`
}

// ImportFormTemplateRequest is the YAML document accepted by the import endpoint.
// Element validation may use the "/pattern/flags" notation.
type ImportFormTemplateRequest struct {
	Name        string                  `yaml:"name" json:"name"`
	Description string                  `yaml:"description" json:"description"`
	CategoryID  string                  `yaml:"category_id" json:"category_id"`
	Elements    []ImportFormElementSpec `yaml:"elements" json:"elements"`
}

// ImportFormElementSpec is one element of an imported template
type ImportFormElementSpec struct {
	Type              string             `yaml:"type"`
	Label             string             `yaml:"label"`
	Placeholder       *string            `yaml:"placeholder"`
	Required          bool               `yaml:"required"`
	DefaultValue      *string            `yaml:"default_value"`
	Options           []ElementOptionDTO `yaml:"options"`
	Validation        string             `yaml:"validation"`
	ValidationMessage string             `yaml:"validation_message"`
	FileAccept        *string            `yaml:"file_accept"`
}
