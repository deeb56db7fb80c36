package dto

import (
	"time"

	"github.com/google/uuid"
)

// ElementOptionDTO is a {label, value} choice
type ElementOptionDTO struct {
	Label string `json:"label" yaml:"label" binding:"required,max=255"`
	Value string `json:"value" yaml:"value" binding:"required,max=255"`
}

// ValidationDTO is a custom validation rule
type ValidationDTO struct {
	Pattern string `json:"pattern" example:"^[A-Z]{2}[0-9]+$"`
	Flags   string `json:"flags,omitempty" example:"i"`
	Message string `json:"message" example:"Kode tidak valid"`
}

// CreateFormElementRequest represents the request to add an element.
// @Description label may be omitted; a label like "Text Input 2" is generated.
type CreateFormElementRequest struct {
	Type         string             `json:"type" binding:"required,oneof=input textarea select checkbox radio number date file email phone" example:"input"`
	Label        string             `json:"label" binding:"max=255"`
	Placeholder  *string            `json:"placeholder"`
	Required     bool               `json:"required"`
	DefaultValue *string            `json:"default_value"`
	Options      []ElementOptionDTO `json:"options" binding:"omitempty,dive"`
	Validation   *ValidationDTO     `json:"validation"`
	FileAccept   *string            `json:"file_accept"`
}

// UpdateFormElementRequest merges the provided fields into an element
type UpdateFormElementRequest struct {
	Type         *string             `json:"type" binding:"omitempty,oneof=input textarea select checkbox radio number date file email phone"`
	Label        *string             `json:"label" binding:"omitempty,max=255"`
	Placeholder  *string             `json:"placeholder"`
	Required     *bool               `json:"required"`
	DefaultValue *string             `json:"default_value"`
	Options      *[]ElementOptionDTO `json:"options"`
	Validation   *ValidationDTO      `json:"validation"`
	FileAccept   *string             `json:"file_accept"`
}

// ReorderElementsRequest is the full new ordering of a template's elements
type ReorderElementsRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

// FormElementResponse represents an element
type FormElementResponse struct {
	ID           uuid.UUID          `json:"id"`
	TemplateID   uuid.UUID          `json:"template_id"`
	Type         string             `json:"type"`
	Label        string             `json:"label"`
	Placeholder  *string            `json:"placeholder"`
	Required     bool               `json:"required"`
	DefaultValue *string            `json:"default_value"`
	Options      []ElementOptionDTO `json:"options"`
	Validation   *ValidationDTO     `json:"validation"`
	FileAccept   *string            `json:"file_accept"`
	Order        int                `json:"order"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
