package dto

import (
	"time"

	"github.com/google/uuid"
)

// FieldValueDTO is one submitted value. Checkbox values are JSON arrays.
type FieldValueDTO struct {
	ElementID uuid.UUID  `json:"element_id" binding:"required"`
	Value     *string    `json:"value"`
	File      *uuid.UUID `json:"file"`
}

// CreateFormSubmissionRequest records one template's submission
type CreateFormSubmissionRequest struct {
	TemplateID uuid.UUID       `json:"template_id" binding:"required"`
	CustomerID *uuid.UUID      `json:"customer_id"`
	OrderID    *uuid.UUID      `json:"order_id"`
	Status     string          `json:"status" binding:"omitempty,oneof=pending completed cancelled"`
	Values     []FieldValueDTO `json:"values" binding:"dive"`
}

// FormSubmissionResponse represents a stored submission
type FormSubmissionResponse struct {
	ID         uuid.UUID       `json:"id"`
	TemplateID uuid.UUID       `json:"template_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	OrderID    *uuid.UUID      `json:"order_id"`
	SequenceID *uuid.UUID      `json:"sequence_id"`
	Status     string          `json:"status"`
	Values     []FieldValueDTO `json:"values"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ListFormSubmissionsFilter narrows a submission listing
type ListFormSubmissionsFilter struct {
	TemplateID *uuid.UUID
	OrderID    *uuid.UUID
	CustomerID *uuid.UUID
}
