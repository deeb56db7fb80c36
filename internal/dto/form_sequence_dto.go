package dto

import (
	"github.com/google/uuid"

	"form-template-api/internal/render"
)

// StartSequenceRequest starts a wizard for the categories present in a cart or order.
// @Description customerId is only read when the request is not authenticated.
type StartSequenceRequest struct {
	CategoryIDs []uuid.UUID `json:"categoryIds" binding:"required"`
	OrderID     *uuid.UUID  `json:"orderId"`
	CustomerID  *uuid.UUID  `json:"customerId"`
}

// UpdateCartRequest reports the new category set after a cart change
type UpdateCartRequest struct {
	CategoryIDs []uuid.UUID `json:"categoryIds" binding:"required"`
}

// SubmitStepRequest holds values keyed by element id
type SubmitStepRequest struct {
	Values map[string]interface{} `json:"values"`
}

// FileRefDTO points at an upload
type FileRefDTO struct {
	UploadID uuid.UUID `json:"uploadId" binding:"required"`
	Name     string    `json:"name"`
}

// SelectionRequest stages a date or a file for the current step
type SelectionRequest struct {
	ElementID uuid.UUID   `json:"elementId" binding:"required"`
	Date      *string     `json:"date" example:"2025-01-31"`
	File      *FileRefDTO `json:"file"`
}

// SequenceStepSummary names one step
type SequenceStepSummary struct {
	TemplateID uuid.UUID `json:"templateId"`
	Name       string    `json:"name"`
}

// SequenceStepResponse is the current step, rendered
type SequenceStepResponse struct {
	TemplateID  uuid.UUID      `json:"templateId"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Fields      []render.Field `json:"fields"`
}

// SequenceResponse describes a wizard
type SequenceResponse struct {
	SequenceID       uuid.UUID             `json:"sequenceId"`
	Phase            string                `json:"phase"`
	NoApplicableForm bool                  `json:"noApplicableForm"`
	StepIndex        int                   `json:"stepIndex"`
	TotalSteps       int                   `json:"totalSteps"`
	Steps            []SequenceStepSummary `json:"steps"`
	Current          *SequenceStepResponse `json:"current,omitempty"`
	SubmissionIDs    []uuid.UUID           `json:"submissionIds,omitempty"`
}
