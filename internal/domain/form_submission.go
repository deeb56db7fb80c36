package domain

import "github.com/google/uuid"

// SubmissionStatus represents the processing state of a submission
type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "pending"
	SubmissionStatusCompleted SubmissionStatus = "completed"
	SubmissionStatusCancelled SubmissionStatus = "cancelled"
)

// IsValid reports whether s is a known status
func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusCompleted, SubmissionStatusCancelled:
		return true
	}
	return false
}

// FieldValue is one submitted value. Value is used by text-like and choice
// elements, FileUploadID by file elements.
type FieldValue struct {
	ElementID    uuid.UUID  `json:"element_id"`
	Value        *string    `json:"value"`
	FileUploadID *uuid.UUID `json:"file"`
}

// FormSubmission records the values collected for one template
type FormSubmission struct {
	BaseModel
	TemplateID uuid.UUID             `gorm:"type:uuid;not null;index:idx_form_submissions_template_id" json:"template_id"`
	CustomerID uuid.UUID             `gorm:"type:uuid;not null;index:idx_form_submissions_customer_id" json:"customer_id"`
	OrderID    *uuid.UUID            `gorm:"type:uuid;index:idx_form_submissions_order_id" json:"order_id"`
	SequenceID *uuid.UUID            `gorm:"type:uuid;index:idx_form_submissions_sequence_id" json:"sequence_id"`
	Status     SubmissionStatus      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Values     []FormSubmissionValue `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"values"`
}

// TableName specifies the table name for FormSubmission
func (FormSubmission) TableName() string {
	return "form_submissions"
}

// FormSubmissionValue is the persisted form of FieldValue
type FormSubmissionValue struct {
	BaseModel
	SubmissionID uuid.UUID  `gorm:"type:uuid;not null;index:idx_form_submission_values_submission_id" json:"submission_id"`
	ElementID    uuid.UUID  `gorm:"type:uuid;not null" json:"element_id"`
	Value        *string    `gorm:"type:text" json:"value"`
	FileUploadID *uuid.UUID `gorm:"type:uuid" json:"file_upload_id"`
	Position     int        `gorm:"type:int;not null;default:0" json:"position"`
}

// TableName specifies the table name for FormSubmissionValue
func (FormSubmissionValue) TableName() string {
	return "form_submission_values"
}
