package domain

import (
	"time"

	"github.com/google/uuid"
)

// UploadStatus represents the lifecycle state of an uploaded file
type UploadStatus string

const (
	UploadStatusTemp      UploadStatus = "TEMP"      // uploaded, not yet referenced by a submission
	UploadStatusConfirmed UploadStatus = "CONFIRMED" // referenced by a submission
)

// FormUpload is a file uploaded for a file element.
// FileKey stores the S3 object key, not a full URL.
type FormUpload struct {
	BaseModel
	ElementID    uuid.UUID    `gorm:"type:uuid;not null;index:idx_form_uploads_element_id" json:"element_id"`
	SubmissionID *uuid.UUID   `gorm:"type:uuid;index:idx_form_uploads_submission_id" json:"submission_id"`
	Status       UploadStatus `gorm:"type:varchar(20);not null;default:'TEMP';index:idx_form_uploads_status" json:"status"`
	FileName     string       `gorm:"type:varchar(255);not null" json:"file_name"`
	FileKey      string       `gorm:"type:text;not null" json:"file_key"`
	FileSize     int64        `gorm:"not null" json:"file_size"`
	ContentType  string       `gorm:"type:varchar(100);not null" json:"content_type"`
	UploadedBy   uuid.UUID    `gorm:"type:uuid;not null" json:"uploaded_by"`
	ExpiresAt    *time.Time   `gorm:"index:idx_form_uploads_expires_at" json:"expires_at"`
}

// TableName specifies the table name for FormUpload
func (FormUpload) TableName() string {
	return "form_uploads"
}
