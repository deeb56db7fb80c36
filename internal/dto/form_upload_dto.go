package dto

import "github.com/google/uuid"

// PresignedURLRequest represents the request to upload a file for a file element
type PresignedURLRequest struct {
	ElementID   uuid.UUID `json:"elementId" binding:"required"`
	FileName    string    `json:"fileName" binding:"required,max=255" example:"desain-kartu.pdf"`
	ContentType string    `json:"contentType" binding:"required" example:"application/pdf"`
	FileSize    int64     `json:"fileSize" binding:"required,min=1" example:"1048576"`
}

// PresignedURLResponse carries the upload URL and the id to reference in submissions
type PresignedURLResponse struct {
	UploadID  uuid.UUID `json:"uploadId"`
	UploadURL string    `json:"uploadUrl"`
	FileKey   string    `json:"fileKey"`
	FileURL   string    `json:"fileUrl"`
	ExpiresIn int       `json:"expiresIn"`
}
