package service

import (
	"context"
	"errors"
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"form-template-api/internal/domain"
	"form-template-api/internal/dto"
	"form-template-api/internal/render"
	"form-template-api/internal/repository"
	"form-template-api/internal/response"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100

	msgInvalidFile = "invalid file"
)

// plain text only; labels and descriptions are rendered by clients as-is
var textPolicy = bluemonday.StrictPolicy()

func sanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

func sanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := sanitizeText(*s)
	return &v
}

func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func internalError(message string, err error) *response.AppError {
	return response.NewAppError(response.ErrCodeInternal, message, err.Error())
}

// checkUploads verifies that every file referenced by records is a pending
// upload made for the same element by the same customer. Offending elements
// are returned as field errors.
func checkUploads(ctx context.Context, uploadRepo repository.FormUploadRepository, customerID uuid.UUID, records []domain.FieldValue) (render.FieldErrors, error) {
	var ids []uuid.UUID
	for _, rec := range records {
		if rec.FileUploadID != nil {
			ids = append(ids, *rec.FileUploadID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	uploads, err := uploadRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*domain.FormUpload, len(uploads))
	for _, u := range uploads {
		byID[u.ID] = u
	}

	var errs render.FieldErrors
	for _, rec := range records {
		if rec.FileUploadID == nil {
			continue
		}
		u, ok := byID[*rec.FileUploadID]
		valid := ok &&
			u.ElementID == rec.ElementID &&
			u.Status == domain.UploadStatusTemp &&
			(u.UploadedBy == uuid.Nil || u.UploadedBy == customerID)
		if !valid {
			if errs == nil {
				errs = make(render.FieldErrors)
			}
			errs[rec.ElementID.String()] = msgInvalidFile
		}
	}
	return errs, nil
}

func toElementResponse(el *domain.FormElement) dto.FormElementResponse {
	options := make([]dto.ElementOptionDTO, len(el.Options))
	for i, opt := range el.Options {
		options[i] = dto.ElementOptionDTO{Label: opt.Label, Value: opt.Value}
	}

	var validation *dto.ValidationDTO
	if el.Validation.HasPattern() || el.Validation.Message != "" {
		validation = &dto.ValidationDTO{
			Pattern: el.Validation.Pattern,
			Flags:   el.Validation.Flags,
			Message: el.Validation.Message,
		}
	}

	return dto.FormElementResponse{
		ID:           el.ID,
		TemplateID:   el.TemplateID,
		Type:         string(el.Type),
		Label:        el.Label,
		Placeholder:  el.Placeholder,
		Required:     el.Required,
		DefaultValue: el.DefaultValue,
		Options:      options,
		Validation:   validation,
		FileAccept:   el.FileAccept,
		Order:        el.Order,
		CreatedAt:    el.CreatedAt,
		UpdatedAt:    el.UpdatedAt,
	}
}

func toTemplateResponse(t *domain.FormTemplate, withElements bool) *dto.FormTemplateResponse {
	resp := &dto.FormTemplateResponse{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		CategoryID:   t.CategoryID,
		ElementCount: len(t.Elements),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if withElements {
		sorted := t.SortedElements()
		resp.Elements = make([]dto.FormElementResponse, len(sorted))
		for i := range sorted {
			resp.Elements[i] = toElementResponse(&sorted[i])
		}
	}
	return resp
}
