package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"form-template-api/internal/domain"
	"form-template-api/internal/dto"
	"form-template-api/internal/metrics"
	"form-template-api/internal/render"
	"form-template-api/internal/repository"
	"form-template-api/internal/response"
)

// FormSubmissionService defines the interface for form submission business logic
type FormSubmissionService interface {
	CreateSubmission(ctx context.Context, customerID *uuid.UUID, req *dto.CreateFormSubmissionRequest) (*dto.FormSubmissionResponse, error)
	GetSubmission(ctx context.Context, submissionID uuid.UUID) (*dto.FormSubmissionResponse, error)
	ListSubmissions(ctx context.Context, filter dto.ListFormSubmissionsFilter, page, limit int) ([]dto.FormSubmissionResponse, int64, error)
}

// formSubmissionServiceImpl is the implementation of FormSubmissionService
type formSubmissionServiceImpl struct {
	templateRepo   repository.FormTemplateRepository
	submissionRepo repository.FormSubmissionRepository
	uploadRepo     repository.FormUploadRepository
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewFormSubmissionService creates a new instance of FormSubmissionService
func NewFormSubmissionService(
	templateRepo repository.FormTemplateRepository,
	submissionRepo repository.FormSubmissionRepository,
	uploadRepo repository.FormUploadRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) FormSubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &formSubmissionServiceImpl{
		templateRepo:   templateRepo,
		submissionRepo: submissionRepo,
		uploadRepo:     uploadRepo,
		metrics:        m,
		logger:         logger,
	}
}

// CreateSubmission validates values against the template and stores them.
// customerID comes from the authenticated user and takes precedence over
// the request body. Referenced uploads are confirmed in the same transaction.
func (s *formSubmissionServiceImpl) CreateSubmission(ctx context.Context, customerID *uuid.UUID, req *dto.CreateFormSubmissionRequest) (*dto.FormSubmissionResponse, error) {
	if customerID == nil {
		customerID = req.CustomerID
	}
	if customerID == nil || *customerID == uuid.Nil {
		return nil, response.NewValidationError("customer_id is required", "")
	}

	status := domain.SubmissionStatusPending
	if req.Status != "" {
		status = domain.SubmissionStatus(req.Status)
		if !status.IsValid() {
			return nil, response.NewValidationError(fmt.Sprintf("Invalid status: %s", req.Status), "")
		}
	}

	template, err := s.templateRepo.FindByIDWithElements(ctx, req.TemplateID)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Form template not found", "")
		}
		return nil, internalError("Failed to fetch form template", err)
	}

	values := make([]domain.FieldValue, len(req.Values))
	for i, v := range req.Values {
		values[i] = domain.FieldValue{ElementID: v.ElementID, Value: v.Value, FileUploadID: v.File}
	}
	state, fields := render.DecodeRecords(template, values)
	if fields != nil {
		s.metrics.RecordValidationFailure("submission")
		return nil, response.NewFormValidationError(fields)
	}
	if errs := render.Validate(template, state); errs != nil {
		s.metrics.RecordValidationFailure("submission")
		return nil, response.NewFormValidationError(errs)
	}
	records := render.Records(template, state)

	uploadErrs, err := checkUploads(ctx, s.uploadRepo, *customerID, records)
	if err != nil {
		return nil, internalError("Failed to fetch uploads", err)
	}
	if uploadErrs != nil {
		s.metrics.RecordValidationFailure("submission")
		return nil, response.NewFormValidationError(uploadErrs)
	}

	submission := newSubmission(template.ID, *customerID, req.OrderID, nil, status, records)
	if err := s.submissionRepo.CreateBatch(ctx, []*domain.FormSubmission{submission}); err != nil {
		return nil, internalError("Failed to create form submission", err)
	}

	s.metrics.AddSubmissionsCreated(1)
	s.logger.Info("Form submission created",
		zap.String("submission_id", submission.ID.String()),
		zap.String("template_id", template.ID.String()),
	)

	return toSubmissionResponse(submission), nil
}

// GetSubmission retrieves a submission with its values
func (s *formSubmissionServiceImpl) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*dto.FormSubmissionResponse, error) {
	submission, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Form submission not found", "")
		}
		return nil, internalError("Failed to fetch form submission", err)
	}
	return toSubmissionResponse(submission), nil
}

// ListSubmissions returns a page of submissions, newest first
func (s *formSubmissionServiceImpl) ListSubmissions(ctx context.Context, filter dto.ListFormSubmissionsFilter, page, limit int) ([]dto.FormSubmissionResponse, int64, error) {
	page, limit = normalizePagination(page, limit)

	submissions, total, err := s.submissionRepo.List(ctx, repository.SubmissionFilter{
		TemplateID: filter.TemplateID,
		OrderID:    filter.OrderID,
		CustomerID: filter.CustomerID,
	}, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, internalError("Failed to fetch form submissions", err)
	}

	out := make([]dto.FormSubmissionResponse, len(submissions))
	for i, sub := range submissions {
		out[i] = *toSubmissionResponse(sub)
	}
	return out, total, nil
}

func newSubmission(templateID, customerID uuid.UUID, orderID, sequenceID *uuid.UUID, status domain.SubmissionStatus, records []domain.FieldValue) *domain.FormSubmission {
	values := make([]domain.FormSubmissionValue, len(records))
	for i, rec := range records {
		values[i] = domain.FormSubmissionValue{
			ElementID:    rec.ElementID,
			Value:        rec.Value,
			FileUploadID: rec.FileUploadID,
			Position:     i,
		}
	}
	return &domain.FormSubmission{
		TemplateID: templateID,
		CustomerID: customerID,
		OrderID:    orderID,
		SequenceID: sequenceID,
		Status:     status,
		Values:     values,
	}
}

func toSubmissionResponse(sub *domain.FormSubmission) *dto.FormSubmissionResponse {
	values := make([]dto.FieldValueDTO, len(sub.Values))
	for i, v := range sub.Values {
		values[i] = dto.FieldValueDTO{ElementID: v.ElementID, Value: v.Value, File: v.FileUploadID}
	}
	return &dto.FormSubmissionResponse{
		ID:         sub.ID,
		TemplateID: sub.TemplateID,
		CustomerID: sub.CustomerID,
		OrderID:    sub.OrderID,
		SequenceID: sub.SequenceID,
		Status:     string(sub.Status),
		Values:     values,
		CreatedAt:  sub.CreatedAt,
	}
}
