package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"form-template-api/internal/domain"
	"form-template-api/internal/dto"
	"form-template-api/internal/render"
	"form-template-api/internal/service"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// MockFormTemplateService is a mock implementation of FormTemplateService
type MockFormTemplateService struct {
	CreateTemplateFunc func(ctx context.Context, req *dto.CreateFormTemplateRequest) (*dto.FormTemplateResponse, error)
	GetTemplateFunc    func(ctx context.Context, templateID uuid.UUID) (*dto.FormTemplateResponse, error)
	ListTemplatesFunc  func(ctx context.Context, page, limit int) (*dto.PaginatedFormTemplatesResponse, error)
	UpdateTemplateFunc func(ctx context.Context, templateID uuid.UUID, req *dto.UpdateFormTemplateRequest) (*dto.FormTemplateResponse, error)
	DeleteTemplateFunc func(ctx context.Context, templateID uuid.UUID) error
	ImportTemplateFunc func(ctx context.Context, data []byte) (*dto.FormTemplateResponse, error)
	RenderTemplateFunc func(ctx context.Context, templateID uuid.UUID) ([]render.Field, error)
}

func (m *MockFormTemplateService) CreateTemplate(ctx context.Context, req *dto.CreateFormTemplateRequest) (*dto.FormTemplateResponse, error) {
	if m.CreateTemplateFunc != nil {
		return m.CreateTemplateFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockFormTemplateService) GetTemplate(ctx context.Context, templateID uuid.UUID) (*dto.FormTemplateResponse, error) {
	if m.GetTemplateFunc != nil {
		return m.GetTemplateFunc(ctx, templateID)
	}
	return nil, nil
}

func (m *MockFormTemplateService) ListTemplates(ctx context.Context, page, limit int) (*dto.PaginatedFormTemplatesResponse, error) {
	if m.ListTemplatesFunc != nil {
		return m.ListTemplatesFunc(ctx, page, limit)
	}
	return &dto.PaginatedFormTemplatesResponse{}, nil
}

func (m *MockFormTemplateService) UpdateTemplate(ctx context.Context, templateID uuid.UUID, req *dto.UpdateFormTemplateRequest) (*dto.FormTemplateResponse, error) {
	if m.UpdateTemplateFunc != nil {
		return m.UpdateTemplateFunc(ctx, templateID, req)
	}
	return nil, nil
}

func (m *MockFormTemplateService) DeleteTemplate(ctx context.Context, templateID uuid.UUID) error {
	if m.DeleteTemplateFunc != nil {
		return m.DeleteTemplateFunc(ctx, templateID)
	}
	return nil
}

func (m *MockFormTemplateService) ImportTemplate(ctx context.Context, data []byte) (*dto.FormTemplateResponse, error) {
	if m.ImportTemplateFunc != nil {
		return m.ImportTemplateFunc(ctx, data)
	}
	return nil, nil
}

func (m *MockFormTemplateService) RenderTemplate(ctx context.Context, templateID uuid.UUID) ([]render.Field, error) {
	if m.RenderTemplateFunc != nil {
		return m.RenderTemplateFunc(ctx, templateID)
	}
	return nil, nil
}

// MockFormCategoryService is a mock implementation of FormCategoryService
type MockFormCategoryService struct {
	ListEligibleFunc           func(ctx context.Context) ([]dto.FormCategoryResponse, error)
	UpsertCategoryFunc         func(ctx context.Context, categoryID uuid.UUID, req *dto.UpsertCategoryRequest) (*dto.FormCategoryResponse, error)
	SetMappingFunc             func(ctx context.Context, categoryID uuid.UUID, templateID *uuid.UUID) (*dto.FormCategoryResponse, error)
	TemplateForFunc            func(ctx context.Context, categoryID uuid.UUID) (*dto.FormTemplateResponse, error)
	TemplatesForCategoriesFunc func(ctx context.Context, categoryIDs []uuid.UUID) ([]*domain.FormTemplate, error)
}

func (m *MockFormCategoryService) ListEligible(ctx context.Context) ([]dto.FormCategoryResponse, error) {
	if m.ListEligibleFunc != nil {
		return m.ListEligibleFunc(ctx)
	}
	return nil, nil
}

func (m *MockFormCategoryService) UpsertCategory(ctx context.Context, categoryID uuid.UUID, req *dto.UpsertCategoryRequest) (*dto.FormCategoryResponse, error) {
	if m.UpsertCategoryFunc != nil {
		return m.UpsertCategoryFunc(ctx, categoryID, req)
	}
	return nil, nil
}

func (m *MockFormCategoryService) SetMapping(ctx context.Context, categoryID uuid.UUID, templateID *uuid.UUID) (*dto.FormCategoryResponse, error) {
	if m.SetMappingFunc != nil {
		return m.SetMappingFunc(ctx, categoryID, templateID)
	}
	return nil, nil
}

func (m *MockFormCategoryService) TemplateFor(ctx context.Context, categoryID uuid.UUID) (*dto.FormTemplateResponse, error) {
	if m.TemplateForFunc != nil {
		return m.TemplateForFunc(ctx, categoryID)
	}
	return nil, nil
}

func (m *MockFormCategoryService) TemplatesForCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]*domain.FormTemplate, error) {
	if m.TemplatesForCategoriesFunc != nil {
		return m.TemplatesForCategoriesFunc(ctx, categoryIDs)
	}
	return nil, nil
}

// MockFormSubmissionService is a mock implementation of FormSubmissionService
type MockFormSubmissionService struct {
	CreateSubmissionFunc func(ctx context.Context, customerID *uuid.UUID, req *dto.CreateFormSubmissionRequest) (*dto.FormSubmissionResponse, error)
	GetSubmissionFunc    func(ctx context.Context, submissionID uuid.UUID) (*dto.FormSubmissionResponse, error)
	ListSubmissionsFunc  func(ctx context.Context, filter dto.ListFormSubmissionsFilter, page, limit int) ([]dto.FormSubmissionResponse, int64, error)
}

func (m *MockFormSubmissionService) CreateSubmission(ctx context.Context, customerID *uuid.UUID, req *dto.CreateFormSubmissionRequest) (*dto.FormSubmissionResponse, error) {
	if m.CreateSubmissionFunc != nil {
		return m.CreateSubmissionFunc(ctx, customerID, req)
	}
	return nil, nil
}

func (m *MockFormSubmissionService) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*dto.FormSubmissionResponse, error) {
	if m.GetSubmissionFunc != nil {
		return m.GetSubmissionFunc(ctx, submissionID)
	}
	return nil, nil
}

func (m *MockFormSubmissionService) ListSubmissions(ctx context.Context, filter dto.ListFormSubmissionsFilter, page, limit int) ([]dto.FormSubmissionResponse, int64, error) {
	if m.ListSubmissionsFunc != nil {
		return m.ListSubmissionsFunc(ctx, filter, page, limit)
	}
	return nil, 0, nil
}

// MockFormSequenceService is a mock implementation of FormSequenceService
type MockFormSequenceService struct {
	StartFunc      func(ctx context.Context, userID *uuid.UUID, req *dto.StartSequenceRequest) (*dto.SequenceResponse, error)
	GetFunc        func(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID) (*dto.SequenceResponse, error)
	SelectFunc     func(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID, req *dto.SelectionRequest) (*dto.SequenceResponse, error)
	SubmitStepFunc func(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID, req *dto.SubmitStepRequest) (*dto.SequenceResponse, error)
	GoBackFunc     func(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID) (*dto.SequenceResponse, error)
	UpdateCartFunc func(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID, req *dto.UpdateCartRequest) (*dto.SequenceResponse, error)
	CancelFunc     func(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID) error
}

func (m *MockFormSequenceService) Start(ctx context.Context, userID *uuid.UUID, req *dto.StartSequenceRequest) (*dto.SequenceResponse, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockFormSequenceService) Get(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID) (*dto.SequenceResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, sequenceID)
	}
	return nil, nil
}

func (m *MockFormSequenceService) Select(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID, req *dto.SelectionRequest) (*dto.SequenceResponse, error) {
	if m.SelectFunc != nil {
		return m.SelectFunc(ctx, userID, sequenceID, req)
	}
	return nil, nil
}

func (m *MockFormSequenceService) SubmitStep(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID, req *dto.SubmitStepRequest) (*dto.SequenceResponse, error) {
	if m.SubmitStepFunc != nil {
		return m.SubmitStepFunc(ctx, userID, sequenceID, req)
	}
	return nil, nil
}

func (m *MockFormSequenceService) GoBack(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID) (*dto.SequenceResponse, error) {
	if m.GoBackFunc != nil {
		return m.GoBackFunc(ctx, userID, sequenceID)
	}
	return nil, nil
}

func (m *MockFormSequenceService) UpdateCart(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID, req *dto.UpdateCartRequest) (*dto.SequenceResponse, error) {
	if m.UpdateCartFunc != nil {
		return m.UpdateCartFunc(ctx, userID, sequenceID, req)
	}
	return nil, nil
}

func (m *MockFormSequenceService) Cancel(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID) error {
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, userID, sequenceID)
	}
	return nil
}

var (
	_ service.FormTemplateService   = (*MockFormTemplateService)(nil)
	_ service.FormCategoryService   = (*MockFormCategoryService)(nil)
	_ service.FormSubmissionService = (*MockFormSubmissionService)(nil)
	_ service.FormSequenceService   = (*MockFormSequenceService)(nil)
)
