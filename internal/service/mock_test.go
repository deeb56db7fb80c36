package service

import (
	"context"

	"github.com/google/uuid"

	"form-template-api/internal/client"
	"form-template-api/internal/domain"
	"form-template-api/internal/repository"
)

// MockFormElementRepository is a mock implementation of FormElementRepository
type MockFormElementRepository struct {
	AppendFunc           func(ctx context.Context, element *domain.FormElement) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.FormElement, error)
	FindByTemplateIDFunc func(ctx context.Context, templateID uuid.UUID) ([]*domain.FormElement, error)
	UpdateFunc           func(ctx context.Context, element *domain.FormElement) error
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
	ReorderFunc          func(ctx context.Context, templateID uuid.UUID, ids []uuid.UUID) error
}

func (m *MockFormElementRepository) Append(ctx context.Context, element *domain.FormElement) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, element)
	}
	return nil
}

func (m *MockFormElementRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FormElement, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockFormElementRepository) FindByTemplateID(ctx context.Context, templateID uuid.UUID) ([]*domain.FormElement, error) {
	if m.FindByTemplateIDFunc != nil {
		return m.FindByTemplateIDFunc(ctx, templateID)
	}
	return nil, nil
}

func (m *MockFormElementRepository) Update(ctx context.Context, element *domain.FormElement) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, element)
	}
	return nil
}

func (m *MockFormElementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockFormElementRepository) Reorder(ctx context.Context, templateID uuid.UUID, ids []uuid.UUID) error {
	if m.ReorderFunc != nil {
		return m.ReorderFunc(ctx, templateID, ids)
	}
	return nil
}

// MockFormCategoryRepository is a mock implementation of FormCategoryRepository
type MockFormCategoryRepository struct {
	FindByIDFunc         func(ctx context.Context, categoryID uuid.UUID) (*domain.FormCategoryMapping, error)
	FindByIDsFunc        func(ctx context.Context, categoryIDs []uuid.UUID) ([]*domain.FormCategoryMapping, error)
	FindEligibleFunc     func(ctx context.Context) ([]*domain.FormCategoryMapping, error)
	FindByTemplateIDFunc func(ctx context.Context, templateID uuid.UUID) ([]*domain.FormCategoryMapping, error)
	UpsertFunc           func(ctx context.Context, mapping *domain.FormCategoryMapping) error
	SetTemplateFunc      func(ctx context.Context, categoryID uuid.UUID, templateID *uuid.UUID) error
}

func (m *MockFormCategoryRepository) FindByID(ctx context.Context, categoryID uuid.UUID) (*domain.FormCategoryMapping, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, categoryID)
	}
	return nil, nil
}

func (m *MockFormCategoryRepository) FindByIDs(ctx context.Context, categoryIDs []uuid.UUID) ([]*domain.FormCategoryMapping, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, categoryIDs)
	}
	return nil, nil
}

func (m *MockFormCategoryRepository) FindEligible(ctx context.Context) ([]*domain.FormCategoryMapping, error) {
	if m.FindEligibleFunc != nil {
		return m.FindEligibleFunc(ctx)
	}
	return nil, nil
}

func (m *MockFormCategoryRepository) FindByTemplateID(ctx context.Context, templateID uuid.UUID) ([]*domain.FormCategoryMapping, error) {
	if m.FindByTemplateIDFunc != nil {
		return m.FindByTemplateIDFunc(ctx, templateID)
	}
	return nil, nil
}

func (m *MockFormCategoryRepository) Upsert(ctx context.Context, mapping *domain.FormCategoryMapping) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, mapping)
	}
	return nil
}

func (m *MockFormCategoryRepository) SetTemplate(ctx context.Context, categoryID uuid.UUID, templateID *uuid.UUID) error {
	if m.SetTemplateFunc != nil {
		return m.SetTemplateFunc(ctx, categoryID, templateID)
	}
	return nil
}

// failingSubmissionRepository wraps a repository and fails CreateBatch
type failingSubmissionRepository struct {
	repository.FormSubmissionRepository
	err error
}

func (r *failingSubmissionRepository) CreateBatch(ctx context.Context, submissions []*domain.FormSubmission) error {
	return r.err
}

// recordingOrderClient captures completion events
type recordingOrderClient struct {
	events []client.FormsCompletedEvent
}

func (c *recordingOrderClient) NotifyFormsCompleted(ctx context.Context, event client.FormsCompletedEvent) error {
	c.events = append(c.events, event)
	return nil
}

var (
	_ repository.FormElementRepository  = (*MockFormElementRepository)(nil)
	_ repository.FormCategoryRepository = (*MockFormCategoryRepository)(nil)
	_ client.OrderClient                = (*recordingOrderClient)(nil)
)
