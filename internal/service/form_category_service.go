package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"form-template-api/internal/domain"
	"form-template-api/internal/dto"
	"form-template-api/internal/repository"
	"form-template-api/internal/response"
)

// FormCategoryService resolves which template, if any, a product category requires
type FormCategoryService interface {
	ListEligible(ctx context.Context) ([]dto.FormCategoryResponse, error)
	UpsertCategory(ctx context.Context, categoryID uuid.UUID, req *dto.UpsertCategoryRequest) (*dto.FormCategoryResponse, error)
	SetMapping(ctx context.Context, categoryID uuid.UUID, templateID *uuid.UUID) (*dto.FormCategoryResponse, error)
	TemplateFor(ctx context.Context, categoryID uuid.UUID) (*dto.FormTemplateResponse, error)
	TemplatesForCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]*domain.FormTemplate, error)
}

// formCategoryServiceImpl is the implementation of FormCategoryService
type formCategoryServiceImpl struct {
	categoryRepo repository.FormCategoryRepository
	templateRepo repository.FormTemplateRepository
	logger       *zap.Logger
}

// NewFormCategoryService creates a new instance of FormCategoryService
func NewFormCategoryService(
	categoryRepo repository.FormCategoryRepository,
	templateRepo repository.FormTemplateRepository,
	logger *zap.Logger,
) FormCategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &formCategoryServiceImpl{
		categoryRepo: categoryRepo,
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// ListEligible returns the categories that may carry a form, by name
func (s *formCategoryServiceImpl) ListEligible(ctx context.Context) ([]dto.FormCategoryResponse, error) {
	mappings, err := s.categoryRepo.FindEligible(ctx)
	if err != nil {
		return nil, internalError("Failed to fetch form categories", err)
	}

	out := make([]dto.FormCategoryResponse, len(mappings))
	for i, m := range mappings {
		out[i] = toCategoryResponse(m)
	}
	return out, nil
}

// UpsertCategory registers a category or renames it. New categories are
// eligible unless stated otherwise; the mapped template is kept.
func (s *formCategoryServiceImpl) UpsertCategory(ctx context.Context, categoryID uuid.UUID, req *dto.UpsertCategoryRequest) (*dto.FormCategoryResponse, error) {
	name := sanitizeText(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Category name is required", "")
	}

	existing, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, internalError("Failed to fetch form category", err)
	}

	mapping := &domain.FormCategoryMapping{
		CategoryID:   categoryID,
		CategoryName: name,
		Eligible:     true,
	}
	if existing != nil {
		mapping.Eligible = existing.Eligible
		mapping.FormTemplateID = existing.FormTemplateID
		mapping.CreatedAt = existing.CreatedAt
	}
	if req.Eligible != nil {
		mapping.Eligible = *req.Eligible
	}

	if err := s.categoryRepo.Upsert(ctx, mapping); err != nil {
		return nil, internalError("Failed to save form category", err)
	}

	resp := toCategoryResponse(mapping)
	return &resp, nil
}

// SetMapping assigns templateID to a category, or clears it when nil.
// Reassigning the current template writes nothing.
func (s *formCategoryServiceImpl) SetMapping(ctx context.Context, categoryID uuid.UUID, templateID *uuid.UUID) (*dto.FormCategoryResponse, error) {
	mapping, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, internalError("Failed to fetch form category", err)
	}
	if mapping == nil {
		return nil, response.NewNotFoundError("Form category not found", "")
	}

	var template *domain.FormTemplate
	if templateID != nil {
		if !mapping.Eligible {
			return nil, response.NewUnprocessableError("Form category is not eligible for a form template", "")
		}
		template, err = s.templateRepo.FindByID(ctx, *templateID)
		if err != nil {
			if isNotFound(err) {
				return nil, response.NewNotFoundError("Form template not found", "")
			}
			return nil, internalError("Failed to fetch form template", err)
		}
	}

	if !sameUUID(mapping.FormTemplateID, templateID) {
		if err := s.categoryRepo.SetTemplate(ctx, categoryID, templateID); err != nil {
			return nil, internalError("Failed to update form category", err)
		}
		mapping.FormTemplateID = templateID

		s.logger.Info("Form category mapping changed",
			zap.String("category_id", categoryID.String()),
			zap.Any("template_id", templateID),
		)
	}

	mapping.FormTemplate = template
	resp := toCategoryResponse(mapping)
	return &resp, nil
}

// TemplateFor returns the template a category requires, or nil when the
// category needs no form
func (s *formCategoryServiceImpl) TemplateFor(ctx context.Context, categoryID uuid.UUID) (*dto.FormTemplateResponse, error) {
	template, err := s.templateFor(ctx, categoryID)
	if err != nil || template == nil {
		return nil, err
	}
	return toTemplateResponse(template, true), nil
}

// TemplatesForCategories resolves the templates for a set of categories in
// first appearance order. Categories without a form are skipped and a
// template shared by several categories appears once.
func (s *formCategoryServiceImpl) TemplatesForCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]*domain.FormTemplate, error) {
	mappings, err := s.categoryRepo.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, internalError("Failed to fetch form categories", err)
	}
	byCategory := make(map[uuid.UUID]*domain.FormCategoryMapping, len(mappings))
	for _, m := range mappings {
		byCategory[m.CategoryID] = m
	}

	seen := make(map[uuid.UUID]struct{})
	var templateIDs []uuid.UUID
	for _, id := range categoryIDs {
		m, ok := byCategory[id]
		if !ok || !m.Eligible || m.FormTemplateID == nil {
			continue
		}
		if _, dup := seen[*m.FormTemplateID]; dup {
			continue
		}
		seen[*m.FormTemplateID] = struct{}{}
		templateIDs = append(templateIDs, *m.FormTemplateID)
	}

	templates, err := s.templateRepo.FindByIDsWithElements(ctx, templateIDs)
	if err != nil {
		return nil, internalError("Failed to fetch form templates", err)
	}
	byID := make(map[uuid.UUID]*domain.FormTemplate, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	ordered := make([]*domain.FormTemplate, 0, len(templateIDs))
	for _, id := range templateIDs {
		t, ok := byID[id]
		if !ok {
			s.logger.Warn("Category mapped to a missing form template", zap.String("template_id", id.String()))
			continue
		}
		ordered = append(ordered, t)
	}
	return ordered, nil
}

func (s *formCategoryServiceImpl) templateFor(ctx context.Context, categoryID uuid.UUID) (*domain.FormTemplate, error) {
	mapping, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, internalError("Failed to fetch form category", err)
	}
	if mapping == nil || !mapping.Eligible || mapping.FormTemplateID == nil {
		return nil, nil
	}

	template, err := s.templateRepo.FindByIDWithElements(ctx, *mapping.FormTemplateID)
	if err != nil {
		if isNotFound(err) {
			s.logger.Warn("Category mapped to a missing form template",
				zap.String("category_id", categoryID.String()),
				zap.String("template_id", mapping.FormTemplateID.String()),
			)
			return nil, nil
		}
		return nil, internalError("Failed to fetch form template", err)
	}
	return template, nil
}

func toCategoryResponse(m *domain.FormCategoryMapping) dto.FormCategoryResponse {
	resp := dto.FormCategoryResponse{
		CategoryID:     m.CategoryID,
		CategoryName:   m.CategoryName,
		FormTemplateID: m.FormTemplateID,
		Eligible:       m.Eligible,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.FormTemplate != nil {
		resp.FormTemplateName = m.FormTemplate.Name
	}
	return resp
}
