package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"form-template-api/internal/domain"
	"form-template-api/internal/dto"
	"form-template-api/internal/metrics"
	"form-template-api/internal/render"
	"form-template-api/internal/repository"
	"form-template-api/internal/response"
	"form-template-api/internal/validation"
)

// FormTemplateService defines the interface for form template business logic
type FormTemplateService interface {
	CreateTemplate(ctx context.Context, req *dto.CreateFormTemplateRequest) (*dto.FormTemplateResponse, error)
	GetTemplate(ctx context.Context, templateID uuid.UUID) (*dto.FormTemplateResponse, error)
	ListTemplates(ctx context.Context, page, limit int) (*dto.PaginatedFormTemplatesResponse, error)
	UpdateTemplate(ctx context.Context, templateID uuid.UUID, req *dto.UpdateFormTemplateRequest) (*dto.FormTemplateResponse, error)
	DeleteTemplate(ctx context.Context, templateID uuid.UUID) error
	ImportTemplate(ctx context.Context, data []byte) (*dto.FormTemplateResponse, error)
	RenderTemplate(ctx context.Context, templateID uuid.UUID) ([]render.Field, error)
}

// formTemplateServiceImpl is the implementation of FormTemplateService
type formTemplateServiceImpl struct {
	templateRepo repository.FormTemplateRepository
	categoryRepo repository.FormCategoryRepository
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewFormTemplateService creates a new instance of FormTemplateService
func NewFormTemplateService(
	templateRepo repository.FormTemplateRepository,
	categoryRepo repository.FormCategoryRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) FormTemplateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &formTemplateServiceImpl{
		templateRepo: templateRepo,
		categoryRepo: categoryRepo,
		metrics:      m,
		logger:       logger,
	}
}

// CreateTemplate creates an empty template and maps it to its category
func (s *formTemplateServiceImpl) CreateTemplate(ctx context.Context, req *dto.CreateFormTemplateRequest) (*dto.FormTemplateResponse, error) {
	name := sanitizeText(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Template name is required", "")
	}
	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	template := &domain.FormTemplate{
		Name:        name,
		Description: sanitizeText(req.Description),
		CategoryID:  req.CategoryID,
	}
	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, internalError("Failed to create form template", err)
	}

	s.metrics.IncrementTemplateCreated()
	s.logger.Info("Form template created",
		zap.String("template_id", template.ID.String()),
		zap.String("name", template.Name),
	)

	return toTemplateResponse(template, true), nil
}

// GetTemplate retrieves a template with its elements in display order
func (s *formTemplateServiceImpl) GetTemplate(ctx context.Context, templateID uuid.UUID) (*dto.FormTemplateResponse, error) {
	template, err := s.findWithElements(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return toTemplateResponse(template, true), nil
}

// ListTemplates returns a page of templates without their elements
func (s *formTemplateServiceImpl) ListTemplates(ctx context.Context, page, limit int) (*dto.PaginatedFormTemplatesResponse, error) {
	page, limit = normalizePagination(page, limit)
	offset := (page - 1) * limit

	templates, total, err := s.templateRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, internalError("Failed to fetch form templates", err)
	}

	ids := make([]uuid.UUID, len(templates))
	for i, t := range templates {
		ids[i] = t.ID
	}
	counts, err := s.templateRepo.CountElements(ctx, ids)
	if err != nil {
		return nil, internalError("Failed to count form elements", err)
	}

	items := make([]dto.FormTemplateResponse, len(templates))
	for i, t := range templates {
		resp := toTemplateResponse(t, false)
		resp.ElementCount = counts[t.ID]
		items[i] = *resp
	}

	return &dto.PaginatedFormTemplatesResponse{
		Items:   items,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: int64(offset+len(items)) < total,
	}, nil
}

// UpdateTemplate replaces name, description and category. Moving a template
// to another category releases the old mapping.
func (s *formTemplateServiceImpl) UpdateTemplate(ctx context.Context, templateID uuid.UUID, req *dto.UpdateFormTemplateRequest) (*dto.FormTemplateResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Form template not found", "")
		}
		return nil, internalError("Failed to fetch form template", err)
	}

	name := sanitizeText(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Template name is required", "")
	}
	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	template.Name = name
	template.Description = sanitizeText(req.Description)
	template.CategoryID = req.CategoryID

	if err := s.templateRepo.Update(ctx, template); err != nil {
		return nil, internalError("Failed to update form template", err)
	}

	return s.GetTemplate(ctx, templateID)
}

// DeleteTemplate deletes a template with its elements and clears every
// mapping that referenced it
func (s *formTemplateServiceImpl) DeleteTemplate(ctx context.Context, templateID uuid.UUID) error {
	if err := s.templateRepo.Delete(ctx, templateID); err != nil {
		if isNotFound(err) {
			return response.NewNotFoundError("Form template not found", "")
		}
		return internalError("Failed to delete form template", err)
	}

	s.logger.Info("Form template deleted", zap.String("template_id", templateID.String()))
	return nil
}

// ImportTemplate creates a template and its elements from a YAML document.
// Element validation may use the "/pattern/flags" notation.
func (s *formTemplateServiceImpl) ImportTemplate(ctx context.Context, data []byte) (*dto.FormTemplateResponse, error) {
	var doc dto.ImportFormTemplateRequest
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, response.NewValidationError("Invalid template document", err.Error())
	}

	name := sanitizeText(doc.Name)
	if name == "" {
		return nil, response.NewValidationError("Template name is required", "")
	}

	var categoryID *uuid.UUID
	if doc.CategoryID != "" {
		id, err := uuid.Parse(doc.CategoryID)
		if err != nil {
			return nil, response.NewValidationError("Invalid category_id", err.Error())
		}
		categoryID = &id
	}
	if err := s.ensureCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	typeCounts := make(map[domain.ElementType]int)
	elements := make([]domain.FormElement, 0, len(doc.Elements))
	for i, item := range doc.Elements {
		elementType := domain.ElementType(item.Type)
		if !elementType.IsValid() {
			return nil, response.NewValidationError(fmt.Sprintf("Invalid element type: %s", item.Type),
				fmt.Sprintf("elements[%d]", i))
		}

		label := item.Label
		if sanitizeText(label) == "" {
			label = elementType.AutoLabel(typeCounts[elementType])
		}
		typeCounts[elementType]++

		pattern, flags := validation.SplitLegacy(item.Validation)
		element := domain.FormElement{
			Type:         elementType,
			Label:        label,
			Placeholder:  item.Placeholder,
			Required:     item.Required,
			DefaultValue: item.DefaultValue,
			Options:      toDomainOptions(item.Options),
			Validation: domain.ElementValidation{
				Pattern: pattern,
				Flags:   flags,
				Message: item.ValidationMessage,
			},
			FileAccept: item.FileAccept,
		}
		if appErr := normalizeElement(&element); appErr != nil {
			appErr.Details = fmt.Sprintf("elements[%d]", i)
			return nil, appErr
		}
		elements = append(elements, element)
	}

	template := &domain.FormTemplate{
		Name:        name,
		Description: sanitizeText(doc.Description),
		CategoryID:  categoryID,
		Elements:    elements,
	}
	if err := s.templateRepo.CreateWithElements(ctx, template); err != nil {
		return nil, internalError("Failed to import form template", err)
	}

	s.metrics.IncrementTemplateCreated()
	s.logger.Info("Form template imported",
		zap.String("template_id", template.ID.String()),
		zap.Int("elements", len(elements)),
	)

	return toTemplateResponse(template, true), nil
}

// RenderTemplate renders a template with its default values
func (s *formTemplateServiceImpl) RenderTemplate(ctx context.Context, templateID uuid.UUID) ([]render.Field, error) {
	template, err := s.findWithElements(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return render.RenderTemplate(template, render.NewState(), nil), nil
}

func (s *formTemplateServiceImpl) findWithElements(ctx context.Context, templateID uuid.UUID) (*domain.FormTemplate, error) {
	template, err := s.templateRepo.FindByIDWithElements(ctx, templateID)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Form template not found", "")
		}
		return nil, internalError("Failed to fetch form template", err)
	}
	return template, nil
}

// ensureCategory checks that a referenced category is known
func (s *formTemplateServiceImpl) ensureCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	mapping, err := s.categoryRepo.FindByID(ctx, *categoryID)
	if err != nil {
		return internalError("Failed to fetch form category", err)
	}
	if mapping == nil {
		return response.NewNotFoundError("Form category not found", "")
	}
	return nil
}

func sameUUID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
