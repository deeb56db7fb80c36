package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"form-template-api/internal/domain"
	"form-template-api/internal/dto"
	"form-template-api/internal/repository"
	"form-template-api/internal/response"
	"form-template-api/internal/validation"
)

// FormElementService defines the interface for form element business logic
type FormElementService interface {
	ListElements(ctx context.Context, templateID uuid.UUID) ([]dto.FormElementResponse, error)
	AddElement(ctx context.Context, templateID uuid.UUID, req *dto.CreateFormElementRequest) (*dto.FormElementResponse, error)
	UpdateElement(ctx context.Context, elementID uuid.UUID, req *dto.UpdateFormElementRequest) (*dto.FormElementResponse, error)
	DeleteElement(ctx context.Context, elementID uuid.UUID) error
	ReorderElements(ctx context.Context, templateID uuid.UUID, ids []uuid.UUID) ([]dto.FormElementResponse, error)
}

// formElementServiceImpl is the implementation of FormElementService
type formElementServiceImpl struct {
	templateRepo repository.FormTemplateRepository
	elementRepo  repository.FormElementRepository
	logger       *zap.Logger
}

// NewFormElementService creates a new instance of FormElementService
func NewFormElementService(
	templateRepo repository.FormTemplateRepository,
	elementRepo repository.FormElementRepository,
	logger *zap.Logger,
) FormElementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &formElementServiceImpl{
		templateRepo: templateRepo,
		elementRepo:  elementRepo,
		logger:       logger,
	}
}

// ListElements returns a template's elements ordered by display order
func (s *formElementServiceImpl) ListElements(ctx context.Context, templateID uuid.UUID) ([]dto.FormElementResponse, error) {
	if err := s.ensureTemplate(ctx, templateID); err != nil {
		return nil, err
	}

	elements, err := s.elementRepo.FindByTemplateID(ctx, templateID)
	if err != nil {
		return nil, internalError("Failed to fetch form elements", err)
	}
	return toElementResponses(elements), nil
}

// AddElement appends an element to the end of a template. A missing label is
// generated from the type and the number of elements of that type.
func (s *formElementServiceImpl) AddElement(ctx context.Context, templateID uuid.UUID, req *dto.CreateFormElementRequest) (*dto.FormElementResponse, error) {
	if err := s.ensureTemplate(ctx, templateID); err != nil {
		return nil, err
	}

	elementType := domain.ElementType(req.Type)
	if !elementType.IsValid() {
		return nil, response.NewValidationError(fmt.Sprintf("Invalid element type: %s", req.Type), "")
	}

	label := sanitizeText(req.Label)
	if label == "" {
		existing, err := s.elementRepo.FindByTemplateID(ctx, templateID)
		if err != nil {
			return nil, internalError("Failed to fetch form elements", err)
		}
		count := 0
		for _, el := range existing {
			if el.Type == elementType {
				count++
			}
		}
		label = elementType.AutoLabel(count)
	}

	element := &domain.FormElement{
		TemplateID:   templateID,
		Type:         elementType,
		Label:        label,
		Placeholder:  req.Placeholder,
		Required:     req.Required,
		DefaultValue: req.DefaultValue,
		Options:      toDomainOptions(req.Options),
		Validation:   toDomainValidation(req.Validation),
		FileAccept:   req.FileAccept,
	}
	if appErr := normalizeElement(element); appErr != nil {
		return nil, appErr
	}

	if err := s.elementRepo.Append(ctx, element); err != nil {
		return nil, internalError("Failed to create form element", err)
	}

	s.logger.Debug("Form element added",
		zap.String("template_id", templateID.String()),
		zap.String("element_id", element.ID.String()),
		zap.String("type", string(element.Type)),
	)

	resp := toElementResponse(element)
	return &resp, nil
}

// UpdateElement merges the provided fields into an element
func (s *formElementServiceImpl) UpdateElement(ctx context.Context, elementID uuid.UUID, req *dto.UpdateFormElementRequest) (*dto.FormElementResponse, error) {
	element, err := s.elementRepo.FindByID(ctx, elementID)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Form element not found", "")
		}
		return nil, internalError("Failed to fetch form element", err)
	}

	if req.Type != nil {
		element.Type = domain.ElementType(*req.Type)
		if !element.Type.IsValid() {
			return nil, response.NewValidationError(fmt.Sprintf("Invalid element type: %s", *req.Type), "")
		}
	}
	if req.Label != nil {
		element.Label = *req.Label
	}
	if req.Placeholder != nil {
		element.Placeholder = req.Placeholder
	}
	if req.Required != nil {
		element.Required = *req.Required
	}
	if req.DefaultValue != nil {
		element.DefaultValue = req.DefaultValue
	}
	if req.Options != nil {
		element.Options = toDomainOptions(*req.Options)
	}
	if req.Validation != nil {
		element.Validation = toDomainValidation(req.Validation)
	}
	if req.FileAccept != nil {
		element.FileAccept = req.FileAccept
	}

	if appErr := normalizeElement(element); appErr != nil {
		return nil, appErr
	}

	if err := s.elementRepo.Update(ctx, element); err != nil {
		return nil, internalError("Failed to update form element", err)
	}

	resp := toElementResponse(element)
	return &resp, nil
}

// DeleteElement removes an element and closes the gap in its template's order
func (s *formElementServiceImpl) DeleteElement(ctx context.Context, elementID uuid.UUID) error {
	if err := s.elementRepo.Delete(ctx, elementID); err != nil {
		if isNotFound(err) {
			return response.NewNotFoundError("Form element not found", "")
		}
		return internalError("Failed to delete form element", err)
	}
	return nil
}

// ReorderElements applies a new order. ids must be exactly the template's
// current elements; the unchanged order is accepted without writing.
func (s *formElementServiceImpl) ReorderElements(ctx context.Context, templateID uuid.UUID, ids []uuid.UUID) ([]dto.FormElementResponse, error) {
	if err := s.ensureTemplate(ctx, templateID); err != nil {
		return nil, err
	}

	current, err := s.elementRepo.FindByTemplateID(ctx, templateID)
	if err != nil {
		return nil, internalError("Failed to fetch form elements", err)
	}

	if !sameElementSet(current, ids) {
		return nil, response.NewUnprocessableError("Element ids must match the template's elements exactly", "")
	}
	if sameElementOrder(current, ids) {
		return toElementResponses(current), nil
	}

	if err := s.elementRepo.Reorder(ctx, templateID, ids); err != nil {
		return nil, internalError("Failed to reorder form elements", err)
	}

	reordered, err := s.elementRepo.FindByTemplateID(ctx, templateID)
	if err != nil {
		return nil, internalError("Failed to fetch form elements", err)
	}
	return toElementResponses(reordered), nil
}

func (s *formElementServiceImpl) ensureTemplate(ctx context.Context, templateID uuid.UUID) error {
	if _, err := s.templateRepo.FindByID(ctx, templateID); err != nil {
		if isNotFound(err) {
			return response.NewNotFoundError("Form template not found", "")
		}
		return internalError("Failed to fetch form template", err)
	}
	return nil
}

// normalizeElement cleans user supplied text and enforces the per-type
// element rules. Options and file_accept that do not apply to the type are
// dropped.
func normalizeElement(el *domain.FormElement) *response.AppError {
	if !el.Type.IsValid() {
		return response.NewValidationError(fmt.Sprintf("Invalid element type: %s", el.Type), "")
	}

	el.Label = sanitizeText(el.Label)
	if el.Label == "" {
		return response.NewValidationError("Label is required", "")
	}
	el.Placeholder = sanitizeOptional(el.Placeholder)

	if el.Type.IsChoice() {
		seen := make(map[string]struct{}, len(el.Options))
		for i := range el.Options {
			opt := &el.Options[i]
			opt.Value = strings.TrimSpace(opt.Value)
			opt.Label = sanitizeText(opt.Label)
			if opt.Value == "" {
				return response.NewValidationError("Option value is required", "")
			}
			if _, dup := seen[opt.Value]; dup {
				return response.NewValidationError(fmt.Sprintf("Duplicate option value: %s", opt.Value), "")
			}
			seen[opt.Value] = struct{}{}
			if opt.Label == "" {
				opt.Label = opt.Value
			}
		}
	} else {
		el.Options = nil
	}

	if el.Type != domain.ElementTypeFile {
		el.FileAccept = nil
	}

	if el.Validation.HasPattern() {
		if err := validation.Check(el.Validation.Pattern, el.Validation.Flags); err != nil {
			return response.NewValidationError("Invalid validation pattern", err.Error())
		}
	}
	el.Validation.Flags = validation.NormalizeFlags(el.Validation.Flags)
	el.Validation.Message = sanitizeText(el.Validation.Message)
	return nil
}

func toDomainOptions(options []dto.ElementOptionDTO) []domain.ElementOption {
	if len(options) == 0 {
		return nil
	}
	out := make([]domain.ElementOption, len(options))
	for i, opt := range options {
		out[i] = domain.ElementOption{Label: opt.Label, Value: opt.Value}
	}
	return out
}

// toDomainValidation stores a delimited pattern as separate pattern and flags.
// Flags are checked and normalized together with the rest of the element.
func toDomainValidation(v *dto.ValidationDTO) domain.ElementValidation {
	if v == nil {
		return domain.ElementValidation{}
	}
	pattern, flags := validation.SplitLegacy(strings.TrimSpace(v.Pattern))
	return domain.ElementValidation{
		Pattern: pattern,
		Flags:   flags + v.Flags,
		Message: v.Message,
	}
}

func toElementResponses(elements []*domain.FormElement) []dto.FormElementResponse {
	out := make([]dto.FormElementResponse, len(elements))
	for i, el := range elements {
		out[i] = toElementResponse(el)
	}
	return out
}

func sameElementSet(current []*domain.FormElement, ids []uuid.UUID) bool {
	if len(current) != len(ids) {
		return false
	}
	want := make(map[uuid.UUID]struct{}, len(current))
	for _, el := range current {
		want[el.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := want[id]; !ok {
			return false
		}
		delete(want, id)
	}
	return len(want) == 0
}

func sameElementOrder(current []*domain.FormElement, ids []uuid.UUID) bool {
	for i, el := range current {
		if el.ID != ids[i] {
			return false
		}
	}
	return true
}
