// Package builder holds the authoring state of a single template. Every
// structural change is persisted through a Store before it is applied to
// the local element list.
package builder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"form-template-api/internal/domain"
	"form-template-api/internal/dto"
)

var (
	ErrNotLoaded       = errors.New("no template loaded")
	ErrElementNotFound = errors.New("element not found")
	ErrLabelRequired   = errors.New("label is required")
	ErrInvalidType     = errors.New("invalid element type")
	ErrOrderMismatch   = errors.New("new order must contain exactly the current elements")
)

// Store is the remote persistence used by the builder
type Store interface {
	GetTemplate(ctx context.Context, templateID uuid.UUID) (*dto.FormTemplateResponse, error)
	CreateElement(ctx context.Context, templateID uuid.UUID, req *dto.CreateFormElementRequest) (*dto.FormElementResponse, error)
	UpdateElement(ctx context.Context, elementID uuid.UUID, req *dto.UpdateFormElementRequest) (*dto.FormElementResponse, error)
	DeleteElement(ctx context.Context, elementID uuid.UUID) error
	ReorderElements(ctx context.Context, templateID uuid.UUID, ids []uuid.UUID) error
}

// Confirmer asks the user to confirm a destructive action
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(message string) (bool, error)

func (f ConfirmFunc) Confirm(message string) (bool, error) { return f(message) }

// Builder owns the element list of one template
type Builder struct {
	store    Store
	confirm  Confirmer
	logger   *zap.Logger
	template *dto.FormTemplateResponse
	elements []dto.FormElementResponse
}

// New creates a Builder. A nil logger is replaced with a no-op logger.
func New(store Store, confirm Confirmer, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{store: store, confirm: confirm, logger: logger}
}

// Load fetches a template and replaces the local state
func (b *Builder) Load(ctx context.Context, templateID uuid.UUID) error {
	tmpl, err := b.store.GetTemplate(ctx, templateID)
	if err != nil {
		return fmt.Errorf("load template: %w", err)
	}
	b.template = tmpl
	b.elements = append([]dto.FormElementResponse(nil), tmpl.Elements...)
	sortByOrder(b.elements)
	return nil
}

// Template returns the loaded template metadata
func (b *Builder) Template() *dto.FormTemplateResponse {
	return b.template
}

// Elements returns a copy of the elements sorted by order
func (b *Builder) Elements() []dto.FormElementResponse {
	out := append([]dto.FormElementResponse(nil), b.elements...)
	sortByOrder(out)
	return out
}

// IDs returns the element ids in order
func (b *Builder) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(b.elements))
	for i, el := range b.elements {
		ids[i] = el.ID
	}
	return ids
}

// NextLabel returns the auto-generated label for a new element of type t,
// e.g. "Text Input 2" when one text input exists
func (b *Builder) NextLabel(t domain.ElementType) string {
	count := 0
	for _, el := range b.elements {
		if el.Type == string(t) {
			count++
		}
	}
	return t.AutoLabel(count)
}

// AddElement appends a new element of type t with an empty configuration
func (b *Builder) AddElement(ctx context.Context, t domain.ElementType) (*dto.FormElementResponse, error) {
	if b.template == nil {
		return nil, ErrNotLoaded
	}
	if !t.IsValid() {
		return nil, ErrInvalidType
	}

	created, err := b.store.CreateElement(ctx, b.template.ID, &dto.CreateFormElementRequest{
		Type:  string(t),
		Label: b.NextLabel(t),
	})
	if err != nil {
		return nil, fmt.Errorf("add element: %w", err)
	}

	b.elements = append(b.elements, *created)
	sortByOrder(b.elements)
	return created, nil
}

// EditElement merges patch into an element. The label, when given, must not be blank.
func (b *Builder) EditElement(ctx context.Context, id uuid.UUID, patch *dto.UpdateFormElementRequest) (*dto.FormElementResponse, error) {
	idx := b.indexOf(id)
	if idx < 0 {
		return nil, ErrElementNotFound
	}
	if patch.Label != nil && strings.TrimSpace(*patch.Label) == "" {
		return nil, ErrLabelRequired
	}

	updated, err := b.store.UpdateElement(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("edit element: %w", err)
	}

	b.elements[idx] = *updated
	sortByOrder(b.elements)
	return updated, nil
}

// DeleteElement removes an element after confirmation. It returns false
// when the user declined. The element stays in the list if the remote
// delete fails.
func (b *Builder) DeleteElement(ctx context.Context, id uuid.UUID) (bool, error) {
	idx := b.indexOf(id)
	if idx < 0 {
		return false, ErrElementNotFound
	}

	ok, err := b.confirm.Confirm(fmt.Sprintf("Delete element %q?", b.elements[idx].Label))
	if err != nil {
		return false, fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return false, nil
	}

	if err := b.store.DeleteElement(ctx, id); err != nil {
		return false, fmt.Errorf("delete element: %w", err)
	}

	removed := b.elements[idx].Order
	b.elements = append(b.elements[:idx], b.elements[idx+1:]...)
	for i := range b.elements {
		if b.elements[i].Order > removed {
			b.elements[i].Order--
		}
	}
	return true, nil
}

// Reorder persists a new ordering. An unchanged order makes no call. On
// failure the previous arrangement is kept.
func (b *Builder) Reorder(ctx context.Context, ids []uuid.UUID) error {
	if b.template == nil {
		return ErrNotLoaded
	}
	current := b.IDs()
	if !sameSet(current, ids) {
		return ErrOrderMismatch
	}

	moves := Moves(current, ids)
	if len(moves) == 0 {
		return nil
	}
	b.logger.Debug("Reordering elements",
		zap.String("template_id", b.template.ID.String()),
		zap.Int("moved", len(moves)),
	)

	if err := b.store.ReorderElements(ctx, b.template.ID, ids); err != nil {
		return fmt.Errorf("reorder elements: %w", err)
	}

	byID := make(map[uuid.UUID]dto.FormElementResponse, len(b.elements))
	for _, el := range b.elements {
		byID[el.ID] = el
	}
	next := make([]dto.FormElementResponse, len(ids))
	for i, id := range ids {
		el := byID[id]
		el.Order = i + 1
		next[i] = el
	}
	b.elements = next
	return nil
}

// Drop handles the end of a drag: activeID was dropped on overID. A drop
// without a target is ignored; dropping an element onto itself does nothing.
func (b *Builder) Drop(ctx context.Context, activeID, overID uuid.UUID) error {
	if overID == uuid.Nil {
		b.logger.Info("Drag ended without drop target", zap.String("element_id", activeID.String()))
		return nil
	}
	if activeID == overID {
		return nil
	}

	from, to := b.indexOf(activeID), b.indexOf(overID)
	if from < 0 || to < 0 {
		b.logger.Info("Drag ended on unknown element",
			zap.String("active_id", activeID.String()),
			zap.String("over_id", overID.String()),
		)
		return nil
	}
	return b.Reorder(ctx, arrayMove(b.IDs(), from, to))
}

func (b *Builder) indexOf(id uuid.UUID) int {
	for i, el := range b.elements {
		if el.ID == id {
			return i
		}
	}
	return -1
}

func sortByOrder(elements []dto.FormElementResponse) {
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].Order < elements[j].Order
	})
}

func sameSet(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[uuid.UUID]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}

func arrayMove(ids []uuid.UUID, from, to int) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	moved := ids[from]
	for i, id := range ids {
		if i == from {
			continue
		}
		out = append(out, id)
	}
	out = append(out[:to], append([]uuid.UUID{moved}, out[to:]...)...)
	return out
}
