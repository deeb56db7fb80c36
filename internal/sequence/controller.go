// Package sequence drives a multi-step form wizard: one step per template
// that applies to an order, with values accumulated until the last step.
package sequence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"form-template-api/internal/domain"
	"form-template-api/internal/render"
)

// Phase is the controller's lifecycle state
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseActive   Phase = "active"
	PhaseComplete Phase = "complete"
)

var (
	ErrNotActive        = errors.New("sequence is not active")
	ErrNoPreviousStep   = errors.New("no previous step")
	ErrUnknownElement   = errors.New("element is not part of the current step")
	ErrTemplateMismatch = errors.New("snapshot does not match templates")
)

// ValidationError is returned when the current step's values are invalid.
// The controller is left unchanged.
type ValidationError struct {
	TemplateID uuid.UUID
	Fields     render.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %s: %s", e.TemplateID, e.Fields.Error())
}

// Step is the submitted values of one template
type Step struct {
	TemplateID uuid.UUID
	Values     []domain.FieldValue
}

// Submitter persists a completed sequence. It is called once, after the last
// step, with every step in sequence order, and must persist all of them or
// none.
type Submitter interface {
	Submit(ctx context.Context, steps []Step) error
}

// Controller is the wizard state. It is owned by a single caller and is not
// safe for concurrent use.
type Controller struct {
	templates   []*domain.FormTemplate
	index       int
	phase       Phase
	accumulator map[uuid.UUID][]domain.FieldValue
	selections  *render.State
	submitter   Submitter
}

// New builds a controller over templates. Duplicates are dropped, keeping
// the first occurrence. With no templates the controller starts Idle.
func New(templates []*domain.FormTemplate, submitter Submitter) *Controller {
	c := &Controller{submitter: submitter}
	c.reset(dedupe(templates))
	return c
}

func dedupe(templates []*domain.FormTemplate) []*domain.FormTemplate {
	seen := make(map[uuid.UUID]struct{}, len(templates))
	out := make([]*domain.FormTemplate, 0, len(templates))
	for _, t := range templates {
		if t == nil {
			continue
		}
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

func (c *Controller) reset(templates []*domain.FormTemplate) {
	c.templates = templates
	c.index = 0
	c.accumulator = make(map[uuid.UUID][]domain.FieldValue)
	c.selections = render.NewState()
	if len(templates) == 0 {
		c.phase = PhaseIdle
	} else {
		c.phase = PhaseActive
	}
}

// Phase returns the current lifecycle state
func (c *Controller) Phase() Phase { return c.phase }

// NoApplicableForm reports that no template applies. Callers proceed to
// order placement without a form step.
func (c *Controller) NoApplicableForm() bool {
	return c.phase == PhaseIdle
}

// Steps returns the number of steps
func (c *Controller) Steps() int { return len(c.templates) }

// Index returns the zero-based current step
func (c *Controller) Index() int { return c.index }

// Templates returns the templates in step order
func (c *Controller) Templates() []*domain.FormTemplate {
	return append([]*domain.FormTemplate(nil), c.templates...)
}

// Current returns the template of the current step, or nil when not active
func (c *Controller) Current() *domain.FormTemplate {
	if c.phase != PhaseActive {
		return nil
	}
	return c.templates[c.index]
}

// CurrentState returns the values to prefill the current step with:
// what was accumulated for it earlier plus pending selections.
func (c *Controller) CurrentState() *render.State {
	tmpl := c.Current()
	if tmpl == nil {
		return render.NewState()
	}
	state := render.FromRecords(tmpl, c.accumulator[tmpl.ID])
	state.Merge(c.selections)
	return state
}

// Selections returns a copy of the staged date/file values of the current step
func (c *Controller) Selections() *render.State {
	return c.selections.Clone()
}

// Accumulated returns the stored values for a template
func (c *Controller) Accumulated(templateID uuid.UUID) ([]domain.FieldValue, bool) {
	v, ok := c.accumulator[templateID]
	return v, ok
}

// SelectDate stages a date for a date element of the current step
func (c *Controller) SelectDate(elementID uuid.UUID, date time.Time) error {
	if err := c.checkElement(elementID, domain.ElementTypeDate); err != nil {
		return err
	}
	c.selections.SetDate(elementID, date)
	return nil
}

// SelectFile stages a file for a file element of the current step
func (c *Controller) SelectFile(elementID uuid.UUID, ref render.FileRef) error {
	if err := c.checkElement(elementID, domain.ElementTypeFile); err != nil {
		return err
	}
	c.selections.SetFile(elementID, ref)
	return nil
}

func (c *Controller) checkElement(elementID uuid.UUID, want domain.ElementType) error {
	tmpl := c.Current()
	if tmpl == nil {
		return ErrNotActive
	}
	el, ok := tmpl.ElementByID(elementID)
	if !ok || el.Type != want {
		return ErrUnknownElement
	}
	return nil
}

// SubmitStep validates data for the current step and stores it. Staged
// selections take precedence over data. On the last step every stored step
// is handed to the Submitter and the controller moves to Complete.
// On any error the controller is unchanged.
func (c *Controller) SubmitStep(ctx context.Context, data *render.State) error {
	tmpl := c.Current()
	if tmpl == nil {
		return ErrNotActive
	}

	merged := render.NewState()
	merged.Merge(data)
	merged.Merge(c.selections)

	if errs := render.Validate(tmpl, merged); errs != nil {
		return &ValidationError{TemplateID: tmpl.ID, Fields: errs}
	}
	records := render.Records(tmpl, merged)

	if c.index < len(c.templates)-1 {
		c.accumulator[tmpl.ID] = records
		c.index++
		c.selections = render.NewState()
		return nil
	}

	steps := make([]Step, len(c.templates))
	for i, t := range c.templates {
		steps[i] = Step{TemplateID: t.ID, Values: c.accumulator[t.ID]}
	}
	steps[len(steps)-1].Values = records
	if err := c.submitter.Submit(ctx, steps); err != nil {
		return fmt.Errorf("submit sequence: %w", err)
	}

	c.reset(nil)
	c.phase = PhaseComplete
	return nil
}

// GoBack returns to the previous step, keeping accumulated values. Pending
// selections of the step being left are dropped; the date and file values
// stored for the previous step are staged again so that resubmitting it
// without touching them keeps them.
func (c *Controller) GoBack() error {
	if c.phase != PhaseActive {
		return ErrNotActive
	}
	if c.index == 0 {
		return ErrNoPreviousStep
	}
	c.index--
	c.selections = c.stagedFromAccumulator(c.templates[c.index])
	return nil
}

func (c *Controller) stagedFromAccumulator(tmpl *domain.FormTemplate) *render.State {
	stored := render.FromRecords(tmpl, c.accumulator[tmpl.ID])
	staged := render.NewState()
	for _, el := range tmpl.Elements {
		v, ok := stored.Get(el.ID)
		if !ok {
			continue
		}
		switch {
		case el.Type == domain.ElementTypeDate && v.Date != nil:
			staged.SetDate(el.ID, *v.Date)
		case el.Type == domain.ElementTypeFile && v.File != nil:
			staged.SetFile(el.ID, *v.File)
		}
	}
	return staged
}

// Cancel discards all progress. Nothing is submitted.
func (c *Controller) Cancel() {
	c.reset(nil)
}

// Invalidate rebuilds the controller for a changed order. When the new
// template list equals the current one the progress is kept and false is
// returned.
func (c *Controller) Invalidate(templates []*domain.FormTemplate) bool {
	next := dedupe(templates)
	if c.phase == PhaseActive && sameTemplates(c.templates, next) {
		return false
	}
	c.reset(next)
	return true
}

func sameTemplates(a, b []*domain.FormTemplate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
