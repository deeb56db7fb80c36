package sequence

import (
	"github.com/google/uuid"

	"form-template-api/internal/domain"
	"form-template-api/internal/render"
)

// Snapshot is the serialisable form of a Controller
type Snapshot struct {
	TemplateIDs []uuid.UUID                       `json:"template_ids"`
	Index       int                               `json:"index"`
	Phase       Phase                             `json:"phase"`
	Accumulator map[uuid.UUID][]domain.FieldValue `json:"accumulator"`
	Selections  *render.State                     `json:"selections"`
}

// Snapshot captures the controller state
func (c *Controller) Snapshot() Snapshot {
	ids := make([]uuid.UUID, len(c.templates))
	for i, t := range c.templates {
		ids[i] = t.ID
	}
	acc := make(map[uuid.UUID][]domain.FieldValue, len(c.accumulator))
	for k, v := range c.accumulator {
		acc[k] = append([]domain.FieldValue(nil), v...)
	}
	return Snapshot{
		TemplateIDs: ids,
		Index:       c.index,
		Phase:       c.phase,
		Accumulator: acc,
		Selections:  c.selections.Clone(),
	}
}

// Restore rebuilds a controller from a snapshot. templates must contain every
// template the snapshot refers to, otherwise ErrTemplateMismatch is returned.
func Restore(s Snapshot, templates []*domain.FormTemplate, submitter Submitter) (*Controller, error) {
	byID := make(map[uuid.UUID]*domain.FormTemplate, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	ordered := make([]*domain.FormTemplate, len(s.TemplateIDs))
	for i, id := range s.TemplateIDs {
		t, ok := byID[id]
		if !ok {
			return nil, ErrTemplateMismatch
		}
		ordered[i] = t
	}
	if s.Phase == PhaseActive && (s.Index < 0 || s.Index >= len(ordered)) {
		return nil, ErrTemplateMismatch
	}

	c := &Controller{submitter: submitter}
	c.reset(ordered)
	c.index = s.Index
	if s.Phase != "" {
		c.phase = s.Phase
	}
	for k, v := range s.Accumulator {
		c.accumulator[k] = v
	}
	if s.Selections != nil {
		c.selections = s.Selections.Clone()
	}
	return c, nil
}
