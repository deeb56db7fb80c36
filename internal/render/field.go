// Package render turns form elements into field descriptors bound to a
// shared State, and validates that state.
package render

import (
	"fmt"

	"form-template-api/internal/domain"
)

// Option is a rendered choice
type Option struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// Field is the renderer output for a single element
type Field struct {
	ElementID      string   `json:"element_id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Widget         string   `json:"widget"`
	InputType      string   `json:"input_type,omitempty"`
	Label          string   `json:"label"`
	Placeholder    string   `json:"placeholder,omitempty"`
	Required       bool     `json:"required"`
	Multiple       bool     `json:"multiple,omitempty"`
	Options        []Option `json:"options,omitempty"`
	Value          string   `json:"value,omitempty"`
	Values         []string `json:"values,omitempty"`
	Accept         string   `json:"accept,omitempty"`
	Pattern        string   `json:"pattern,omitempty"`
	PatternMessage string   `json:"pattern_message,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// Renderer is the strategy for one element type
type Renderer interface {
	// Render fills the type-specific parts of f from the element and its value
	Render(el *domain.FormElement, v Value, set bool, f *Field)
	// Validate checks a non-empty value and returns a message, or "" when valid
	Validate(el *domain.FormElement, v Value) string
}

var renderers = map[domain.ElementType]Renderer{
	domain.ElementTypeInput:    textRenderer{widget: "input", inputType: "text"},
	domain.ElementTypeTextarea: textRenderer{widget: "textarea"},
	domain.ElementTypeEmail:    textRenderer{widget: "input", inputType: "email"},
	domain.ElementTypePhone:    textRenderer{widget: "input", inputType: "tel"},
	domain.ElementTypeNumber:   numberRenderer{},
	domain.ElementTypeSelect:   choiceRenderer{widget: "select"},
	domain.ElementTypeRadio:    choiceRenderer{widget: "radio-group"},
	domain.ElementTypeCheckbox: checkboxRenderer{},
	domain.ElementTypeDate:     dateRenderer{},
	domain.ElementTypeFile:     fileRenderer{},
}

func init() {
	for _, t := range domain.AllElementTypes() {
		if _, ok := renderers[t]; !ok {
			panic(fmt.Sprintf("render: no renderer registered for element type %q", t))
		}
	}
}

// RendererFor returns the strategy for t
func RendererFor(t domain.ElementType) (Renderer, bool) {
	r, ok := renderers[t]
	return r, ok
}

// RenderElement renders a single element against state
func RenderElement(el *domain.FormElement, state *State) Field {
	f := Field{
		ElementID: el.ID.String(),
		Name:      "field_" + el.ID.String(),
		Type:      string(el.Type),
		Label:     el.Label,
		Required:  el.Required,
	}
	if el.Placeholder != nil {
		f.Placeholder = *el.Placeholder
	}

	r, ok := renderers[el.Type]
	if !ok {
		f.Widget = "unsupported"
		return f
	}
	v, set := state.Get(el.ID)
	r.Render(el, v, set, &f)
	return f
}

// RenderTemplate renders every element of t in order ascending.
// errs, when non-nil, is attached to the matching fields.
func RenderTemplate(t *domain.FormTemplate, state *State, errs FieldErrors) []Field {
	elements := t.SortedElements()
	fields := make([]Field, len(elements))
	for i := range elements {
		fields[i] = RenderElement(&elements[i], state)
		if msg, ok := errs[elements[i].ID.String()]; ok {
			fields[i].Error = msg
		}
	}
	return fields
}
