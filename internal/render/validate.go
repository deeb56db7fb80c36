package render

import (
	"fmt"

	"form-template-api/internal/domain"
)

// MsgRequired is reported for required elements left empty
const MsgRequired = "This field is required"

// FieldErrors maps element ids to a field-level message
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return fmt.Sprintf("%d field(s) failed validation", len(e))
}

// Validate checks every element of t against state. It returns nil when the
// state is valid. Patterns apply to non-empty values only.
func Validate(t *domain.FormTemplate, state *State) FieldErrors {
	var errs FieldErrors
	for _, el := range t.SortedElements() {
		if msg := ValidateElement(&el, state); msg != "" {
			if errs == nil {
				errs = make(FieldErrors)
			}
			errs[el.ID.String()] = msg
		}
	}
	return errs
}

// ValidateElement checks a single element
func ValidateElement(el *domain.FormElement, state *State) string {
	v, ok := state.Get(el.ID)
	if !ok || v.IsEmpty() {
		if el.Required {
			return MsgRequired
		}
		return ""
	}
	r, ok := renderers[el.Type]
	if !ok {
		return MsgInvalidValue
	}
	return r.Validate(el, v)
}
