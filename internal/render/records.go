package render

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"form-template-api/internal/domain"
)

// Records converts state into submission records, one per element in order.
// Checkbox selections are JSON arrays, dates use YYYY-MM-DD.
func Records(t *domain.FormTemplate, state *State) []domain.FieldValue {
	elements := t.SortedElements()
	records := make([]domain.FieldValue, 0, len(elements))
	for _, el := range elements {
		rec := domain.FieldValue{ElementID: el.ID}
		v, ok := state.Get(el.ID)
		if ok && !v.IsEmpty() {
			switch el.Type {
			case domain.ElementTypeCheckbox:
				encoded, _ := json.Marshal(v.Choices)
				s := string(encoded)
				rec.Value = &s
			case domain.ElementTypeDate:
				if v.Date != nil {
					s := v.Date.Format(dateLayout)
					rec.Value = &s
				}
			case domain.ElementTypeFile:
				if v.File != nil {
					id := v.File.UploadID
					rec.FileUploadID = &id
				}
			default:
				if v.Text != nil {
					s := *v.Text
					rec.Value = &s
				}
			}
		}
		records = append(records, rec)
	}
	return records
}

// FromRecords rebuilds a state from stored records. Records for elements
// that are no longer part of t, or that no longer fit the element's type,
// are skipped.
func FromRecords(t *domain.FormTemplate, records []domain.FieldValue) *State {
	state := NewState()
	for _, rec := range records {
		el, ok := t.ElementByID(rec.ElementID)
		if !ok {
			continue
		}
		switch el.Type {
		case domain.ElementTypeFile:
			if rec.FileUploadID != nil {
				state.SetFile(el.ID, FileRef{UploadID: *rec.FileUploadID})
			}
		case domain.ElementTypeCheckbox:
			if rec.Value != nil {
				var choices []string
				if err := json.Unmarshal([]byte(*rec.Value), &choices); err != nil {
					// a single plain value
					choices = []string{*rec.Value}
				}
				state.SetChoices(el.ID, choices)
			}
		case domain.ElementTypeDate:
			if rec.Value != nil {
				if d, err := time.Parse(dateLayout, *rec.Value); err == nil {
					state.SetDate(el.ID, d)
				}
			}
		default:
			if rec.Value != nil {
				state.SetText(el.ID, *rec.Value)
			}
		}
	}
	return state
}

// DecodeRecords builds a state from client-supplied records. Unlike
// FromRecords nothing is skipped: records for unknown elements, dates that do
// not parse, text on a file element and uploads on any other element are
// reported as field errors.
func DecodeRecords(t *domain.FormTemplate, records []domain.FieldValue) (*State, FieldErrors) {
	state := NewState()
	errs := make(FieldErrors)
	for _, rec := range records {
		el, ok := t.ElementByID(rec.ElementID)
		if !ok {
			errs[rec.ElementID.String()] = "unknown element"
			continue
		}
		if !decodeRecord(el, rec, state) {
			errs[el.ID.String()] = MsgInvalidValue
		}
	}
	if len(errs) == 0 {
		return state, nil
	}
	return state, errs
}

func decodeRecord(el *domain.FormElement, rec domain.FieldValue, state *State) bool {
	if el.Type == domain.ElementTypeFile {
		if rec.Value != nil {
			return false
		}
		if rec.FileUploadID != nil {
			state.SetFile(el.ID, FileRef{UploadID: *rec.FileUploadID})
		}
		return true
	}
	if rec.FileUploadID != nil {
		return false
	}
	if rec.Value == nil {
		return true
	}

	raw := *rec.Value
	switch el.Type {
	case domain.ElementTypeCheckbox:
		var choices []string
		if err := json.Unmarshal([]byte(raw), &choices); err != nil {
			if strings.HasPrefix(strings.TrimSpace(raw), "[") {
				return false
			}
			choices = []string{raw}
		}
		state.SetChoices(el.ID, choices)
	case domain.ElementTypeDate:
		d, err := parseDate(raw)
		if err != nil {
			return false
		}
		state.SetDate(el.ID, d)
	default:
		state.SetText(el.ID, raw)
	}
	return true
}

// StateFromValues decodes a JSON payload keyed by element id. Elements that
// are absent from values start from their default value. Values of the wrong
// shape are reported as field errors.
func StateFromValues(t *domain.FormTemplate, values map[string]interface{}) (*State, FieldErrors) {
	state := NewState()
	var errs FieldErrors
	fail := func(id uuid.UUID, msg string) {
		if errs == nil {
			errs = make(FieldErrors)
		}
		errs[id.String()] = msg
	}

	for _, el := range t.SortedElements() {
		raw, present := values[el.ID.String()]
		if !present {
			seedDefault(&el, state)
			continue
		}
		if raw == nil {
			continue
		}
		if !decodeInto(&el, raw, state) {
			fail(el.ID, MsgInvalidValue)
		}
	}
	for key := range values {
		id, err := uuid.Parse(key)
		if err != nil {
			continue
		}
		if _, ok := t.ElementByID(id); !ok {
			fail(id, "unknown element")
		}
	}
	return state, errs
}

func seedDefault(el *domain.FormElement, state *State) {
	if el.DefaultValue == nil {
		return
	}
	switch el.Type {
	case domain.ElementTypeDate, domain.ElementTypeFile:
		// no default when unset
	case domain.ElementTypeCheckbox:
		if *el.DefaultValue != "" {
			state.SetChoices(el.ID, []string{*el.DefaultValue})
		}
	default:
		state.SetText(el.ID, *el.DefaultValue)
	}
}

func decodeInto(el *domain.FormElement, raw interface{}, state *State) bool {
	switch el.Type {
	case domain.ElementTypeCheckbox:
		switch v := raw.(type) {
		case string:
			state.SetChoices(el.ID, []string{v})
		case []interface{}:
			choices := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return false
				}
				choices = append(choices, s)
			}
			state.SetChoices(el.ID, choices)
		case []string:
			state.SetChoices(el.ID, v)
		default:
			return false
		}
	case domain.ElementTypeDate:
		s, ok := raw.(string)
		if !ok {
			return false
		}
		d, err := parseDate(s)
		if err != nil {
			return false
		}
		state.SetDate(el.ID, d)
	case domain.ElementTypeFile:
		ref, ok := decodeFileRef(raw)
		if !ok {
			return false
		}
		state.SetFile(el.ID, ref)
	default:
		switch v := raw.(type) {
		case string:
			state.SetText(el.ID, v)
		case float64:
			state.SetText(el.ID, strconv.FormatFloat(v, 'f', -1, 64))
		case json.Number:
			state.SetText(el.ID, v.String())
		default:
			return false
		}
	}
	return true
}

func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}

func decodeFileRef(raw interface{}) (FileRef, bool) {
	switch v := raw.(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return FileRef{}, false
		}
		return FileRef{UploadID: id}, true
	case map[string]interface{}:
		idStr, _ := v["upload_id"].(string)
		id, err := uuid.Parse(idStr)
		if err != nil {
			return FileRef{}, false
		}
		name, _ := v["name"].(string)
		return FileRef{UploadID: id, Name: name}, true
	}
	return FileRef{}, false
}
