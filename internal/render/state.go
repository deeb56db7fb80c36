package render

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileRef points at an uploaded file
type FileRef struct {
	UploadID uuid.UUID `json:"upload_id"`
	Name     string    `json:"name,omitempty"`
}

// Value is the state of a single element. Only the member matching the
// element's type is set; a missing entry in State means "not touched".
type Value struct {
	Text    *string    `json:"text,omitempty"`
	Choices []string   `json:"choices,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
	File    *FileRef   `json:"file,omitempty"`
}

// IsEmpty reports whether the value counts as empty for required checks
func (v Value) IsEmpty() bool {
	switch {
	case v.Text != nil:
		return strings.TrimSpace(*v.Text) == ""
	case len(v.Choices) > 0:
		return false
	case v.Date != nil:
		return v.Date.IsZero()
	case v.File != nil:
		return v.File.UploadID == uuid.Nil
	}
	return true
}

// State is the shared container fields read from and write to.
// It is not safe for concurrent use.
type State struct {
	values map[uuid.UUID]Value
}

// NewState returns an empty state
func NewState() *State {
	return &State{values: make(map[uuid.UUID]Value)}
}

// Get returns the value for id and whether it has been set
func (s *State) Get(id uuid.UUID) (Value, bool) {
	v, ok := s.values[id]
	return v, ok
}

// Len returns the number of touched elements
func (s *State) Len() int {
	return len(s.values)
}

// SetText stores a text value
func (s *State) SetText(id uuid.UUID, text string) {
	s.values[id] = Value{Text: &text}
}

// Toggle adds value to a checkbox selection, or removes it if already selected
func (s *State) Toggle(id uuid.UUID, value string) {
	current := s.values[id].Choices
	next := make([]string, 0, len(current)+1)
	found := false
	for _, c := range current {
		if c == value {
			found = true
			continue
		}
		next = append(next, c)
	}
	if !found {
		next = append(next, value)
	}
	s.values[id] = Value{Choices: next}
}

// SetChoices replaces a checkbox selection. Duplicates are dropped.
func (s *State) SetChoices(id uuid.UUID, values []string) {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	s.values[id] = Value{Choices: out}
}

// SetDate stores a calendar date, truncated to the day
func (s *State) SetDate(id uuid.UUID, date time.Time) {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	s.values[id] = Value{Date: &d}
}

// SetFile stores a file reference
func (s *State) SetFile(id uuid.UUID, ref FileRef) {
	s.values[id] = Value{File: &ref}
}

// Clear forgets the value for id
func (s *State) Clear(id uuid.UUID) {
	delete(s.values, id)
}

// Merge copies every value of other into s
func (s *State) Merge(other *State) {
	if other == nil {
		return
	}
	for id, v := range other.values {
		s.values[id] = v
	}
}

// Clone returns an independent copy
func (s *State) Clone() *State {
	out := NewState()
	out.Merge(s)
	return out
}

func (s *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.values)
}

func (s *State) UnmarshalJSON(data []byte) error {
	values := make(map[uuid.UUID]Value)
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	s.values = values
	return nil
}
