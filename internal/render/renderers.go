package render

import (
	"strconv"
	"strings"

	"form-template-api/internal/domain"
	"form-template-api/internal/validation"
)

const (
	msgInvalidNumber = "must be a number"
	msgInvalidOption = "invalid option"
	msgInvalidFile   = "invalid file"
	dateLayout       = "2006-01-02"
)

// MsgInvalidValue is reported for a value whose shape does not fit its element
const MsgInvalidValue = "invalid value"

func defaultText(el *domain.FormElement, v Value, set bool) string {
	if set {
		if v.Text != nil {
			return *v.Text
		}
		return ""
	}
	if el.DefaultValue != nil {
		return *el.DefaultValue
	}
	return ""
}

// textRenderer covers input, textarea, email and phone
type textRenderer struct {
	widget    string
	inputType string
}

func (r textRenderer) Render(el *domain.FormElement, v Value, set bool, f *Field) {
	rule := validation.Resolve(el)
	f.Widget = r.widget
	f.InputType = r.inputType
	f.Value = defaultText(el, v, set)
	f.Pattern = rule.Pattern.String()
	f.PatternMessage = rule.Message
}

func (r textRenderer) Validate(el *domain.FormElement, v Value) string {
	if v.Text == nil {
		return MsgInvalidValue
	}
	rule := validation.Resolve(el)
	if !rule.Match(*v.Text) {
		return rule.Message
	}
	return ""
}

type numberRenderer struct{}

func (numberRenderer) Render(el *domain.FormElement, v Value, set bool, f *Field) {
	rule := validation.Resolve(el)
	f.Widget = "input"
	f.InputType = "number"
	f.Value = defaultText(el, v, set)
	f.Pattern = rule.Pattern.String()
	f.PatternMessage = rule.Message
}

func (numberRenderer) Validate(el *domain.FormElement, v Value) string {
	if v.Text == nil {
		return MsgInvalidValue
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(*v.Text), 64); err != nil {
		return msgInvalidNumber
	}
	rule := validation.Resolve(el)
	if !rule.Match(*v.Text) {
		return rule.Message
	}
	return ""
}

// choiceRenderer covers select and radio: exactly one value
type choiceRenderer struct {
	widget string
}

func (r choiceRenderer) Render(el *domain.FormElement, v Value, set bool, f *Field) {
	f.Widget = r.widget
	f.Value = defaultText(el, v, set)
	f.Options = make([]Option, len(el.Options))
	for i, opt := range el.Options {
		f.Options[i] = Option{Label: opt.Label, Value: opt.Value, Selected: opt.Value == f.Value}
	}
}

func (choiceRenderer) Validate(el *domain.FormElement, v Value) string {
	if v.Text == nil || !el.HasOption(*v.Text) {
		return msgInvalidOption
	}
	return ""
}

// checkboxRenderer allows several values selected at once
type checkboxRenderer struct{}

func (checkboxRenderer) Render(el *domain.FormElement, v Value, set bool, f *Field) {
	f.Widget = "checkbox-group"
	f.Multiple = true

	selected := make(map[string]bool)
	switch {
	case set:
		for _, c := range v.Choices {
			selected[c] = true
		}
		f.Values = append([]string(nil), v.Choices...)
	case el.DefaultValue != nil && *el.DefaultValue != "":
		selected[*el.DefaultValue] = true
		f.Values = []string{*el.DefaultValue}
	}

	f.Options = make([]Option, len(el.Options))
	for i, opt := range el.Options {
		f.Options[i] = Option{Label: opt.Label, Value: opt.Value, Selected: selected[opt.Value]}
	}
}

func (checkboxRenderer) Validate(el *domain.FormElement, v Value) string {
	if v.Choices == nil {
		return MsgInvalidValue
	}
	for _, c := range v.Choices {
		if !el.HasOption(c) {
			return msgInvalidOption
		}
	}
	return ""
}

// dateRenderer has no default when unset
type dateRenderer struct{}

func (dateRenderer) Render(el *domain.FormElement, v Value, set bool, f *Field) {
	f.Widget = "date-picker"
	f.InputType = "date"
	if set && v.Date != nil {
		f.Value = v.Date.Format(dateLayout)
	}
}

func (dateRenderer) Validate(el *domain.FormElement, v Value) string {
	if v.Date == nil {
		return MsgInvalidValue
	}
	return ""
}

// fileRenderer exposes file_accept to the picker; types are not re-checked here
type fileRenderer struct{}

func (fileRenderer) Render(el *domain.FormElement, v Value, set bool, f *Field) {
	f.Widget = "file-drop"
	f.InputType = "file"
	if el.FileAccept != nil {
		f.Accept = *el.FileAccept
	}
	if set && v.File != nil {
		f.Value = v.File.Name
		if f.Value == "" {
			f.Value = v.File.UploadID.String()
		}
	}
}

func (fileRenderer) Validate(el *domain.FormElement, v Value) string {
	if v.File == nil {
		return msgInvalidFile
	}
	return ""
}
