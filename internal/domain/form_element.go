package domain

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ElementType is the closed set of field kinds a template can contain
type ElementType string

const (
	ElementTypeInput    ElementType = "input"
	ElementTypeTextarea ElementType = "textarea"
	ElementTypeSelect   ElementType = "select"
	ElementTypeCheckbox ElementType = "checkbox"
	ElementTypeRadio    ElementType = "radio"
	ElementTypeNumber   ElementType = "number"
	ElementTypeDate     ElementType = "date"
	ElementTypeFile     ElementType = "file"
	ElementTypeEmail    ElementType = "email"
	ElementTypePhone    ElementType = "phone"
)

var elementTypeNames = map[ElementType]string{
	ElementTypeInput:    "Text Input",
	ElementTypeTextarea: "Text Area",
	ElementTypeSelect:   "Select",
	ElementTypeCheckbox: "Checkbox",
	ElementTypeRadio:    "Radio",
	ElementTypeNumber:   "Number",
	ElementTypeDate:     "Date",
	ElementTypeFile:     "File Upload",
	ElementTypeEmail:    "Email",
	ElementTypePhone:    "Phone",
}

// AllElementTypes returns every supported element type in a stable order
func AllElementTypes() []ElementType {
	return []ElementType{
		ElementTypeInput,
		ElementTypeTextarea,
		ElementTypeSelect,
		ElementTypeCheckbox,
		ElementTypeRadio,
		ElementTypeNumber,
		ElementTypeDate,
		ElementTypeFile,
		ElementTypeEmail,
		ElementTypePhone,
	}
}

// IsValid reports whether t belongs to the closed enumeration
func (t ElementType) IsValid() bool {
	_, ok := elementTypeNames[t]
	return ok
}

// IsChoice reports whether the type draws its values from Options
func (t ElementType) IsChoice() bool {
	return t == ElementTypeSelect || t == ElementTypeCheckbox || t == ElementTypeRadio
}

// DisplayName is the human readable name used for auto-generated labels
func (t ElementType) DisplayName() string {
	if name, ok := elementTypeNames[t]; ok {
		return name
	}
	return string(t)
}

// AutoLabel is the generated label for a new element of type t when
// existing elements of that type are already present, e.g. "Text Input 2"
func (t ElementType) AutoLabel(existing int) string {
	return fmt.Sprintf("%s %d", t.DisplayName(), existing+1)
}

// ElementOption is one selectable {label, value} pair
type ElementOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ElementValidation holds a custom pattern. Pattern and flags are stored
// separately; the "/body/flags" form is only accepted on import.
type ElementValidation struct {
	Pattern string `gorm:"type:text" json:"pattern"`
	Flags   string `gorm:"type:varchar(10)" json:"flags"`
	Message string `gorm:"type:varchar(255)" json:"message"`
}

// HasPattern reports whether a custom pattern is configured
func (v ElementValidation) HasPattern() bool {
	return v.Pattern != ""
}

// FormElement is a single typed field descriptor within a template
type FormElement struct {
	BaseModel
	TemplateID   uuid.UUID                         `gorm:"type:uuid;not null;index:idx_form_elements_template_order,priority:1" json:"template_id"`
	Type         ElementType                       `gorm:"type:varchar(20);not null" json:"type"`
	Label        string                            `gorm:"type:varchar(255);not null" json:"label"`
	Placeholder  *string                           `gorm:"type:varchar(255)" json:"placeholder"`
	Required     bool                              `gorm:"not null;default:false" json:"required"`
	DefaultValue *string                           `gorm:"type:text" json:"default_value"`
	Options      datatypes.JSONSlice[ElementOption] `gorm:"type:json" json:"options"`
	Validation   ElementValidation                 `gorm:"embedded;embeddedPrefix:validation_" json:"validation"`
	FileAccept   *string                           `gorm:"type:varchar(255)" json:"file_accept"`
	Order        int                               `gorm:"column:display_order;type:int;not null;index:idx_form_elements_template_order,priority:2" json:"order"`
}

// TableName specifies the table name for FormElement
func (FormElement) TableName() string {
	return "form_elements"
}

// OptionValues returns option values in stored order
func (e *FormElement) OptionValues() []string {
	values := make([]string, len(e.Options))
	for i, opt := range e.Options {
		values[i] = opt.Value
	}
	return values
}

// HasOption reports whether value is one of the element's options
func (e *FormElement) HasOption(value string) bool {
	for _, opt := range e.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// SortElements orders elements by Order ascending, in place.
// Ties keep their relative order.
func SortElements(elements []FormElement) {
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].Order < elements[j].Order
	})
}
