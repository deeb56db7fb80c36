package domain

import "github.com/google/uuid"

// FormTemplate is a named, ordered set of elements offered for a product category
type FormTemplate struct {
	BaseModel
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	CategoryID  *uuid.UUID    `gorm:"type:uuid;index:idx_form_templates_category_id" json:"category_id"`
	Elements    []FormElement `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"elements,omitempty"`
}

// TableName specifies the table name for FormTemplate
func (FormTemplate) TableName() string {
	return "form_templates"
}

// SortedElements returns a copy of the elements ordered by Order ascending,
// regardless of how they were loaded
func (t *FormTemplate) SortedElements() []FormElement {
	out := make([]FormElement, len(t.Elements))
	copy(out, t.Elements)
	SortElements(out)
	return out
}

// ElementByID finds an element of this template by id
func (t *FormTemplate) ElementByID(id uuid.UUID) (*FormElement, bool) {
	for i := range t.Elements {
		if t.Elements[i].ID == id {
			return &t.Elements[i], true
		}
	}
	return nil, false
}
