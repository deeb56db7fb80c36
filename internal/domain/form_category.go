package domain

import (
	"time"

	"github.com/google/uuid"
)

// FormCategoryMapping associates a product category with at most one template.
// A nil FormTemplateID means the category requires no form.
type FormCategoryMapping struct {
	CategoryID     uuid.UUID     `gorm:"type:uuid;primaryKey" json:"category_id"`
	CategoryName   string        `gorm:"type:varchar(255);not null" json:"category_name"`
	FormTemplateID *uuid.UUID    `gorm:"type:uuid;index:idx_form_category_mappings_template_id" json:"form_template_id"`
	Eligible       bool          `gorm:"not null" json:"eligible"`
	FormTemplate   *FormTemplate `gorm:"foreignKey:FormTemplateID;constraint:OnDelete:SET NULL" json:"form_template,omitempty"`
	CreatedAt      time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for FormCategoryMapping
func (FormCategoryMapping) TableName() string {
	return "form_category_mappings"
}
