package model

import (
	"time"
)

// CompatibleGroup is a curation record stating whether a mobile model may be
// sold with a case type. The registry is open-world: a model with NO row for
// a case type is sellable by default; a row restricts or confirms it via
// IsVisible. Absence means "not yet curated", never "unavailable".
type CompatibleGroup struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ModelID   uint      `gorm:"not null;uniqueIndex:idx_compatible_groups_model_case" json:"model_id"`
	CaseType  CaseType  `gorm:"type:varchar(20);not null;uniqueIndex:idx_compatible_groups_model_case" json:"case_type"`
	IsVisible bool      `gorm:"not null" json:"is_visible"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Model MobileModel `gorm:"foreignKey:ModelID" json:"model,omitempty"`
}

func (CompatibleGroup) TableName() string {
	return "compatible_groups"
}
