package model

import (
	"time"
)

// CaseContent holds the case-type-wide default content applied to any
// product lacking its own values for that case type. One row exists per
// case type; CaseType is the natural key and writes are upserts against it.
type CaseContent struct {
	ID            uint             `gorm:"primarykey" json:"id"`
	CaseType      CaseType         `gorm:"type:varchar(20);not null;uniqueIndex" json:"case_type"`
	Title         string           `json:"title,omitempty"`
	Description   string           `gorm:"type:text" json:"description,omitempty"`
	Features      FeatureList      `gorm:"type:jsonb" json:"features"`
	Price         *float64         `json:"price,omitempty"`
	ComparePrice  *float64         `json:"compare_price,omitempty"`
	DefaultImage2 string           `json:"default_image_2,omitempty"`
	DefaultImage3 string           `json:"default_image_3,omitempty"`
	DefaultImage4 string           `json:"default_image_4,omitempty"`
	DefaultImage5 string           `json:"default_image_5,omitempty"`
	DefaultImage6 string           `json:"default_image_6,omitempty"`
	ContentBlocks ContentBlockList `gorm:"type:jsonb" json:"content_blocks"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (CaseContent) TableName() string {
	return "case_contents"
}

// DefaultImages returns the optional default image slots 2..6 in order,
// blanks included.
func (c *CaseContent) DefaultImages() []string {
	return []string{c.DefaultImage2, c.DefaultImage3, c.DefaultImage4, c.DefaultImage5, c.DefaultImage6}
}
