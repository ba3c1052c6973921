package model

import (
	"time"

	"gorm.io/gorm"
)

// Product is a case design. The six image slots are shared across both case
// types; per-case-type overrides live on ProductVariant.
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	BasePrice   float64        `gorm:"not null" json:"base_price"`
	CategoryID  *uint          `gorm:"index" json:"category_id"`
	Image       string         `json:"image"`
	Image2      string         `json:"image_2,omitempty"`
	Image3      string         `json:"image_3,omitempty"`
	Image4      string         `json:"image_4,omitempty"`
	Image5      string         `json:"image_5,omitempty"`
	Image6      string         `json:"image_6,omitempty"`
	IsNew       bool           `gorm:"default:false" json:"is_new"`
	IsTopDesign bool           `gorm:"default:false" json:"is_top_design"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// VariantFor returns the variant for the given case type, or nil.
func (p *Product) VariantFor(caseType CaseType) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].CaseType == caseType {
			return &p.Variants[i]
		}
	}
	return nil
}

// ExtraImages returns the optional image slots 2..6 in order, blanks included.
func (p *Product) ExtraImages() []string {
	return []string{p.Image2, p.Image3, p.Image4, p.Image5, p.Image6}
}
