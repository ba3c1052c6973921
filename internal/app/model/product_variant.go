package model

import (
	"time"
)

// ProductVariant is a product's case-type-specific override record. At most
// one variant exists per (product_id, case_type). Stock is display-only
// metadata and is never enforced.
type ProductVariant struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ProductID   uint      `gorm:"not null;uniqueIndex:idx_product_variants_product_case" json:"product_id"`
	CaseType    CaseType  `gorm:"type:varchar(20);not null;uniqueIndex:idx_product_variants_product_case" json:"case_type"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Image       string    `json:"image,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}
