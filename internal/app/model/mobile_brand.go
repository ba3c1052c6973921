package model

import (
	"time"

	"gorm.io/gorm"
)

type MobileBrand struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null;uniqueIndex" json:"name"`
	Logo      string         `json:"logo,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Models []MobileModel `gorm:"foreignKey:BrandID" json:"-"`
}

func (MobileBrand) TableName() string {
	return "mobile_brands"
}
