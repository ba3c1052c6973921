package model

import (
	"time"

	"gorm.io/gorm"
)

type MobileModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	BrandID   uint           `gorm:"not null;index" json:"brand_id"`
	Name      string         `gorm:"not null" json:"name"`
	Image     string         `json:"image,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Brand MobileBrand `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}

func (MobileModel) TableName() string {
	return "mobile_models"
}
