package repository

import (
	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/pkg/logger"
	"gorm.io/gorm"
)

type BrandRepository interface {
	Create(brand *model.MobileBrand) error
	FindAll() ([]model.MobileBrand, error)
	FindByID(id uint) (*model.MobileBrand, error)
	FindByName(name string) (*model.MobileBrand, error)
	Update(brand *model.MobileBrand) error
	Delete(id uint) error
}

type brandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(brand *model.MobileBrand) error {
	logger.Debug("Creating brand in database", map[string]interface{}{
		"name": brand.Name,
	})

	if err := r.db.Create(brand).Error; err != nil {
		logger.Error("Failed to create brand in database", err, map[string]interface{}{
			"name": brand.Name,
		})
		return err
	}
	return nil
}

func (r *brandRepository) FindAll() ([]model.MobileBrand, error) {
	var brands []model.MobileBrand
	if err := r.db.Order("name ASC").Find(&brands).Error; err != nil {
		logger.Error("Failed to list brands from database", err)
		return nil, err
	}
	return brands, nil
}

func (r *brandRepository) FindByID(id uint) (*model.MobileBrand, error) {
	var brand model.MobileBrand
	if err := r.db.First(&brand, id).Error; err != nil {
		logger.Error("Failed to find brand by ID in database", err, map[string]interface{}{
			"brand_id": id,
		})
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) FindByName(name string) (*model.MobileBrand, error) {
	var brand model.MobileBrand
	if err := r.db.Where("name = ?", name).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) Update(brand *model.MobileBrand) error {
	logger.Debug("Updating brand in database", map[string]interface{}{
		"brand_id": brand.ID,
		"name":     brand.Name,
	})

	if err := r.db.Save(brand).Error; err != nil {
		logger.Error("Failed to update brand in database", err, map[string]interface{}{
			"brand_id": brand.ID,
		})
		return err
	}
	return nil
}

func (r *brandRepository) Delete(id uint) error {
	logger.Debug("Deleting brand from database", map[string]interface{}{
		"brand_id": id,
	})

	if err := r.db.Delete(&model.MobileBrand{}, id).Error; err != nil {
		logger.Error("Failed to delete brand from database", err, map[string]interface{}{
			"brand_id": id,
		})
		return err
	}
	return nil
}
