package repository

import (
	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/pkg/logger"
	"gorm.io/gorm"
)

type ModelRepository interface {
	Create(mobileModel *model.MobileModel) error
	BulkCreate(models []model.MobileModel) ([]model.MobileModel, error)
	FindAll(brandID *uint) ([]model.MobileModel, error)
	FindAllWithBrand(brandID *uint) ([]model.MobileModel, error)
	FindByID(id uint) (*model.MobileModel, error)
	FindByBrandAndName(brandID uint, name string) (*model.MobileModel, error)
	FindIDsByBrandID(brandID uint) ([]uint, error)
	Update(mobileModel *model.MobileModel) error
	Delete(id uint) error
	DeleteByBrandID(brandID uint) error
}

type modelRepository struct {
	db *gorm.DB
}

func NewModelRepository(db *gorm.DB) ModelRepository {
	return &modelRepository{db: db}
}

func (r *modelRepository) Create(mobileModel *model.MobileModel) error {
	logger.Debug("Creating mobile model in database", map[string]interface{}{
		"name":     mobileModel.Name,
		"brand_id": mobileModel.BrandID,
	})

	if err := r.db.Create(mobileModel).Error; err != nil {
		logger.Error("Failed to create mobile model in database", err, map[string]interface{}{
			"name":     mobileModel.Name,
			"brand_id": mobileModel.BrandID,
		})
		return err
	}
	return nil
}

func (r *modelRepository) BulkCreate(models []model.MobileModel) ([]model.MobileModel, error) {
	if len(models) == 0 {
		return models, nil
	}

	logger.Debug("Bulk creating mobile models in database", map[string]interface{}{
		"count": len(models),
	})

	if err := r.db.Create(&models).Error; err != nil {
		logger.Error("Failed to bulk create mobile models in database", err, map[string]interface{}{
			"count": len(models),
		})
		return nil, err
	}
	return models, nil
}

func (r *modelRepository) baseQuery(brandID *uint) *gorm.DB {
	query := r.db.Model(&model.MobileModel{}).Order("name ASC")
	if brandID != nil {
		query = query.Where("brand_id = ?", *brandID)
	}
	return query
}

func (r *modelRepository) FindAll(brandID *uint) ([]model.MobileModel, error) {
	var models []model.MobileModel
	if err := r.baseQuery(brandID).Find(&models).Error; err != nil {
		logger.Error("Failed to list mobile models from database", err, map[string]interface{}{
			"brand_id": brandID,
		})
		return nil, err
	}
	return models, nil
}

func (r *modelRepository) FindAllWithBrand(brandID *uint) ([]model.MobileModel, error) {
	var models []model.MobileModel
	if err := r.baseQuery(brandID).Preload("Brand").Find(&models).Error; err != nil {
		logger.Error("Failed to list mobile models with brands from database", err, map[string]interface{}{
			"brand_id": brandID,
		})
		return nil, err
	}
	return models, nil
}

func (r *modelRepository) FindByID(id uint) (*model.MobileModel, error) {
	var mobileModel model.MobileModel
	if err := r.db.Preload("Brand").First(&mobileModel, id).Error; err != nil {
		logger.Error("Failed to find mobile model by ID in database", err, map[string]interface{}{
			"model_id": id,
		})
		return nil, err
	}
	return &mobileModel, nil
}

func (r *modelRepository) FindByBrandAndName(brandID uint, name string) (*model.MobileModel, error) {
	var mobileModel model.MobileModel
	err := r.db.Where("brand_id = ? AND name = ?", brandID, name).First(&mobileModel).Error
	if err != nil {
		return nil, err
	}
	return &mobileModel, nil
}

func (r *modelRepository) FindIDsByBrandID(brandID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.MobileModel{}).Where("brand_id = ?", brandID).Pluck("id", &ids).Error
	if err != nil {
		logger.Error("Failed to list mobile model IDs by brand", err, map[string]interface{}{
			"brand_id": brandID,
		})
		return nil, err
	}
	return ids, nil
}

func (r *modelRepository) Update(mobileModel *model.MobileModel) error {
	logger.Debug("Updating mobile model in database", map[string]interface{}{
		"model_id": mobileModel.ID,
		"name":     mobileModel.Name,
	})

	if err := r.db.Save(mobileModel).Error; err != nil {
		logger.Error("Failed to update mobile model in database", err, map[string]interface{}{
			"model_id": mobileModel.ID,
		})
		return err
	}
	return nil
}

func (r *modelRepository) Delete(id uint) error {
	logger.Debug("Deleting mobile model from database", map[string]interface{}{
		"model_id": id,
	})

	if err := r.db.Delete(&model.MobileModel{}, id).Error; err != nil {
		logger.Error("Failed to delete mobile model from database", err, map[string]interface{}{
			"model_id": id,
		})
		return err
	}
	return nil
}

func (r *modelRepository) DeleteByBrandID(brandID uint) error {
	logger.Debug("Deleting mobile models by brand from database", map[string]interface{}{
		"brand_id": brandID,
	})

	if err := r.db.Where("brand_id = ?", brandID).Delete(&model.MobileModel{}).Error; err != nil {
		logger.Error("Failed to delete mobile models by brand from database", err, map[string]interface{}{
			"brand_id": brandID,
		})
		return err
	}
	return nil
}
