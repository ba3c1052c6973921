package repository

import (
	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompatibilityRepository interface {
	FindAll() ([]model.CompatibleGroup, error)
	FindByCaseType(caseType model.CaseType) ([]model.CompatibleGroup, error)
	FindByModelAndCase(modelID uint, caseType model.CaseType) (*model.CompatibleGroup, error)
	FindByModelIDs(modelIDs []uint, caseType model.CaseType) ([]model.CompatibleGroup, error)
	Upsert(group *model.CompatibleGroup) error
	BulkUpsert(groups []model.CompatibleGroup) error
	Delete(id uint) error
	DeleteByModelID(modelID uint) error
	DeleteByModelIDs(modelIDs []uint) error
}

type compatibilityRepository struct {
	db *gorm.DB
}

func NewCompatibilityRepository(db *gorm.DB) CompatibilityRepository {
	return &compatibilityRepository{db: db}
}

func (r *compatibilityRepository) FindAll() ([]model.CompatibleGroup, error) {
	var groups []model.CompatibleGroup
	err := r.db.Preload("Model").Preload("Model.Brand").
		Order("model_id ASC, case_type ASC").
		Find(&groups).Error
	if err != nil {
		logger.Error("Failed to list compatibility entries from database", err)
		return nil, err
	}
	return groups, nil
}

func (r *compatibilityRepository) FindByCaseType(caseType model.CaseType) ([]model.CompatibleGroup, error) {
	var groups []model.CompatibleGroup
	err := r.db.Where("case_type = ?", caseType).Find(&groups).Error
	if err != nil {
		logger.Error("Failed to list compatibility entries by case type", err, map[string]interface{}{
			"case_type": caseType,
		})
		return nil, err
	}
	return groups, nil
}

func (r *compatibilityRepository) FindByModelAndCase(modelID uint, caseType model.CaseType) (*model.CompatibleGroup, error) {
	var group model.CompatibleGroup
	err := r.db.Where("model_id = ? AND case_type = ?", modelID, caseType).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *compatibilityRepository) FindByModelIDs(modelIDs []uint, caseType model.CaseType) ([]model.CompatibleGroup, error) {
	if len(modelIDs) == 0 {
		return []model.CompatibleGroup{}, nil
	}

	var groups []model.CompatibleGroup
	err := r.db.Where("model_id IN ? AND case_type = ?", modelIDs, caseType).Find(&groups).Error
	if err != nil {
		logger.Error("Failed to list compatibility entries by model IDs", err, map[string]interface{}{
			"case_type":   caseType,
			"model_count": len(modelIDs),
		})
		return nil, err
	}
	return groups, nil
}

// Upsert writes the visibility flag for a (model, case type) pair, inserting
// the row if it does not exist yet.
func (r *compatibilityRepository) Upsert(group *model.CompatibleGroup) error {
	logger.Debug("Upserting compatibility entry in database", map[string]interface{}{
		"model_id":   group.ModelID,
		"case_type":  group.CaseType,
		"is_visible": group.IsVisible,
	})

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "model_id"}, {Name: "case_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_visible", "updated_at"}),
	}).Create(group).Error
	if err != nil {
		logger.Error("Failed to upsert compatibility entry in database", err, map[string]interface{}{
			"model_id":  group.ModelID,
			"case_type": group.CaseType,
		})
		return err
	}
	return nil
}

func (r *compatibilityRepository) BulkUpsert(groups []model.CompatibleGroup) error {
	if len(groups) == 0 {
		return nil
	}

	logger.Debug("Bulk upserting compatibility entries in database", map[string]interface{}{
		"count": len(groups),
	})

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "model_id"}, {Name: "case_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_visible", "updated_at"}),
	}).Create(&groups).Error
	if err != nil {
		logger.Error("Failed to bulk upsert compatibility entries in database", err, map[string]interface{}{
			"count": len(groups),
		})
		return err
	}
	return nil
}

func (r *compatibilityRepository) Delete(id uint) error {
	logger.Debug("Deleting compatibility entry from database", map[string]interface{}{
		"group_id": id,
	})

	if err := r.db.Delete(&model.CompatibleGroup{}, id).Error; err != nil {
		logger.Error("Failed to delete compatibility entry from database", err, map[string]interface{}{
			"group_id": id,
		})
		return err
	}
	return nil
}

func (r *compatibilityRepository) DeleteByModelID(modelID uint) error {
	if err := r.db.Where("model_id = ?", modelID).Delete(&model.CompatibleGroup{}).Error; err != nil {
		logger.Error("Failed to delete compatibility entries by model", err, map[string]interface{}{
			"model_id": modelID,
		})
		return err
	}
	return nil
}

func (r *compatibilityRepository) DeleteByModelIDs(modelIDs []uint) error {
	if len(modelIDs) == 0 {
		return nil
	}

	if err := r.db.Where("model_id IN ?", modelIDs).Delete(&model.CompatibleGroup{}).Error; err != nil {
		logger.Error("Failed to delete compatibility entries by models", err, map[string]interface{}{
			"model_count": len(modelIDs),
		})
		return err
	}
	return nil
}
