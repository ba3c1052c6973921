package repository

import (
	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContentRepository interface {
	FindAll() ([]model.CaseContent, error)
	FindByCaseType(caseType model.CaseType) (*model.CaseContent, error)
	Upsert(content *model.CaseContent) error
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) FindAll() ([]model.CaseContent, error) {
	var contents []model.CaseContent
	if err := r.db.Order("case_type ASC").Find(&contents).Error; err != nil {
		logger.Error("Failed to list case contents from database", err)
		return nil, err
	}
	return contents, nil
}

func (r *contentRepository) FindByCaseType(caseType model.CaseType) (*model.CaseContent, error) {
	var content model.CaseContent
	err := r.db.Where("case_type = ?", caseType).First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// Upsert saves the full content row for a case type. CaseType is the natural
// key; saving twice for the same case type updates the single existing row.
func (r *contentRepository) Upsert(content *model.CaseContent) error {
	logger.Debug("Upserting case content in database", map[string]interface{}{
		"case_type":   content.CaseType,
		"block_count": len(content.ContentBlocks),
	})

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "case_type"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "features", "price", "compare_price",
			"default_image2", "default_image3", "default_image4",
			"default_image5", "default_image6", "content_blocks", "updated_at",
		}),
	}).Create(content).Error
	if err != nil {
		logger.Error("Failed to upsert case content in database", err, map[string]interface{}{
			"case_type": content.CaseType,
		})
		return err
	}
	return nil
}
