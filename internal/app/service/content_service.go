package service

import (
	"errors"

	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrContentNotFound  = errors.New("case content not found")
	ErrInvalidBlockType = errors.New("invalid content block type")
	ErrInvalidBlockSize = errors.New("invalid title block size")
	ErrInvalidImageSide = errors.New("invalid image position")
)

// CaseContentInput is the full editor payload for one case type. Saving
// replaces the stored row wholesale; there are no partial updates.
type CaseContentInput struct {
	CaseType      model.CaseType       `json:"case_type" binding:"required"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Features      []string             `json:"features"`
	Price         *float64             `json:"price"`
	ComparePrice  *float64             `json:"compare_price"`
	DefaultImage2 string               `json:"default_image_2"`
	DefaultImage3 string               `json:"default_image_3"`
	DefaultImage4 string               `json:"default_image_4"`
	DefaultImage5 string               `json:"default_image_5"`
	DefaultImage6 string               `json:"default_image_6"`
	ContentBlocks []model.ContentBlock `json:"content_blocks"`
}

// ContentService manages case-type default content: the marketing copy,
// pricing defaults, gallery defaults, and ordered content blocks applied to
// every product of a case type that lacks its own values.
type ContentService interface {
	GetContent(caseType model.CaseType) (*model.CaseContent, error)
	GetAllContents() ([]model.CaseContent, error)
	SaveContent(input CaseContentInput) (*model.CaseContent, error)
}

type contentService struct {
	contentRepo repository.ContentRepository
}

func NewContentService(contentRepo repository.ContentRepository) ContentService {
	return &contentService{contentRepo: contentRepo}
}

func (s *contentService) GetContent(caseType model.CaseType) (*model.CaseContent, error) {
	if !caseType.Valid() {
		return nil, ErrInvalidCaseType
	}

	content, err := s.contentRepo.FindByCaseType(caseType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (s *contentService) GetAllContents() ([]model.CaseContent, error) {
	return s.contentRepo.FindAll()
}

// SaveContent validates and upserts the content row for a case type. Blocks
// keep the ids they arrive with so the editor can target them across saves;
// only blocks without an id get a fresh one.
func (s *contentService) SaveContent(input CaseContentInput) (*model.CaseContent, error) {
	if !input.CaseType.Valid() {
		return nil, ErrInvalidCaseType
	}

	blocks, err := normalizeBlocks(input.ContentBlocks)
	if err != nil {
		logger.Warn("Rejected case content with invalid blocks", map[string]interface{}{
			"case_type": input.CaseType,
			"error":     err.Error(),
		})
		return nil, err
	}

	features := input.Features
	if features == nil {
		features = []string{}
	}

	content := &model.CaseContent{
		CaseType:      input.CaseType,
		Title:         input.Title,
		Description:   input.Description,
		Features:      features,
		Price:         input.Price,
		ComparePrice:  input.ComparePrice,
		DefaultImage2: input.DefaultImage2,
		DefaultImage3: input.DefaultImage3,
		DefaultImage4: input.DefaultImage4,
		DefaultImage5: input.DefaultImage5,
		DefaultImage6: input.DefaultImage6,
		ContentBlocks: blocks,
	}

	if err := s.contentRepo.Upsert(content); err != nil {
		return nil, err
	}

	logger.Info("Case content saved", map[string]interface{}{
		"case_type":   content.CaseType,
		"block_count": len(content.ContentBlocks),
	})
	return content, nil
}

// normalizeBlocks validates the closed block union at write time. Reads are
// forgiving about stored data; writes are not.
func normalizeBlocks(blocks []model.ContentBlock) (model.ContentBlockList, error) {
	normalized := make(model.ContentBlockList, 0, len(blocks))
	for _, b := range blocks {
		if !b.Type.Valid() {
			return nil, ErrInvalidBlockType
		}

		switch b.Type {
		case model.BlockTitle:
			switch b.Size {
			case "", "small", "medium", "large":
			default:
				return nil, ErrInvalidBlockSize
			}
		case model.BlockImageText:
			switch b.ImagePosition {
			case "", "left", "right":
			default:
				return nil, ErrInvalidImageSide
			}
		}

		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		normalized = append(normalized, b)
	}
	return normalized, nil
}
