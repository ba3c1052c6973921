package service

import (
	"errors"

	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrModelNotFound    = errors.New("mobile model not found")
	ErrInvalidCaseType  = errors.New("invalid case type")
	ErrGroupNotFound    = errors.New("compatibility entry not found")
	ErrModelNotSellable = errors.New("model is not available for this case type")
)

// ModelAvailability pairs a phone model with its availability for one case type.
type ModelAvailability struct {
	Model       model.MobileModel `json:"model"`
	IsAvailable bool              `json:"is_available"`
}

// VisibilityUpdate is one admin write against the compatibility registry.
type VisibilityUpdate struct {
	ModelID   uint           `json:"model_id"`
	CaseType  model.CaseType `json:"case_type"`
	IsVisible bool           `json:"is_visible"`
}

// CompatibilityService answers "can this phone be sold with this case type".
//
// The registry is an exclusion list, not an allow list: a model with no entry
// for a case type is available. Only an entry with is_visible=false hides it.
// New models are therefore sellable everywhere until someone opts them out.
type CompatibilityService interface {
	IsModelAvailable(modelID uint, caseType model.CaseType) (bool, error)
	ListAvailableModels(brandID *uint, caseType model.CaseType) ([]model.MobileModel, error)
	ListModelsWithAvailability(brandID *uint, caseType model.CaseType) ([]ModelAvailability, error)
	ListRegistry() ([]model.CompatibleGroup, error)
	SetVisibility(update VisibilityUpdate) (*model.CompatibleGroup, error)
	BulkSetVisibility(updates []VisibilityUpdate) error
	DeleteEntry(id uint) error
}

type compatibilityService struct {
	compatRepo repository.CompatibilityRepository
	modelRepo  repository.ModelRepository
}

func NewCompatibilityService(compatRepo repository.CompatibilityRepository, modelRepo repository.ModelRepository) CompatibilityService {
	return &compatibilityService{
		compatRepo: compatRepo,
		modelRepo:  modelRepo,
	}
}

// IsModelAvailable reports whether a model may be sold with a case type.
// Absence of a registry entry means available.
func (s *compatibilityService) IsModelAvailable(modelID uint, caseType model.CaseType) (bool, error) {
	if !caseType.Valid() {
		return false, ErrInvalidCaseType
	}

	group, err := s.compatRepo.FindByModelAndCase(modelID, caseType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		logger.Error("Failed to check model availability", err, map[string]interface{}{
			"model_id":  modelID,
			"case_type": caseType,
		})
		return false, err
	}
	return group.IsVisible, nil
}

func (s *compatibilityService) ListAvailableModels(brandID *uint, caseType model.CaseType) ([]model.MobileModel, error) {
	withAvailability, err := s.ListModelsWithAvailability(brandID, caseType)
	if err != nil {
		return nil, err
	}

	available := make([]model.MobileModel, 0, len(withAvailability))
	for _, entry := range withAvailability {
		if entry.IsAvailable {
			available = append(available, entry.Model)
		}
	}
	return available, nil
}

func (s *compatibilityService) ListModelsWithAvailability(brandID *uint, caseType model.CaseType) ([]ModelAvailability, error) {
	if !caseType.Valid() {
		return nil, ErrInvalidCaseType
	}

	logger.Debug("Listing models with availability", map[string]interface{}{
		"brand_id":  brandID,
		"case_type": caseType,
	})

	models, err := s.modelRepo.FindAll(brandID)
	if err != nil {
		return nil, err
	}

	modelIDs := make([]uint, len(models))
	for i, m := range models {
		modelIDs[i] = m.ID
	}

	groups, err := s.compatRepo.FindByModelIDs(modelIDs, caseType)
	if err != nil {
		return nil, err
	}

	// Hidden set. Models without an entry stay available.
	hidden := make(map[uint]bool, len(groups))
	for _, g := range groups {
		if !g.IsVisible {
			hidden[g.ModelID] = true
		}
	}

	result := make([]ModelAvailability, len(models))
	for i, m := range models {
		result[i] = ModelAvailability{
			Model:       m,
			IsAvailable: !hidden[m.ID],
		}
	}
	return result, nil
}

func (s *compatibilityService) ListRegistry() ([]model.CompatibleGroup, error) {
	return s.compatRepo.FindAll()
}

func (s *compatibilityService) SetVisibility(update VisibilityUpdate) (*model.CompatibleGroup, error) {
	if !update.CaseType.Valid() {
		return nil, ErrInvalidCaseType
	}

	if _, err := s.modelRepo.FindByID(update.ModelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, err
	}

	group := &model.CompatibleGroup{
		ModelID:   update.ModelID,
		CaseType:  update.CaseType,
		IsVisible: update.IsVisible,
	}
	if err := s.compatRepo.Upsert(group); err != nil {
		return nil, err
	}

	logger.Info("Compatibility visibility updated", map[string]interface{}{
		"model_id":   update.ModelID,
		"case_type":  update.CaseType,
		"is_visible": update.IsVisible,
	})
	return group, nil
}

func (s *compatibilityService) BulkSetVisibility(updates []VisibilityUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	groups := make([]model.CompatibleGroup, 0, len(updates))
	for _, u := range updates {
		if !u.CaseType.Valid() {
			return ErrInvalidCaseType
		}
		groups = append(groups, model.CompatibleGroup{
			ModelID:   u.ModelID,
			CaseType:  u.CaseType,
			IsVisible: u.IsVisible,
		})
	}

	if err := s.compatRepo.BulkUpsert(groups); err != nil {
		return err
	}

	logger.Info("Compatibility visibility bulk updated", map[string]interface{}{
		"count": len(groups),
	})
	return nil
}

func (s *compatibilityService) DeleteEntry(id uint) error {
	if err := s.compatRepo.Delete(id); err != nil {
		return err
	}
	logger.Info("Compatibility entry deleted", map[string]interface{}{
		"group_id": id,
	})
	return nil
}
