package service

import (
	"errors"

	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrBrandNotFound = errors.New("mobile brand not found")
	ErrBrandExists   = errors.New("mobile brand already exists")
)

type BrandInput struct {
	Name string `json:"name" binding:"required"`
	Logo string `json:"logo"`
}

type ModelInput struct {
	BrandID uint   `json:"brand_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Image   string `json:"image"`
}

// CatalogService manages the phone catalog: brands and the models under
// them. Deleting either cascades into the compatibility registry so no
// orphaned visibility entries survive.
type CatalogService interface {
	ListBrands() ([]model.MobileBrand, error)
	GetBrand(id uint) (*model.MobileBrand, error)
	CreateBrand(input BrandInput) (*model.MobileBrand, error)
	UpdateBrand(id uint, input BrandInput) (*model.MobileBrand, error)
	DeleteBrand(id uint) error

	ListModels(brandID *uint) ([]model.MobileModel, error)
	GetModel(id uint) (*model.MobileModel, error)
	CreateModel(input ModelInput) (*model.MobileModel, error)
	UpdateModel(id uint, input ModelInput) (*model.MobileModel, error)
	DeleteModel(id uint) error
}

type catalogService struct {
	brandRepo  repository.BrandRepository
	modelRepo  repository.ModelRepository
	compatRepo repository.CompatibilityRepository
}

func NewCatalogService(
	brandRepo repository.BrandRepository,
	modelRepo repository.ModelRepository,
	compatRepo repository.CompatibilityRepository,
) CatalogService {
	return &catalogService{
		brandRepo:  brandRepo,
		modelRepo:  modelRepo,
		compatRepo: compatRepo,
	}
}

func (s *catalogService) ListBrands() ([]model.MobileBrand, error) {
	return s.brandRepo.FindAll()
}

func (s *catalogService) GetBrand(id uint) (*model.MobileBrand, error) {
	brand, err := s.brandRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBrandNotFound
	}
	if err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *catalogService) CreateBrand(input BrandInput) (*model.MobileBrand, error) {
	if _, err := s.brandRepo.FindByName(input.Name); err == nil {
		return nil, ErrBrandExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	brand := &model.MobileBrand{
		Name: input.Name,
		Logo: input.Logo,
	}
	if err := s.brandRepo.Create(brand); err != nil {
		return nil, err
	}

	logger.Info("Brand created", map[string]interface{}{
		"brand_id": brand.ID,
		"name":     brand.Name,
	})
	return brand, nil
}

func (s *catalogService) UpdateBrand(id uint, input BrandInput) (*model.MobileBrand, error) {
	brand, err := s.GetBrand(id)
	if err != nil {
		return nil, err
	}

	brand.Name = input.Name
	brand.Logo = input.Logo
	if err := s.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// DeleteBrand removes a brand, its models, and their compatibility entries.
// The cascade runs child-first in separate statements; a failure partway
// leaves the brand intact with some children already gone, and the delete
// can simply be retried.
func (s *catalogService) DeleteBrand(id uint) error {
	if _, err := s.GetBrand(id); err != nil {
		return err
	}

	modelIDs, err := s.modelRepo.FindIDsByBrandID(id)
	if err != nil {
		return err
	}

	if err := s.compatRepo.DeleteByModelIDs(modelIDs); err != nil {
		return err
	}
	if err := s.modelRepo.DeleteByBrandID(id); err != nil {
		return err
	}
	if err := s.brandRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Brand deleted with cascade", map[string]interface{}{
		"brand_id":    id,
		"model_count": len(modelIDs),
	})
	return nil
}

func (s *catalogService) ListModels(brandID *uint) ([]model.MobileModel, error) {
	return s.modelRepo.FindAllWithBrand(brandID)
}

func (s *catalogService) GetModel(id uint) (*model.MobileModel, error) {
	mobileModel, err := s.modelRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrModelNotFound
	}
	if err != nil {
		return nil, err
	}
	return mobileModel, nil
}

func (s *catalogService) CreateModel(input ModelInput) (*model.MobileModel, error) {
	if _, err := s.GetBrand(input.BrandID); err != nil {
		return nil, err
	}

	mobileModel := &model.MobileModel{
		BrandID: input.BrandID,
		Name:    input.Name,
		Image:   input.Image,
	}
	if err := s.modelRepo.Create(mobileModel); err != nil {
		return nil, err
	}

	logger.Info("Mobile model created", map[string]interface{}{
		"model_id": mobileModel.ID,
		"brand_id": mobileModel.BrandID,
		"name":     mobileModel.Name,
	})
	return mobileModel, nil
}

func (s *catalogService) UpdateModel(id uint, input ModelInput) (*model.MobileModel, error) {
	mobileModel, err := s.GetModel(id)
	if err != nil {
		return nil, err
	}
	if input.BrandID != mobileModel.BrandID {
		if _, err := s.GetBrand(input.BrandID); err != nil {
			return nil, err
		}
	}

	mobileModel.BrandID = input.BrandID
	mobileModel.Name = input.Name
	mobileModel.Image = input.Image
	if err := s.modelRepo.Update(mobileModel); err != nil {
		return nil, err
	}
	return mobileModel, nil
}

// DeleteModel removes a model and its compatibility entries, child-first.
func (s *catalogService) DeleteModel(id uint) error {
	if _, err := s.GetModel(id); err != nil {
		return err
	}

	if err := s.compatRepo.DeleteByModelID(id); err != nil {
		return err
	}
	if err := s.modelRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Mobile model deleted with cascade", map[string]interface{}{
		"model_id": id,
	})
	return nil
}
