package service

import (
	"errors"

	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

type ProductListOptions struct {
	CategoryID  *uint
	IsNew       *bool
	IsTopDesign *bool
	Search      string
	Limit       int
	Offset      int
}

type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price" binding:"required"`
	CategoryID  *uint   `json:"category_id"`
	Image       string  `json:"image"`
	Image2      string  `json:"image_2"`
	Image3      string  `json:"image_3"`
	Image4      string  `json:"image_4"`
	Image5      string  `json:"image_5"`
	Image6      string  `json:"image_6"`
	IsNew       bool    `json:"is_new"`
	IsTopDesign bool    `json:"is_top_design"`
}

type VariantInput struct {
	CaseType    model.CaseType `json:"case_type" binding:"required"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Image       string         `json:"image"`
	Stock       *int           `json:"stock"`
}

// ProductService manages the design catalog: products and their
// per-case-type variant overrides.
type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, int64, error)
	GetProductByID(id uint) (*model.Product, error)
	GetRelatedProducts(id uint, limit int) ([]model.Product, error)
	CreateProduct(input ProductInput) (*model.Product, error)
	UpdateProduct(id uint, input ProductInput) (*model.Product, error)
	DeleteProduct(id uint) error
	SaveVariant(productID uint, input VariantInput) (*model.ProductVariant, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, int64, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category_id": opts.CategoryID,
		"search":      opts.Search,
		"limit":       opts.Limit,
		"offset":      opts.Offset,
	})

	return s.productRepo.FindAll(repository.ProductFilter{
		CategoryID:  opts.CategoryID,
		IsNew:       opts.IsNew,
		IsTopDesign: opts.IsTopDesign,
		Search:      opts.Search,
		Limit:       opts.Limit,
		Offset:      opts.Offset,
	})
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetRelatedProducts(id uint, limit int) ([]model.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 4
	}
	return s.productRepo.FindRelated(product.CategoryID, id, limit)
}

func (s *productService) CreateProduct(input ProductInput) (*model.Product, error) {
	if err := s.checkCategory(input.CategoryID); err != nil {
		return nil, err
	}

	product := applyProductInput(&model.Product{}, input)
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return product, nil
}

func (s *productService) UpdateProduct(id uint, input ProductInput) (*model.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(input.CategoryID); err != nil {
		return nil, err
	}

	product = applyProductInput(product, input)
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product and its variants, child-first.
func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.GetProductByID(id); err != nil {
		return err
	}

	if err := s.productRepo.DeleteVariantsByProductID(id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) SaveVariant(productID uint, input VariantInput) (*model.ProductVariant, error) {
	if !input.CaseType.Valid() {
		return nil, ErrInvalidCaseType
	}
	if _, err := s.GetProductByID(productID); err != nil {
		return nil, err
	}

	variant := &model.ProductVariant{
		ProductID:   productID,
		CaseType:    input.CaseType,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		Stock:       input.Stock,
	}
	if err := s.productRepo.UpsertVariant(variant); err != nil {
		return nil, err
	}

	logger.Info("Product variant saved", map[string]interface{}{
		"product_id": productID,
		"case_type":  input.CaseType,
	})
	return variant, nil
}

func (s *productService) checkCategory(categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(*categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func applyProductInput(product *model.Product, input ProductInput) *model.Product {
	product.Name = input.Name
	product.Description = input.Description
	product.BasePrice = input.BasePrice
	product.CategoryID = input.CategoryID
	product.Image = input.Image
	product.Image2 = input.Image2
	product.Image3 = input.Image3
	product.Image4 = input.Image4
	product.Image5 = input.Image5
	product.Image6 = input.Image6
	product.IsNew = input.IsNew
	product.IsTopDesign = input.IsTopDesign
	return product
}
