package service

import (
	"errors"

	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// Built-in feature lists shown when a case type has no stored features.
var fallbackFeatures = map[model.CaseType][]string{
	model.CaseTypeSnap: {
		"Lightweight & slim",
		"Easy snap-on installation",
		"Scratch-resistant finish",
	},
	model.CaseTypeMetal: {
		"Premium aluminum build",
		"Maximum protection",
		"Laser-etched design",
	},
}

// ProductView is a fully resolved product page for one case type: every
// display field has already gone through the variant/content/product
// precedence chain, and the gallery is ordered and deduplicated.
type ProductView struct {
	ProductID     uint                   `json:"product_id"`
	CaseType      model.CaseType         `json:"case_type"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Price         float64                `json:"price"`
	ComparePrice  *float64               `json:"compare_price,omitempty"`
	Features      []string               `json:"features"`
	Gallery       []string               `json:"gallery"`
	ContentBlocks model.ContentBlockList `json:"content_blocks"`
	Product       *model.Product         `json:"product"`
	Variant       *model.ProductVariant  `json:"variant,omitempty"`
}

// ProductViewService resolves what a product page shows for a given case
// type, merging three layers: the product row, its per-case-type variant,
// and the case-type default content.
//
// Precedence per field:
//
//	title, description:  variant -> product
//	price:               case content -> variant -> product base price
//	features:            case content, else built-in defaults
//	content blocks:      case content only
//
// The gallery is rebuilt from scratch on every resolution, so switching case
// types always starts the viewer at the selected variant's primary image.
type ProductViewService interface {
	ResolveView(productID uint, caseType model.CaseType) (*ProductView, error)
	ResolveViews(products []model.Product, caseType model.CaseType) ([]ProductView, error)
}

type productViewService struct {
	productRepo repository.ProductRepository
	contentRepo repository.ContentRepository
}

func NewProductViewService(productRepo repository.ProductRepository, contentRepo repository.ContentRepository) ProductViewService {
	return &productViewService{
		productRepo: productRepo,
		contentRepo: contentRepo,
	}
}

func (s *productViewService) ResolveView(productID uint, caseType model.CaseType) (*ProductView, error) {
	if !caseType.Valid() {
		return nil, ErrInvalidCaseType
	}

	product, err := s.productRepo.FindByID(productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	content, err := s.loadContent(caseType)
	if err != nil {
		return nil, err
	}

	view := s.resolve(product, caseType, content)
	return &view, nil
}

// ResolveViews resolves a pre-fetched product list against one shared
// content row, for listing pages.
func (s *productViewService) ResolveViews(products []model.Product, caseType model.CaseType) ([]ProductView, error) {
	if !caseType.Valid() {
		return nil, ErrInvalidCaseType
	}

	content, err := s.loadContent(caseType)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, len(products))
	for i := range products {
		views[i] = s.resolve(&products[i], caseType, content)
	}
	return views, nil
}

// loadContent fetches the case-type default content. A missing row is not an
// error; resolution just falls through to variant and product values.
func (s *productViewService) loadContent(caseType model.CaseType) (*model.CaseContent, error) {
	content, err := s.contentRepo.FindByCaseType(caseType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to load case content for resolution", err, map[string]interface{}{
			"case_type": caseType,
		})
		return nil, err
	}
	return content, nil
}

func (s *productViewService) resolve(product *model.Product, caseType model.CaseType, content *model.CaseContent) ProductView {
	variant := product.VariantFor(caseType)

	view := ProductView{
		ProductID:     product.ID,
		CaseType:      caseType,
		Title:         product.Name,
		Description:   product.Description,
		Price:         product.BasePrice,
		Features:      fallbackFeatures[caseType],
		ContentBlocks: model.ContentBlockList{},
		Product:       product,
		Variant:       variant,
	}

	if content != nil {
		if len(content.Features) > 0 {
			view.Features = content.Features
		}
		view.ComparePrice = content.ComparePrice
		if len(content.ContentBlocks) > 0 {
			view.ContentBlocks = content.ContentBlocks
		}
	}

	// Title and description stay per-product: the variant overrides, the
	// product row is the fallback. Case content copy never names a product.
	if variant != nil {
		if variant.Title != "" {
			view.Title = variant.Title
		}
		if variant.Description != "" {
			view.Description = variant.Description
		}
	}

	// Price is the one field where case content outranks the variant: a
	// campaign price set for the whole case type overrides per-product
	// variant pricing.
	if variant != nil && variant.Price > 0 {
		view.Price = variant.Price
	}
	if content != nil && content.Price != nil {
		view.Price = *content.Price
	}

	view.Gallery = buildGallery(product, caseType, variant, content)
	return view
}

// buildGallery assembles the ordered image list for a product page:
//
//  1. the selected variant's image
//  2. the product's primary image
//  3. the product's extra image slots
//  4. the case content's default image slots
//  5. the other variant's image, as a final alternate angle
//
// Duplicates are removed by exact URL, keeping the first occurrence, and
// blank slots are skipped.
func buildGallery(product *model.Product, caseType model.CaseType, variant *model.ProductVariant, content *model.CaseContent) []string {
	candidates := make([]string, 0, 14)

	if variant != nil {
		candidates = append(candidates, variant.Image)
	}
	candidates = append(candidates, product.Image)
	candidates = append(candidates, product.ExtraImages()...)
	if content != nil {
		candidates = append(candidates, content.DefaultImages()...)
	}
	if other := product.VariantFor(caseType.Other()); other != nil {
		candidates = append(candidates, other.Image)
	}

	gallery := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, url := range candidates {
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		gallery = append(gallery, url)
	}
	return gallery
}
