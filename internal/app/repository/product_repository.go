package repository

import (
	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductFilter narrows product listings. Zero values mean "no constraint".
type ProductFilter struct {
	CategoryID  *uint
	IsNew       *bool
	IsTopDesign *bool
	Search      string
	Limit       int
	Offset      int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(filter ProductFilter) ([]model.Product, int64, error)
	FindByID(id uint) (*model.Product, error)
	FindRelated(categoryID *uint, excludeID uint, limit int) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	Count() (int64, error)

	UpsertVariant(variant *model.ProductVariant) error
	DeleteVariantsByProductID(productID uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name": product.Name,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindAll(filter ProductFilter) ([]model.Product, int64, error) {
	query := r.db.Model(&model.Product{})

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.IsNew != nil {
		query = query.Where("is_new = ?", *filter.IsNew)
	}
	if filter.IsTopDesign != nil {
		query = query.Where("is_top_design = ?", *filter.IsTopDesign)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count products in database", err)
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	err := query.Preload("Category").Preload("Variants").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to list products from database", err)
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("Variants").First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindRelated(categoryID *uint, excludeID uint, limit int) ([]model.Product, error) {
	query := r.db.Where("id <> ?", excludeID)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var products []model.Product
	err := query.Preload("Variants").Order("created_at DESC").Limit(limit).Find(&products).Error
	if err != nil {
		logger.Error("Failed to list related products from database", err, map[string]interface{}{
			"product_id": excludeID,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpsertVariant writes the per-case-type override row for a product. The
// (product_id, case_type) pair is the natural key.
func (r *productRepository) UpsertVariant(variant *model.ProductVariant) error {
	logger.Debug("Upserting product variant in database", map[string]interface{}{
		"product_id": variant.ProductID,
		"case_type":  variant.CaseType,
	})

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "case_type"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "price", "image", "stock", "updated_at",
		}),
	}).Create(variant).Error
	if err != nil {
		logger.Error("Failed to upsert product variant in database", err, map[string]interface{}{
			"product_id": variant.ProductID,
			"case_type":  variant.CaseType,
		})
		return err
	}
	return nil
}

func (r *productRepository) DeleteVariantsByProductID(productID uint) error {
	err := r.db.Where("product_id = ?", productID).Delete(&model.ProductVariant{}).Error
	if err != nil {
		logger.Error("Failed to delete product variants from database", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	return nil
}
