package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/service"
	"github.com/casepix/casepix-backend/internal/events"
	"github.com/casepix/casepix-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService service.ProductService
	viewService    service.ProductViewService
	hub            *events.Hub
}

func NewProductController(
	productService service.ProductService,
	viewService service.ProductViewService,
	hub *events.Hub,
) *ProductController {
	return &ProductController{
		productService: productService,
		viewService:    viewService,
		hub:            hub,
	}
}

// ListProducts returns products with optional filters
// GET /api/v1/products?category_id=&is_new=&is_top_design=&search=&limit=&offset=
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.ProductListOptions{
		Search: c.Query("search"),
	}

	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid category_id parameter",
			})
			return
		}
		id := uint(parsed)
		opts.CategoryID = &id
	}
	if raw := c.Query("is_new"); raw != "" {
		v := raw == "true"
		opts.IsNew = &v
	}
	if raw := c.Query("is_top_design"); raw != "" {
		v := raw == "true"
		opts.IsTopDesign = &v
	}
	opts.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	opts.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, total, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		log.Error("Failed to list products", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
		"total":    total,
	})
}

// GetProduct returns one product with variants
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// GetProductView returns the fully resolved product page for a case type:
// merged title, description, price, features, content blocks, and the
// ordered gallery
// GET /api/v1/products/:id/view?case_type=
func (ctrl *ProductController) GetProductView(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	caseType := model.CaseType(c.DefaultQuery("case_type", string(model.CaseTypeSnap)))
	view, err := ctrl.viewService.ResolveView(id, caseType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCaseType):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid case type",
			})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		default:
			log.Error("Failed to resolve product view", err, map[string]interface{}{
				"product_id": id,
				"case_type":  caseType,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to fetch product",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"view": view})
}

// GetRelatedProducts returns other designs from the same category
// GET /api/v1/products/:id/related?limit=
func (ctrl *ProductController) GetRelatedProducts(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))
	products, err := ctrl.productService.GetRelatedProducts(id, limit)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch related products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CreateProduct creates a product
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := ctrl.productService.CreateProduct(req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Category not found",
			})
			return
		}
		log.Error("Failed to create product", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create product",
		})
		return
	}

	ctrl.hub.Publish("products", "created")
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct updates a product
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		case errors.Is(err, service.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Category not found",
			})
		default:
			log.Error("Failed to update product", err, map[string]interface{}{
				"product_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update product",
			})
		}
		return
	}

	ctrl.hub.Publish("products", "updated")
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct deletes a product and its variants
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete product",
		})
		return
	}

	ctrl.hub.Publish("products", "deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// SaveVariant upserts the per-case-type override for a product
// PUT /api/v1/admin/products/:id/variants
func (ctrl *ProductController) SaveVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req service.VariantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	variant, err := ctrl.productService.SaveVariant(id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCaseType):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid case type",
			})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		default:
			log.Error("Failed to save variant", err, map[string]interface{}{
				"product_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to save variant",
			})
		}
		return
	}

	ctrl.hub.Publish("products", "updated")
	c.JSON(http.StatusOK, gin.H{"variant": variant})
}
