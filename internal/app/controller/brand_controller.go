package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/casepix/casepix-backend/internal/app/service"
	"github.com/casepix/casepix-backend/internal/events"
	"github.com/casepix/casepix-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type BrandController struct {
	catalogService service.CatalogService
	hub            *events.Hub
}

func NewBrandController(catalogService service.CatalogService, hub *events.Hub) *BrandController {
	return &BrandController{
		catalogService: catalogService,
		hub:            hub,
	}
}

// ListBrands returns all phone brands
// GET /api/v1/brands
func (ctrl *BrandController) ListBrands(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	brands, err := ctrl.catalogService.ListBrands()
	if err != nil {
		log.Error("Failed to list brands", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch brands",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brands": brands,
		"count":  len(brands),
	})
}

// GetBrand returns one brand
// GET /api/v1/brands/:id
func (ctrl *BrandController) GetBrand(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	brand, err := ctrl.catalogService.GetBrand(id)
	if err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Brand not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch brand",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"brand": brand})
}

// CreateBrand creates a brand
// POST /api/v1/admin/brands
func (ctrl *BrandController) CreateBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.BrandInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	brand, err := ctrl.catalogService.CreateBrand(req)
	if err != nil {
		if errors.Is(err, service.ErrBrandExists) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "A brand with this name already exists",
			})
			return
		}
		log.Error("Failed to create brand", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create brand",
		})
		return
	}

	ctrl.hub.Publish("brands", "created")
	c.JSON(http.StatusCreated, gin.H{"brand": brand})
}

// UpdateBrand updates a brand
// PUT /api/v1/admin/brands/:id
func (ctrl *BrandController) UpdateBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req service.BrandInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	brand, err := ctrl.catalogService.UpdateBrand(id, req)
	if err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Brand not found",
			})
			return
		}
		log.Error("Failed to update brand", err, map[string]interface{}{
			"brand_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update brand",
		})
		return
	}

	ctrl.hub.Publish("brands", "updated")
	c.JSON(http.StatusOK, gin.H{"brand": brand})
}

// DeleteBrand deletes a brand and everything under it
// DELETE /api/v1/admin/brands/:id
func (ctrl *BrandController) DeleteBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := ctrl.catalogService.DeleteBrand(id); err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Brand not found",
			})
			return
		}
		log.Error("Failed to delete brand", err, map[string]interface{}{
			"brand_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete brand",
		})
		return
	}

	ctrl.hub.Publish("brands", "deleted")
	ctrl.hub.Publish("models", "deleted")
	ctrl.hub.Publish("compatibility", "deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Brand deleted"})
}

// parseIDParam reads a numeric path parameter, writing a 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name + " parameter",
		})
		return 0, err
	}
	return uint(id), nil
}
