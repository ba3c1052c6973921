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

type ModelController struct {
	catalogService service.CatalogService
	compatService  service.CompatibilityService
	hub            *events.Hub
}

func NewModelController(
	catalogService service.CatalogService,
	compatService service.CompatibilityService,
	hub *events.Hub,
) *ModelController {
	return &ModelController{
		catalogService: catalogService,
		compatService:  compatService,
		hub:            hub,
	}
}

// ListModels returns phone models, optionally filtered by brand. When a
// case_type is given, models hidden for that case type are excluded; the
// storefront's model picker uses this.
// GET /api/v1/models?brand_id=&case_type=
func (ctrl *ModelController) ListModels(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var brandID *uint
	if raw := c.Query("brand_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid brand_id parameter",
			})
			return
		}
		id := uint(parsed)
		brandID = &id
	}

	caseType := model.CaseType(c.Query("case_type"))
	if caseType == "" {
		models, err := ctrl.catalogService.ListModels(brandID)
		if err != nil {
			log.Error("Failed to list models", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to fetch models",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"models": models,
			"count":  len(models),
		})
		return
	}

	models, err := ctrl.compatService.ListAvailableModels(brandID, caseType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCaseType) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid case type",
			})
			return
		}
		log.Error("Failed to list available models", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch models",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"models": models,
		"count":  len(models),
	})
}

// GetModel returns one phone model
// GET /api/v1/models/:id
func (ctrl *ModelController) GetModel(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	mobileModel, err := ctrl.catalogService.GetModel(id)
	if err != nil {
		if errors.Is(err, service.ErrModelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Phone model not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch model",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"model": mobileModel})
}

// CreateModel creates a phone model
// POST /api/v1/admin/models
func (ctrl *ModelController) CreateModel(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.ModelInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	mobileModel, err := ctrl.catalogService.CreateModel(req)
	if err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Brand not found",
			})
			return
		}
		log.Error("Failed to create model", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create model",
		})
		return
	}

	ctrl.hub.Publish("models", "created")
	c.JSON(http.StatusCreated, gin.H{"model": mobileModel})
}

// UpdateModel updates a phone model
// PUT /api/v1/admin/models/:id
func (ctrl *ModelController) UpdateModel(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req service.ModelInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	mobileModel, err := ctrl.catalogService.UpdateModel(id, req)
	if err != nil {
		if errors.Is(err, service.ErrModelNotFound) || errors.Is(err, service.ErrBrandNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		log.Error("Failed to update model", err, map[string]interface{}{
			"model_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update model",
		})
		return
	}

	ctrl.hub.Publish("models", "updated")
	c.JSON(http.StatusOK, gin.H{"model": mobileModel})
}

// DeleteModel deletes a phone model and its compatibility entries
// DELETE /api/v1/admin/models/:id
func (ctrl *ModelController) DeleteModel(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := ctrl.catalogService.DeleteModel(id); err != nil {
		if errors.Is(err, service.ErrModelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Phone model not found",
			})
			return
		}
		log.Error("Failed to delete model", err, map[string]interface{}{
			"model_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete model",
		})
		return
	}

	ctrl.hub.Publish("models", "deleted")
	ctrl.hub.Publish("compatibility", "deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Phone model deleted"})
}
