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

type CompatibilityController struct {
	compatService service.CompatibilityService
	hub           *events.Hub
}

func NewCompatibilityController(compatService service.CompatibilityService, hub *events.Hub) *CompatibilityController {
	return &CompatibilityController{
		compatService: compatService,
		hub:           hub,
	}
}

// CheckAvailability reports whether a model can be sold with a case type
// GET /api/v1/compatibility/check?model_id=&case_type=
func (ctrl *CompatibilityController) CheckAvailability(c *gin.Context) {
	modelID, err := strconv.ParseUint(c.Query("model_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid model_id parameter",
		})
		return
	}

	caseType := model.CaseType(c.Query("case_type"))
	available, err := ctrl.compatService.IsModelAvailable(uint(modelID), caseType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCaseType) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid case type",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to check availability",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"model_id":     uint(modelID),
		"case_type":    caseType,
		"is_available": available,
	})
}

// ListModelsWithAvailability returns every model with its availability flag,
// for the admin registry screen
// GET /api/v1/admin/compatibility/models?brand_id=&case_type=
func (ctrl *CompatibilityController) ListModelsWithAvailability(c *gin.Context) {
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
	entries, err := ctrl.compatService.ListModelsWithAvailability(brandID, caseType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCaseType) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid case type",
			})
			return
		}
		log.Error("Failed to list models with availability", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch availability",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"models": entries,
		"count":  len(entries),
	})
}

// ListRegistry returns the raw registry entries
// GET /api/v1/admin/compatibility
func (ctrl *CompatibilityController) ListRegistry(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	groups, err := ctrl.compatService.ListRegistry()
	if err != nil {
		log.Error("Failed to list compatibility registry", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch compatibility entries",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": groups,
		"count":   len(groups),
	})
}

// SetVisibility upserts one registry entry
// PUT /api/v1/admin/compatibility
func (ctrl *CompatibilityController) SetVisibility(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.VisibilityUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	group, err := ctrl.compatService.SetVisibility(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCaseType):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid case type",
			})
		case errors.Is(err, service.ErrModelNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Phone model not found",
			})
		default:
			log.Error("Failed to set visibility", err, map[string]interface{}{
				"model_id":  req.ModelID,
				"case_type": req.CaseType,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update visibility",
			})
		}
		return
	}

	ctrl.hub.Publish("compatibility", "updated")
	c.JSON(http.StatusOK, gin.H{"entry": group})
}

type BulkVisibilityRequest struct {
	Updates []service.VisibilityUpdate `json:"updates" binding:"required"`
}

// BulkSetVisibility upserts many registry entries at once
// PUT /api/v1/admin/compatibility/bulk
func (ctrl *CompatibilityController) BulkSetVisibility(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BulkVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.compatService.BulkSetVisibility(req.Updates); err != nil {
		if errors.Is(err, service.ErrInvalidCaseType) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid case type",
			})
			return
		}
		log.Error("Failed to bulk set visibility", err, map[string]interface{}{
			"count": len(req.Updates),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update visibility",
		})
		return
	}

	ctrl.hub.Publish("compatibility", "updated")
	c.JSON(http.StatusOK, gin.H{
		"message": "Visibility updated",
		"count":   len(req.Updates),
	})
}

// DeleteEntry removes a registry entry, restoring the default availability
// DELETE /api/v1/admin/compatibility/:id
func (ctrl *CompatibilityController) DeleteEntry(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := ctrl.compatService.DeleteEntry(id); err != nil {
		log.Error("Failed to delete compatibility entry", err, map[string]interface{}{
			"group_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete entry",
		})
		return
	}

	ctrl.hub.Publish("compatibility", "deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Compatibility entry deleted"})
}
