package controller

import (
	"errors"
	"net/http"

	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/service"
	"github.com/casepix/casepix-backend/internal/events"
	"github.com/casepix/casepix-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ContentController struct {
	contentService service.ContentService
	hub            *events.Hub
}

func NewContentController(contentService service.ContentService, hub *events.Hub) *ContentController {
	return &ContentController{
		contentService: contentService,
		hub:            hub,
	}
}

// ListContents returns the content rows for every case type
// GET /api/v1/content
func (ctrl *ContentController) ListContents(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	contents, err := ctrl.contentService.GetAllContents()
	if err != nil {
		log.Error("Failed to list case contents", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch content",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contents": contents,
		"count":    len(contents),
	})
}

// GetContent returns the content row for one case type
// GET /api/v1/content/:case_type
func (ctrl *ContentController) GetContent(c *gin.Context) {
	caseType := model.CaseType(c.Param("case_type"))

	content, err := ctrl.contentService.GetContent(caseType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCaseType):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid case type",
			})
		case errors.Is(err, service.ErrContentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No content configured for this case type",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to fetch content",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": content})
}

// SaveContent replaces the content row for a case type
// PUT /api/v1/admin/content
func (ctrl *ContentController) SaveContent(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.CaseContentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	content, err := ctrl.contentService.SaveContent(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCaseType):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid case type",
			})
		case errors.Is(err, service.ErrInvalidBlockType),
			errors.Is(err, service.ErrInvalidBlockSize),
			errors.Is(err, service.ErrInvalidImageSide):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid content block",
				"details": err.Error(),
			})
		default:
			log.Error("Failed to save case content", err, map[string]interface{}{
				"case_type": req.CaseType,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to save content",
			})
		}
		return
	}

	ctrl.hub.Publish("content", "updated")
	c.JSON(http.StatusOK, gin.H{"content": content})
}
