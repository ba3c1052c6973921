package controller

import (
	"errors"
	"net/http"

	"github.com/casepix/casepix-backend/internal/app/service"
	"github.com/casepix/casepix-backend/internal/events"
	"github.com/casepix/casepix-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ImportController struct {
	importService service.ImportService
	hub           *events.Hub
}

func NewImportController(importService service.ImportService, hub *events.Hub) *ImportController {
	return &ImportController{
		importService: importService,
		hub:           hub,
	}
}

// ImportModels imports phone models from an uploaded spreadsheet
// POST /api/v1/admin/import/models
func (ctrl *ImportController) ImportModels(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "A spreadsheet file is required",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	result, err := ctrl.importService.ImportModels(c.Request.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImportInvalidFile):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "The file could not be read as a spreadsheet",
			})
		case errors.Is(err, service.ErrImportEmptyFile):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "The spreadsheet has no data rows",
			})
		default:
			log.Error("Failed to import models", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to import models",
			})
		}
		return
	}

	if result.Created > 0 {
		ctrl.hub.Publish("models", "imported")
		ctrl.hub.Publish("brands", "imported")
	}
	c.JSON(http.StatusOK, result)
}

type ScrapeRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// ScrapeModelInfo extracts a model name and image from a product page
// POST /api/v1/admin/import/scrape
func (ctrl *ImportController) ScrapeModelInfo(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "A valid url is required",
		})
		return
	}

	info, err := ctrl.importService.ScrapeModelInfo(c.Request.Context(), req.URL)
	if err != nil {
		log.Warn("Scrape failed", map[string]interface{}{
			"url":   req.URL,
			"error": err.Error(),
		})
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to fetch the page",
		})
		return
	}

	c.JSON(http.StatusOK, info)
}
