package controller

import (
	"net/http"

	"github.com/casepix/casepix-backend/config"
	"github.com/casepix/casepix-backend/internal/storage"
	"github.com/casepix/casepix-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

type UploadController struct {
	storage *storage.S3Storage
	cfg     config.UploadConfig
}

func NewUploadController(storage *storage.S3Storage, cfg config.UploadConfig) *UploadController {
	return &UploadController{
		storage: storage,
		cfg:     cfg,
	}
}

type GeneratePresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required"`
	Folder      string `json:"folder"` // Optional: defaults to "uploads"
}

// GeneratePresignedURL generates a presigned URL for uploading files to S3
// POST /api/v1/admin/upload/presigned-url
func (ctrl *UploadController) GeneratePresignedURL(c *gin.Context) {
	var req GeneratePresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid presigned URL request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.storage.ValidateContentType(req.ContentType, ctrl.cfg.AllowedTypes); err != nil {
		logger.Warn("Invalid content type", map[string]interface{}{
			"content_type": req.ContentType,
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Only image files are allowed (JPEG, PNG, GIF, WEBP)",
		})
		return
	}

	if err := ctrl.storage.ValidateFileSize(req.FileSize, ctrl.cfg.MaxSizeBytes); err != nil {
		logger.Warn("File too large", map[string]interface{}{
			"file_size": req.FileSize,
			"max_size":  ctrl.cfg.MaxSizeBytes,
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "File exceeds the maximum allowed size",
		})
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = "uploads"
	}

	resp, err := ctrl.storage.GeneratePresignedURL(req.Filename, req.ContentType, folder)
	if err != nil {
		logger.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename": req.Filename,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate upload URL",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
