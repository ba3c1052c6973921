package controller

import (
	"net/http"

	"github.com/casepix/casepix-backend/internal/app/service"
	"github.com/casepix/casepix-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	statsService service.StatsService
}

func NewDashboardController(statsService service.StatsService) *DashboardController {
	return &DashboardController{
		statsService: statsService,
	}
}

// GetStats returns the cached dashboard snapshot
// GET /api/v1/admin/dashboard/stats
func (ctrl *DashboardController) GetStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.statsService.GetStats(c.Request.Context())
	if err != nil {
		log.Error("Failed to fetch dashboard stats", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch stats",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// RefreshStats forces a recompute of the dashboard snapshot
// POST /api/v1/admin/dashboard/stats/refresh
func (ctrl *DashboardController) RefreshStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.statsService.RefreshStats(c.Request.Context())
	if err != nil {
		log.Error("Failed to refresh dashboard stats", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to refresh stats",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
