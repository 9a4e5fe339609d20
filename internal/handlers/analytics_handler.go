package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scholar-stream/scholarship-service/internal/services"
	"github.com/scholar-stream/scholarship-service/internal/utils"
)

type AnalyticsHandler struct {
	BaseHandler
	analyticsService services.AnalyticsService
	exportService    services.ExportService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService, exportService services.ExportService, logger utils.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      NewBaseHandler(logger),
		analyticsService: analyticsService,
		exportService:    exportService,
	}
}

// GetPlatformStats returns the admin dashboard headline numbers.
func (h *AnalyticsHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.analyticsService.PlatformStats(c.Request.Context(), GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetChartData returns applications grouped by scholarship category.
func (h *AnalyticsHandler) GetChartData(c *gin.Context) {
	counts, err := h.analyticsService.ChartData(c.Request.Context(), GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// GetFullStats returns the complete analytics payload for the admin
// dashboard.
func (h *AnalyticsHandler) GetFullStats(c *gin.Context) {
	stats, err := h.analyticsService.FullStats(c.Request.Context(), GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetModeratorStats returns the moderation workload summary.
func (h *AnalyticsHandler) GetModeratorStats(c *gin.Context) {
	stats, err := h.analyticsService.ModeratorStats(c.Request.Context(), GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetMyStats returns the caller's own activity summary.
func (h *AnalyticsHandler) GetMyStats(c *gin.Context) {
	actor := GetActorFromContext(c)

	stats, err := h.analyticsService.StudentStats(c.Request.Context(), actor.Email, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportApplications streams all applications as an xlsx download. Admin
// only.
func (h *AnalyticsHandler) ExportApplications(c *gin.Context) {
	h.LogRequest(c, "Exporting applications")

	data, err := h.exportService.ExportApplications(c.Request.Context(), GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("applications-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
