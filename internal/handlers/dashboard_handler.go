package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SGP-2025/attendance-service/internal/services"
	"github.com/SGP-2025/attendance-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	reportingService services.ReportingService
}

func NewDashboardHandler(reportingService services.ReportingService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		reportingService: reportingService,
	}
}

// MonthlyStatistics returns per-class absence statistics for a month
// @Summary Monthly absence statistics
// @Description Aggregate a class's absence records for the given month (1-12)
// @Tags statistics
// @Produce json
// @Param name path string true "Class name"
// @Param month query int true "Month number (1-12)"
// @Success 200 {object} services.MonthlyStatisticsResponse "Statistics"
// @Failure 400 {object} ErrorResponse "Invalid month"
// @Failure 404 {object} ErrorResponse "Class not found"
// @Router /classes/{name}/statistics [get]
func (h *DashboardHandler) MonthlyStatistics(c *gin.Context) {
	className := c.Param("name")

	monthParam := c.Query("month")
	month, err := strconv.Atoi(monthParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Query parameter 'month' must be a number between 1 and 12"})
		return
	}

	h.LogRequest(c, "computing monthly statistics", "class", className, "month", month)

	stats, err := h.reportingService.MonthlyStatistics(c.Request.Context(), className, time.Month(month))
	if err != nil {
		h.RespondError(c, err, "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}
