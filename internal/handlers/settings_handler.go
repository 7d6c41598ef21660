package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SGP-2025/attendance-service/internal/services"
	"github.com/SGP-2025/attendance-service/internal/utils"
)

type SettingsHandler struct {
	BaseHandler
	settingsService  services.SettingsService
	retentionService services.RetentionService
}

func NewSettingsHandler(settingsService services.SettingsService, retentionService services.RetentionService, logger utils.Logger) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler:      NewBaseHandler(logger),
		settingsService:  settingsService,
		retentionService: retentionService,
	}
}

// Get returns the settings document
// @Summary Get settings
// @Tags settings
// @Produce json
// @Success 200 {object} models.Settings
// @Failure 403 {object} ErrorResponse "Admin access required"
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.RespondError(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update replaces the settings document
// @Summary Update settings
// @Description Replace the settings document wholesale (admin only)
// @Tags settings
// @Accept json
// @Produce json
// @Success 200 {object} models.Settings "Saved settings"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 403 {object} ErrorResponse "Admin access required"
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req services.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "updating settings")

	settings, err := h.settingsService.Update(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err, "Failed to save settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// RetentionSweep removes absence batches past the retention window
// @Summary Run retention sweep
// @Description Delete absence files older than data_retention_days (admin only, never automatic)
// @Tags maintenance
// @Produce json
// @Success 200 {object} services.RetentionSweepResponse "Sweep result"
// @Failure 403 {object} ErrorResponse "Admin access required"
// @Router /maintenance/retention-sweep [post]
func (h *SettingsHandler) RetentionSweep(c *gin.Context) {
	h.LogRequest(c, "running retention sweep")

	result, err := h.retentionService.Sweep(c.Request.Context())
	if err != nil {
		h.RespondError(c, err, "Retention sweep failed")
		return
	}
	c.JSON(http.StatusOK, result)
}
