package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SGP-2025/attendance-service/internal/services"
	"github.com/SGP-2025/attendance-service/internal/utils"
)

type ClassHandler struct {
	BaseHandler
	classService services.ClassService
}

func NewClassHandler(classService services.ClassService, logger utils.Logger) *ClassHandler {
	return &ClassHandler{
		BaseHandler:  NewBaseHandler(logger),
		classService: classService,
	}
}

// Register registers a class with its roster
// @Summary Register class
// @Description Register a class and its derived roster; a stable storage key is assigned
// @Tags classes
// @Accept json
// @Produce json
// @Success 201 {object} models.Class "Registered class"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 409 {object} ErrorResponse "Class already registered"
// @Router /classes [post]
func (h *ClassHandler) Register(c *gin.Context) {
	var req services.RegisterClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "registering class", "class", req.Name)

	class, err := h.classService.Register(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err, "Failed to register class")
		return
	}

	c.JSON(http.StatusCreated, class)
}

// List lists registered classes
// @Summary List classes
// @Tags classes
// @Produce json
// @Success 200 {object} map[string]interface{} "Class list"
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		h.RespondError(c, err, "Failed to list classes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"classes": classes,
		"total":   len(classes),
	})
}
