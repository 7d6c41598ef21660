package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SGP-2025/attendance-service/internal/services"
	"github.com/SGP-2025/attendance-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewUserHandler(authService services.AuthService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// ListTeachers lists teacher accounts
// @Summary List teachers
// @Description Get every teacher account (admin only; the admin record is never listed)
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{} "Teacher list"
// @Failure 403 {object} ErrorResponse "Admin access required"
// @Router /users [get]
func (h *UserHandler) ListTeachers(c *gin.Context) {
	h.LogRequest(c, "listing teachers")

	teachers, err := h.authService.ListTeachers(c.Request.Context())
	if err != nil {
		h.RespondError(c, err, "Failed to list teachers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teachers": teachers,
		"total":    len(teachers),
	})
}

// AddTeacher creates a teacher account
// @Summary Add teacher
// @Description Create a teacher account with a hashed access code (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} services.ActionResult "Creation result"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 403 {object} ErrorResponse "Admin access required"
// @Router /users [post]
func (h *UserHandler) AddTeacher(c *gin.Context) {
	var req services.AddTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "adding teacher", "username", req.Username)

	result, err := h.authService.AddTeacher(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err, "Failed to add teacher")
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusConflict
	}
	c.JSON(status, result)
}

// RemoveTeacher deletes a teacher account
// @Summary Remove teacher
// @Description Delete a teacher account; the admin account is never removable (admin only)
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} services.ActionResult "Removal result"
// @Failure 403 {object} ErrorResponse "Admin access required"
// @Router /users/{username} [delete]
func (h *UserHandler) RemoveTeacher(c *gin.Context) {
	username := c.Param("username")
	h.LogRequest(c, "removing teacher", "username", username)

	result, err := h.authService.RemoveTeacher(c.Request.Context(), username)
	if err != nil {
		h.RespondError(c, err, "Failed to remove teacher")
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	c.JSON(status, result)
}
