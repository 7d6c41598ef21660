package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SGP-2025/attendance-service/internal/services"
	"github.com/SGP-2025/attendance-service/internal/sessions"
	"github.com/SGP-2025/attendance-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService  services.AuthService
	sessionStore sessions.Store
	sessionTTL   time.Duration
}

func NewAuthHandler(authService services.AuthService, sessionStore sessions.Store, sessionTTL time.Duration, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  NewBaseHandler(logger),
		authService:  authService,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

type identityResponse struct {
	Username    string `json:"username"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}

// Login verifies credentials and opens a session
// @Summary Log in
// @Description Verify credentials and set the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} identityResponse "Authenticated identity"
// @Failure 401 {object} ErrorResponse "Invalid username or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	ok, user, err := h.authService.Verify(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.RespondError(c, err, "Credential store unavailable")
		return
	}
	if !ok {
		// One message for unknown user and wrong password; anything more
		// specific enumerates accounts.
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid username or password"})
		return
	}

	sess := sessions.New(user, h.sessionTTL)
	if err := h.sessionStore.Save(c.Request.Context(), sess); err != nil {
		h.RespondError(c, err, "Failed to create session")
		return
	}

	c.SetCookie(SessionCookieName, sess.ID, int(h.sessionTTL.Seconds()), "/", "", false, true)
	h.LogRequest(c, "session opened", "username", user.Username, "role", user.Role)

	c.JSON(http.StatusOK, identityResponse{
		Username:    user.Username,
		Role:        string(user.Role),
		DisplayName: user.DisplayName,
	})
}

// Logout destroys the current session
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 204 "Session destroyed"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(SessionCookieName); err == nil && id != "" {
		if err := h.sessionStore.Delete(c.Request.Context(), id); err != nil {
			h.LogError(c, err, "failed to delete session")
		}
	}

	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// Me returns the authenticated identity
// @Summary Current identity
// @Tags auth
// @Produce json
// @Success 200 {object} identityResponse
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
		return
	}

	c.JSON(http.StatusOK, identityResponse{
		Username:    sess.Username,
		Role:        string(sess.Role),
		DisplayName: sess.DisplayName,
	})
}
