package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SGP-2025/attendance-service/internal/services"
	"github.com/SGP-2025/attendance-service/internal/sessions"
	"github.com/SGP-2025/attendance-service/internal/utils"
)

type HandlerManager struct {
	authHandler       *AuthHandler
	userHandler       *UserHandler
	classHandler      *ClassHandler
	attendanceHandler *AttendanceHandler
	dashboardHandler  *DashboardHandler
	settingsHandler   *SettingsHandler
	sessionStore      sessions.Store
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessionStore sessions.Store,
	sessionTTL time.Duration,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:       NewAuthHandler(serviceManager.Auth(), sessionStore, sessionTTL, logger),
		userHandler:       NewUserHandler(serviceManager.Auth(), logger),
		classHandler:      NewClassHandler(serviceManager.Classes(), logger),
		attendanceHandler: NewAttendanceHandler(serviceManager.Attendance(), logger),
		dashboardHandler:  NewDashboardHandler(serviceManager.Reporting(), logger),
		settingsHandler:   NewSettingsHandler(serviceManager.Settings(), serviceManager.Retention(), logger),
		sessionStore:      sessionStore,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(SessionMiddleware(hm.sessionStore))
	{
		// Login is the only open endpoint; everything else needs a session
		v1.POST("/auth/login", hm.authHandler.Login)

		authed := v1.Group("")
		authed.Use(RequireAuth())
		{
			authed.POST("/auth/logout", hm.authHandler.Logout)
			authed.GET("/auth/me", hm.authHandler.Me)

			// Classes and attendance - every authenticated role
			authed.GET("/classes", hm.classHandler.List)
			authed.POST("/classes", hm.classHandler.Register)
			authed.GET("/classes/:name/statistics", hm.dashboardHandler.MonthlyStatistics)
			authed.POST("/attendance", hm.attendanceHandler.Record)
			authed.GET("/timeslots", hm.attendanceHandler.TimeSlots)

			// Account and settings management - admin only
			admin := authed.Group("")
			admin.Use(RequireAdmin())
			{
				admin.GET("/users", hm.userHandler.ListTeachers)
				admin.POST("/users", hm.userHandler.AddTeacher)
				admin.DELETE("/users/:username", hm.userHandler.RemoveTeacher)

				admin.GET("/settings", hm.settingsHandler.Get)
				admin.PUT("/settings", hm.settingsHandler.Update)
				admin.POST("/maintenance/retention-sweep", hm.settingsHandler.RetentionSweep)
			}
		}
	}
}

// HealthCheck endpoint
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "attendance-service",
	})
}
