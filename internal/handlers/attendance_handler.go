package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SGP-2025/attendance-service/internal/services"
	"github.com/SGP-2025/attendance-service/internal/utils"
)

type AttendanceHandler struct {
	BaseHandler
	attendanceService services.AttendanceService
}

func NewAttendanceHandler(attendanceService services.AttendanceService, logger utils.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler:       NewBaseHandler(logger),
		attendanceService: attendanceService,
	}
}

// Record finalizes a roll call
// @Summary Record absences
// @Description Persist the absentee list of one (class, date, time-slot) roll call. An empty list records nothing.
// @Tags attendance
// @Accept json
// @Produce json
// @Success 200 {object} services.RecordAttendanceResponse "Recording result"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Class not found"
// @Router /attendance [post]
func (h *AttendanceHandler) Record(c *gin.Context) {
	var req services.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "recording attendance",
		"class", req.ClassName, "date", req.Date, "time_slot", req.TimeSlot)

	resp, err := h.attendanceService.Record(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err, "Failed to record absences")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// TimeSlots lists the roll-call slots
// @Summary List time slots
// @Tags attendance
// @Produce json
// @Success 200 {object} map[string]interface{} "Fixed slot labels"
// @Router /timeslots [get]
func (h *AttendanceHandler) TimeSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"time_slots": h.attendanceService.TimeSlots()})
}
