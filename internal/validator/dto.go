package validator

import "github.com/SGP-2025/attendance-service/internal/models"

// LoginRequest carries credentials for session creation.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AddTeacherRequest creates a teacher account. The access code is the
// teacher's password; it is hashed before storage.
type AddTeacherRequest struct {
	Username   string `json:"username" validate:"required,username"`
	AccessCode string `json:"access_code" validate:"required,min=4,max=128"`
	Name       string `json:"name" validate:"required,max=100"`
}

// RegisterClassRequest registers a class with its derived roster. Roster rows
// come from the upstream spreadsheet extraction, already reduced to
// identifier + name.
type RegisterClassRequest struct {
	Name   string               `json:"name" validate:"required,max=100"`
	Roster []models.RosterEntry `json:"roster" validate:"dive"`
}

// RecordAttendanceRequest finalizes one roll call. Absentees may be empty, in
// which case nothing is persisted.
type RecordAttendanceRequest struct {
	ClassName string               `json:"class_name" validate:"required"`
	Date      string               `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot  string               `json:"time_slot" validate:"required,time_slot"`
	Absentees []models.RosterEntry `json:"absentees" validate:"dive"`
}

// UpdateSettingsRequest replaces the settings document wholesale.
type UpdateSettingsRequest struct {
	EmailNotifications bool   `json:"email_notifications"`
	Email              string `json:"email" validate:"required_if=EmailNotifications true,omitempty,email"`
	DataRetentionDays  int    `json:"data_retention_days" validate:"required,min=30"`
}
