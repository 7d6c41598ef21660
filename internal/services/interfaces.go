package services

import (
	"context"
	"time"

	"github.com/SGP-2025/attendance-service/internal/models"
	"github.com/SGP-2025/attendance-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Use validator request types
type LoginRequest = validator.LoginRequest
type AddTeacherRequest = validator.AddTeacherRequest
type RegisterClassRequest = validator.RegisterClassRequest
type RecordAttendanceRequest = validator.RecordAttendanceRequest
type UpdateSettingsRequest = validator.UpdateSettingsRequest

// ===== RESPONSE DTOs =====

type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type RecordAttendanceResponse struct {
	Recorded int    `json:"recorded"`
	File     string `json:"file,omitempty"`
	Message  string `json:"message"`
}

type StudentAbsenceCount struct {
	StudentCode string `json:"student_code"`
	StudentName string `json:"student_name"`
	Count       int    `json:"count"`
}

type AttendanceSummary struct {
	TotalAbsences  int                   `json:"total_absences"`
	UniqueStudents int                   `json:"unique_students"`
	UniqueDays     int                   `json:"unique_days"`
	PerStudent     []StudentAbsenceCount `json:"per_student"`
}

type MonthlyStatisticsResponse struct {
	ClassName string            `json:"class_name"`
	Month     time.Month        `json:"month"`
	Summary   AttendanceSummary `json:"summary"`
	Warnings  []string          `json:"warnings,omitempty"`
}

type RetentionSweepResponse struct {
	RetentionDays int      `json:"retention_days"`
	Removed       int      `json:"removed"`
	Warnings      []string `json:"warnings,omitempty"`
}

// ===== SERVICE INTERFACES =====

// AuthService verifies credentials and manages teacher accounts on top of
// the credential store. It enforces the invariant that the admin account is
// never removable.
type AuthService interface {
	// Verify checks a username/password pair. The failure result does not
	// distinguish an unknown user from a wrong password.
	Verify(ctx context.Context, username, password string) (bool, *models.User, error)

	// AddTeacher creates a teacher account; re-adding an existing username
	// is rejected, not merged.
	AddTeacher(ctx context.Context, req *AddTeacherRequest) (*ActionResult, error)

	// RemoveTeacher deletes a teacher account. It is the sole deletion
	// path and refuses admin records.
	RemoveTeacher(ctx context.Context, username string) (*ActionResult, error)

	// ListTeachers returns every teacher record, admin excluded.
	ListTeachers(ctx context.Context) ([]models.User, error)
}

// ClassService manages the class registry.
type ClassService interface {
	Register(ctx context.Context, req *RegisterClassRequest) (*models.Class, error)
	List(ctx context.Context) ([]models.Class, error)
}

// AttendanceService finalizes roll calls into persisted absence batches.
type AttendanceService interface {
	Record(ctx context.Context, req *RecordAttendanceRequest) (*RecordAttendanceResponse, error)
	TimeSlots() []string
}

// ReportingService aggregates absence records into monthly statistics.
type ReportingService interface {
	// Aggregate is a pure function over absence rows.
	Aggregate(records []models.AbsenceRecord) AttendanceSummary

	MonthlyStatistics(ctx context.Context, className string, month time.Month) (*MonthlyStatisticsResponse, error)
}

// SettingsService loads and replaces the settings document.
type SettingsService interface {
	Get(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, req *UpdateSettingsRequest) (models.Settings, error)
}

// RetentionService enforces the data_retention_days setting on demand.
// Nothing ever deletes absence records implicitly.
type RetentionService interface {
	Sweep(ctx context.Context) (*RetentionSweepResponse, error)
}

// NotificationService publishes domain events for downstream consumers.
type NotificationService interface {
	AbsencesRecorded(ctx context.Context, data *AbsencesRecordedEvent) error
}

// ServiceManager wires and owns every service.
type ServiceManager interface {
	Auth() AuthService
	Classes() ClassService
	Attendance() AttendanceService
	Reporting() ReportingService
	Settings() SettingsService
	Retention() RetentionService
	Notifications() NotificationService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
