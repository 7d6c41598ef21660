package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SGP-2025/attendance-service/internal/events"
	"github.com/SGP-2025/attendance-service/internal/repositories"
	"github.com/SGP-2025/attendance-service/internal/validator"
)

type defaultServiceManager struct {
	auth          AuthService
	classes       ClassService
	attendance    AttendanceService
	reporting     ReportingService
	settings      SettingsService
	retention     RetentionService
	notifications NotificationService

	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewDefaultServiceManager(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) ServiceManager {
	notifications := NewNotificationService(eventPublisher, logger)
	settings := NewSettingsService(repo, logger, v)

	return &defaultServiceManager{
		auth:           NewAuthService(repo, logger, v),
		classes:        NewClassService(repo, logger, v),
		attendance:     NewAttendanceService(repo, notifications, logger, v),
		reporting:      NewReportingService(repo, logger),
		settings:       settings,
		retention:      NewRetentionService(repo, settings, logger),
		notifications:  notifications,
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (m *defaultServiceManager) Auth() AuthService                  { return m.auth }
func (m *defaultServiceManager) Classes() ClassService              { return m.classes }
func (m *defaultServiceManager) Attendance() AttendanceService      { return m.attendance }
func (m *defaultServiceManager) Reporting() ReportingService        { return m.reporting }
func (m *defaultServiceManager) Settings() SettingsService          { return m.settings }
func (m *defaultServiceManager) Retention() RetentionService        { return m.retention }
func (m *defaultServiceManager) Notifications() NotificationService { return m.notifications }

// Initialize seeds the credential store so a fresh deployment always has the
// admin account.
func (m *defaultServiceManager) Initialize(ctx context.Context) error {
	if err := m.repo.Credentials().Initialize(ctx); err != nil {
		return fmt.Errorf("initialize credential store: %w", err)
	}
	m.logger.Info("services initialized")
	return nil
}

func (m *defaultServiceManager) Shutdown(ctx context.Context) error {
	if err := m.eventPublisher.Close(); err != nil {
		return fmt.Errorf("close event publisher: %w", err)
	}
	return nil
}
