package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SGP-2025/attendance-service/internal/models"
	"github.com/SGP-2025/attendance-service/internal/repositories"
	"github.com/SGP-2025/attendance-service/internal/validator"
)

const (
	msgNoAbsences       = "No absences to record"
	msgAbsencesRecorded = "Absences recorded successfully"
)

type attendanceService struct {
	repo          repositories.Repository
	notifications NotificationService
	logger        *slog.Logger
	validator     *validator.Validator
}

func NewAttendanceService(repo repositories.Repository, notifications NotificationService, logger *slog.Logger, validator *validator.Validator) AttendanceService {
	return &attendanceService{
		repo:          repo,
		notifications: notifications,
		logger:        logger,
		validator:     validator,
	}
}

func (s *attendanceService) Record(ctx context.Context, req *RecordAttendanceRequest) (*RecordAttendanceResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	class, err := s.repo.Classes().Get(ctx, req.ClassName)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("resolve class: %w", err)
	}

	if len(req.Absentees) == 0 {
		s.logger.Info("roll call finalized with no absences",
			"class", class.Name, "date", req.Date, "time_slot", req.TimeSlot)
		return &RecordAttendanceResponse{Recorded: 0, Message: msgNoAbsences}, nil
	}

	path, err := s.repo.Absences().RecordAbsences(ctx, class.Key, class.Name, date, req.TimeSlot, req.Absentees)
	if err != nil {
		return nil, fmt.Errorf("record absences: %w", err)
	}

	s.logger.Info("absences recorded",
		"class", class.Name,
		"date", req.Date,
		"time_slot", req.TimeSlot,
		"absentees", len(req.Absentees),
		"file", path)

	students := make([]string, len(req.Absentees))
	for i, a := range req.Absentees {
		students[i] = a.Name
	}
	event := &AbsencesRecordedEvent{
		ClassName: class.Name,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		Count:     len(req.Absentees),
		Students:  students,
	}
	if err := s.notifications.AbsencesRecorded(ctx, event); err != nil {
		// Notification delivery never fails a finalized roll call.
		s.logger.Warn("failed to publish absence event", "error", err)
	}

	return &RecordAttendanceResponse{
		Recorded: len(req.Absentees),
		File:     path,
		Message:  msgAbsencesRecorded,
	}, nil
}

func (s *attendanceService) TimeSlots() []string {
	slots := make([]string, len(models.TimeSlots))
	copy(slots, models.TimeSlots)
	return slots
}
