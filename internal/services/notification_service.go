package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SGP-2025/attendance-service/internal/events"
)

// AbsencesRecordedEvent is the payload published after a roll call persists
// a non-empty absence batch.
type AbsencesRecordedEvent struct {
	ClassName string   `json:"class_name"`
	Date      string   `json:"date"`
	TimeSlot  string   `json:"time_slot"`
	Count     int      `json:"count"`
	Students  []string `json:"students"`
}

type notificationService struct {
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewNotificationService(eventPublisher events.EventPublisher, logger *slog.Logger) NotificationService {
	return &notificationService{
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *notificationService) AbsencesRecorded(ctx context.Context, data *AbsencesRecordedEvent) error {
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.TypeAbsencesRecorded,
		Source:    events.EventSource,
		Version:   events.EventVersion,
		Timestamp: time.Now(),
		Data:      data,
	}

	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	s.logger.Debug("absence event published",
		"event_id", event.ID,
		"class", data.ClassName,
		"count", data.Count)
	return nil
}
