package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/SGP-2025/attendance-service/internal/events"
	"github.com/SGP-2025/attendance-service/internal/services"
)

// SMTPConfig carries the mail relay settings. An empty Host disables
// delivery; events are then only logged.
type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Username string
	Password string
}

// Subscriber is the part of the event bus the mailer consumes.
type Subscriber interface {
	Subscribe(ctx context.Context, eventType string) (<-chan *message.Message, error)
}

// Mailer listens for recorded-absence events and emails a summary to the
// configured address when the settings document enables notifications.
// Delivery failures are logged and dropped; mail never blocks roll calls.
type Mailer struct {
	config     SMTPConfig
	settings   services.SettingsService
	subscriber Subscriber
	logger     *slog.Logger

	// send is swapped in tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(config SMTPConfig, settings services.SettingsService, subscriber Subscriber, logger *slog.Logger) *Mailer {
	return &Mailer{
		config:     config,
		settings:   settings,
		subscriber: subscriber,
		logger:     logger,
		send:       smtp.SendMail,
	}
}

// Start subscribes to absence events and consumes them until ctx is done.
func (m *Mailer) Start(ctx context.Context) error {
	messages, err := m.subscriber.Subscribe(ctx, events.TypeAbsencesRecorded)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", events.TypeAbsencesRecorded, err)
	}

	go func() {
		for msg := range messages {
			m.handle(ctx, msg)
			msg.Ack()
		}
	}()
	return nil
}

func (m *Mailer) handle(ctx context.Context, msg *message.Message) {
	var envelope struct {
		ID   string                         `json:"id"`
		Data services.AbsencesRecordedEvent `json:"data"`
	}
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		m.logger.Warn("discarding malformed absence event", "error", err)
		return
	}

	settings, err := m.settings.Get(ctx)
	if err != nil {
		m.logger.Warn("cannot load settings, skipping notification", "error", err)
		return
	}
	if !settings.EmailNotifications || settings.Email == "" {
		return
	}

	if m.config.Host == "" {
		m.logger.Info("email notifications enabled but no SMTP relay configured",
			"class", envelope.Data.ClassName, "count", envelope.Data.Count)
		return
	}

	if err := m.deliver(settings.Email, &envelope.Data); err != nil {
		m.logger.Error("failed to send absence notification",
			"event_id", envelope.ID, "error", err)
		return
	}
	m.logger.Info("absence notification sent",
		"to", settings.Email, "class", envelope.Data.ClassName, "count", envelope.Data.Count)
}

func (m *Mailer) deliver(to string, data *services.AbsencesRecordedEvent) error {
	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\n", m.config.From)
	fmt.Fprintf(&body, "To: %s\r\n", to)
	fmt.Fprintf(&body, "Subject: Absences %s - %s %s\r\n", data.ClassName, data.Date, data.TimeSlot)
	body.WriteString("\r\n")
	fmt.Fprintf(&body, "%d student(s) marked absent in %s on %s (%s):\r\n",
		data.Count, data.ClassName, data.Date, data.TimeSlot)
	for _, name := range data.Students {
		fmt.Fprintf(&body, "- %s\r\n", name)
	}

	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	addr := m.config.Host + ":" + m.config.Port
	return m.send(addr, auth, m.config.From, []string{to}, []byte(body.String()))
}
