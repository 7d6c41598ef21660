package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Bus is the in-process event bus. Publishing and subscribing share one
// watermill gochannel Pub/Sub; there is no broker in this deployment model,
// every consumer lives in the same process.
type Bus struct {
	pubSub *gochannel.GoChannel
	logger *slog.Logger
}

var _ EventPublisher = (*Bus)(nil)

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NewSlogLogger(logger),
		),
		logger: logger,
	}
}

func (b *Bus) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.Type, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := b.pubSub.Publish(event.Type, msg); err != nil {
		return fmt.Errorf("publish event %s: %w", event.Type, err)
	}

	b.logger.Debug("event published", "event_id", event.ID, "event_type", event.Type)
	return nil
}

// Subscribe returns the message stream for one event type. Consumers must
// Ack every message.
func (b *Bus) Subscribe(ctx context.Context, eventType string) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, eventType)
}

func (b *Bus) Close() error {
	return b.pubSub.Close()
}
