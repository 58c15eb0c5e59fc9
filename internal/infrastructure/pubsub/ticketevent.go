package pubsub

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/helpdesk/internal/domain/shared/events"
	"github.com/orris-inc/helpdesk/internal/infrastructure/metrics"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const (
	TicketEventChannel = "helpdesk:ticket:events"

	publishTimeout = 2 * time.Second
)

// EventEnvelope is the wire form of a domain event on the pub/sub channel.
type EventEnvelope struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// EnvelopeHandler is called for every envelope received from the channel.
type EnvelopeHandler func(ctx context.Context, env EventEnvelope)

// RedisEventBridge forwards in-process domain events to Redis pub/sub. It is
// registered on the dispatcher as an ordinary handler; publish failures are
// logged and never reach the code that raised the event.
type RedisEventBridge struct {
	client *redis.Client
	types  map[string]struct{}
	logger logger.Interface
}

func NewRedisEventBridge(client *redis.Client, log logger.Interface, eventTypes ...string) *RedisEventBridge {
	types := make(map[string]struct{}, len(eventTypes))
	for _, t := range eventTypes {
		types[t] = struct{}{}
	}
	return &RedisEventBridge{
		client: client,
		types:  types,
		logger: log.With("component", "pubsub.events"),
	}
}

// Register subscribes the bridge to every forwarded event type.
func (b *RedisEventBridge) Register(sub events.EventSubscriber) error {
	for t := range b.types {
		if err := sub.Subscribe(t, b); err != nil {
			return fmt.Errorf("failed to register bridge for %s: %w", t, err)
		}
	}
	return nil
}

func (b *RedisEventBridge) CanHandle(eventType string) bool {
	_, ok := b.types[eventType]
	return ok
}

func (b *RedisEventBridge) Handle(event events.DomainEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	return b.Publish(ctx, event)
}

func (b *RedisEventBridge) Publish(ctx context.Context, event events.DomainEvent) error {
	data, err := Encode(event)
	if err != nil {
		return err
	}

	if err := b.client.Publish(ctx, TicketEventChannel, data).Err(); err != nil {
		metrics.EventsPublished.WithLabelValues(event.GetEventType(), "error").Inc()
		b.logger.Errorw("failed to publish domain event",
			"event_type", event.GetEventType(),
			"event_id", event.GetEventID(),
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	metrics.EventsPublished.WithLabelValues(event.GetEventType(), "ok").Inc()
	b.logger.Debugw("domain event published",
		"event_type", event.GetEventType(),
		"aggregate_id", event.GetAggregateID(),
	)
	return nil
}

// Subscribe blocks, delivering envelopes to handler until ctx is done.
func (b *RedisEventBridge) Subscribe(ctx context.Context, handler EnvelopeHandler) error {
	ps := b.client.Subscribe(ctx, TicketEventChannel)
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	b.logger.Infow("subscribed to domain events", "channel", TicketEventChannel)

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("domain event channel closed")
				return nil
			}

			env, err := Decode([]byte(msg.Payload))
			if err != nil {
				b.logger.Warnw("failed to decode domain event",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}
			handler(ctx, env)
		}
	}
}

// Encode wraps a domain event in an envelope.
func Encode(event events.DomainEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	data, err := json.Marshal(EventEnvelope{
		EventID:     event.GetEventID(),
		EventType:   event.GetEventType(),
		AggregateID: event.GetAggregateID(),
		OccurredAt:  event.GetOccurredAt(),
		Payload:     payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event envelope: %w", err)
	}
	return data, nil
}

func Decode(data []byte) (EventEnvelope, error) {
	var env EventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return EventEnvelope{}, fmt.Errorf("failed to unmarshal event envelope: %w", err)
	}
	if env.EventType == "" {
		return EventEnvelope{}, fmt.Errorf("event envelope has no type")
	}
	return env, nil
}
