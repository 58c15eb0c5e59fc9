package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/shared/events"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type testEvent struct {
	events.BaseEvent
	UID int64 `json:"uid"`
}

func TestEncodeDecode(t *testing.T) {
	ev := testEvent{BaseEvent: events.NewBaseEvent("7", "ticket:created"), UID: 1001}

	data, err := Encode(ev)
	require.NoError(t, err)

	env, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "ticket:created", env.EventType)
	assert.Equal(t, "7", env.AggregateID)
	assert.Equal(t, ev.EventID, env.EventID)

	var payload testEvent
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, int64(1001), payload.UID)
}

func TestDecode_RejectsUntyped(t *testing.T) {
	_, err := Decode([]byte(`{"event_id":"x"}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestBridge_CanHandle(t *testing.T) {
	b := NewRedisEventBridge(nil, logger.NewDiscard(), "ticket:created", "ticket:updated")

	assert.True(t, b.CanHandle("ticket:created"))
	assert.False(t, b.CanHandle("article:updated"))
}

func TestBridge_RegisterSubscribesEveryType(t *testing.T) {
	d := events.NewInMemoryEventDispatcher(10, logger.NewDiscard())
	b := NewRedisEventBridge(nil, logger.NewDiscard(), "ticket:created", "ticket:deleted")

	require.NoError(t, b.Register(d))
}

func TestBridge_PublishSubscribe(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	defer client.Close()

	b := NewRedisEventBridge(client, logger.NewDiscard(), "ticket:created")
	got := make(chan EventEnvelope, 1)

	go func() {
		_ = b.Subscribe(ctx, func(_ context.Context, env EventEnvelope) {
			got <- env
		})
	}()
	time.Sleep(200 * time.Millisecond)

	ev := testEvent{BaseEvent: events.NewBaseEvent("9", "ticket:created"), UID: 1009}
	require.NoError(t, b.Publish(ctx, ev))

	select {
	case env := <-got:
		assert.Equal(t, ev.EventID, env.EventID)
	case <-ctx.Done():
		t.Fatal("event not received")
	}
}
