package events

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type testEvent struct {
	BaseEvent
}

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryEventDispatcher(4, logger.NewDiscard())

	var mu sync.Mutex
	var got []string
	done := make(chan struct{}, 2)

	require.NoError(t, d.Subscribe("ticket:created", NewSimpleEventHandler("ticket:created", func(e DomainEvent) error {
		mu.Lock()
		got = append(got, e.GetAggregateID())
		mu.Unlock()
		done <- struct{}{}
		return nil
	})))
	require.NoError(t, d.Subscribe("ticket:created", NewSimpleEventHandler("ticket:created", func(DomainEvent) error {
		done <- struct{}{}
		return errors.New("handler failure is only logged")
	})))

	require.NoError(t, d.Start())
	require.NoError(t, d.Publish(testEvent{NewBaseEvent("42", "ticket:created")}))

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handler was not invoked")
		}
	}
	require.NoError(t, d.Stop())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"42"}, got)
}

func TestDispatcher_PublishRequiresRunning(t *testing.T) {
	d := NewInMemoryEventDispatcher(1, logger.NewDiscard())
	assert.ErrorIs(t, d.Publish(testEvent{NewBaseEvent("1", "x")}), ErrDispatcherStopped)
	assert.NoError(t, d.Stop())

	require.NoError(t, d.Start())
	assert.Error(t, d.Start())
	require.NoError(t, d.Stop())
	assert.NoError(t, d.Stop())
	assert.ErrorIs(t, d.Publish(testEvent{NewBaseEvent("1", "x")}), ErrDispatcherStopped)
}

func TestDispatcher_DeliversInOrderAndSurvivesPanics(t *testing.T) {
	d := NewInMemoryEventDispatcher(16, logger.NewDiscard())

	var got []string
	require.NoError(t, d.Subscribe("ticket:updated", NewSimpleEventHandler("ticket:updated", func(DomainEvent) error {
		panic("handler bug")
	})))
	require.NoError(t, d.Subscribe("ticket:updated", NewSimpleEventHandler("ticket:updated", func(e DomainEvent) error {
		got = append(got, e.GetAggregateID())
		return nil
	})))

	require.NoError(t, d.Start())
	for _, id := range []string{"1", "2", "3", "4"} {
		require.NoError(t, d.Publish(testEvent{NewBaseEvent(id, "ticket:updated")}))
	}
	// Stop drains the queue before returning.
	require.NoError(t, d.Stop())

	assert.Equal(t, []string{"1", "2", "3", "4"}, got)
}

func TestDispatcher_Unsubscribe(t *testing.T) {
	d := NewInMemoryEventDispatcher(4, logger.NewDiscard())
	calls := 0
	h := NewSimpleEventHandler("x", func(DomainEvent) error { calls++; return nil })
	require.NoError(t, d.Subscribe("x", h))
	require.NoError(t, d.Unsubscribe("x", h))

	require.NoError(t, d.Start())
	require.NoError(t, d.Publish(testEvent{NewBaseEvent("1", "x")}))
	require.NoError(t, d.Stop())
	assert.Zero(t, calls)
}

func TestDispatcher_SubscribeValidation(t *testing.T) {
	d := NewInMemoryEventDispatcher(1, logger.NewDiscard())
	assert.Error(t, d.Subscribe("", NewSimpleEventHandler("x", nil)))
	assert.Error(t, d.Subscribe("x", nil))
}

func TestNewBaseEvent(t *testing.T) {
	a := NewBaseEvent("7", "ticket:updated")
	b := NewBaseEvent("7", "ticket:updated")
	assert.NotEqual(t, a.GetEventID(), b.GetEventID())
	assert.Equal(t, 1, a.GetVersion())
	assert.False(t, a.GetOccurredAt().IsZero())
}
