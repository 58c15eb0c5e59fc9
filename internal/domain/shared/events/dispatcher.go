package events

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/orris-inc/helpdesk/internal/shared/goroutine"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

var (
	ErrDispatcherStopped = errors.New("event dispatcher is not running")
	ErrQueueFull         = errors.New("event queue is full")
)

const defaultQueueSize = 100

// InMemoryEventDispatcher queues events and delivers them from a single
// worker, so handlers observe events in publish order.
type InMemoryEventDispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
	queue    chan DomainEvent
	quit     chan struct{}
	done     <-chan struct{}
	running  bool
	log      logger.Interface
}

func NewInMemoryEventDispatcher(queueSize int, log logger.Interface) *InMemoryEventDispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &InMemoryEventDispatcher{
		handlers: make(map[string][]EventHandler),
		queue:    make(chan DomainEvent, queueSize),
		log:      log,
	}
}

// Publish enqueues event without blocking.
func (d *InMemoryEventDispatcher) Publish(event DomainEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.running {
		return ErrDispatcherStopped
	}

	select {
	case d.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// PublishAll stops at the first event that cannot be queued.
func (d *InMemoryEventDispatcher) PublishAll(list []DomainEvent) error {
	for _, e := range list {
		if err := d.Publish(e); err != nil {
			return fmt.Errorf("publish %s: %w", e.GetEventType(), err)
		}
	}
	return nil
}

func (d *InMemoryEventDispatcher) Subscribe(eventType string, handler EventHandler) error {
	switch {
	case eventType == "":
		return errors.New("event type cannot be empty")
	case handler == nil:
		return errors.New("handler cannot be nil")
	}

	d.mu.Lock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
	d.mu.Unlock()
	return nil
}

func (d *InMemoryEventDispatcher) Unsubscribe(eventType string, handler EventHandler) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	remaining := slices.DeleteFunc(slices.Clone(d.handlers[eventType]), func(h EventHandler) bool {
		return h == handler
	})
	if len(remaining) == 0 {
		delete(d.handlers, eventType)
		return nil
	}
	d.handlers[eventType] = remaining
	return nil
}

func (d *InMemoryEventDispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return errors.New("event dispatcher already started")
	}

	d.running = true
	d.quit = make(chan struct{})
	d.done = goroutine.SafeGo(d.log, "event-dispatcher", d.run)
	return nil
}

// Stop delivers whatever is still queued, then returns. Stopping an idle
// dispatcher is a no-op.
func (d *InMemoryEventDispatcher) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = false
	close(d.quit)
	done := d.done
	d.mu.Unlock()

	<-done
	return nil
}

func (d *InMemoryEventDispatcher) run() {
	for {
		select {
		case e := <-d.queue:
			d.deliver(e)
		case <-d.quit:
			for {
				select {
				case e := <-d.queue:
					d.deliver(e)
				default:
					return
				}
			}
		}
	}
}

func (d *InMemoryEventDispatcher) deliver(e DomainEvent) {
	d.mu.RLock()
	handlers := d.handlers[e.GetEventType()]
	d.mu.RUnlock()

	for _, h := range handlers {
		if h.CanHandle(e.GetEventType()) {
			d.invoke(h, e)
		}
	}
}

// invoke isolates a panicking handler from the rest of the queue.
func (d *InMemoryEventDispatcher) invoke(h EventHandler, e DomainEvent) {
	defer goroutine.Recover(d.log, "event-handler:"+e.GetEventType())

	if err := h.Handle(e); err != nil {
		d.log.Warnw("event handler failed",
			"event_type", e.GetEventType(),
			"event_id", e.GetEventID(),
			"error", err,
		)
	}
}

// SimpleEventHandler adapts a function to EventHandler for one event type.
type SimpleEventHandler struct {
	eventType string
	fn        func(DomainEvent) error
}

func NewSimpleEventHandler(eventType string, fn func(DomainEvent) error) *SimpleEventHandler {
	return &SimpleEventHandler{eventType: eventType, fn: fn}
}

func (h *SimpleEventHandler) Handle(event DomainEvent) error {
	if h.fn == nil {
		return nil
	}
	return h.fn(event)
}

func (h *SimpleEventHandler) CanHandle(eventType string) bool {
	return h.eventType == eventType
}
