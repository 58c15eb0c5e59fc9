package ticket

import (
	"strconv"

	"github.com/orris-inc/helpdesk/internal/domain/shared/events"
)

// Event types published for ticket changes.
const (
	EventCreated            = "ticket:created"
	EventUpdated            = "ticket:updated"
	EventDeleted            = "ticket:deleted"
	EventCommentAdded       = "ticket:comment:added"
	EventNoteAdded          = "ticket:note:added"
	EventSubscribersChanged = "ticket:subscribers:update"
)

// Event carries the ticket identity and the actor behind a change.
type Event struct {
	events.BaseEvent
	TicketID uint   `json:"ticket_id"`
	UID      int64  `json:"uid"`
	GroupID  uint   `json:"group_id"`
	ActorID  uint   `json:"actor_id"`
	Action   string `json:"action,omitempty"`
}

func NewEvent(eventType string, t *Ticket, actorID uint) Event {
	e := Event{
		BaseEvent: events.NewBaseEvent(strconv.FormatUint(uint64(t.ID()), 10), eventType),
		TicketID:  t.ID(),
		UID:       t.UID(),
		GroupID:   t.GroupID(),
		ActorID:   actorID,
	}
	if h := t.history; len(h) > 0 {
		e.Action = h[len(h)-1].Action()
	}
	return e
}

// CommentEvent is published when a comment or note is added.
type CommentEvent struct {
	Event
	CommentID string `json:"comment_id"`
}

func NewCommentEvent(eventType string, t *Ticket, c *Comment) CommentEvent {
	return CommentEvent{
		Event:     NewEvent(eventType, t, c.OwnerID()),
		CommentID: c.ID(),
	}
}

// SubscribersEvent is published when the subscriber set changes.
type SubscribersEvent struct {
	Event
	Subscribers []uint `json:"subscribers"`
}

func NewSubscribersEvent(t *Ticket, actorID uint) SubscribersEvent {
	return SubscribersEvent{
		Event:       NewEvent(EventSubscribersChanged, t, actorID),
		Subscribers: t.Subscribers(),
	}
}
