package article

import (
	"strconv"

	"github.com/orris-inc/helpdesk/internal/domain/shared/events"
)

const EventPublished = "article:published"

// Event identifies the article and the actor behind a change.
type Event struct {
	events.BaseEvent
	UID       int64  `json:"uid"`
	Subject   string `json:"subject"`
	Permalink string `json:"permalink"`
	OrgID     uint   `json:"organization"`
	ActorID   uint   `json:"actor_id"`
}

func NewEvent(eventType string, a *Article, actorID uint) Event {
	return Event{
		BaseEvent: events.NewBaseEvent(strconv.FormatUint(uint64(a.ID()), 10), eventType),
		UID:       a.UID(),
		Subject:   a.Subject(),
		Permalink: a.Permalink(),
		OrgID:     a.OrgID(),
		ActorID:   actorID,
	}
}
