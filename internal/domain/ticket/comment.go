package ticket

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

// CommentKind separates public comments from internal notes.
type CommentKind string

const (
	KindComment CommentKind = "comment"
	KindNote    CommentKind = "note"
)

// Comment is a public comment or an internal note on a ticket.
type Comment struct {
	id      string
	kind    CommentKind
	ownerID uint
	body    string
	date    time.Time
}

func newComment(id string, kind CommentKind, ownerID uint, body string) *Comment {
	return &Comment{
		id:      id,
		kind:    kind,
		ownerID: ownerID,
		body:    body,
		date:    biztime.NowUTC(),
	}
}

func ReconstructComment(id string, kind CommentKind, ownerID uint, body string, date time.Time) *Comment {
	return &Comment{
		id:      id,
		kind:    kind,
		ownerID: ownerID,
		body:    body,
		date:    date,
	}
}

func (c *Comment) ID() string        { return c.id }
func (c *Comment) Kind() CommentKind { return c.kind }
func (c *Comment) OwnerID() uint     { return c.ownerID }
func (c *Comment) Body() string      { return c.body }
func (c *Comment) Date() time.Time   { return c.date }
func (c *Comment) IsNote() bool      { return c.kind == KindNote }
