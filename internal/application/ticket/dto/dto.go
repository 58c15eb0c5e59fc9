package dto

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
)

// UserView is the public face of a user reference.
type UserView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Role     string `json:"role,omitempty"`
}

// NamedView is a resolved reference to a group, type or tag.
type NamedView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CommentView struct {
	ID    string    `json:"id"`
	Owner *UserView `json:"owner"`
	Body  string    `json:"body"`
	Date  time.Time `json:"date"`
}

type AttachmentView struct {
	ID       string    `json:"id"`
	Owner    *UserView `json:"owner"`
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	MimeType string    `json:"mime_type,omitempty"`
	Date     time.Time `json:"date"`
}

type HistoryView struct {
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Owner       *UserView `json:"owner"`
	Date        time.Time `json:"date"`
}

// TicketView is a ticket with every reference resolved. Notes is nil when
// the caller cannot view notes.
type TicketView struct {
	ID            uint             `json:"id"`
	UID           int64            `json:"uid"`
	Subject       string           `json:"subject"`
	Issue         string           `json:"issue"`
	Status        int              `json:"status"`
	StatusLabel   string           `json:"status_label"`
	Priority      int              `json:"priority"`
	PriorityLabel string           `json:"priority_label"`
	Owner         *UserView        `json:"owner"`
	Assignee      *UserView        `json:"assignee,omitempty"`
	Group         *NamedView       `json:"group"`
	Type          *NamedView       `json:"type"`
	Tags          []NamedView      `json:"tags"`
	OrgID         *uint            `json:"org_id,omitempty"`
	SystemID      *uint            `json:"system_id,omitempty"`
	Date          time.Time        `json:"date"`
	Updated       *time.Time       `json:"updated,omitempty"`
	ClosedDate    *time.Time       `json:"closed_date,omitempty"`
	Comments      []CommentView    `json:"comments"`
	Notes         []CommentView    `json:"notes,omitempty"`
	Attachments   []AttachmentView `json:"attachments"`
	History       []HistoryView    `json:"history"`
	Subscribers   []uint           `json:"subscribers"`
	Version       int              `json:"version"`
}

// OverdueView is the cached overdue projection.
type OverdueView struct {
	ID      uint      `json:"id"`
	UID     int64     `json:"uid"`
	Subject string    `json:"subject"`
	Updated time.Time `json:"updated"`
}

func ToOverdueViews(rows []*ticket.OverdueSummary) []OverdueView {
	out := make([]OverdueView, 0, len(rows))
	for _, r := range rows {
		out = append(out, OverdueView{
			ID:      r.ID,
			UID:     r.UID,
			Subject: r.Subject,
			Updated: r.Updated,
		})
	}
	return out
}

// ListResult is one page of tickets plus the unpaged total.
type ListResult struct {
	Items []*TicketView
	Total int64
	Page  int
	Limit int
}

// CountView is an aggregate row with its reference resolved.
type CountView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
