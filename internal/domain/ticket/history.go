package ticket

import (
	"fmt"
	"time"
)

// History action codes.
const (
	ActionStatusPrefix      = "ticket:set:status:"
	ActionSetAssignee       = "ticket:set:assignee"
	ActionSetType           = "ticket:set:type"
	ActionSetPriority       = "ticket:set:priority"
	ActionSetGroup          = "ticket:set:group"
	ActionSetTags           = "ticket:set:tags"
	ActionSetSystem         = "ticket:set:system"
	ActionUpdateIssue       = "ticket:update:issue"
	ActionUpdateSubject     = "ticket:update:subject"
	ActionCommentAdded      = "ticket:comment:added"
	ActionCommentUpdated    = "ticket:comment:updated"
	ActionCommentDeleted    = "ticket:delete:comment"
	ActionNoteAdded         = "ticket:note:added"
	ActionNoteUpdated       = "ticket:note:updated"
	ActionNoteDeleted       = "ticket:delete:note"
	ActionAttachmentAdded   = "ticket:added:attachment"
	ActionAttachmentDeleted = "ticket:delete:attachment"
	ActionCreated           = "ticket:created"
	ActionDeleted           = "ticket:delete"
	ActionRestored          = "ticket:restore"
)

// HistoryEntry is one immutable audit record. Entries without an id have not
// been persisted yet.
type HistoryEntry struct {
	id          uint
	action      string
	description string
	ownerID     uint
	date        time.Time
}

func newHistoryEntry(action, description string, ownerID uint, date time.Time) *HistoryEntry {
	return &HistoryEntry{
		action:      action,
		description: description,
		ownerID:     ownerID,
		date:        date,
	}
}

func ReconstructHistoryEntry(id uint, action, description string, ownerID uint, date time.Time) *HistoryEntry {
	return &HistoryEntry{
		id:          id,
		action:      action,
		description: description,
		ownerID:     ownerID,
		date:        date,
	}
}

func (h *HistoryEntry) ID() uint            { return h.id }
func (h *HistoryEntry) Action() string      { return h.action }
func (h *HistoryEntry) Description() string { return h.description }
func (h *HistoryEntry) OwnerID() uint       { return h.ownerID }
func (h *HistoryEntry) Date() time.Time     { return h.date }
func (h *HistoryEntry) IsNew() bool         { return h.id == 0 }

// SetID is called once by the repository after insert.
func (h *HistoryEntry) SetID(id uint) error {
	if h.id != 0 {
		return fmt.Errorf("history entry ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("history entry ID cannot be zero")
	}
	h.id = id
	return nil
}
