package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/shared"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
	"github.com/orris-inc/helpdesk/internal/shared/id"
)

// CapabilityAssignee is the capability a user's role needs to hold a ticket.
const CapabilityAssignee = "ticket:assignee"

// PermissionChecker answers whether a role holds a capability.
type PermissionChecker interface {
	CanDo(role, capability string) bool
}

// UserRef is the slice of a user the ticket needs to record an assignment.
type UserRef struct {
	ID       uint
	Fullname string
	Role     string
}

// NamedRef identifies a referenced entity by id and display name.
type NamedRef struct {
	ID   uint
	Name string
}

type Ticket struct {
	id          uint
	uid         int64
	ownerID     uint
	assigneeID  *uint
	groupID     uint
	typeID      uint
	orgID       *uint
	systemID    *uint
	priority    vo.Priority
	status      vo.Status
	tagIDs      []uint
	subject     string
	issue       string
	date        time.Time
	updated     *time.Time
	closedDate  *time.Time
	deleted     bool
	comments    []*Comment
	notes       []*Comment
	attachments []*Attachment
	history     []*HistoryEntry
	subscribers []uint
	version     int
}

// NewTicket builds a ticket in status New. The uid must come from the
// tickets sequence; the owner is subscribed and the creation is recorded.
func NewTicket(
	uid int64,
	ownerID uint,
	groupID uint,
	typeID uint,
	priority vo.Priority,
	subject string,
	issue string,
	tagIDs []uint,
) (*Ticket, error) {
	if uid <= 0 {
		return nil, fmt.Errorf("invalid uid")
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("owner is required")
	}
	if groupID == 0 {
		return nil, fmt.Errorf("group is required")
	}
	if typeID == 0 {
		return nil, fmt.Errorf("ticket type is required")
	}
	if !priority.IsValid() {
		return nil, ErrInvalidPriority
	}
	if strings.TrimSpace(subject) == "" {
		return nil, ErrEmptySubject
	}
	if strings.TrimSpace(issue) == "" {
		return nil, ErrEmptyIssue
	}

	now := biztime.NowUTC()
	t := &Ticket{
		uid:         uid,
		ownerID:     ownerID,
		groupID:     groupID,
		typeID:      typeID,
		priority:    priority,
		status:      vo.StatusNew,
		tagIDs:      dedupe(tagIDs),
		subject:     subject,
		issue:       issue,
		date:        now,
		comments:    []*Comment{},
		notes:       []*Comment{},
		attachments: []*Attachment{},
		history:     []*HistoryEntry{},
		subscribers: []uint{ownerID},
		version:     1,
	}
	t.record(ownerID, ActionCreated, "Ticket was created.", now)

	return t, nil
}

// ReconstructTicket rebuilds a persisted ticket. Stored status and priority
// values are taken as-is.
func ReconstructTicket(
	id uint,
	uid int64,
	ownerID uint,
	assigneeID *uint,
	groupID uint,
	typeID uint,
	orgID *uint,
	systemID *uint,
	priority vo.Priority,
	status vo.Status,
	tagIDs []uint,
	subject string,
	issue string,
	date time.Time,
	updated *time.Time,
	closedDate *time.Time,
	deleted bool,
	comments []*Comment,
	notes []*Comment,
	attachments []*Attachment,
	history []*HistoryEntry,
	subscribers []uint,
	version int,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if uid <= 0 {
		return nil, fmt.Errorf("invalid uid")
	}

	if comments == nil {
		comments = []*Comment{}
	}
	if notes == nil {
		notes = []*Comment{}
	}
	if attachments == nil {
		attachments = []*Attachment{}
	}
	if history == nil {
		history = []*HistoryEntry{}
	}

	return &Ticket{
		id:          id,
		uid:         uid,
		ownerID:     ownerID,
		assigneeID:  assigneeID,
		groupID:     groupID,
		typeID:      typeID,
		orgID:       orgID,
		systemID:    systemID,
		priority:    priority,
		status:      status,
		tagIDs:      shared.CopyIDs(tagIDs),
		subject:     subject,
		issue:       issue,
		date:        date,
		updated:     updated,
		closedDate:  closedDate,
		deleted:     deleted,
		comments:    comments,
		notes:       notes,
		attachments: attachments,
		history:     history,
		subscribers: shared.CopyIDs(subscribers),
		version:     version,
	}, nil
}

func (t *Ticket) ID() uint                 { return t.id }
func (t *Ticket) UID() int64               { return t.uid }
func (t *Ticket) OwnerID() uint            { return t.ownerID }
func (t *Ticket) AssigneeID() *uint        { return t.assigneeID }
func (t *Ticket) GroupID() uint            { return t.groupID }
func (t *Ticket) TypeID() uint             { return t.typeID }
func (t *Ticket) OrgID() *uint             { return t.orgID }
func (t *Ticket) SystemID() *uint          { return t.systemID }
func (t *Ticket) Priority() vo.Priority    { return t.priority }
func (t *Ticket) Status() vo.Status        { return t.status }
func (t *Ticket) TagIDs() []uint           { return shared.CopyIDs(t.tagIDs) }
func (t *Ticket) Subject() string          { return t.subject }
func (t *Ticket) Issue() string            { return t.issue }
func (t *Ticket) Date() time.Time          { return t.date }
func (t *Ticket) Updated() *time.Time      { return t.updated }
func (t *Ticket) ClosedDate() *time.Time   { return t.closedDate }
func (t *Ticket) IsDeleted() bool          { return t.deleted }
func (t *Ticket) Subscribers() []uint      { return shared.CopyIDs(t.subscribers) }
func (t *Ticket) Version() int             { return t.version }
func (t *Ticket) Comments() []*Comment     { return append([]*Comment(nil), t.comments...) }
func (t *Ticket) Notes() []*Comment        { return append([]*Comment(nil), t.notes...) }
func (t *Ticket) History() []*HistoryEntry { return append([]*HistoryEntry(nil), t.history...) }

func (t *Ticket) Attachments() []*Attachment {
	return append([]*Attachment(nil), t.attachments...)
}

// LastActivity is the updated timestamp, or the creation date when the
// ticket was never updated.
func (t *Ticket) LastActivity() time.Time {
	if t.updated != nil && !t.updated.IsZero() {
		return *t.updated
	}
	return t.date
}

// IsOverdue reports whether an open ticket has been idle longer than threshold.
func (t *Ticket) IsOverdue(now time.Time, threshold time.Duration) bool {
	if t.deleted || !t.status.IsOpen() {
		return false
	}
	return now.After(t.LastActivity().Add(threshold))
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// BumpVersion is called by the repository after a successful update.
func (t *Ticket) BumpVersion() {
	t.version++
}

func (t *Ticket) SetOrganization(orgID *uint) {
	t.orgID = orgID
}

func (t *Ticket) record(actorID uint, action, description string, at time.Time) {
	t.history = append(t.history, newHistoryEntry(action, description, actorID, at))
}

func (t *Ticket) touch(at time.Time) {
	t.updated = &at
}

// SetStatus moves the ticket to any status. Closed stamps closedDate, every
// other status clears it.
func (t *Ticket) SetStatus(actorID uint, status vo.Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	now := biztime.NowUTC()
	if status.IsClosed() {
		t.closedDate = &now
	} else {
		t.closedDate = nil
	}
	t.status = status
	t.record(actorID, fmt.Sprintf("%s%d", ActionStatusPrefix, status.Int()),
		"Ticket Status set to: "+status.Label(), now)
	return nil
}

// SetAssignee checks the user's capability before touching the ticket, so a
// rejected user leaves no trace.
func (t *Ticket) SetAssignee(actorID uint, user *UserRef, perms PermissionChecker) error {
	if user == nil || user.ID == 0 {
		return ErrInvalidUser
	}
	if perms == nil || !perms.CanDo(user.Role, CapabilityAssignee) {
		return ErrAssigneeNotPermitted
	}

	assignee := user.ID
	t.assigneeID = &assignee
	t.record(actorID, ActionSetAssignee, user.Fullname+" was set as assignee", biztime.NowUTC())
	return nil
}

func (t *Ticket) ClearAssignee(actorID uint) {
	t.assigneeID = nil
	t.record(actorID, ActionSetAssignee, "Assignee was cleared", biztime.NowUTC())
}

func (t *Ticket) SetType(actorID uint, ticketType *NamedRef) error {
	if ticketType == nil || ticketType.ID == 0 {
		return ErrInvalidType
	}
	t.typeID = ticketType.ID
	t.record(actorID, ActionSetType, "Ticket type set to: "+ticketType.Name, biztime.NowUTC())
	return nil
}

func (t *Ticket) SetPriority(actorID uint, priority vo.Priority) error {
	if !priority.IsValid() {
		return ErrInvalidPriority
	}
	t.priority = priority
	t.record(actorID, ActionSetPriority, "Ticket Priority set to: "+priority.Label(), biztime.NowUTC())
	return nil
}

func (t *Ticket) SetGroup(actorID uint, group *NamedRef) error {
	if group == nil || group.ID == 0 {
		return ErrInvalidGroup
	}
	t.groupID = group.ID
	t.record(actorID, ActionSetGroup, "Ticket Group set to: "+group.Name, biztime.NowUTC())
	return nil
}

func (t *Ticket) SetSystem(actorID uint, system *NamedRef) error {
	if system == nil || system.ID == 0 {
		return ErrInvalidSystem
	}
	id := system.ID
	t.systemID = &id
	t.record(actorID, ActionSetSystem, "Ticket System set to: "+system.Name, biztime.NowUTC())
	return nil
}

func (t *Ticket) ClearSystem(actorID uint) {
	t.systemID = nil
	t.record(actorID, ActionSetSystem, "System was cleared", biztime.NowUTC())
}

// SetIssue replaces the issue body. html is expected to be sanitized already.
func (t *Ticket) SetIssue(actorID uint, html string) error {
	if strings.TrimSpace(html) == "" {
		return ErrEmptyIssue
	}
	now := biztime.NowUTC()
	t.issue = html
	t.touch(now)
	t.record(actorID, ActionUpdateIssue, "Ticket Issue was updated.", now)
	return nil
}

func (t *Ticket) SetSubject(actorID uint, subject string) error {
	if strings.TrimSpace(subject) == "" {
		return ErrEmptySubject
	}
	now := biztime.NowUTC()
	t.subject = subject
	t.touch(now)
	t.record(actorID, ActionUpdateSubject, "Ticket Subject was updated.", now)
	return nil
}

func (t *Ticket) AddComment(actorID uint, body string) (*Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyComment
	}
	commentID, err := id.NewCommentID()
	if err != nil {
		return nil, err
	}
	c := newComment(commentID, KindComment, actorID, body)
	t.comments = append(t.comments, c)
	t.touch(c.date)
	t.record(actorID, ActionCommentAdded, "Comment was added", c.date)
	return c, nil
}

func (t *Ticket) UpdateComment(actorID uint, commentID, body string) error {
	c := findComment(t.comments, commentID)
	if c == nil {
		return ErrInvalidComment
	}
	if strings.TrimSpace(body) == "" {
		return ErrEmptyComment
	}
	now := biztime.NowUTC()
	c.body = body
	t.touch(now)
	t.record(actorID, ActionCommentUpdated, "Comment was updated: "+commentID, now)
	return nil
}

// RemoveComment records the deletion even when the id is unknown.
func (t *Ticket) RemoveComment(actorID uint, commentID string) {
	now := biztime.NowUTC()
	t.comments = rejectComment(t.comments, commentID)
	t.touch(now)
	t.record(actorID, ActionCommentDeleted, "Comment was deleted: "+commentID, now)
}

func (t *Ticket) AddNote(actorID uint, body string) (*Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyNote
	}
	noteID, err := id.NewNoteID()
	if err != nil {
		return nil, err
	}
	n := newComment(noteID, KindNote, actorID, body)
	t.notes = append(t.notes, n)
	t.touch(n.date)
	t.record(actorID, ActionNoteAdded, "Note was added", n.date)
	return n, nil
}

func (t *Ticket) UpdateNote(actorID uint, noteID, body string) error {
	n := findComment(t.notes, noteID)
	if n == nil {
		return ErrInvalidNote
	}
	if strings.TrimSpace(body) == "" {
		return ErrEmptyNote
	}
	now := biztime.NowUTC()
	n.body = body
	t.touch(now)
	t.record(actorID, ActionNoteUpdated, "Note was updated: "+noteID, now)
	return nil
}

func (t *Ticket) RemoveNote(actorID uint, noteID string) {
	now := biztime.NowUTC()
	t.notes = rejectComment(t.notes, noteID)
	t.touch(now)
	t.record(actorID, ActionNoteDeleted, "Note was deleted: "+noteID, now)
}

func (t *Ticket) AddAttachment(actorID uint, name, path, mimeType string) (*Attachment, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(path) == "" {
		return nil, ErrInvalidAttachment
	}
	attachmentID, err := id.NewAttachmentID()
	if err != nil {
		return nil, err
	}
	a := newAttachment(attachmentID, actorID, name, path, mimeType)
	t.attachments = append(t.attachments, a)
	t.record(actorID, ActionAttachmentAdded, "Attachment was added: "+name, a.date)
	return a, nil
}

// GetAttachment returns nil when the id is unknown.
func (t *Ticket) GetAttachment(attachmentID string) *Attachment {
	for _, a := range t.attachments {
		if a.id == attachmentID {
			return a
		}
	}
	return nil
}

// RemoveAttachment is a no-op without history when the id is unknown.
func (t *Ticket) RemoveAttachment(actorID uint, attachmentID string) bool {
	a := t.GetAttachment(attachmentID)
	if a == nil {
		return false
	}
	kept := make([]*Attachment, 0, len(t.attachments)-1)
	for _, existing := range t.attachments {
		if existing.id != attachmentID {
			kept = append(kept, existing)
		}
	}
	t.attachments = kept
	t.record(actorID, ActionAttachmentDeleted, "Attachment was deleted: "+a.name, biztime.NowUTC())
	return true
}

// AddSubscriber and RemoveSubscriber are idempotent and leave no history.
func (t *Ticket) AddSubscriber(userID uint) bool {
	var added bool
	t.subscribers, added = shared.AddID(t.subscribers, userID)
	return added
}

func (t *Ticket) RemoveSubscriber(userID uint) bool {
	var removed bool
	t.subscribers, removed = shared.RemoveID(t.subscribers, userID)
	return removed
}

func (t *Ticket) SetTags(actorID uint, tagIDs []uint) {
	t.tagIDs = dedupe(tagIDs)
	t.record(actorID, ActionSetTags, "Ticket Tags updated.", biztime.NowUTC())
}

func (t *Ticket) SoftDelete(actorID uint) {
	t.deleted = true
	t.record(actorID, ActionDeleted, "Ticket was deleted.", biztime.NowUTC())
}

func (t *Ticket) Restore(actorID uint) {
	t.deleted = false
	t.record(actorID, ActionRestored, "Ticket was restored.", biztime.NowUTC())
}

// CommentsAndNotes merges both lists ordered by date.
func (t *Ticket) CommentsAndNotes() []*Comment {
	merged := make([]*Comment, 0, len(t.comments)+len(t.notes))
	merged = append(merged, t.comments...)
	merged = append(merged, t.notes...)
	for i := 1; i < len(merged); i++ {
		for j := i; j > 0 && merged[j].date.Before(merged[j-1].date); j-- {
			merged[j], merged[j-1] = merged[j-1], merged[j]
		}
	}
	return merged
}

func findComment(list []*Comment, commentID string) *Comment {
	for _, c := range list {
		if c.id == commentID {
			return c
		}
	}
	return nil
}

func rejectComment(list []*Comment, commentID string) []*Comment {
	kept := make([]*Comment, 0, len(list))
	for _, c := range list {
		if c.id != commentID {
			kept = append(kept, c)
		}
	}
	return kept
}

func dedupe(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	for _, v := range ids {
		out, _ = shared.AddID(out, v)
	}
	return out
}
