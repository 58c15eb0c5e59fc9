package ticket

import (
	"context"
	"time"

	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/query"
	"github.com/orris-inc/helpdesk/internal/shared/utils/setutil"
)

// Repository persists tickets. Every read that takes a Scope filters out
// deleted tickets and tickets outside the scope's groups.
type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	// Update saves t only if its stored version still matches t.Version(),
	// returning ErrVersionConflict otherwise. Only new history entries are
	// inserted.
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	GetByUID(ctx context.Context, uid int64) (*Ticket, error)

	List(ctx context.Context, scope Scope, filter Filter) ([]*Ticket, error)
	Count(ctx context.Context, scope Scope, filter Filter) (int64, error)
	// ListAll returns every visible ticket ordered by status ascending.
	ListAll(ctx context.Context, scope Scope) ([]*Ticket, error)
	Search(ctx context.Context, scope Scope, field SearchField, term string, limit int) ([]*Ticket, error)

	ListOverdue(ctx context.Context, groupIDs []uint, cutoff time.Time) ([]*OverdueSummary, error)
	// ListForStats projects non-deleted tickets dated on or after since,
	// oldest first.
	ListForStats(ctx context.Context, since time.Time) ([]*StatsSource, error)

	CountByTag(ctx context.Context, since time.Time) ([]*Count, error)
	CountByType(ctx context.Context, since time.Time) ([]*Count, error)
	TopGroups(ctx context.Context, since time.Time, top int) ([]*Count, error)
	CountByGroup(ctx context.Context, groupID uint) (int64, error)

	// ReassignType moves every ticket of type from to type to and reports
	// how many rows changed.
	ReassignType(ctx context.Context, from, to uint) (int64, error)
}

// Scope is the set of groups a caller may see.
type Scope struct {
	GroupIDs []uint
}

// Effective narrows the scope by an explicit group filter. The filter can
// only shrink the visible set.
func (s Scope) Effective(requested []uint) []uint {
	visible := setutil.NewUintSet(s.GroupIDs...)
	if len(requested) == 0 {
		return visible.Sorted()
	}
	return visible.Intersect(requested)
}

// Filter holds optional list criteria combined with AND.
type Filter struct {
	Statuses    []vo.Status
	Priorities  []vo.Priority
	TypeIDs     []uint
	TagIDs      []uint
	AssigneeIDs []uint
	OwnerIDs    []uint
	GroupIDs    []uint
	SystemIDs   []uint
	Text        string
	UID         *int64
	DateStart   *time.Time
	DateEnd     *time.Time
	// MatchNone is set when the criteria contradict each other.
	MatchNone bool
	query.PageFilter
}

// DefaultDateStart is the lower bound applied when a filter has no start date.
var DefaultDateStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// DateRange returns the filter's date bounds with defaults applied.
func (f Filter) DateRange(now time.Time) (time.Time, time.Time) {
	start, end := DefaultDateStart, now
	if f.DateStart != nil {
		start = *f.DateStart
	}
	if f.DateEnd != nil {
		end = *f.DateEnd
	}
	return start, end
}

// SearchField selects which column a search sub-query matches.
type SearchField string

const (
	SearchUID     SearchField = "uid"
	SearchSubject SearchField = "subject"
	SearchIssue   SearchField = "issue"
)

// OverdueSummary is the projection returned for overdue tickets.
type OverdueSummary struct {
	ID      uint
	UID     int64
	Subject string
	Updated time.Time
}

// StatsSource is the per-ticket projection the quickStats rebuild consumes.
// CommenterIDs holds one entry per comment, notes excluded.
type StatsSource struct {
	UID          int64
	OwnerID      uint
	AssigneeID   *uint
	CommenterIDs []uint
	HistoryCount int
}

// Count is an aggregate row keyed by a referenced entity id.
type Count struct {
	ID    uint
	Count int64
}
