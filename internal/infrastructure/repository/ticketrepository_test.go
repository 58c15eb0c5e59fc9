package repository

import (
	"cmp"
	"context"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/query"
)

type allowAll struct{}

func (allowAll) CanDo(string, string) bool { return true }

func TestTicketRepository_CreateAndGet(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	tk, err := ticket.NewTicket(1001, 7, 3, 2, vo.PriorityUrgent, "Printer on fire", "<p>smoke</p>", []uint{5, 4})
	require.NoError(t, err)
	_, err = tk.AddComment(7, "any update?")
	require.NoError(t, err)
	_, err = tk.AddNote(9, "internal only")
	require.NoError(t, err)
	_, err = tk.AddAttachment(7, "photo.png", "/files/photo.png", "image/png")
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, tk))
	require.NotZero(t, tk.ID())
	for _, h := range tk.History() {
		assert.False(t, h.IsNew(), "history entries get ids on insert")
	}

	t.Run("by id", func(t *testing.T) {
		found, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(1001), found.UID())
		assert.Equal(t, vo.PriorityUrgent, found.Priority())
		assert.Equal(t, []uint{4, 5}, found.TagIDs())
		assert.Equal(t, []uint{7}, found.Subscribers())
		require.Len(t, found.Comments(), 1)
		require.Len(t, found.Notes(), 1)
		assert.True(t, found.Notes()[0].IsNote())
		require.Len(t, found.Attachments(), 1)
		assert.Equal(t, "photo.png", found.Attachments()[0].Name())
		assert.Len(t, found.History(), len(tk.History()))
		assert.Equal(t, 1, found.Version())
	})

	t.Run("by uid", func(t *testing.T) {
		found, err := repo.GetByUID(ctx, 1001)
		require.NoError(t, err)
		assert.Equal(t, tk.ID(), found.ID())
	})

	t.Run("missing", func(t *testing.T) {
		_, err := repo.GetByUID(ctx, 4242)
		assert.ErrorIs(t, err, ticket.ErrTicketNotFound)
	})

	t.Run("duplicate uid", func(t *testing.T) {
		dup := newTestTicket(t, 1001, 3, "again", "again")
		assert.Error(t, repo.Create(ctx, dup))
	})
}

func TestTicketRepository_UpdateAppendsHistoryOnly(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb, testLogger())
	ctx := context.Background()

	tk := newTestTicket(t, 1, 1, "subject", "issue")
	require.NoError(t, repo.Create(ctx, tk))

	loaded, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.SetStatus(2, vo.StatusClosed))
	require.NoError(t, loaded.SetAssignee(2, &ticket.UserRef{ID: 2, Fullname: "Agent Smith", Role: "support"}, allowAll{}))
	require.NoError(t, repo.Update(ctx, loaded))
	assert.Equal(t, 2, loaded.Version())

	var historyRows int64
	require.NoError(t, gdb.Model(&models.HistoryModel{}).Where("ticket_id = ?", tk.ID()).Count(&historyRows).Error)
	assert.Equal(t, int64(3), historyRows)

	again, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusClosed, again.Status())
	require.NotNil(t, again.ClosedDate())
	require.NotNil(t, again.AssigneeID())
	assert.Equal(t, uint(2), *again.AssigneeID())

	// Saving without changes inserts nothing new.
	require.NoError(t, repo.Update(ctx, again))
	require.NoError(t, gdb.Model(&models.HistoryModel{}).Where("ticket_id = ?", tk.ID()).Count(&historyRows).Error)
	assert.Equal(t, int64(3), historyRows)
}

func TestTicketRepository_VersionConflict(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	tk := newTestTicket(t, 1, 1, "subject", "issue")
	require.NoError(t, repo.Create(ctx, tk))

	first, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)

	require.NoError(t, first.SetPriority(1, vo.PriorityCritical))
	require.NoError(t, repo.Update(ctx, first))

	require.NoError(t, second.SetStatus(1, vo.StatusOpen))
	assert.ErrorIs(t, repo.Update(ctx, second), ticket.ErrVersionConflict)

	stored, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.PriorityCritical, stored.Priority())
	assert.Equal(t, vo.StatusNew, stored.Status())
}

func seedTickets(t *testing.T, repo *TicketRepository) {
	t.Helper()
	ctx := context.Background()

	fixtures := []struct {
		uid     int64
		group   uint
		subject string
		issue   string
		status  vo.Status
	}{
		{1, 1, "VPN broken", "<p>cannot connect</p>", vo.StatusOpen},
		{2, 1, "Laptop request", "<p>need a new laptop</p>", vo.StatusNew},
		{3, 2, "VPN slow", "<p>latency</p>", vo.StatusPending},
		{4, 2, "Printer", "<p>vpn unrelated</p>", vo.StatusClosed},
		{5, 3, "Hidden group", "<p>secret VPN</p>", vo.StatusOpen},
		{12, 1, "Badge", "<p>lost badge</p>", vo.StatusOpen},
	}
	for _, f := range fixtures {
		tk := newTestTicket(t, f.uid, f.group, f.subject, f.issue)
		if f.status != vo.StatusNew {
			require.NoError(t, tk.SetStatus(1, f.status))
		}
		require.NoError(t, repo.Create(ctx, tk))
	}
}

func uidsOf(list []*ticket.Ticket) []int64 {
	out := make([]int64, 0, len(list))
	for _, tk := range list {
		out = append(out, tk.UID())
	}
	return out
}

func TestTicketRepository_ListScopeAndFilters(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t), testLogger())
	seedTickets(t, repo)
	ctx := context.Background()
	scope := ticket.Scope{GroupIDs: []uint{1, 2}}
	unlimited := query.PageFilter{Limit: query.Unlimited}

	tests := []struct {
		name   string
		filter ticket.Filter
		want   []int64
	}{
		{"scope only", ticket.Filter{PageFilter: unlimited}, []int64{12, 4, 3, 2, 1}},
		{"explicit group narrows", ticket.Filter{GroupIDs: []uint{2}, PageFilter: unlimited}, []int64{4, 3}},
		{"group outside scope matches nothing", ticket.Filter{GroupIDs: []uint{3}, PageFilter: unlimited}, []int64{}},
		{"status", ticket.Filter{Statuses: []vo.Status{vo.StatusOpen}, PageFilter: unlimited}, []int64{12, 1}},
		{"text is case-insensitive over subject and issue", ticket.Filter{Text: "vpn", PageFilter: unlimited}, []int64{4, 3, 1}},
		{"uid", ticket.Filter{UID: int64Ptr(3), PageFilter: unlimited}, []int64{3}},
		{"first page", ticket.Filter{PageFilter: query.PageFilter{Page: 0, Limit: 2}}, []int64{12, 4}},
		{"second page", ticket.Filter{PageFilter: query.PageFilter{Page: 1, Limit: 2}}, []int64{3, 2}},
		{"zero limit falls back to default", ticket.Filter{}, []int64{12, 4, 3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := repo.List(ctx, scope, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, uidsOf(list))

			total, err := repo.Count(ctx, scope, tt.filter)
			require.NoError(t, err)
			if tt.filter.Limit > 0 {
				assert.GreaterOrEqual(t, total, int64(len(tt.want)))
			} else {
				assert.Equal(t, int64(len(tt.want)), total)
			}
		})
	}
}

func TestTicketRepository_PaginationRoundTrip(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t), testLogger())
	seedTickets(t, repo)
	ctx := context.Background()
	scope := ticket.Scope{GroupIDs: []uint{1, 2, 3}}

	all, err := repo.List(ctx, scope, ticket.Filter{PageFilter: query.PageFilter{Limit: query.Unlimited}})
	require.NoError(t, err)
	want := uidsOf(all)
	require.NotEmpty(t, want)
	assert.True(t, slices.IsSortedFunc(want, func(a, b int64) int { return cmp.Compare(b, a) }), "uids descend")

	total, err := repo.Count(ctx, scope, ticket.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(len(want)), total)

	for _, limit := range []int{1, 3, 4, len(want), len(want) + 1} {
		var got []int64
		for page := 0; page*limit <= len(want); page++ {
			list, err := repo.List(ctx, scope, ticket.Filter{PageFilter: query.PageFilter{Page: page, Limit: limit}})
			require.NoError(t, err)
			got = append(got, uidsOf(list)...)

			prefix := want[:min((page+1)*limit, len(want))]
			require.Equal(t, prefix, got, "limit %d, pages 0..%d", limit, page)
		}
		assert.Equal(t, want, got, "limit %d", limit)
	}
}

func TestTicketRepository_DeletedAreInvisible(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t), testLogger())
	seedTickets(t, repo)
	ctx := context.Background()

	tk, err := repo.GetByUID(ctx, 2)
	require.NoError(t, err)
	tk.SoftDelete(1)
	require.NoError(t, repo.Update(ctx, tk))

	scope := ticket.Scope{GroupIDs: []uint{1}}
	list, err := repo.List(ctx, scope, ticket.Filter{PageFilter: query.PageFilter{Limit: query.Unlimited}})
	require.NoError(t, err)
	assert.Equal(t, []int64{12, 1}, uidsOf(list))

	all, err := repo.ListAll(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, []int64{12, 1}, uidsOf(all))

	stillThere, err := repo.GetByUID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, stillThere.IsDeleted())
}

func TestTicketRepository_ListAllSortsByStatus(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t), testLogger())
	seedTickets(t, repo)

	all, err := repo.ListAll(context.Background(), ticket.Scope{GroupIDs: []uint{1, 2}})
	require.NoError(t, err)

	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Status().Int(), all[i].Status().Int())
	}
}

func TestTicketRepository_Search(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t), testLogger())
	seedTickets(t, repo)
	ctx := context.Background()
	scope := ticket.Scope{GroupIDs: []uint{1, 2}}

	bySubject, err := repo.Search(ctx, scope, ticket.SearchSubject, "VPN", 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, uidsOf(bySubject))

	byIssue, err := repo.Search(ctx, scope, ticket.SearchIssue, "vpn", 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, uidsOf(byIssue))

	byUID, err := repo.Search(ctx, scope, ticket.SearchUID, "1", 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{12, 1}, uidsOf(byUID))

	limited, err := repo.Search(ctx, scope, ticket.SearchUID, "1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	wildcard, err := repo.Search(ctx, scope, ticket.SearchSubject, "%", 10)
	require.NoError(t, err)
	assert.Empty(t, wildcard)
}

func TestTicketRepository_ListOverdue(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb, testLogger())
	seedTickets(t, repo)
	ctx := context.Background()

	now := time.Now().UTC()
	old := now.Add(-72 * time.Hour).UnixMilli()
	recent := now.Add(-1 * time.Hour).UnixMilli()

	// uid 1: open, never updated, created long ago.
	require.NoError(t, gdb.Model(&models.TicketModel{}).Where("uid = ?", 1).
		Updates(map[string]interface{}{"date": old, "updated": nil}).Error)
	// uid 12: open, old creation but recent activity.
	require.NoError(t, gdb.Model(&models.TicketModel{}).Where("uid = ?", 12).
		Updates(map[string]interface{}{"date": old, "updated": recent}).Error)
	// uid 3: pending and stale, not open.
	require.NoError(t, gdb.Model(&models.TicketModel{}).Where("uid = ?", 3).
		Updates(map[string]interface{}{"date": old, "updated": old}).Error)
	// uid 5: open and stale but in group 3.
	require.NoError(t, gdb.Model(&models.TicketModel{}).Where("uid = ?", 5).
		Updates(map[string]interface{}{"date": old, "updated": old}).Error)

	cutoff := now.Add(-48 * time.Hour)
	list, err := repo.ListOverdue(ctx, []uint{1, 2}, cutoff)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].UID)
	assert.Equal(t, "VPN broken", list[0].Subject)
	assert.Equal(t, old, list[0].Updated.UnixMilli())

	none, err := repo.ListOverdue(ctx, nil, cutoff)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTicketRepository_Aggregates(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb, testLogger())
	ctx := context.Background()

	for i, row := range []struct {
		group uint
		typ   uint
		tags  []uint
	}{
		{1, 1, []uint{10}},
		{1, 2, []uint{10, 11}},
		{2, 2, []uint{11}},
		{2, 2, nil},
		{3, 1, []uint{10}},
	} {
		tk, err := ticket.NewTicket(int64(i+1), 1, row.group, row.typ, vo.PriorityNormal, "s", "i", row.tags)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, tk))
	}

	since := time.Now().UTC().Add(-time.Hour)

	byTag, err := repo.CountByTag(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, []*ticket.Count{{ID: 10, Count: 3}, {ID: 11, Count: 2}}, byTag)

	byType, err := repo.CountByType(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, []*ticket.Count{{ID: 2, Count: 3}, {ID: 1, Count: 2}}, byType)

	top, err := repo.TopGroups(ctx, since, 2)
	require.NoError(t, err)
	assert.Equal(t, []*ticket.Count{{ID: 1, Count: 2}, {ID: 2, Count: 2}}, top)

	inGroup, err := repo.CountByGroup(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), inGroup)

	future, err := repo.CountByType(ctx, time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, future)
}

func TestTicketRepository_ReassignType(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb, testLogger())
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		typeID := uint(1)
		if i == 3 {
			typeID = 2
		}
		tk, err := ticket.NewTicket(int64(i), 1, 1, typeID, vo.PriorityNormal, "s", "i", nil)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, tk))
	}

	moved, err := repo.ReassignType(ctx, 1, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(2), moved)

	var remaining int64
	require.NoError(t, gdb.Model(&models.TicketModel{}).Where("type_id = ?", 1).Count(&remaining).Error)
	assert.Zero(t, remaining)

	tk, err := repo.GetByUID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(9), tk.TypeID())
	assert.Equal(t, 2, tk.Version())
}

func TestTicketRepository_ListForStats(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb, testLogger())
	ctx := context.Background()

	a := newTestTicket(t, 1, 1, "a", "a")
	_, err := a.AddComment(5, "c1")
	require.NoError(t, err)
	_, err = a.AddComment(6, "c2")
	require.NoError(t, err)
	_, err = a.AddNote(7, "note is not a comment")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, a))

	b := newTestTicket(t, 2, 1, "b", "b")
	require.NoError(t, repo.Create(ctx, b))

	old := newTestTicket(t, 3, 1, "old", "old")
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, gdb.Model(&models.TicketModel{}).Where("uid = ?", 3).
		Update("date", time.Now().AddDate(-2, 0, 0).UnixMilli()).Error)

	rows, err := repo.ListForStats(ctx, time.Now().UTC().AddDate(-1, 0, 0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].UID)
	assert.ElementsMatch(t, []uint{5, 6}, rows[0].CommenterIDs)
	assert.Equal(t, len(a.History()), rows[0].HistoryCount)
	assert.Empty(t, rows[1].CommenterIDs)
}

func int64Ptr(v int64) *int64 {
	return &v
}
