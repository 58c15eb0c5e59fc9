package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/infrastructure/cache"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

func uptr(v uint) *uint { return &v }

var names = map[uint]string{1: "Alice", 2: "Bob", 3: "Carol"}

func TestRank_CountsAndTies(t *testing.T) {
	sources := []*ticket.StatsSource{
		{UID: 1, OwnerID: 2, CommenterIDs: []uint{3, 1}, HistoryCount: 2},
		{UID: 2, OwnerID: 1, AssigneeID: uptr(3), CommenterIDs: []uint{1}, HistoryCount: 5},
		{UID: 3, OwnerID: 1, AssigneeID: uptr(2), HistoryCount: 5},
		{UID: 4, OwnerID: 2, AssigneeID: uptr(2), HistoryCount: 1},
	}

	stats := Rank(sources, names)

	// Bob and Alice both own two tickets; Bob's came first.
	want := &QuickStats{
		MostRequester:    &NameCount{Name: "Bob", Value: 2},
		MostCommenter:    &NameCount{Name: "Alice", Value: 2},
		MostAssignee:     &NameCount{Name: "Bob", Value: 2},
		MostActiveTicket: &TicketCount{UID: 2, Count: 5},
	}
	if diff := cmp.Diff(want, stats, cmpopts.IgnoreFields(QuickStats{}, "GeneratedAt")); diff != "" {
		t.Errorf("Rank() mismatch (-want +got):\n%s", diff)
	}
}

func TestRank_Determinism(t *testing.T) {
	stats := Rank([]*ticket.StatsSource{{UID: 1, OwnerID: 1}, {UID: 2, OwnerID: 1}, {UID: 3, OwnerID: 2}}, names)
	assert.Equal(t, &NameCount{Name: "Alice", Value: 2}, stats.MostRequester)

	tie := Rank([]*ticket.StatsSource{{UID: 1, OwnerID: 2}, {UID: 2, OwnerID: 1}}, names)
	assert.Equal(t, "Bob", tie.MostRequester.Name)
}

func TestRank_EmptyOmitsFields(t *testing.T) {
	stats := Rank(nil, names)
	assert.Nil(t, stats.MostRequester)
	assert.Nil(t, stats.MostCommenter)
	assert.Nil(t, stats.MostAssignee)
	assert.Nil(t, stats.MostActiveTicket)

	noAssignee := Rank([]*ticket.StatsSource{{UID: 1, OwnerID: 1}}, names)
	assert.Nil(t, noAssignee.MostAssignee)
	assert.Nil(t, noAssignee.MostCommenter)
}

type mockTicketRepo struct {
	ticket.Repository
	sources []*ticket.StatsSource
	err     error
	since   time.Time
	calls   int
}

func (m *mockTicketRepo) ListForStats(_ context.Context, since time.Time) ([]*ticket.StatsSource, error) {
	m.calls++
	m.since = since
	return m.sources, m.err
}

type mockUserRepo struct {
	user.Repository
}

func (mockUserRepo) GetByIDs(_ context.Context, ids []uint) ([]*user.User, error) {
	out := []*user.User{}
	for _, id := range ids {
		if n, ok := names[id]; ok {
			u, err := user.ReconstructUser(id, n, n, nil, "user", time.Now())
			if err != nil {
				return nil, err
			}
			out = append(out, u)
		}
	}
	return out, nil
}

type mapCache struct {
	data map[string][]byte
	sets int
}

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.sets++
	c.data[key] = raw
	return nil
}

func (c *mapCache) Close() error { return nil }

type allowChecker bool

func (a allowChecker) CanDo(string, string) bool { return bool(a) }

var admin = common.Actor{ID: 1, Role: "admin"}

func TestQuickStatsUseCase_LazyRebuildThenCached(t *testing.T) {
	repo := &mockTicketRepo{sources: []*ticket.StatsSource{{UID: 7, OwnerID: 3, HistoryCount: 1}}}
	c := &mapCache{data: map[string][]byte{}}
	uc := NewQuickStatsUseCase(repo, mockUserRepo{}, c, allowChecker(true), 0, logger.NewDiscard())
	ctx := context.Background()

	first, err := uc.Get(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, "Carol", first.MostRequester.Name)
	assert.Contains(t, c.data, cache.QuickStatsKey)

	second, err := uc.Get(ctx, admin)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached snapshot differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, 1, repo.calls, "second read is served from cache")

	window := time.Since(repo.since)
	assert.InDelta(t, float64(DefaultStatsWindowDays), window.Hours()/24, 1.1)
}

func TestQuickStatsUseCase_FailedRebuildPublishesNothing(t *testing.T) {
	repo := &mockTicketRepo{err: errors.New("connection reset")}
	c := &mapCache{data: map[string][]byte{}}
	uc := NewQuickStatsUseCase(repo, mockUserRepo{}, c, allowChecker(true), 365, logger.NewDiscard())

	_, err := uc.Rebuild(context.Background())
	require.Error(t, err)
	assert.Zero(t, c.sets)
}

func TestQuickStatsUseCase_NilCacheAndPermission(t *testing.T) {
	repo := &mockTicketRepo{}
	uc := NewQuickStatsUseCase(repo, mockUserRepo{}, nil, allowChecker(true), 30, logger.NewDiscard())

	_, err := uc.Get(context.Background(), admin)
	require.NoError(t, err)
	_, err = uc.Get(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)

	denied := NewQuickStatsUseCase(repo, mockUserRepo{}, nil, allowChecker(false), 30, logger.NewDiscard())
	_, err = denied.Get(context.Background(), admin)
	assert.True(t, apperrors.IsForbiddenError(err))
}
