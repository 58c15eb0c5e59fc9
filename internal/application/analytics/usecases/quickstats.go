// Package usecases builds the quickStats ranking snapshot and serves it from
// the cache.
package usecases

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/infrastructure/cache"
	"github.com/orris-inc/helpdesk/internal/infrastructure/metrics"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const DefaultStatsWindowDays = 365

// NameCount is a ranked display name.
type NameCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type TicketCount struct {
	UID   int64 `json:"uid"`
	Count int   `json:"count"`
}

// QuickStats holds the rank-1 entry of each ranking. A field is nil when no
// ticket qualified.
type QuickStats struct {
	MostRequester    *NameCount   `json:"mostRequester,omitempty"`
	MostCommenter    *NameCount   `json:"mostCommenter,omitempty"`
	MostAssignee     *NameCount   `json:"mostAssignee,omitempty"`
	MostActiveTicket *TicketCount `json:"mostActiveTicket,omitempty"`
	GeneratedAt      time.Time    `json:"generatedAt"`
}

type QuickStatsUseCase struct {
	tickets    ticket.Repository
	users      user.Repository
	cache      cache.Cache
	perms      common.PermissionChecker
	windowDays int
	logger     logger.Interface
}

// NewQuickStatsUseCase accepts a nil cache; Get then rebuilds every time.
func NewQuickStatsUseCase(
	tickets ticket.Repository,
	users user.Repository,
	c cache.Cache,
	perms common.PermissionChecker,
	windowDays int,
	logger logger.Interface,
) *QuickStatsUseCase {
	if windowDays <= 0 {
		windowDays = DefaultStatsWindowDays
	}
	return &QuickStatsUseCase{
		tickets:    tickets,
		users:      users,
		cache:      c,
		perms:      perms,
		windowDays: windowDays,
		logger:     logger,
	}
}

// Get serves the cached snapshot, rebuilding it on a miss.
func (uc *QuickStatsUseCase) Get(ctx context.Context, actor common.Actor) (*QuickStats, error) {
	if !actor.Can(uc.perms, permission.CapReportsView) {
		return nil, apperrors.NewForbiddenError("Not allowed to view reports")
	}

	if uc.cache != nil {
		var cached QuickStats
		hit, err := uc.cache.Get(ctx, cache.QuickStatsKey, &cached)
		if err != nil {
			uc.logger.Warnw("quick stats cache read failed, rebuilding", "error", err)
		}
		if hit {
			return &cached, nil
		}
	}
	return uc.Rebuild(ctx)
}

// Rebuild recomputes the snapshot and stores it. Nothing is stored when
// loading fails.
func (uc *QuickStatsUseCase) Rebuild(ctx context.Context) (*QuickStats, error) {
	start := time.Now()
	uc.logger.Infow("rebuilding quick stats", "window_days", uc.windowDays)

	stats, err := uc.compute(ctx)
	metrics.StatsRebuildDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StatsRebuilds.WithLabelValues("error").Inc()
		uc.logger.Errorw("quick stats rebuild failed", "error", err)
		return nil, err
	}
	metrics.StatsRebuilds.WithLabelValues("success").Inc()

	if uc.cache != nil {
		// No TTL: the snapshot lives until the next rebuild replaces it.
		if err := uc.cache.Set(ctx, cache.QuickStatsKey, stats, 0); err != nil {
			uc.logger.Warnw("failed to store quick stats", "error", err)
		}
	}

	uc.logger.Infow("quick stats rebuilt", "duration", time.Since(start))
	return stats, nil
}

// RebuildStats adapts Rebuild for the scheduler.
func (uc *QuickStatsUseCase) RebuildStats(ctx context.Context) error {
	_, err := uc.Rebuild(ctx)
	return err
}

func (uc *QuickStatsUseCase) compute(ctx context.Context) (*QuickStats, error) {
	since := biztime.WindowStartUTC(biztime.NowUTC(), uc.windowDays)
	sources, err := uc.tickets.ListForStats(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets for stats: %w", err)
	}

	names, err := uc.resolveNames(ctx, sources)
	if err != nil {
		return nil, err
	}

	stats := Rank(sources, names)
	stats.GeneratedAt = biztime.NowUTC()
	return stats, nil
}

func (uc *QuickStatsUseCase) resolveNames(ctx context.Context, sources []*ticket.StatsSource) (map[uint]string, error) {
	seen := make(map[uint]struct{})
	ids := make([]uint, 0)
	add := func(id uint) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, s := range sources {
		add(s.OwnerID)
		if s.AssigneeID != nil {
			add(*s.AssigneeID)
		}
		for _, id := range s.CommenterIDs {
			add(id)
		}
	}
	if len(ids) == 0 {
		return map[uint]string{}, nil
	}

	users, err := uc.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user names for stats: %w", err)
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID()] = u.Fullname()
	}
	return names, nil
}

// Rank computes the four rankings over sources in load order. Users missing
// from names are not counted. Ties go to the first encountered entry.
func Rank(sources []*ticket.StatsSource, names map[uint]string) *QuickStats {
	requesters := newTally()
	commenters := newTally()
	assignees := newTally()
	var active *TicketCount

	for _, s := range sources {
		requesters.add(names[s.OwnerID])
		for _, id := range s.CommenterIDs {
			commenters.add(names[id])
		}
		if s.AssigneeID != nil {
			assignees.add(names[*s.AssigneeID])
		}
		if active == nil || s.HistoryCount > active.Count {
			active = &TicketCount{UID: s.UID, Count: s.HistoryCount}
		}
	}

	return &QuickStats{
		MostRequester:    requesters.top(),
		MostCommenter:    commenters.top(),
		MostAssignee:     assignees.top(),
		MostActiveTicket: active,
	}
}

// tally counts names and remembers first-seen order.
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(name string) {
	if name == "" {
		return
	}
	if _, ok := t.counts[name]; !ok {
		t.order = append(t.order, name)
	}
	t.counts[name]++
}

func (t *tally) ranked() []NameCount {
	out := make([]NameCount, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, NameCount{Name: name, Value: t.counts[name]})
	}
	slices.SortStableFunc(out, func(a, b NameCount) int {
		return cmp.Compare(b.Value, a.Value)
	})
	return out
}

func (t *tally) top() *NameCount {
	ranked := t.ranked()
	if len(ranked) == 0 {
		return nil
	}
	return &ranked[0]
}
