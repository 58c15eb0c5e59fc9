package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/group"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/tag"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/domain/tickettype"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const (
	DefaultCountTimespanDays = 30
	DefaultTopGroups         = 5
)

type CountsQuery struct {
	Actor common.Actor
	// TimespanDays counts tickets dated within the last N days. Zero uses the
	// default.
	TimespanDays int
	Top          int
}

func (q CountsQuery) since(now time.Time) time.Time {
	days := q.TimespanDays
	if days <= 0 {
		days = DefaultCountTimespanDays
	}
	return biztime.WindowStartUTC(now, days)
}

// TicketCountsUseCase reports ticket counts per tag, per type and for the
// busiest groups.
type TicketCountsUseCase struct {
	repo   ticket.Repository
	groups group.Repository
	types  tickettype.Repository
	tags   tag.Repository
	perms  common.PermissionChecker
	logger logger.Interface
}

func NewTicketCountsUseCase(
	repo ticket.Repository,
	groups group.Repository,
	types tickettype.Repository,
	tags tag.Repository,
	perms common.PermissionChecker,
	logger logger.Interface,
) *TicketCountsUseCase {
	return &TicketCountsUseCase{
		repo:   repo,
		groups: groups,
		types:  types,
		tags:   tags,
		perms:  perms,
		logger: logger,
	}
}

func (uc *TicketCountsUseCase) ByTag(ctx context.Context, q CountsQuery) ([]dto.CountView, error) {
	uc.logger.Debugw("executing ticket counts by tag use case", "timespan", q.TimespanDays)
	if err := uc.authorize(q.Actor); err != nil {
		return nil, err
	}

	rows, err := uc.repo.CountByTag(ctx, q.since(biztime.NowUTC()))
	if err != nil {
		uc.logger.Errorw("failed to count tickets by tag", "error", err)
		return nil, err
	}
	tags, err := uc.tags.GetByIDs(ctx, countIDs(rows))
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(tags))
	for _, t := range tags {
		names[t.ID()] = t.Name()
	}
	return toCountViews(rows, names), nil
}

func (uc *TicketCountsUseCase) ByType(ctx context.Context, q CountsQuery) ([]dto.CountView, error) {
	uc.logger.Debugw("executing ticket counts by type use case", "timespan", q.TimespanDays)
	if err := uc.authorize(q.Actor); err != nil {
		return nil, err
	}

	rows, err := uc.repo.CountByType(ctx, q.since(biztime.NowUTC()))
	if err != nil {
		uc.logger.Errorw("failed to count tickets by type", "error", err)
		return nil, err
	}
	types, err := uc.types.GetByIDs(ctx, countIDs(rows))
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(types))
	for _, t := range types {
		names[t.ID()] = t.Name()
	}
	return toCountViews(rows, names), nil
}

func (uc *TicketCountsUseCase) TopGroups(ctx context.Context, q CountsQuery) ([]dto.CountView, error) {
	uc.logger.Debugw("executing top groups use case", "timespan", q.TimespanDays, "top", q.Top)
	if err := uc.authorize(q.Actor); err != nil {
		return nil, err
	}

	top := q.Top
	if top <= 0 {
		top = DefaultTopGroups
	}
	rows, err := uc.repo.TopGroups(ctx, q.since(biztime.NowUTC()), top)
	if err != nil {
		uc.logger.Errorw("failed to compute top groups", "error", err)
		return nil, err
	}
	groups, err := uc.groups.GetByIDs(ctx, countIDs(rows))
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(groups))
	for _, g := range groups {
		names[g.ID()] = g.Name()
	}
	return toCountViews(rows, names), nil
}

func (uc *TicketCountsUseCase) authorize(actor common.Actor) error {
	if !actor.Can(uc.perms, permission.CapReportsView) {
		return errors.NewForbiddenError("Not allowed to view reports")
	}
	return nil
}

func countIDs(rows []*ticket.Count) []uint {
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}

// toCountViews keeps the repository order. Rows whose reference no longer
// exists are dropped.
func toCountViews(rows []*ticket.Count, names map[uint]string) []dto.CountView {
	out := make([]dto.CountView, 0, len(rows))
	for _, r := range rows {
		name, ok := names[r.ID]
		if !ok {
			continue
		}
		out = append(out, dto.CountView{ID: r.ID, Name: name, Count: r.Count})
	}
	return out
}
