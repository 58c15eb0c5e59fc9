package usecases

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/infrastructure/metrics"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// searchOrder is the merge order of the three sub-queries.
var searchOrder = []ticket.SearchField{
	ticket.SearchUID,
	ticket.SearchSubject,
	ticket.SearchIssue,
}

type SearchTicketsQuery struct {
	Actor common.Actor
	Term  string
	// Limit caps each sub-query. Zero means no cap.
	Limit int
}

type SearchTicketsUseCase struct {
	repo       ticket.Repository
	visibility *VisibilityResolver
	views      *ViewBuilder
	perms      common.PermissionChecker
	logger     logger.Interface
}

func NewSearchTicketsUseCase(
	repo ticket.Repository,
	visibility *VisibilityResolver,
	views *ViewBuilder,
	perms common.PermissionChecker,
	logger logger.Interface,
) *SearchTicketsUseCase {
	return &SearchTicketsUseCase{
		repo:       repo,
		visibility: visibility,
		views:      views,
		perms:      perms,
		logger:     logger,
	}
}

func (uc *SearchTicketsUseCase) Execute(ctx context.Context, q SearchTicketsQuery) ([]*dto.TicketView, error) {
	uc.logger.Debugw("executing search tickets use case", "user_id", q.Actor.ID, "term", q.Term)

	if !q.Actor.Can(uc.perms, permission.CapTicketView) {
		return nil, errors.NewForbiddenError("Not allowed to view tickets")
	}
	term := strings.TrimSpace(q.Term)
	if term == "" {
		return nil, errors.NewValidationError("Search term is required")
	}

	scope, err := uc.visibility.Scope(ctx, q.Actor)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tickets, err := uc.search(ctx, scope, term, q.Limit)
	metrics.TicketSearchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		uc.logger.Errorw("failed to search tickets", "term", term, "error", err)
		return nil, err
	}

	return uc.views.Build(ctx, q.Actor, tickets)
}

// search runs one sub-query per field concurrently and merges the results in
// field order, keeping the first occurrence of each ticket.
func (uc *SearchTicketsUseCase) search(ctx context.Context, scope ticket.Scope, term string, limit int) ([]*ticket.Ticket, error) {
	results := make([][]*ticket.Ticket, len(searchOrder))

	g, gctx := errgroup.WithContext(ctx)
	for i, field := range searchOrder {
		g.Go(func() error {
			found, err := uc.repo.Search(gctx, scope, field, term, limit)
			if err != nil {
				return err
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mergeUnique(results...), nil
}

func mergeUnique(lists ...[]*ticket.Ticket) []*ticket.Ticket {
	seen := make(map[int64]struct{})
	merged := []*ticket.Ticket{}
	for _, list := range lists {
		for _, t := range list {
			if _, ok := seen[t.UID()]; ok {
				continue
			}
			seen[t.UID()] = struct{}{}
			merged = append(merged, t)
		}
	}
	return merged
}
