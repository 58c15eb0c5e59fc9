package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/infrastructure/cache"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const (
	DefaultOverdueThreshold = 48 * time.Hour
	DefaultOverdueTTL       = 600 * time.Second
)

type OverdueQuery struct {
	Actor common.Actor
}

// OverdueTicketsUseCase lists Open tickets idle longer than the threshold.
// Results are cached per group set and are not invalidated by mutations, so
// they can be up to one TTL stale.
type OverdueTicketsUseCase struct {
	repo       ticket.Repository
	visibility *VisibilityResolver
	cache      cache.Cache
	perms      common.PermissionChecker
	threshold  time.Duration
	ttl        time.Duration
	logger     logger.Interface
}

// NewOverdueTicketsUseCase accepts a nil cache, in which case every call hits
// the repository.
func NewOverdueTicketsUseCase(
	repo ticket.Repository,
	visibility *VisibilityResolver,
	c cache.Cache,
	perms common.PermissionChecker,
	threshold time.Duration,
	ttl time.Duration,
	logger logger.Interface,
) *OverdueTicketsUseCase {
	if threshold <= 0 {
		threshold = DefaultOverdueThreshold
	}
	if ttl <= 0 {
		ttl = DefaultOverdueTTL
	}
	return &OverdueTicketsUseCase{
		repo:       repo,
		visibility: visibility,
		cache:      c,
		perms:      perms,
		threshold:  threshold,
		ttl:        ttl,
		logger:     logger,
	}
}

func (uc *OverdueTicketsUseCase) Execute(ctx context.Context, q OverdueQuery) ([]dto.OverdueView, error) {
	uc.logger.Debugw("executing overdue tickets use case", "user_id", q.Actor.ID)

	if !q.Actor.Can(uc.perms, permission.CapTicketView) {
		return nil, errors.NewForbiddenError("Not allowed to view tickets")
	}

	scope, err := uc.visibility.Scope(ctx, q.Actor)
	if err != nil {
		return nil, err
	}
	return uc.ForGroups(ctx, scope.GroupIDs)
}

// ForGroups is the read-through core, keyed by the group set alone.
func (uc *OverdueTicketsUseCase) ForGroups(ctx context.Context, groupIDs []uint) ([]dto.OverdueView, error) {
	if len(groupIDs) == 0 {
		return []dto.OverdueView{}, nil
	}
	key := cache.OverdueKey(groupIDs)

	if uc.cache != nil {
		var cached []dto.OverdueView
		found, err := uc.cache.Get(ctx, key, &cached)
		if err != nil {
			uc.logger.Warnw("overdue cache read failed", "key", key, "error", err)
		} else if found {
			return cached, nil
		}
	}

	cutoff := biztime.NowUTC().Add(-uc.threshold)
	rows, err := uc.repo.ListOverdue(ctx, groupIDs, cutoff)
	if err != nil {
		uc.logger.Errorw("failed to list overdue tickets", "error", err)
		return nil, err
	}
	views := dto.ToOverdueViews(rows)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, views, uc.ttl); err != nil {
			uc.logger.Warnw("overdue cache write failed", "key", key, "error", err)
		}
	}
	return views, nil
}
