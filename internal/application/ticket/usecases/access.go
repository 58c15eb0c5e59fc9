package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/shared"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
)

// ticketAccess loads tickets the way every mutating use case needs them:
// by uid, not deleted, inside the caller's visible groups.
type ticketAccess struct {
	repo       ticket.Repository
	visibility *VisibilityResolver
}

func (a ticketAccess) load(ctx context.Context, actor common.Actor, uid int64) (*ticket.Ticket, error) {
	return a.loadWithDeleted(ctx, actor, uid, false)
}

// loadWithDeleted lets restore reach soft-deleted tickets.
func (a ticketAccess) loadWithDeleted(ctx context.Context, actor common.Actor, uid int64, allowDeleted bool) (*ticket.Ticket, error) {
	if uid <= 0 {
		return nil, apperrors.NewValidationError("Invalid ticket uid")
	}

	t, err := a.repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, toAppError(err)
	}
	if t.IsDeleted() && !allowDeleted {
		return nil, apperrors.NewNotFoundError("Ticket not found")
	}

	scope, err := a.visibility.Scope(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !shared.HasID(scope.GroupIDs, t.GroupID()) {
		// Out-of-scope tickets are indistinguishable from missing ones.
		return nil, apperrors.NewNotFoundError("Ticket not found")
	}
	return t, nil
}

func (a ticketAccess) save(ctx context.Context, t *ticket.Ticket) error {
	return toAppError(a.repo.Update(ctx, t))
}
