package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/group"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/utils/setutil"
)

// VisibilityResolver computes the groups a caller may see: the groups they
// belong to, plus every public group when their role holds ticket:public.
type VisibilityResolver struct {
	groups group.Repository
	perms  common.PermissionChecker
}

func NewVisibilityResolver(groups group.Repository, perms common.PermissionChecker) *VisibilityResolver {
	return &VisibilityResolver{groups: groups, perms: perms}
}

func (r *VisibilityResolver) Scope(ctx context.Context, actor common.Actor) (ticket.Scope, error) {
	member, err := r.groups.MemberGroupIDs(ctx, actor.ID)
	if err != nil {
		return ticket.Scope{}, fmt.Errorf("failed to load member groups: %w", err)
	}
	visible := setutil.NewUintSet(member...)

	if actor.Can(r.perms, permission.CapTicketPublic) {
		public, err := r.groups.PublicGroupIDs(ctx)
		if err != nil {
			return ticket.Scope{}, fmt.Errorf("failed to load public groups: %w", err)
		}
		visible.AddAll(public)
	}

	return ticket.Scope{GroupIDs: visible.Sorted()}, nil
}
