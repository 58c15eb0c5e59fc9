// Package usecases manages ticket groups and their membership.
package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/group"
	"github.com/orris-inc/helpdesk/internal/domain/organization"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/shared"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type GroupView struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Members    []uint `json:"members"`
	SendMailTo []uint `json:"sendMailTo"`
	Public     bool   `json:"public"`
	OrgID      *uint  `json:"organization,omitempty"`
}

func toView(g *group.Group) *GroupView {
	return &GroupView{
		ID:         g.ID(),
		Name:       g.Name(),
		Members:    g.Members(),
		SendMailTo: g.SendMailTo(),
		Public:     g.IsPublic(),
		OrgID:      g.OrgID(),
	}
}

// ScopeResolver yields the group ids a caller may see.
type ScopeResolver interface {
	Scope(ctx context.Context, actor common.Actor) (ticket.Scope, error)
}

type CreateGroupCommand struct {
	Actor   common.Actor
	Name    string
	OrgID   *uint
	Members []uint
	Public  bool
}

// MemberCommand adds or removes one user.
type MemberCommand struct {
	Actor   common.Actor
	GroupID uint
	UserID  uint
	Remove  bool
}

type UpdateGroupCommand struct {
	Actor      common.Actor
	GroupID    uint
	Name       *string
	SendMailTo *[]uint
	Public     *bool
}

type GroupUseCase struct {
	groups  group.Repository
	users   user.Repository
	orgs    organization.Repository
	tickets ticket.Repository
	scope   ScopeResolver
	perms   common.PermissionChecker
	logger  logger.Interface
}

func NewGroupUseCase(
	groups group.Repository,
	users user.Repository,
	orgs organization.Repository,
	tickets ticket.Repository,
	scope ScopeResolver,
	perms common.PermissionChecker,
	logger logger.Interface,
) *GroupUseCase {
	return &GroupUseCase{
		groups:  groups,
		users:   users,
		orgs:    orgs,
		tickets: tickets,
		scope:   scope,
		perms:   perms,
		logger:  logger,
	}
}

func (uc *GroupUseCase) requireManage(actor common.Actor) error {
	if !actor.Can(uc.perms, permission.CapGroupsManage) {
		return apperrors.NewForbiddenError("Not allowed to manage groups")
	}
	return nil
}

func (uc *GroupUseCase) Create(ctx context.Context, cmd CreateGroupCommand) (*GroupView, error) {
	uc.logger.Infow("executing create group use case", "name", cmd.Name, "user_id", cmd.Actor.ID)

	if err := uc.requireManage(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.OrgID != nil {
		if _, err := uc.orgs.GetByID(ctx, *cmd.OrgID); err != nil {
			if errors.Is(err, organization.ErrOrganizationNotFound) {
				return nil, apperrors.NewValidationError("Invalid organization")
			}
			return nil, err
		}
	}

	g, err := group.NewGroup(cmd.Name, cmd.OrgID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if len(cmd.Members) > 0 {
		if err := uc.checkUsers(ctx, cmd.Members); err != nil {
			return nil, err
		}
		for _, id := range cmd.Members {
			g.AddMember(id)
		}
	}
	g.SetPublic(cmd.Public)

	if err := uc.groups.Create(ctx, g); err != nil {
		uc.logger.Errorw("failed to create group", "name", cmd.Name, "error", err)
		return nil, err
	}
	uc.logger.Infow("group created", "group_id", g.ID(), "name", g.Name())
	return toView(g), nil
}

// ListVisible returns every group for managers and the caller's scope
// otherwise.
func (uc *GroupUseCase) ListVisible(ctx context.Context, actor common.Actor) ([]*GroupView, error) {
	var (
		groups []*group.Group
		err    error
	)
	if actor.Can(uc.perms, permission.CapGroupsManage) {
		groups, err = uc.groups.List(ctx)
	} else {
		var scope ticket.Scope
		scope, err = uc.scope.Scope(ctx, actor)
		if err != nil {
			return nil, err
		}
		groups, err = uc.groups.GetByIDs(ctx, scope.GroupIDs)
	}
	if err != nil {
		uc.logger.Errorw("failed to list groups", "user_id", actor.ID, "error", err)
		return nil, err
	}

	out := make([]*GroupView, 0, len(groups))
	for _, g := range groups {
		out = append(out, toView(g))
	}
	return out, nil
}

func (uc *GroupUseCase) Get(ctx context.Context, actor common.Actor, id uint) (*GroupView, error) {
	g, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Can(uc.perms, permission.CapGroupsManage) {
		scope, err := uc.scope.Scope(ctx, actor)
		if err != nil {
			return nil, err
		}
		if !shared.HasID(scope.GroupIDs, id) {
			return nil, apperrors.NewNotFoundError("Group not found")
		}
	}
	return toView(g), nil
}

func (uc *GroupUseCase) Member(ctx context.Context, cmd MemberCommand) (*GroupView, error) {
	uc.logger.Infow("executing group member use case",
		"group_id", cmd.GroupID,
		"member_id", cmd.UserID,
		"remove", cmd.Remove,
		"user_id", cmd.Actor.ID,
	)

	if err := uc.requireManage(cmd.Actor); err != nil {
		return nil, err
	}
	g, err := uc.load(ctx, cmd.GroupID)
	if err != nil {
		return nil, err
	}

	var changed bool
	if cmd.Remove {
		changed = g.RemoveMember(cmd.UserID)
	} else {
		if err := uc.checkUsers(ctx, []uint{cmd.UserID}); err != nil {
			return nil, err
		}
		changed = g.AddMember(cmd.UserID)
	}
	if !changed {
		return toView(g), nil
	}

	if err := uc.groups.Update(ctx, g); err != nil {
		uc.logger.Errorw("failed to update group members", "group_id", cmd.GroupID, "error", err)
		return nil, err
	}
	return toView(g), nil
}

func (uc *GroupUseCase) Update(ctx context.Context, cmd UpdateGroupCommand) (*GroupView, error) {
	uc.logger.Infow("executing update group use case", "group_id", cmd.GroupID, "user_id", cmd.Actor.ID)

	if err := uc.requireManage(cmd.Actor); err != nil {
		return nil, err
	}
	g, err := uc.load(ctx, cmd.GroupID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if err := g.Rename(*cmd.Name); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if cmd.SendMailTo != nil {
		g.SetSendMailTo(*cmd.SendMailTo)
	}
	if cmd.Public != nil {
		g.SetPublic(*cmd.Public)
	}

	if err := uc.groups.Update(ctx, g); err != nil {
		uc.logger.Errorw("failed to update group", "group_id", cmd.GroupID, "error", err)
		return nil, err
	}
	return toView(g), nil
}

// Delete refuses while any ticket, deleted or not, references the group.
func (uc *GroupUseCase) Delete(ctx context.Context, actor common.Actor, id uint) error {
	uc.logger.Infow("executing delete group use case", "group_id", id, "user_id", actor.ID)

	if err := uc.requireManage(actor); err != nil {
		return err
	}
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}

	n, err := uc.tickets.CountByGroup(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count group tickets: %w", err)
	}
	if n > 0 {
		return apperrors.NewConflictError("Unable to delete group. Group has tickets.", group.ErrGroupInUse.Error())
	}

	if err := uc.groups.Delete(ctx, id); err != nil {
		uc.logger.Errorw("failed to delete group", "group_id", id, "error", err)
		return err
	}
	return nil
}

func (uc *GroupUseCase) load(ctx context.Context, id uint) (*group.Group, error) {
	g, err := uc.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			return nil, apperrors.NewNotFoundError("Group not found")
		}
		return nil, err
	}
	return g, nil
}

func (uc *GroupUseCase) checkUsers(ctx context.Context, ids []uint) error {
	found, err := uc.users.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	known := make(map[uint]struct{}, len(found))
	for _, u := range found {
		known[u.ID()] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return apperrors.NewValidationError("Invalid user", fmt.Sprintf("user %d does not exist", id))
		}
	}
	return nil
}
