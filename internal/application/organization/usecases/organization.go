// Package usecases manages organizations.
package usecases

import (
	"context"
	"errors"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/organization"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type OrganizationView struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Members   []uint `json:"members"`
}

func toView(o *organization.Organization) *OrganizationView {
	return &OrganizationView{
		ID:        o.ID(),
		Name:      o.Name(),
		ShortName: o.ShortName(),
		Members:   o.Members(),
	}
}

type CreateOrganizationCommand struct {
	Actor     common.Actor
	Name      string
	ShortName string
}

type MemberCommand struct {
	Actor  common.Actor
	OrgID  uint
	UserID uint
	Remove bool
}

type OrganizationUseCase struct {
	orgs   organization.Repository
	users  user.Repository
	perms  common.PermissionChecker
	logger logger.Interface
}

func NewOrganizationUseCase(
	orgs organization.Repository,
	users user.Repository,
	perms common.PermissionChecker,
	logger logger.Interface,
) *OrganizationUseCase {
	return &OrganizationUseCase{orgs: orgs, users: users, perms: perms, logger: logger}
}

func (uc *OrganizationUseCase) Create(ctx context.Context, cmd CreateOrganizationCommand) (*OrganizationView, error) {
	uc.logger.Infow("executing create organization use case", "name", cmd.Name, "user_id", cmd.Actor.ID)

	if !cmd.Actor.Can(uc.perms, permission.CapOrgsManage) {
		return nil, apperrors.NewForbiddenError("Not allowed to manage organizations")
	}
	o, err := organization.NewOrganization(cmd.Name, cmd.ShortName)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.orgs.Create(ctx, o); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, apperrors.NewConflictError("Organization short name already in use", o.ShortName())
		}
		uc.logger.Errorw("failed to create organization", "name", cmd.Name, "error", err)
		return nil, err
	}
	return toView(o), nil
}

func (uc *OrganizationUseCase) List(ctx context.Context) ([]*OrganizationView, error) {
	orgs, err := uc.orgs.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list organizations", "error", err)
		return nil, err
	}
	out := make([]*OrganizationView, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, toView(o))
	}
	return out, nil
}

func (uc *OrganizationUseCase) Get(ctx context.Context, id uint) (*OrganizationView, error) {
	o, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toView(o), nil
}

func (uc *OrganizationUseCase) Member(ctx context.Context, cmd MemberCommand) (*OrganizationView, error) {
	uc.logger.Infow("executing organization member use case",
		"org_id", cmd.OrgID,
		"member_id", cmd.UserID,
		"remove", cmd.Remove,
		"user_id", cmd.Actor.ID,
	)

	if !cmd.Actor.Can(uc.perms, permission.CapOrgsManage) {
		return nil, apperrors.NewForbiddenError("Not allowed to manage organizations")
	}
	o, err := uc.load(ctx, cmd.OrgID)
	if err != nil {
		return nil, err
	}

	var changed bool
	if cmd.Remove {
		changed = o.RemoveMember(cmd.UserID)
	} else {
		if _, err := uc.users.GetByID(ctx, cmd.UserID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return nil, apperrors.NewValidationError("Invalid user")
			}
			return nil, err
		}
		changed = o.AddMember(cmd.UserID)
	}
	if !changed {
		return toView(o), nil
	}

	if err := uc.orgs.Update(ctx, o); err != nil {
		uc.logger.Errorw("failed to update organization members", "org_id", cmd.OrgID, "error", err)
		return nil, err
	}
	return toView(o), nil
}

func (uc *OrganizationUseCase) load(ctx context.Context, id uint) (*organization.Organization, error) {
	o, err := uc.orgs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, organization.ErrOrganizationNotFound) {
			return nil, apperrors.NewNotFoundError("Organization not found")
		}
		return nil, err
	}
	return o, nil
}
