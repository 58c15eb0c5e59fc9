// Package usecases manages the system catalogue.
package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/organization"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/system"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type SystemView struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Description string     `json:"desc"`
	Status      bool       `json:"status"`
	OrgID       uint       `json:"organization"`
	CreateDate  time.Time  `json:"createDate"`
	EditDate    *time.Time `json:"editDate,omitempty"`
}

func toView(s *system.System) *SystemView {
	return &SystemView{
		ID:          s.ID(),
		Name:        s.Name(),
		Type:        s.Kind(),
		Description: s.Description(),
		Status:      s.IsActive(),
		OrgID:       s.OrgID(),
		CreateDate:  s.Created(),
		EditDate:    s.Edited(),
	}
}

func toViews(list []*system.System) []*SystemView {
	out := make([]*SystemView, 0, len(list))
	for _, s := range list {
		out = append(out, toView(s))
	}
	return out
}

type CreateSystemCommand struct {
	Actor       common.Actor
	OrgID       uint
	Name        string
	Type        string
	Description string
}

// UpdateSystemCommand replaces every editable field.
type UpdateSystemCommand struct {
	Actor       common.Actor
	ID          uint
	Name        string
	Type        string
	Description string
	Status      bool
}

type SystemUseCase struct {
	systems system.Repository
	orgs    organization.Repository
	perms   common.PermissionChecker
	logger  logger.Interface
}

func NewSystemUseCase(
	systems system.Repository,
	orgs organization.Repository,
	perms common.PermissionChecker,
	logger logger.Interface,
) *SystemUseCase {
	return &SystemUseCase{systems: systems, orgs: orgs, perms: perms, logger: logger}
}

func (uc *SystemUseCase) Create(ctx context.Context, cmd CreateSystemCommand) (*SystemView, error) {
	uc.logger.Infow("executing create system use case", "name", cmd.Name, "org_id", cmd.OrgID, "user_id", cmd.Actor.ID)

	if !cmd.Actor.Can(uc.perms, permission.CapSystemsManage) {
		return nil, apperrors.NewForbiddenError("Not allowed to manage systems")
	}
	if _, err := uc.orgs.GetByID(ctx, cmd.OrgID); err != nil {
		if errors.Is(err, organization.ErrOrganizationNotFound) {
			return nil, apperrors.NewValidationError("Invalid organization")
		}
		return nil, err
	}

	s, err := system.NewSystem(cmd.OrgID, cmd.Name, cmd.Type, cmd.Description)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.systems.Create(ctx, s); err != nil {
		return nil, uc.toAppError(err, "failed to create system")
	}
	return toView(s), nil
}

func (uc *SystemUseCase) List(ctx context.Context) ([]*SystemView, error) {
	list, err := uc.systems.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list systems", "error", err)
		return nil, err
	}
	return toViews(list), nil
}

func (uc *SystemUseCase) ListByOrg(ctx context.Context, orgID uint) ([]*SystemView, error) {
	list, err := uc.systems.ListByOrg(ctx, orgID)
	if err != nil {
		uc.logger.Errorw("failed to list organization systems", "org_id", orgID, "error", err)
		return nil, err
	}
	return toViews(list), nil
}

func (uc *SystemUseCase) Get(ctx context.Context, id uint) (*SystemView, error) {
	s, err := uc.systems.GetByID(ctx, id)
	if err != nil {
		return nil, uc.toAppError(err, "failed to get system")
	}
	return toView(s), nil
}

func (uc *SystemUseCase) Update(ctx context.Context, cmd UpdateSystemCommand) (*SystemView, error) {
	uc.logger.Infow("executing update system use case", "system_id", cmd.ID, "user_id", cmd.Actor.ID)

	if !cmd.Actor.Can(uc.perms, permission.CapSystemsManage) {
		return nil, apperrors.NewForbiddenError("Not allowed to manage systems")
	}
	s, err := uc.systems.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, uc.toAppError(err, "failed to get system")
	}
	if err := s.Edit(cmd.Name, cmd.Type, cmd.Description, cmd.Status); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.systems.Update(ctx, s); err != nil {
		return nil, uc.toAppError(err, "failed to update system")
	}
	return toView(s), nil
}

// Delete refuses while any live ticket still names the system.
func (uc *SystemUseCase) Delete(ctx context.Context, actor common.Actor, id uint) error {
	uc.logger.Infow("executing delete system use case", "system_id", id, "user_id", actor.ID)

	if !actor.Can(uc.perms, permission.CapSystemsManage) {
		return apperrors.NewForbiddenError("Not allowed to manage systems")
	}
	if err := uc.systems.Delete(ctx, id); err != nil {
		return uc.toAppError(err, "failed to delete system")
	}
	return nil
}

func (uc *SystemUseCase) toAppError(err error, msg string) error {
	switch {
	case errors.Is(err, system.ErrSystemNotFound):
		return apperrors.NewNotFoundError("System not found")
	case errors.Is(err, system.ErrSystemExists):
		return apperrors.NewConflictError("System name already in use")
	case errors.Is(err, system.ErrSystemInUse):
		return apperrors.NewConflictError("Unable to delete system. System has tickets.")
	}
	uc.logger.Errorw(msg, "error", err)
	return err
}
