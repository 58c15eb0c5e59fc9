// Package usecases manages ticket types, including deletion with
// reassignment of the tickets that use them.
package usecases

import (
	"context"
	"errors"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/tickettype"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type TicketTypeView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func toView(t *tickettype.TicketType) TicketTypeView {
	return TicketTypeView{ID: t.ID(), Name: t.Name()}
}

type CreateTicketTypeCommand struct {
	Actor common.Actor
	Name  string
}

type RenameTicketTypeCommand struct {
	Actor common.Actor
	ID    uint
	Name  string
}

// ManageTicketTypesUseCase covers create, list and rename.
type ManageTicketTypesUseCase struct {
	repo   tickettype.Repository
	perms  common.PermissionChecker
	logger logger.Interface
}

func NewManageTicketTypesUseCase(
	repo tickettype.Repository,
	perms common.PermissionChecker,
	logger logger.Interface,
) *ManageTicketTypesUseCase {
	return &ManageTicketTypesUseCase{
		repo:   repo,
		perms:  perms,
		logger: logger,
	}
}

func (uc *ManageTicketTypesUseCase) Create(ctx context.Context, cmd CreateTicketTypeCommand) (*TicketTypeView, error) {
	uc.logger.Infow("executing create ticket type use case", "name", cmd.Name, "user_id", cmd.Actor.ID)

	if !cmd.Actor.Can(uc.perms, permission.CapSettingsManage) {
		return nil, apperrors.NewForbiddenError("Not allowed to manage ticket types")
	}
	t, err := tickettype.NewTicketType(cmd.Name)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		uc.logger.Errorw("failed to create ticket type", "name", cmd.Name, "error", err)
		return nil, err
	}

	v := toView(t)
	return &v, nil
}

func (uc *ManageTicketTypesUseCase) List(ctx context.Context) ([]TicketTypeView, error) {
	types, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list ticket types", "error", err)
		return nil, err
	}
	out := make([]TicketTypeView, 0, len(types))
	for _, t := range types {
		out = append(out, toView(t))
	}
	return out, nil
}

func (uc *ManageTicketTypesUseCase) Rename(ctx context.Context, cmd RenameTicketTypeCommand) (*TicketTypeView, error) {
	uc.logger.Infow("executing rename ticket type use case", "id", cmd.ID, "name", cmd.Name, "user_id", cmd.Actor.ID)

	if !cmd.Actor.Can(uc.perms, permission.CapSettingsManage) {
		return nil, apperrors.NewForbiddenError("Not allowed to manage ticket types")
	}
	t, err := uc.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, mapTypeError(err)
	}
	if err := t.Rename(cmd.Name); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.repo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to rename ticket type", "id", cmd.ID, "error", err)
		return nil, err
	}

	v := toView(t)
	return &v, nil
}

func mapTypeError(err error) error {
	if errors.Is(err, tickettype.ErrTypeNotFound) {
		return apperrors.NewNotFoundError("Ticket type not found")
	}
	return err
}
