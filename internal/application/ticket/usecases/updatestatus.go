package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/shared/events"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type UpdateStatusCommand struct {
	Actor  common.Actor
	UID    int64
	Status int
}

type UpdateStatusUseCase struct {
	access    ticketAccess
	views     *ViewBuilder
	perms     common.PermissionChecker
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewUpdateStatusUseCase(
	repo ticket.Repository,
	visibility *VisibilityResolver,
	views *ViewBuilder,
	perms common.PermissionChecker,
	publisher events.EventPublisher,
	logger logger.Interface,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		access:    ticketAccess{repo: repo, visibility: visibility},
		views:     views,
		perms:     perms,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, cmd UpdateStatusCommand) (*dto.TicketView, error) {
	uc.logger.Infow("executing update ticket status use case", "uid", cmd.UID, "status", cmd.Status, "user_id", cmd.Actor.ID)

	if !cmd.Actor.Can(uc.perms, permission.CapTicketEdit) {
		return nil, errors.NewForbiddenError("Not allowed to edit tickets")
	}
	status, err := vo.NewStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError("Invalid status", err.Error())
	}

	t, err := uc.access.load(ctx, cmd.Actor, cmd.UID)
	if err != nil {
		return nil, err
	}
	if err := t.SetStatus(cmd.Actor.ID, status); err != nil {
		return nil, toAppError(err)
	}
	if err := uc.access.save(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket status", "uid", cmd.UID, "error", err)
		return nil, err
	}

	publish(uc.publisher, uc.logger, ticket.NewEvent(ticket.EventUpdated, t, cmd.Actor.ID))
	uc.logger.Infow("ticket status updated", "uid", t.UID(), "status", status.Label())

	return uc.views.One(ctx, cmd.Actor, t)
}
