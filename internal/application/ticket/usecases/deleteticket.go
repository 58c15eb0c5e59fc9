package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/shared/events"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// DeleteTicketCommand soft deletes a ticket, or restores it when Restore is
// set.
type DeleteTicketCommand struct {
	Actor   common.Actor
	UID     int64
	Restore bool
}

type DeleteTicketUseCase struct {
	access    ticketAccess
	perms     common.PermissionChecker
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewDeleteTicketUseCase(
	repo ticket.Repository,
	visibility *VisibilityResolver,
	perms common.PermissionChecker,
	publisher events.EventPublisher,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		access:    ticketAccess{repo: repo, visibility: visibility},
		perms:     perms,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	uc.logger.Infow("executing delete ticket use case", "uid", cmd.UID, "restore", cmd.Restore, "user_id", cmd.Actor.ID)

	if !cmd.Actor.Can(uc.perms, permission.CapTicketDelete) {
		return errors.NewForbiddenError("Not allowed to delete tickets")
	}

	t, err := uc.access.loadWithDeleted(ctx, cmd.Actor, cmd.UID, cmd.Restore)
	if err != nil {
		return err
	}

	eventType := ticket.EventDeleted
	if cmd.Restore {
		if !t.IsDeleted() {
			return nil
		}
		t.Restore(cmd.Actor.ID)
		eventType = ticket.EventUpdated
	} else {
		t.SoftDelete(cmd.Actor.ID)
	}

	if err := uc.access.save(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket deletion", "uid", cmd.UID, "error", err)
		return err
	}

	publish(uc.publisher, uc.logger, ticket.NewEvent(eventType, t, cmd.Actor.ID))
	uc.logger.Infow("ticket deletion state changed", "uid", t.UID(), "deleted", t.IsDeleted())
	return nil
}
