package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/shared/events"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// AssignTicketCommand sets or clears the assignee. A nil AssigneeID clears.
type AssignTicketCommand struct {
	Actor      common.Actor
	UID        int64
	AssigneeID *uint
}

type AssignTicketUseCase struct {
	access    ticketAccess
	users     user.Repository
	views     *ViewBuilder
	perms     common.PermissionChecker
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewAssignTicketUseCase(
	repo ticket.Repository,
	users user.Repository,
	visibility *VisibilityResolver,
	views *ViewBuilder,
	perms common.PermissionChecker,
	publisher events.EventPublisher,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		access:    ticketAccess{repo: repo, visibility: visibility},
		users:     users,
		views:     views,
		perms:     perms,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketView, error) {
	uc.logger.Infow("executing assign ticket use case", "uid", cmd.UID, "assignee_id", cmd.AssigneeID, "user_id", cmd.Actor.ID)

	if !cmd.Actor.Can(uc.perms, permission.CapTicketEdit) {
		return nil, errors.NewForbiddenError("Not allowed to edit tickets")
	}

	t, err := uc.access.load(ctx, cmd.Actor, cmd.UID)
	if err != nil {
		return nil, err
	}

	if cmd.AssigneeID == nil {
		t.ClearAssignee(cmd.Actor.ID)
	} else {
		if *cmd.AssigneeID == 0 {
			return nil, errors.NewValidationError("Invalid user")
		}
		u, err := uc.users.GetByID(ctx, *cmd.AssigneeID)
		if err != nil {
			return nil, toAppError(err)
		}
		ref := &ticket.UserRef{ID: u.ID(), Fullname: u.Fullname(), Role: u.Role()}
		if err := t.SetAssignee(cmd.Actor.ID, ref, uc.perms); err != nil {
			uc.logger.Warnw("assignee rejected", "uid", cmd.UID, "assignee_id", u.ID(), "role", u.Role())
			return nil, toAppError(err)
		}
	}

	if err := uc.access.save(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket assignee", "uid", cmd.UID, "error", err)
		return nil, err
	}

	publish(uc.publisher, uc.logger, ticket.NewEvent(ticket.EventUpdated, t, cmd.Actor.ID))
	uc.logger.Infow("ticket assignee updated", "uid", t.UID())

	return uc.views.One(ctx, cmd.Actor, t)
}
