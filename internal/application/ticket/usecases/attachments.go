package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/shared/events"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// AttachmentCommand records attachment metadata. File storage happens
// elsewhere; Path is wherever the upload landed.
type AttachmentCommand struct {
	Actor        common.Actor
	UID          int64
	Remove       bool
	AttachmentID string
	Name         string
	Path         string
	MimeType     string
}

type AttachmentUseCase struct {
	access    ticketAccess
	views     *ViewBuilder
	perms     common.PermissionChecker
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewAttachmentUseCase(
	repo ticket.Repository,
	visibility *VisibilityResolver,
	views *ViewBuilder,
	perms common.PermissionChecker,
	publisher events.EventPublisher,
	logger logger.Interface,
) *AttachmentUseCase {
	return &AttachmentUseCase{
		access:    ticketAccess{repo: repo, visibility: visibility},
		views:     views,
		perms:     perms,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *AttachmentUseCase) Execute(ctx context.Context, cmd AttachmentCommand) (*dto.TicketView, error) {
	uc.logger.Infow("executing ticket attachment use case", "uid", cmd.UID, "remove", cmd.Remove, "user_id", cmd.Actor.ID)

	capability := permission.CapTicketAttach
	if cmd.Remove {
		capability = permission.CapTicketDetach
	}
	if !cmd.Actor.Can(uc.perms, capability) {
		return nil, errors.NewForbiddenError("Not allowed to change attachments")
	}

	t, err := uc.access.load(ctx, cmd.Actor, cmd.UID)
	if err != nil {
		return nil, err
	}

	if cmd.Remove {
		if !t.RemoveAttachment(cmd.Actor.ID, cmd.AttachmentID) {
			// Unknown ids are a no-op.
			return uc.views.One(ctx, cmd.Actor, t)
		}
	} else {
		a, err := t.AddAttachment(cmd.Actor.ID, cmd.Name, cmd.Path, cmd.MimeType)
		if err != nil {
			return nil, toAppError(err)
		}
		uc.logger.Debugw("attachment added", "uid", t.UID(), "attachment_id", a.ID())
	}

	if err := uc.access.save(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket attachments", "uid", cmd.UID, "error", err)
		return nil, err
	}

	publish(uc.publisher, uc.logger, ticket.NewEvent(ticket.EventUpdated, t, cmd.Actor.ID))
	return uc.views.One(ctx, cmd.Actor, t)
}
