package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/shared/events"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/markdown"
)

type CommentAction string

const (
	CommentAdd    CommentAction = "add"
	CommentUpdate CommentAction = "update"
	CommentRemove CommentAction = "remove"
)

// CommentCommand targets the public comment thread, or the internal notes
// when Note is set.
type CommentCommand struct {
	Actor     common.Actor
	UID       int64
	Action    CommentAction
	Note      bool
	CommentID string
	Body      string
}

type CommentUseCase struct {
	access    ticketAccess
	views     *ViewBuilder
	perms     common.PermissionChecker
	markdown  markdown.Renderer
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewCommentUseCase(
	repo ticket.Repository,
	visibility *VisibilityResolver,
	views *ViewBuilder,
	perms common.PermissionChecker,
	md markdown.Renderer,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CommentUseCase {
	return &CommentUseCase{
		access:    ticketAccess{repo: repo, visibility: visibility},
		views:     views,
		perms:     perms,
		markdown:  md,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *CommentUseCase) Execute(ctx context.Context, cmd CommentCommand) (*dto.TicketView, error) {
	uc.logger.Infow("executing ticket comment use case",
		"uid", cmd.UID,
		"action", cmd.Action,
		"note", cmd.Note,
		"user_id", cmd.Actor.ID,
	)

	capability := permission.CapCommentCreate
	if cmd.Note {
		capability = permission.CapNotesCreate
	}
	if !cmd.Actor.Can(uc.perms, capability) {
		return nil, errors.NewForbiddenError(fmt.Sprintf("Missing capability %s", capability))
	}

	t, err := uc.access.load(ctx, cmd.Actor, cmd.UID)
	if err != nil {
		return nil, err
	}

	var added *ticket.Comment
	switch cmd.Action {
	case CommentAdd:
		added, err = uc.add(t, cmd)
	case CommentUpdate:
		err = uc.update(t, cmd)
	case CommentRemove:
		err = uc.remove(t, cmd)
	default:
		err = errors.NewValidationError("Invalid comment action")
	}
	if err != nil {
		return nil, err
	}

	if err := uc.access.save(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket comments", "uid", cmd.UID, "error", err)
		return nil, err
	}

	switch {
	case added != nil && added.IsNote():
		publish(uc.publisher, uc.logger, ticket.NewCommentEvent(ticket.EventNoteAdded, t, added))
	case added != nil:
		publish(uc.publisher, uc.logger, ticket.NewCommentEvent(ticket.EventCommentAdded, t, added))
	default:
		publish(uc.publisher, uc.logger, ticket.NewEvent(ticket.EventUpdated, t, cmd.Actor.ID))
	}

	return uc.views.One(ctx, cmd.Actor, t)
}

func (uc *CommentUseCase) add(t *ticket.Ticket, cmd CommentCommand) (*ticket.Comment, error) {
	body, err := uc.render(cmd.Body)
	if err != nil {
		return nil, err
	}
	var c *ticket.Comment
	if cmd.Note {
		c, err = t.AddNote(cmd.Actor.ID, body)
	} else {
		c, err = t.AddComment(cmd.Actor.ID, body)
	}
	if err != nil {
		return nil, toAppError(err)
	}
	// Commenting subscribes the author.
	t.AddSubscriber(cmd.Actor.ID)
	return c, nil
}

func (uc *CommentUseCase) update(t *ticket.Ticket, cmd CommentCommand) error {
	if err := uc.checkOwnership(t, cmd); err != nil {
		return err
	}
	body, err := uc.render(cmd.Body)
	if err != nil {
		return err
	}
	if cmd.Note {
		return toAppError(t.UpdateNote(cmd.Actor.ID, cmd.CommentID, body))
	}
	return toAppError(t.UpdateComment(cmd.Actor.ID, cmd.CommentID, body))
}

func (uc *CommentUseCase) remove(t *ticket.Ticket, cmd CommentCommand) error {
	if cmd.CommentID == "" {
		return errors.NewValidationError("Invalid comment id")
	}
	if err := uc.checkOwnership(t, cmd); err != nil {
		return err
	}
	if cmd.Note {
		t.RemoveNote(cmd.Actor.ID, cmd.CommentID)
	} else {
		t.RemoveComment(cmd.Actor.ID, cmd.CommentID)
	}
	return nil
}

// checkOwnership lets authors edit their own entries; anything else needs
// ticket:edit. Unknown ids fall through to the entity, which decides.
func (uc *CommentUseCase) checkOwnership(t *ticket.Ticket, cmd CommentCommand) error {
	list := t.Comments()
	if cmd.Note {
		list = t.Notes()
	}
	for _, c := range list {
		if c.ID() != cmd.CommentID {
			continue
		}
		if c.OwnerID() != cmd.Actor.ID && !cmd.Actor.Can(uc.perms, permission.CapTicketEdit) {
			return errors.NewForbiddenError("Not allowed to modify this comment")
		}
		return nil
	}
	return nil
}

func (uc *CommentUseCase) render(body string) (string, error) {
	html, err := uc.markdown.Render(body)
	if err != nil {
		return "", errors.NewValidationError("Failed to render comment", err.Error())
	}
	return html, nil
}
