package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/group"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/shared"
	"github.com/orris-inc/helpdesk/internal/domain/shared/events"
	"github.com/orris-inc/helpdesk/internal/domain/system"
	"github.com/orris-inc/helpdesk/internal/domain/tag"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/domain/tickettype"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/markdown"
)

// UpdateTicketCommand applies every non-nil field. Each applied field leaves
// its own history entry.
type UpdateTicketCommand struct {
	Actor    common.Actor
	UID      int64
	Subject  *string
	Issue    *string
	Priority *int
	TypeID   *uint
	GroupID  *uint
	TagIDs   *[]uint
	// SystemID of 0 clears the system.
	SystemID *uint
}

func (c UpdateTicketCommand) empty() bool {
	return c.Subject == nil && c.Issue == nil && c.Priority == nil &&
		c.TypeID == nil && c.GroupID == nil && c.TagIDs == nil && c.SystemID == nil
}

type UpdateTicketUseCase struct {
	access     ticketAccess
	groups     group.Repository
	types      tickettype.Repository
	tags       tag.Repository
	systems    system.Repository
	visibility *VisibilityResolver
	views      *ViewBuilder
	perms      common.PermissionChecker
	markdown   markdown.Renderer
	publisher  events.EventPublisher
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	repo ticket.Repository,
	groups group.Repository,
	types tickettype.Repository,
	tags tag.Repository,
	systems system.Repository,
	visibility *VisibilityResolver,
	views *ViewBuilder,
	perms common.PermissionChecker,
	md markdown.Renderer,
	publisher events.EventPublisher,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		access:     ticketAccess{repo: repo, visibility: visibility},
		groups:     groups,
		types:      types,
		tags:       tags,
		systems:    systems,
		visibility: visibility,
		views:      views,
		perms:      perms,
		markdown:   md,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketView, error) {
	uc.logger.Infow("executing update ticket use case", "uid", cmd.UID, "user_id", cmd.Actor.ID)

	if !cmd.Actor.Can(uc.perms, permission.CapTicketEdit) {
		return nil, errors.NewForbiddenError("Not allowed to edit tickets")
	}
	if cmd.empty() {
		return nil, errors.NewValidationError("No fields to update")
	}

	t, err := uc.access.load(ctx, cmd.Actor, cmd.UID)
	if err != nil {
		return nil, err
	}

	if err := uc.apply(ctx, t, cmd); err != nil {
		return nil, err
	}

	if err := uc.access.save(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket", "uid", cmd.UID, "error", err)
		return nil, err
	}

	publish(uc.publisher, uc.logger, ticket.NewEvent(ticket.EventUpdated, t, cmd.Actor.ID))
	uc.logger.Infow("ticket updated successfully", "uid", t.UID())

	return uc.views.One(ctx, cmd.Actor, t)
}

func (uc *UpdateTicketUseCase) apply(ctx context.Context, t *ticket.Ticket, cmd UpdateTicketCommand) error {
	actorID := cmd.Actor.ID

	if cmd.Subject != nil {
		if err := t.SetSubject(actorID, *cmd.Subject); err != nil {
			return toAppError(err)
		}
	}

	if cmd.Issue != nil {
		html, err := uc.markdown.Render(*cmd.Issue)
		if err != nil {
			return errors.NewValidationError("Failed to render issue", err.Error())
		}
		if err := t.SetIssue(actorID, html); err != nil {
			return toAppError(err)
		}
	}

	if cmd.Priority != nil {
		p, err := vo.NewPriority(*cmd.Priority)
		if err != nil {
			return errors.NewValidationError("Priority must be a number.", err.Error())
		}
		if err := t.SetPriority(actorID, p); err != nil {
			return toAppError(err)
		}
	}

	if cmd.TypeID != nil {
		tt, err := uc.types.GetByID(ctx, *cmd.TypeID)
		if err != nil {
			return toAppError(err)
		}
		if err := t.SetType(actorID, &ticket.NamedRef{ID: tt.ID(), Name: tt.Name()}); err != nil {
			return toAppError(err)
		}
	}

	if cmd.GroupID != nil {
		// Moving a ticket requires visibility of the destination group too.
		scope, err := uc.visibility.Scope(ctx, cmd.Actor)
		if err != nil {
			return err
		}
		if !shared.HasID(scope.GroupIDs, *cmd.GroupID) {
			return errors.NewValidationError("Invalid group")
		}
		g, err := uc.groups.GetByID(ctx, *cmd.GroupID)
		if err != nil {
			return toAppError(err)
		}
		if err := t.SetGroup(actorID, &ticket.NamedRef{ID: g.ID(), Name: g.Name()}); err != nil {
			return toAppError(err)
		}
		t.SetOrganization(g.OrgID())
	}

	if cmd.SystemID != nil {
		if *cmd.SystemID == 0 {
			t.ClearSystem(actorID)
		} else {
			sys, err := resolveSystem(ctx, uc.systems, *cmd.SystemID, t.OrgID())
			if err != nil {
				return err
			}
			if err := t.SetSystem(actorID, sys); err != nil {
				return toAppError(err)
			}
		}
	}

	if cmd.TagIDs != nil {
		ids, err := resolveTags(ctx, uc.tags, *cmd.TagIDs)
		if err != nil {
			return err
		}
		t.SetTags(actorID, ids)
	}
	return nil
}
