package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/group"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/sequence"
	"github.com/orris-inc/helpdesk/internal/domain/shared"
	"github.com/orris-inc/helpdesk/internal/domain/shared/events"
	"github.com/orris-inc/helpdesk/internal/domain/system"
	"github.com/orris-inc/helpdesk/internal/domain/tag"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/domain/tickettype"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/markdown"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type CreateTicketCommand struct {
	Actor    common.Actor
	Subject  string `json:"subject" validate:"required,max=255"`
	Issue    string `json:"issue" validate:"required"`
	GroupID  uint   `json:"group" validate:"required"`
	TypeID   uint   `json:"type" validate:"required"`
	Priority int    `json:"priority" validate:"omitempty,min=1,max=3"`
	TagIDs   []uint `json:"tags"`
	SystemID uint   `json:"system"`
}

type CreateTicketUseCase struct {
	txm        db.Transactor
	seq        sequence.Allocator
	repo       ticket.Repository
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

func NewCreateTicketUseCase(
	txm db.Transactor,
	seq sequence.Allocator,
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
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		txm:        txm,
		seq:        seq,
		repo:       repo,
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

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketView, error) {
	uc.logger.Infow("executing create ticket use case", "owner_id", cmd.Actor.ID, "group_id", cmd.GroupID)

	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	if !cmd.Actor.Can(uc.perms, permission.CapTicketCreate) {
		return nil, errors.NewForbiddenError("Not allowed to create tickets")
	}

	priority := vo.PriorityNormal
	if cmd.Priority != 0 {
		p, err := vo.NewPriority(cmd.Priority)
		if err != nil {
			return nil, errors.NewValidationError("Invalid priority", err.Error())
		}
		priority = p
	}

	scope, err := uc.visibility.Scope(ctx, cmd.Actor)
	if err != nil {
		uc.logger.Errorw("failed to resolve visible groups", "error", err)
		return nil, err
	}
	if !shared.HasID(scope.GroupIDs, cmd.GroupID) {
		return nil, errors.NewValidationError("Invalid group")
	}

	g, err := uc.groups.GetByID(ctx, cmd.GroupID)
	if err != nil {
		return nil, toAppError(err)
	}
	tt, err := uc.types.GetByID(ctx, cmd.TypeID)
	if err != nil {
		return nil, toAppError(err)
	}
	tagIDs, err := resolveTags(ctx, uc.tags, cmd.TagIDs)
	if err != nil {
		return nil, err
	}
	var sys *ticket.NamedRef
	if cmd.SystemID != 0 {
		if sys, err = resolveSystem(ctx, uc.systems, cmd.SystemID, g.OrgID()); err != nil {
			return nil, err
		}
	}

	html, err := uc.markdown.Render(cmd.Issue)
	if err != nil {
		return nil, errors.NewValidationError("Failed to render issue", err.Error())
	}

	var created *ticket.Ticket
	err = uc.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		uid, err := uc.seq.Next(ctx, sequence.CounterTickets)
		if err != nil {
			return err
		}
		if uid <= 0 {
			return sequence.ErrInvalidUID
		}

		t, err := ticket.NewTicket(uid, cmd.Actor.ID, g.ID(), tt.ID(), priority, cmd.Subject, html, tagIDs)
		if err != nil {
			return err
		}
		t.SetOrganization(g.OrgID())
		if sys != nil {
			if err := t.SetSystem(cmd.Actor.ID, sys); err != nil {
				return err
			}
		}

		if err := uc.repo.Create(ctx, t); err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "owner_id", cmd.Actor.ID, "error", err)
		return nil, toAppError(err)
	}

	publish(uc.publisher, uc.logger, ticket.NewEvent(ticket.EventCreated, created, cmd.Actor.ID))
	uc.logger.Infow("ticket created successfully", "ticket_id", created.ID(), "uid", created.UID())

	return uc.views.One(ctx, cmd.Actor, created)
}

// resolveTags checks that every requested tag exists.
func resolveTags(ctx context.Context, repo tag.Repository, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	known := make(map[uint]bool, len(found))
	for _, t := range found {
		known[t.ID()] = true
	}
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !known[id] {
			return nil, errors.NewValidationError("Invalid tag")
		}
		out = append(out, id)
	}
	return out, nil
}

// resolveSystem loads an active system. When orgID is set the system must
// belong to that organization.
func resolveSystem(ctx context.Context, repo system.Repository, id uint, orgID *uint) (*ticket.NamedRef, error) {
	s, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, toAppError(err)
	}
	if !s.IsActive() || (orgID != nil && *orgID != s.OrgID()) {
		return nil, errors.NewValidationError("Invalid system")
	}
	return &ticket.NamedRef{ID: s.ID(), Name: s.Name()}, nil
}

// publish hands an event to the dispatcher. Delivery problems are logged;
// the change that raised the event is already committed.
func publish(p events.EventPublisher, log logger.Interface, event events.DomainEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(event); err != nil {
		log.Warnw("failed to publish event",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"error", err)
	}
}
