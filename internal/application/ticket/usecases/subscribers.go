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

// SubscriptionCommand subscribes or unsubscribes UserID. Zero means the
// caller.
type SubscriptionCommand struct {
	Actor     common.Actor
	UID       int64
	UserID    uint
	Subscribe bool
}

type SubscriptionUseCase struct {
	access    ticketAccess
	views     *ViewBuilder
	perms     common.PermissionChecker
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewSubscriptionUseCase(
	repo ticket.Repository,
	visibility *VisibilityResolver,
	views *ViewBuilder,
	perms common.PermissionChecker,
	publisher events.EventPublisher,
	logger logger.Interface,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		access:    ticketAccess{repo: repo, visibility: visibility},
		views:     views,
		perms:     perms,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *SubscriptionUseCase) Execute(ctx context.Context, cmd SubscriptionCommand) (*dto.TicketView, error) {
	uc.logger.Infow("executing ticket subscription use case",
		"uid", cmd.UID,
		"subscribe", cmd.Subscribe,
		"user_id", cmd.Actor.ID,
	)

	userID := cmd.UserID
	if userID == 0 {
		userID = cmd.Actor.ID
	}
	if userID != cmd.Actor.ID && !cmd.Actor.Can(uc.perms, permission.CapTicketEdit) {
		return nil, errors.NewForbiddenError("Not allowed to change other subscriptions")
	}

	t, err := uc.access.load(ctx, cmd.Actor, cmd.UID)
	if err != nil {
		return nil, err
	}

	var changed bool
	if cmd.Subscribe {
		changed = t.AddSubscriber(userID)
	} else {
		changed = t.RemoveSubscriber(userID)
	}
	if !changed {
		return uc.views.One(ctx, cmd.Actor, t)
	}

	if err := uc.access.save(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket subscribers", "uid", cmd.UID, "error", err)
		return nil, err
	}

	publish(uc.publisher, uc.logger, ticket.NewSubscribersEvent(t, cmd.Actor.ID))
	return uc.views.One(ctx, cmd.Actor, t)
}
