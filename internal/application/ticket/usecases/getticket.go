package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	Actor common.Actor
	UID   int64
}

type GetTicketUseCase struct {
	access ticketAccess
	views  *ViewBuilder
	perms  common.PermissionChecker
	logger logger.Interface
}

func NewGetTicketUseCase(
	repo ticket.Repository,
	visibility *VisibilityResolver,
	views *ViewBuilder,
	perms common.PermissionChecker,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		access: ticketAccess{repo: repo, visibility: visibility},
		views:  views,
		perms:  perms,
		logger: logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketView, error) {
	uc.logger.Debugw("executing get ticket use case", "uid", query.UID, "user_id", query.Actor.ID)

	if !query.Actor.Can(uc.perms, permission.CapTicketView) {
		return nil, errors.NewForbiddenError("Not allowed to view tickets")
	}

	t, err := uc.access.load(ctx, query.Actor, query.UID)
	if err != nil {
		return nil, err
	}
	return uc.views.One(ctx, query.Actor, t)
}
