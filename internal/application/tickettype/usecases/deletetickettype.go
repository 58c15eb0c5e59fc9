package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/common"
	settingusecases "github.com/orris-inc/helpdesk/internal/application/setting/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/setting"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/domain/tickettype"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// MailerDefaultTypeMessage is returned when deleting the mail importer's type.
const MailerDefaultTypeMessage = `Type currently "Default Ticket Type" for mailer check.`

type DeleteTicketTypeCommand struct {
	Actor         common.Actor
	ID            uint
	ReplacementID uint
}

type DeleteTicketTypeResult struct {
	// Updated counts the tickets moved to the replacement type.
	Updated int64 `json:"updated"`
}

type DeleteTicketTypeUseCase struct {
	txm      db.Transactor
	types    tickettype.Repository
	tickets  ticket.Repository
	settings setting.Repository
	perms    common.PermissionChecker
	logger   logger.Interface
}

func NewDeleteTicketTypeUseCase(
	txm db.Transactor,
	types tickettype.Repository,
	tickets ticket.Repository,
	settings setting.Repository,
	perms common.PermissionChecker,
	logger logger.Interface,
) *DeleteTicketTypeUseCase {
	return &DeleteTicketTypeUseCase{
		txm:      txm,
		types:    types,
		tickets:  tickets,
		settings: settings,
		perms:    perms,
		logger:   logger,
	}
}

// Execute moves every ticket of the deleted type to the replacement and then
// removes the type, in one transaction. Nothing changes when the type is the
// mail importer's default.
func (uc *DeleteTicketTypeUseCase) Execute(ctx context.Context, cmd DeleteTicketTypeCommand) (*DeleteTicketTypeResult, error) {
	uc.logger.Infow("executing delete ticket type use case",
		"id", cmd.ID,
		"replacement_id", cmd.ReplacementID,
		"user_id", cmd.Actor.ID,
	)

	if !cmd.Actor.Can(uc.perms, permission.CapSettingsManage) {
		return nil, apperrors.NewForbiddenError("Not allowed to manage ticket types")
	}
	if cmd.ID == 0 || cmd.ReplacementID == 0 {
		return nil, apperrors.NewValidationError("Invalid POST data.")
	}
	if cmd.ID == cmd.ReplacementID {
		return nil, apperrors.NewValidationError(tickettype.ErrSameReplacement.Error())
	}

	defaultID, configured, err := settingusecases.MailerDefaultTicketType(ctx, uc.settings)
	if err != nil {
		uc.logger.Errorw("failed to read mailer default ticket type", "error", err)
		return nil, err
	}
	if configured && defaultID == cmd.ID {
		return nil, apperrors.NewValidationError(MailerDefaultTypeMessage)
	}

	if _, err := uc.types.GetByID(ctx, cmd.ID); err != nil {
		return nil, mapTypeError(err)
	}
	if _, err := uc.types.GetByID(ctx, cmd.ReplacementID); err != nil {
		if apperrors.IsNotFoundError(mapTypeError(err)) {
			return nil, apperrors.NewValidationError("Invalid replacement ticket type")
		}
		return nil, err
	}

	var updated int64
	err = uc.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		n, err := uc.tickets.ReassignType(ctx, cmd.ID, cmd.ReplacementID)
		if err != nil {
			return err
		}
		updated = n
		return uc.types.Delete(ctx, cmd.ID)
	})
	if err != nil {
		uc.logger.Errorw("failed to delete ticket type", "id", cmd.ID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket type deleted", "id", cmd.ID, "tickets_updated", updated)
	return &DeleteTicketTypeResult{Updated: updated}, nil
}
