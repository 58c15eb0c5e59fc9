package usecases

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/setting/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/setting"
	"github.com/orris-inc/helpdesk/internal/domain/tickettype"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type UpdateSettingsUseCase struct {
	settings setting.Repository
	types    tickettype.Repository
	perms    common.PermissionChecker
	logger   logger.Interface
}

func NewUpdateSettingsUseCase(
	settings setting.Repository,
	types tickettype.Repository,
	perms common.PermissionChecker,
	logger logger.Interface,
) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{
		settings: settings,
		types:    types,
		perms:    perms,
		logger:   logger,
	}
}

// UpdateCategorySettings writes each entry of the request in name order and
// stops at the first invalid one.
func (uc *UpdateSettingsUseCase) UpdateCategorySettings(
	ctx context.Context,
	actor common.Actor,
	category string,
	request dto.UpdateCategorySettingsRequest,
) error {
	if !actor.Can(uc.perms, permission.CapSettingsManage) {
		return apperrors.NewForbiddenError("Not allowed to edit settings")
	}

	uc.logger.Infow("updating settings", "category", category, "count", len(request.Settings), "user_id", actor.ID)

	for _, name := range slices.Sorted(maps.Keys(request.Settings)) {
		value := request.Settings[name]

		if category == setting.CategoryMailer && name == setting.KeyMailerTicketType {
			id, ok := value.(float64)
			if !ok || id <= 0 || id != float64(uint(id)) {
				return apperrors.NewValidationError("Invalid ticket type")
			}
			if err := uc.SetMailerDefaultTicketType(ctx, actor, uint(id)); err != nil {
				return err
			}
			continue
		}

		if err := uc.save(ctx, category, name, value, actor.ID); err != nil {
			return err
		}
	}
	return nil
}

// SetMailerDefaultTicketType points the mail importer at an existing type.
func (uc *UpdateSettingsUseCase) SetMailerDefaultTicketType(ctx context.Context, actor common.Actor, typeID uint) error {
	if !actor.Can(uc.perms, permission.CapSettingsManage) {
		return apperrors.NewForbiddenError("Not allowed to edit settings")
	}

	if _, err := uc.types.GetByID(ctx, typeID); err != nil {
		if errors.Is(err, tickettype.ErrTypeNotFound) {
			return apperrors.NewValidationError("Invalid ticket type")
		}
		return err
	}

	uc.logger.Infow("mailer default ticket type changed", "type_id", typeID, "user_id", actor.ID)
	return uc.save(ctx, setting.CategoryMailer, setting.KeyMailerTicketType, typeID, actor.ID)
}

func (uc *UpdateSettingsUseCase) save(ctx context.Context, category, name string, value any, by uint) error {
	s, err := uc.settings.Get(ctx, category, name)
	switch {
	case errors.Is(err, setting.ErrSettingNotFound):
		s, err = setting.New(category, name, setting.KindOf(value), "")
		if err != nil {
			return apperrors.NewValidationError("Invalid setting", err.Error())
		}
	case err != nil:
		return err
	}

	if err := s.Assign(value, by); err != nil {
		return apperrors.NewValidationError("Invalid setting value", err.Error())
	}

	if err := uc.settings.Save(ctx, s); err != nil {
		return fmt.Errorf("failed to save setting %s: %w", s.Path(), err)
	}
	return nil
}
