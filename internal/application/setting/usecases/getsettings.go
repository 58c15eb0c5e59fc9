package usecases

import (
	"context"
	"errors"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/setting/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/setting"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type GetSettingsUseCase struct {
	settings setting.Repository
	perms    common.PermissionChecker
	logger   logger.Interface
}

func NewGetSettingsUseCase(
	settings setting.Repository,
	perms common.PermissionChecker,
	logger logger.Interface,
) *GetSettingsUseCase {
	return &GetSettingsUseCase{
		settings: settings,
		perms:    perms,
		logger:   logger,
	}
}

// GetByCategory lists stored entries of a category with credentials masked.
func (uc *GetSettingsUseCase) GetByCategory(ctx context.Context, actor common.Actor, category string) (*dto.CategorySettingsResponse, error) {
	if !actor.Can(uc.perms, permission.CapSettingsManage) {
		return nil, apperrors.NewForbiddenError("Not allowed to view settings")
	}

	list, err := uc.settings.ListByCategory(ctx, category)
	if err != nil {
		uc.logger.Errorw("failed to list settings", "category", category, "error", err)
		return nil, err
	}

	resp := &dto.CategorySettingsResponse{
		Category: category,
		Settings: make([]dto.SettingView, 0, len(list)),
	}
	for _, s := range list {
		resp.Settings = append(resp.Settings, dto.ToSettingView(s))
	}
	return resp, nil
}

func (uc *GetSettingsUseCase) MailerDefaultTicketType(ctx context.Context) (uint, bool, error) {
	return MailerDefaultTicketType(ctx, uc.settings)
}

// MailerDefaultTicketType reads the mail importer's ticket type. Unset or
// malformed values count as not configured.
func MailerDefaultTicketType(ctx context.Context, repo setting.Repository) (uint, bool, error) {
	s, err := repo.Get(ctx, setting.CategoryMailer, setting.KeyMailerTicketType)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	id, err := s.Int()
	if err != nil || id <= 0 {
		return 0, false, nil
	}
	return uint(id), true, nil
}
