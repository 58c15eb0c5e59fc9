package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/article"
	"github.com/orris-inc/helpdesk/internal/domain/organization"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type CreateCategoryCommand struct {
	Actor common.Actor
	OrgID uint
	Name  string
}

type CategoryUseCase struct {
	repo   article.CategoryRepository
	orgs   organization.Repository
	perms  common.PermissionChecker
	logger logger.Interface
}

func NewCategoryUseCase(
	repo article.CategoryRepository,
	orgs organization.Repository,
	perms common.PermissionChecker,
	logger logger.Interface,
) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, orgs: orgs, perms: perms, logger: logger}
}

// Create adds a category. The first category of an organization becomes
// its default.
func (uc *CategoryUseCase) Create(ctx context.Context, cmd CreateCategoryCommand) (*CategoryView, error) {
	uc.logger.Infow("executing create category use case", "org_id", cmd.OrgID, "name", cmd.Name, "user_id", cmd.Actor.ID)

	if !cmd.Actor.Can(uc.perms, permission.CapArticlesEdit) {
		return nil, apperrors.NewForbiddenError("Not allowed to manage categories")
	}
	if _, err := uc.orgs.GetByID(ctx, cmd.OrgID); err != nil {
		return nil, toAppError(err)
	}
	existing, err := uc.repo.ListByOrg(ctx, cmd.OrgID)
	if err != nil {
		return nil, err
	}

	c, err := article.NewCategory(cmd.Name, cmd.OrgID, cmd.Actor.ID, len(existing) == 0)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		uc.logger.Errorw("failed to create category", "org_id", cmd.OrgID, "error", err)
		return nil, err
	}

	v := toCategoryView(c)
	return &v, nil
}

func (uc *CategoryUseCase) ListByOrg(ctx context.Context, orgID uint) ([]CategoryView, error) {
	cats, err := uc.repo.ListByOrg(ctx, orgID)
	if err != nil {
		uc.logger.Errorw("failed to list categories", "org_id", orgID, "error", err)
		return nil, err
	}
	out := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryView(c))
	}
	return out, nil
}
