// Package usecases creates and lists ticket tags.
package usecases

import (
	"context"
	"errors"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/tag"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type TagView struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Normalized string `json:"normalized"`
}

type CreateTagCommand struct {
	Actor common.Actor
	Name  string
}

type TagUseCase struct {
	repo   tag.Repository
	perms  common.PermissionChecker
	logger logger.Interface
}

func NewTagUseCase(repo tag.Repository, perms common.PermissionChecker, logger logger.Interface) *TagUseCase {
	return &TagUseCase{repo: repo, perms: perms, logger: logger}
}

// Create adds a tag. Names are unique after case folding.
func (uc *TagUseCase) Create(ctx context.Context, cmd CreateTagCommand) (*TagView, error) {
	uc.logger.Infow("executing create tag use case", "name", cmd.Name, "user_id", cmd.Actor.ID)

	if !cmd.Actor.Can(uc.perms, permission.CapTicketEdit) {
		return nil, apperrors.NewForbiddenError("Not allowed to create tags")
	}
	t, err := tag.NewTag(cmd.Name)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	existing, err := uc.repo.GetByNormalized(ctx, t.Normalized())
	switch {
	case err == nil:
		return nil, apperrors.NewConflictError("Tag already exists", existing.Name())
	case !errors.Is(err, tag.ErrTagNotFound):
		return nil, err
	}

	if err := uc.repo.Create(ctx, t); err != nil {
		if errors.Is(err, tag.ErrTagExists) {
			return nil, apperrors.NewConflictError("Tag already exists", t.Name())
		}
		uc.logger.Errorw("failed to create tag", "name", cmd.Name, "error", err)
		return nil, err
	}

	return &TagView{ID: t.ID(), Name: t.Name(), Normalized: t.Normalized()}, nil
}

func (uc *TagUseCase) List(ctx context.Context) ([]TagView, error) {
	tags, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list tags", "error", err)
		return nil, err
	}
	out := make([]TagView, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagView{ID: t.ID(), Name: t.Name(), Normalized: t.Normalized()})
	}
	return out, nil
}
