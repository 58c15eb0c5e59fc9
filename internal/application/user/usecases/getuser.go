package usecases

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// GetUserUseCase reads accounts for the API.
type GetUserUseCase struct {
	userRepo domainUser.Repository
	perms    permission.Checker
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo domainUser.Repository, perms permission.Checker, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
		perms:    perms,
		logger:   logger,
	}
}

// ExecuteByID retrieves a user by id.
func (uc *GetUserUseCase) ExecuteByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	if id == 0 {
		return nil, apperrors.NewValidationError("user ID cannot be zero")
	}
	u, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(u), nil
}

// Profile returns the caller with the capabilities their current role holds.
func (uc *GetUserUseCase) Profile(ctx context.Context, id uint) (*dto.ProfileResponse, error) {
	u, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	caps := make([]string, 0, len(permission.AllCapabilities))
	for _, c := range permission.AllCapabilities {
		if uc.perms.CanDo(u.Role(), c) {
			caps = append(caps, c)
		}
	}
	sort.Strings(caps)

	return &dto.ProfileResponse{UserResponse: *dto.ToUserResponse(u), Capabilities: caps}, nil
}

// ListAssignable returns the users whose role may hold tickets.
func (uc *GetUserUseCase) ListAssignable(ctx context.Context, roles []string) ([]*dto.UserResponse, error) {
	eligible := make([]string, 0, len(roles))
	for _, r := range roles {
		if uc.perms.CanDo(r, permission.CapTicketAssignee) {
			eligible = append(eligible, r)
		}
	}
	if len(eligible) == 0 {
		return []*dto.UserResponse{}, nil
	}

	users, err := uc.userRepo.ListByRole(ctx, eligible)
	if err != nil {
		uc.logger.Errorw("failed to list assignable users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserResponse(u))
	}
	return out, nil
}

func (uc *GetUserUseCase) load(ctx context.Context, id uint) (*domainUser.User, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		uc.logger.Errorw("failed to get user", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
