package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

// CreateUserUseCase provisions accounts. It backs the `user create` command;
// there is no self-service sign up.
type CreateUserUseCase struct {
	userRepo domainUser.Repository
	logger   logger.Interface
}

func NewCreateUserUseCase(userRepo domainUser.Repository, logger logger.Interface) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, request dto.CreateUserRequest) (*dto.UserResponse, error) {
	uc.logger.Infow("executing create user use case", "username", request.Username, "role", request.Role)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, err
	}
	if !domainUser.IsValidRole(request.Role) {
		return nil, apperrors.NewValidationError("invalid role", request.Role)
	}

	existing, err := uc.userRepo.GetByUsername(ctx, request.Username)
	switch {
	case err == nil && existing != nil:
		uc.logger.Warnw("username already taken", "username", request.Username)
		return nil, apperrors.NewConflictError("user with this username already exists", request.Username)
	case err != nil && !errors.Is(err, domainUser.ErrUserNotFound):
		uc.logger.Errorw("database error while checking for existing user", "username", request.Username, "error", err)
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	email, err := vo.NewEmail(request.Email)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid email", err.Error())
	}

	userEntity, err := domainUser.NewUser(request.Username, request.Fullname, email, request.Role)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid user", err.Error())
	}

	if err := uc.userRepo.Create(ctx, userEntity); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, apperrors.NewConflictError("user with this username or email already exists", request.Username)
		}
		uc.logger.Errorw("failed to persist user", "error", err)
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	response := dto.ToUserResponse(userEntity)
	uc.logger.Infow("user created successfully", "id", response.ID, "username", response.Username)
	return response, nil
}
