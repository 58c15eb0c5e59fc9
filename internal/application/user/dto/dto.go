package dto

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/user"
)

// CreateUserRequest provisions an account from the CLI.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Fullname string `json:"fullname" validate:"max=100"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileResponse adds the caller's capabilities.
type ProfileResponse struct {
	UserResponse
	Capabilities []string `json:"capabilities"`
}

func ToUserResponse(u *user.User) *UserResponse {
	resp := &UserResponse{
		ID:        u.ID(),
		Username:  u.Username(),
		Fullname:  u.Fullname(),
		Role:      u.Role(),
		CreatedAt: u.CreatedAt(),
	}
	if u.Email() != nil {
		resp.Email = u.Email().String()
	}
	return resp
}
