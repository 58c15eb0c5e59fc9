package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

var ErrUserNotFound = errors.New("user not found")

// Known roles. The role table decides what each can do.
const (
	RoleAdmin    = "admin"
	RoleAdminOrg = "adminOrg"
	RoleMod      = "mod"
	RoleSupport  = "support"
	RoleUser     = "user"
)

var validRoles = map[string]bool{
	RoleAdmin:    true,
	RoleAdminOrg: true,
	RoleMod:      true,
	RoleSupport:  true,
	RoleUser:     true,
}

// User is the account read model the helpdesk resolves names and roles from.
type User struct {
	id        uint
	username  string
	fullname  string
	email     *vo.Email
	role      string
	createdAt time.Time
}

func NewUser(username, fullname string, email *vo.Email, role string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if !validRoles[role] {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if strings.TrimSpace(fullname) == "" {
		fullname = username
	}

	return &User{
		username:  username,
		fullname:  fullname,
		email:     email,
		role:      role,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructUser(id uint, username, fullname string, email *vo.Email, role string, createdAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	return &User{
		id:        id,
		username:  username,
		fullname:  fullname,
		email:     email,
		role:      role,
		createdAt: createdAt,
	}, nil
}

func (u *User) ID() uint             { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) Fullname() string     { return u.fullname }
func (u *User) Email() *vo.Email     { return u.email }
func (u *User) Role() string         { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	return validRoles[role]
}
