package user

import "context"

// Repository defines the interface for user data operations
type Repository interface {
	Create(ctx context.Context, user *User) error

	// GetByID returns ErrUserNotFound when no user has the id.
	GetByID(ctx context.Context, id uint) (*User, error)

	// GetByIDs returns the users that exist; unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)

	GetByUsername(ctx context.Context, username string) (*User, error)

	// ListByRole returns every user holding one of the given roles.
	ListByRole(ctx context.Context, roles []string) ([]*User, error)
}
