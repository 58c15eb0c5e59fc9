package group

import "context"

type Repository interface {
	Create(ctx context.Context, g *Group) error
	Update(ctx context.Context, g *Group) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Group, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Group, error)
	List(ctx context.Context) ([]*Group, error)
	// MemberGroupIDs returns the ids of groups the user belongs to.
	MemberGroupIDs(ctx context.Context, userID uint) ([]uint, error)
	PublicGroupIDs(ctx context.Context) ([]uint, error)
}
