package article

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, a *Article) error
	// Update saves the article and inserts history entries without an id.
	Update(ctx context.Context, a *Article) error
	GetByUID(ctx context.Context, uid int64) (*Article, error)
	List(ctx context.Context, filter Filter) ([]*Article, int64, error)
}

// Filter selects non-deleted articles.
type Filter struct {
	OrgID      uint
	CategoryID uint
	Status     Status
	query.PageFilter
}

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id uint) (*Category, error)
	ListByOrg(ctx context.Context, orgID uint) ([]*Category, error)
}
