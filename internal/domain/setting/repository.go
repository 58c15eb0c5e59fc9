package setting

import "context"

type Repository interface {
	// Get returns ErrSettingNotFound when the entry was never written.
	Get(ctx context.Context, category, name string) (*Setting, error)
	ListByCategory(ctx context.Context, category string) ([]*Setting, error)
	// Save inserts or overwrites the entry with the same category and name.
	Save(ctx context.Context, s *Setting) error
}
