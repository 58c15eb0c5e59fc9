package tag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

var (
	ErrTagNotFound = errors.New("tag not found")
	ErrTagExists   = errors.New("tag already exists")
)

var folder = cases.Fold()

type Tag struct {
	id         uint
	name       string
	normalized string
}

func NewTag(name string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tag name is required")
	}
	if len(name) > 64 {
		return nil, fmt.Errorf("tag name too long (max 64 characters)")
	}
	return &Tag{name: name, normalized: Normalize(name)}, nil
}

func ReconstructTag(id uint, name, normalized string) *Tag {
	return &Tag{id: id, name: name, normalized: normalized}
}

// Normalize case-folds a tag name for uniqueness checks.
func Normalize(name string) string {
	return folder.String(strings.TrimSpace(name))
}

func (t *Tag) ID() uint           { return t.id }
func (t *Tag) Name() string       { return t.name }
func (t *Tag) Normalized() string { return t.normalized }

func (t *Tag) SetID(id uint) {
	t.id = id
}

type Repository interface {
	// Create returns ErrTagExists when the normalized name is taken.
	Create(ctx context.Context, t *Tag) error
	GetByIDs(ctx context.Context, ids []uint) ([]*Tag, error)
	GetByNormalized(ctx context.Context, normalized string) (*Tag, error)
	List(ctx context.Context) ([]*Tag, error)
}
