package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/tag"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type mockTagRepo struct {
	tags []*tag.Tag
	// CreateErr simulates a unique index violation lost to a concurrent insert.
	CreateErr error
}

func (m *mockTagRepo) Create(_ context.Context, t *tag.Tag) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	t.SetID(uint(len(m.tags) + 1))
	m.tags = append(m.tags, t)
	return nil
}

func (m *mockTagRepo) GetByIDs(context.Context, []uint) ([]*tag.Tag, error) { return nil, nil }

func (m *mockTagRepo) GetByNormalized(_ context.Context, normalized string) (*tag.Tag, error) {
	for _, t := range m.tags {
		if t.Normalized() == normalized {
			return t, nil
		}
	}
	return nil, tag.ErrTagNotFound
}

func (m *mockTagRepo) List(context.Context) ([]*tag.Tag, error) { return m.tags, nil }

type allowChecker bool

func (a allowChecker) CanDo(string, string) bool { return bool(a) }

var agent = common.Actor{ID: 2, Role: "support"}

func TestTagUseCase_CreateIsCaseInsensitiveUnique(t *testing.T) {
	repo := &mockTagRepo{}
	uc := NewTagUseCase(repo, allowChecker(true), logger.NewDiscard())
	ctx := context.Background()

	v, err := uc.Create(ctx, CreateTagCommand{Actor: agent, Name: "Billing"})
	require.NoError(t, err)
	assert.Equal(t, "billing", v.Normalized)

	_, err = uc.Create(ctx, CreateTagCommand{Actor: agent, Name: " BILLING "})
	assert.True(t, apperrors.IsConflictError(err))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTagUseCase_CreateRaceMapsToConflict(t *testing.T) {
	repo := &mockTagRepo{CreateErr: tag.ErrTagExists}
	uc := NewTagUseCase(repo, allowChecker(true), logger.NewDiscard())

	_, err := uc.Create(context.Background(), CreateTagCommand{Actor: agent, Name: "Urgent"})
	assert.True(t, apperrors.IsConflictError(err))
}

func TestTagUseCase_CreateRejections(t *testing.T) {
	uc := NewTagUseCase(&mockTagRepo{}, allowChecker(true), logger.NewDiscard())
	_, err := uc.Create(context.Background(), CreateTagCommand{Actor: agent, Name: "  "})
	assert.True(t, apperrors.IsValidationError(err))

	denied := NewTagUseCase(&mockTagRepo{}, allowChecker(false), logger.NewDiscard())
	_, err = denied.Create(context.Background(), CreateTagCommand{Actor: agent, Name: "x"})
	assert.True(t, apperrors.IsForbiddenError(err))
}
