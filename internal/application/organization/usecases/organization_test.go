package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/organization"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type mockOrgRepo struct {
	orgs      []*organization.Organization
	CreateErr error
}

func (m *mockOrgRepo) Create(_ context.Context, o *organization.Organization) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	o.SetID(uint(len(m.orgs) + 1))
	m.orgs = append(m.orgs, o)
	return nil
}

func (m *mockOrgRepo) Update(context.Context, *organization.Organization) error { return nil }

func (m *mockOrgRepo) GetByID(_ context.Context, id uint) (*organization.Organization, error) {
	for _, o := range m.orgs {
		if o.ID() == id {
			return o, nil
		}
	}
	return nil, organization.ErrOrganizationNotFound
}

func (m *mockOrgRepo) List(context.Context) ([]*organization.Organization, error) { return m.orgs, nil }

type mockUserRepo struct {
	user.Repository
}

func (mockUserRepo) GetByID(_ context.Context, id uint) (*user.User, error) {
	if id > 10 {
		return nil, user.ErrUserNotFound
	}
	return user.ReconstructUser(id, "u", "User", nil, "user", time.Now())
}

type allowChecker bool

func (a allowChecker) CanDo(string, string) bool { return bool(a) }

var admin = common.Actor{ID: 1, Role: "admin"}

func TestOrganizationUseCase(t *testing.T) {
	repo := &mockOrgRepo{}
	uc := NewOrganizationUseCase(repo, mockUserRepo{}, allowChecker(true), logger.NewDiscard())
	ctx := context.Background()

	o, err := uc.Create(ctx, CreateOrganizationCommand{Actor: admin, Name: "Acme Corp", ShortName: " ACME "})
	require.NoError(t, err)
	assert.Equal(t, "acme", o.ShortName)

	o, err = uc.Member(ctx, MemberCommand{Actor: admin, OrgID: o.ID, UserID: 3})
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, o.Members)

	_, err = uc.Member(ctx, MemberCommand{Actor: admin, OrgID: o.ID, UserID: 30})
	assert.True(t, apperrors.IsValidationError(err))

	o, err = uc.Member(ctx, MemberCommand{Actor: admin, OrgID: o.ID, UserID: 3, Remove: true})
	require.NoError(t, err)
	assert.Empty(t, o.Members)

	got, err := uc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Name)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.Get(ctx, 99)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestOrganizationUseCase_CreateRejections(t *testing.T) {
	ctx := context.Background()

	denied := NewOrganizationUseCase(&mockOrgRepo{}, mockUserRepo{}, allowChecker(false), logger.NewDiscard())
	_, err := denied.Create(ctx, CreateOrganizationCommand{Actor: admin, Name: "A", ShortName: "a"})
	assert.True(t, apperrors.IsForbiddenError(err))

	uc := NewOrganizationUseCase(&mockOrgRepo{}, mockUserRepo{}, allowChecker(true), logger.NewDiscard())
	_, err = uc.Create(ctx, CreateOrganizationCommand{Actor: admin, Name: "A", ShortName: "a b"})
	assert.True(t, apperrors.IsValidationError(err))

	dup := NewOrganizationUseCase(&mockOrgRepo{CreateErr: errors.New("UNIQUE constraint failed: organizations.short_name")},
		mockUserRepo{}, allowChecker(true), logger.NewDiscard())
	_, err = dup.Create(ctx, CreateOrganizationCommand{Actor: admin, Name: "A", ShortName: "a"})
	assert.True(t, apperrors.IsConflictError(err))
}
