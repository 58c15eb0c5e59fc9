package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/organization"
	"github.com/orris-inc/helpdesk/internal/domain/system"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type mockSystemRepo struct {
	systems []*system.System
	inUse   map[uint]bool
}

func (m *mockSystemRepo) Create(_ context.Context, s *system.System) error {
	for _, existing := range m.systems {
		if existing.OrgID() == s.OrgID() && existing.Name() == s.Name() {
			return system.ErrSystemExists
		}
	}
	s.SetID(uint(len(m.systems) + 1))
	m.systems = append(m.systems, s)
	return nil
}

func (m *mockSystemRepo) Update(context.Context, *system.System) error { return nil }

func (m *mockSystemRepo) Delete(_ context.Context, id uint) error {
	if m.inUse[id] {
		return system.ErrSystemInUse
	}
	for i, s := range m.systems {
		if s.ID() == id {
			m.systems = append(m.systems[:i], m.systems[i+1:]...)
			return nil
		}
	}
	return system.ErrSystemNotFound
}

func (m *mockSystemRepo) GetByID(_ context.Context, id uint) (*system.System, error) {
	for _, s := range m.systems {
		if s.ID() == id {
			return s, nil
		}
	}
	return nil, system.ErrSystemNotFound
}

func (m *mockSystemRepo) List(context.Context) ([]*system.System, error) { return m.systems, nil }

func (m *mockSystemRepo) ListByOrg(_ context.Context, orgID uint) ([]*system.System, error) {
	out := []*system.System{}
	for _, s := range m.systems {
		if s.OrgID() == orgID {
			out = append(out, s)
		}
	}
	return out, nil
}

type mockOrgRepo struct {
	organization.Repository
}

func (mockOrgRepo) GetByID(_ context.Context, id uint) (*organization.Organization, error) {
	if id > 10 {
		return nil, organization.ErrOrganizationNotFound
	}
	return organization.ReconstructOrganization(id, "Acme", "acme", nil), nil
}

type allowChecker bool

func (a allowChecker) CanDo(string, string) bool { return bool(a) }

var admin = common.Actor{ID: 1, Role: "admin"}

func TestSystemUseCase(t *testing.T) {
	repo := &mockSystemRepo{inUse: map[uint]bool{}}
	uc := NewSystemUseCase(repo, mockOrgRepo{}, allowChecker(true), logger.NewDiscard())
	ctx := context.Background()

	payroll, err := uc.Create(ctx, CreateSystemCommand{Actor: admin, OrgID: 1, Name: " Payroll ", Type: "erp"})
	require.NoError(t, err)
	assert.Equal(t, "Payroll", payroll.Name)
	assert.True(t, payroll.Status)

	_, err = uc.Create(ctx, CreateSystemCommand{Actor: admin, OrgID: 2, Name: "Mail"})
	require.NoError(t, err)

	byOrg, err := uc.ListByOrg(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byOrg, 1)
	assert.Equal(t, payroll.ID, byOrg[0].ID)

	all, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	updated, err := uc.Update(ctx, UpdateSystemCommand{Actor: admin, ID: payroll.ID, Name: "Payroll", Type: "saas", Status: false})
	require.NoError(t, err)
	assert.False(t, updated.Status)
	assert.Equal(t, "saas", updated.Type)
	assert.NotNil(t, updated.EditDate)

	repo.inUse[payroll.ID] = true
	err = uc.Delete(ctx, admin, payroll.ID)
	assert.True(t, apperrors.IsConflictError(err))
	assert.Equal(t, "Unable to delete system. System has tickets.", apperrors.GetAppError(err).Message)

	repo.inUse[payroll.ID] = false
	require.NoError(t, uc.Delete(ctx, admin, payroll.ID))
	_, err = uc.Get(ctx, payroll.ID)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestSystemUseCase_Rejections(t *testing.T) {
	ctx := context.Background()

	denied := NewSystemUseCase(&mockSystemRepo{}, mockOrgRepo{}, allowChecker(false), logger.NewDiscard())
	_, err := denied.Create(ctx, CreateSystemCommand{Actor: admin, OrgID: 1, Name: "Payroll"})
	assert.True(t, apperrors.IsForbiddenError(err))
	_, err = denied.Update(ctx, UpdateSystemCommand{Actor: admin, ID: 1, Name: "Payroll"})
	assert.True(t, apperrors.IsForbiddenError(err))
	assert.True(t, apperrors.IsForbiddenError(denied.Delete(ctx, admin, 1)))

	uc := NewSystemUseCase(&mockSystemRepo{}, mockOrgRepo{}, allowChecker(true), logger.NewDiscard())
	tests := []struct {
		name  string
		cmd   CreateSystemCommand
		check func(error) bool
	}{
		{"unknown organization", CreateSystemCommand{Actor: admin, OrgID: 99, Name: "Payroll"}, apperrors.IsValidationError},
		{"blank name", CreateSystemCommand{Actor: admin, OrgID: 1, Name: " "}, apperrors.IsValidationError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.cmd)
			assert.True(t, tt.check(err), "got %v", err)
		})
	}

	_, err = uc.Create(ctx, CreateSystemCommand{Actor: admin, OrgID: 1, Name: "Payroll"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, CreateSystemCommand{Actor: admin, OrgID: 1, Name: "Payroll"})
	assert.True(t, apperrors.IsConflictError(err))

	_, err = uc.Update(ctx, UpdateSystemCommand{Actor: admin, ID: 42, Name: "Payroll"})
	assert.True(t, apperrors.IsNotFoundError(err))
}
