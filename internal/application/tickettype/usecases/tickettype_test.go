package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/setting"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/domain/tickettype"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type mockTypeRepo struct {
	types   map[uint]*tickettype.TicketType
	nextID  uint
	deleted []uint
}

func newMockTypeRepo(names ...string) *mockTypeRepo {
	m := &mockTypeRepo{types: map[uint]*tickettype.TicketType{}}
	for _, n := range names {
		m.nextID++
		m.types[m.nextID] = tickettype.ReconstructTicketType(m.nextID, n)
	}
	return m
}

func (m *mockTypeRepo) Create(_ context.Context, t *tickettype.TicketType) error {
	m.nextID++
	t.SetID(m.nextID)
	m.types[t.ID()] = t
	return nil
}

func (m *mockTypeRepo) Update(_ context.Context, t *tickettype.TicketType) error {
	m.types[t.ID()] = t
	return nil
}

func (m *mockTypeRepo) Delete(_ context.Context, id uint) error {
	delete(m.types, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockTypeRepo) GetByID(_ context.Context, id uint) (*tickettype.TicketType, error) {
	t, ok := m.types[id]
	if !ok {
		return nil, tickettype.ErrTypeNotFound
	}
	return t, nil
}

func (m *mockTypeRepo) GetByIDs(context.Context, []uint) ([]*tickettype.TicketType, error) {
	return nil, nil
}

func (m *mockTypeRepo) List(context.Context) ([]*tickettype.TicketType, error) {
	out := []*tickettype.TicketType{}
	for id := uint(1); id <= m.nextID; id++ {
		if t, ok := m.types[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// mockTicketRepo only implements ReassignType; other methods panic via the
// nil embedded interface.
type mockTicketRepo struct {
	ticket.Repository
	ReassignTypeFunc func(ctx context.Context, from, to uint) (int64, error)
	calls            int
}

func (m *mockTicketRepo) ReassignType(ctx context.Context, from, to uint) (int64, error) {
	m.calls++
	return m.ReassignTypeFunc(ctx, from, to)
}

type mockSettingRepo struct {
	setting.Repository
	mailerType *setting.Setting
}

func (m *mockSettingRepo) Get(_ context.Context, category, name string) (*setting.Setting, error) {
	if m.mailerType == nil || category != setting.CategoryMailer || name != setting.KeyMailerTicketType {
		return nil, setting.ErrSettingNotFound
	}
	return m.mailerType, nil
}

type mockTransactor struct{}

func (mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type allowChecker bool

func (a allowChecker) CanDo(string, string) bool { return bool(a) }

var admin = common.Actor{ID: 1, Role: "admin"}

func mailerDefault(t *testing.T, id int) *setting.Setting {
	t.Helper()
	s, err := setting.New(setting.CategoryMailer, setting.KeyMailerTicketType, setting.KindInt, "")
	require.NoError(t, err)
	require.NoError(t, s.Assign(id, 1))
	return s
}

func TestDeleteTicketTypeUseCase_Execute_Reassigns(t *testing.T) {
	types := newMockTypeRepo("Issue", "Task")
	tickets := &mockTicketRepo{ReassignTypeFunc: func(_ context.Context, from, to uint) (int64, error) {
		assert.Equal(t, uint(2), from)
		assert.Equal(t, uint(1), to)
		return 3, nil
	}}
	settings := &mockSettingRepo{mailerType: mailerDefault(t, 1)}
	uc := NewDeleteTicketTypeUseCase(mockTransactor{}, types, tickets, settings, allowChecker(true), logger.NewDiscard())

	res, err := uc.Execute(context.Background(), DeleteTicketTypeCommand{Actor: admin, ID: 2, ReplacementID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Updated)
	assert.Equal(t, []uint{2}, types.deleted)
}

func TestDeleteTicketTypeUseCase_Execute_RefusesMailerDefault(t *testing.T) {
	types := newMockTypeRepo("Issue", "Task")
	tickets := &mockTicketRepo{}
	settings := &mockSettingRepo{mailerType: mailerDefault(t, 1)}
	uc := NewDeleteTicketTypeUseCase(mockTransactor{}, types, tickets, settings, allowChecker(true), logger.NewDiscard())

	_, err := uc.Execute(context.Background(), DeleteTicketTypeCommand{Actor: admin, ID: 1, ReplacementID: 2})
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, MailerDefaultTypeMessage, appErr.Message)
	assert.Zero(t, tickets.calls, "no ticket may be modified")
	assert.Empty(t, types.deleted)
}

func TestDeleteTicketTypeUseCase_Execute_Rejections(t *testing.T) {
	types := newMockTypeRepo("Issue", "Task")
	tickets := &mockTicketRepo{}
	uc := NewDeleteTicketTypeUseCase(mockTransactor{}, types, tickets, &mockSettingRepo{}, allowChecker(true), logger.NewDiscard())
	ctx := context.Background()

	_, err := uc.Execute(ctx, DeleteTicketTypeCommand{Actor: admin, ID: 1, ReplacementID: 1})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(ctx, DeleteTicketTypeCommand{Actor: admin, ID: 9, ReplacementID: 1})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = uc.Execute(ctx, DeleteTicketTypeCommand{Actor: admin, ID: 1, ReplacementID: 9})
	assert.True(t, apperrors.IsValidationError(err))

	denied := NewDeleteTicketTypeUseCase(mockTransactor{}, types, tickets, &mockSettingRepo{}, allowChecker(false), logger.NewDiscard())
	_, err = denied.Execute(ctx, DeleteTicketTypeCommand{Actor: admin, ID: 2, ReplacementID: 1})
	assert.True(t, apperrors.IsForbiddenError(err))

	assert.Zero(t, tickets.calls)
}

func TestDeleteTicketTypeUseCase_Execute_ReassignFailureKeepsType(t *testing.T) {
	types := newMockTypeRepo("Issue", "Task")
	boom := errors.New("lock wait timeout")
	tickets := &mockTicketRepo{ReassignTypeFunc: func(context.Context, uint, uint) (int64, error) {
		return 0, boom
	}}
	uc := NewDeleteTicketTypeUseCase(mockTransactor{}, types, tickets, &mockSettingRepo{}, allowChecker(true), logger.NewDiscard())

	_, err := uc.Execute(context.Background(), DeleteTicketTypeCommand{Actor: admin, ID: 2, ReplacementID: 1})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, types.deleted)
}

func TestManageTicketTypesUseCase(t *testing.T) {
	repo := newMockTypeRepo()
	uc := NewManageTicketTypesUseCase(repo, allowChecker(true), logger.NewDiscard())
	ctx := context.Background()

	created, err := uc.Create(ctx, CreateTicketTypeCommand{Actor: admin, Name: " Question "})
	require.NoError(t, err)
	assert.Equal(t, "Question", created.Name)

	renamed, err := uc.Rename(ctx, RenameTicketTypeCommand{Actor: admin, ID: created.ID, Name: "FAQ"})
	require.NoError(t, err)
	assert.Equal(t, "FAQ", renamed.Name)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []TicketTypeView{{ID: created.ID, Name: "FAQ"}}, list)

	_, err = uc.Create(ctx, CreateTicketTypeCommand{Actor: admin, Name: ""})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Rename(ctx, RenameTicketTypeCommand{Actor: admin, ID: 42, Name: "x"})
	assert.True(t, apperrors.IsNotFoundError(err))
}
