package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/group"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/system"
	"github.com/orris-inc/helpdesk/internal/domain/tag"
	"github.com/orris-inc/helpdesk/internal/domain/tickettype"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/markdown"
)

const (
	supportGroupID uint = 10
	otherGroupID   uint = 20
	publicGroupID  uint = 30

	issueTypeID uint = 1
	taskTypeID  uint = 2

	billingTagID uint = 1
	urgentTagID  uint = 2

	payrollSystemID uint = 1
	retiredSystemID uint = 2
	foreignSystemID uint = 3

	supportOrgID uint = 100
)

var (
	adminActor    = common.Actor{ID: 1, Username: "admin", Fullname: "Ada Admin", Role: user.RoleAdmin}
	agentActor    = common.Actor{ID: 2, Username: "agent", Fullname: "Sam Support", Role: user.RoleSupport}
	customerActor = common.Actor{ID: 3, Username: "customer", Fullname: "Chris Customer", Role: user.RoleUser}
	outsiderActor = common.Actor{ID: 4, Username: "outsider", Fullname: "Olly Outside", Role: user.RoleUser}
)

var testChecker = mockChecker{grants: map[string][]string{
	user.RoleSupport: {
		permission.CapTicketView,
		permission.CapTicketCreate,
		permission.CapTicketEdit,
		permission.CapTicketAssignee,
		permission.CapTicketPublic,
		permission.CapTicketAttach,
		permission.CapTicketDetach,
		permission.CapCommentCreate,
		permission.CapNotesView,
		permission.CapNotesCreate,
	},
	user.RoleUser: {
		permission.CapTicketView,
		permission.CapTicketCreate,
		permission.CapCommentCreate,
	},
}}

type fixture struct {
	tickets   *mockTicketRepo
	groups    *mockGroupRepo
	users     *mockUserRepo
	types     *mockTypeRepo
	tags      *mockTagRepo
	systems   *mockSystemRepo
	seq       *mockSequence
	txm       *mockTransactor
	cache     *mockCache
	publisher *mockPublisher

	visibility *VisibilityResolver
	views      *ViewBuilder
	log        logger.Interface
	md         markdown.Renderer
}

func newTestUser(t *testing.T, a common.Actor) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(a.ID, a.Username, a.Fullname, nil, a.Role, time.Now())
	require.NoError(t, err)
	return u
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	orgID := supportOrgID
	support := group.ReconstructGroup(supportGroupID, "Support", []uint{adminActor.ID, agentActor.ID, customerActor.ID}, nil, false, &orgID)
	other := group.ReconstructGroup(otherGroupID, "Other", []uint{outsiderActor.ID}, nil, false, nil)
	public := group.ReconstructGroup(publicGroupID, "Public", nil, nil, true, nil)

	f := &fixture{
		tickets: newMockTicketRepo(),
		groups:  newMockGroupRepo(support, other, public),
		users: newMockUserRepo(
			newTestUser(t, adminActor),
			newTestUser(t, agentActor),
			newTestUser(t, customerActor),
			newTestUser(t, outsiderActor),
		),
		types: newMockTypeRepo(
			tickettype.ReconstructTicketType(issueTypeID, "Issue"),
			tickettype.ReconstructTicketType(taskTypeID, "Task"),
		),
		tags: newMockTagRepo(
			tag.ReconstructTag(billingTagID, "Billing", tag.Normalize("Billing")),
			tag.ReconstructTag(urgentTagID, "Urgent", tag.Normalize("Urgent")),
		),
		systems: newMockSystemRepo(
			system.ReconstructSystem(payrollSystemID, "Payroll", "erp", "", true, supportOrgID, time.Now(), nil),
			system.ReconstructSystem(retiredSystemID, "Legacy CRM", "crm", "", false, supportOrgID, time.Now(), nil),
			system.ReconstructSystem(foreignSystemID, "Elsewhere", "", "", true, supportOrgID+1, time.Now(), nil),
		),
		seq:       &mockSequence{},
		txm:       &mockTransactor{},
		cache:     newMockCache(),
		publisher: &mockPublisher{},
		log:       logger.NewDiscard(),
		md:        markdown.New(),
	}
	f.visibility = NewVisibilityResolver(f.groups, testChecker)
	f.views = NewViewBuilder(f.users, f.groups, f.types, f.tags, testChecker)
	return f
}

func (f *fixture) createUC() *CreateTicketUseCase {
	return NewCreateTicketUseCase(f.txm, f.seq, f.tickets, f.groups, f.types, f.tags, f.systems,
		f.visibility, f.views, testChecker, f.md, f.publisher, f.log)
}

// createTicket files a ticket in the support group as the customer.
func (f *fixture) createTicket(t *testing.T, subject string) *dto.TicketView {
	t.Helper()
	view, err := f.createUC().Execute(context.Background(), CreateTicketCommand{
		Actor:   customerActor,
		Subject: subject,
		Issue:   "Something is **broken**",
		GroupID: supportGroupID,
		TypeID:  issueTypeID,
	})
	require.NoError(t, err)
	return view
}
