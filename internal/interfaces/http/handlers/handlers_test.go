package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsusecases "github.com/orris-inc/helpdesk/internal/application/analytics/usecases"
	articleusecases "github.com/orris-inc/helpdesk/internal/application/article/usecases"
	"github.com/orris-inc/helpdesk/internal/application/common"
	groupusecases "github.com/orris-inc/helpdesk/internal/application/group/usecases"
	"github.com/orris-inc/helpdesk/internal/application/permission"
	systemusecases "github.com/orris-inc/helpdesk/internal/application/system/usecases"
	typeusecases "github.com/orris-inc/helpdesk/internal/application/tickettype/usecases"
	userdto "github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

var admin = common.Actor{ID: 1, Username: "admin", Fullname: "Admin", Role: "admin"}

type fakeTypeDeleter struct {
	got    typeusecases.DeleteTicketTypeCommand
	result *typeusecases.DeleteTicketTypeResult
	err    error
}

func (f *fakeTypeDeleter) Execute(_ context.Context, cmd typeusecases.DeleteTicketTypeCommand) (*typeusecases.DeleteTicketTypeResult, error) {
	f.got = cmd
	return f.result, f.err
}

func TestDeleteTicketType_ReportsUpdatedCount(t *testing.T) {
	deleter := &fakeTypeDeleter{result: &typeusecases.DeleteTicketTypeResult{Updated: 3}}
	h := NewTicketTypeHandler(nil, deleter, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/tickettypes/2", map[string]uint{"newTypeId": 5})
	testutil.SetAuthContext(c, admin)
	testutil.SetURLParam(c, "id", "2")

	h.DeleteTicketType(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(2), deleter.got.ID)
	assert.Equal(t, uint(5), deleter.got.ReplacementID)

	var data struct {
		Updated int64 `json:"updated"`
	}
	require.NoError(t, testutil.DecodeData(testutil.Decode(t, w), &data))
	assert.Equal(t, int64(3), data.Updated)
}

func TestDeleteTicketType_MailerDefaultRefused(t *testing.T) {
	deleter := &fakeTypeDeleter{err: errors.NewValidationError(typeusecases.MailerDefaultTypeMessage)}
	h := NewTicketTypeHandler(nil, deleter, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/tickettypes/1", map[string]uint{"newTypeId": 5})
	testutil.SetAuthContext(c, admin)
	testutil.SetURLParam(c, "id", "1")

	h.DeleteTicketType(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := testutil.Decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, typeusecases.MailerDefaultTypeMessage, resp.Error.Message)
}

func TestDeleteTicketType_BadID(t *testing.T) {
	deleter := &fakeTypeDeleter{}
	h := NewTicketTypeHandler(nil, deleter, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/tickettypes/x", map[string]uint{"newTypeId": 5})
	testutil.SetAuthContext(c, admin)
	testutil.SetURLParam(c, "id", "x")

	h.DeleteTicketType(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid POST data.", testutil.Decode(t, w).Error.Message)
	assert.Zero(t, deleter.got.ID)
}

type fakeGroups struct {
	GroupManager
	deleteErr error
	member    groupusecases.MemberCommand
}

func (f *fakeGroups) Delete(_ context.Context, _ common.Actor, _ uint) error {
	return f.deleteErr
}

func (f *fakeGroups) Member(_ context.Context, cmd groupusecases.MemberCommand) (*groupusecases.GroupView, error) {
	f.member = cmd
	return &groupusecases.GroupView{ID: cmd.GroupID, Members: []uint{cmd.UserID}}, nil
}

func TestDeleteGroup_WithTickets(t *testing.T) {
	groups := &fakeGroups{deleteErr: errors.NewConflictError("Unable to delete group. Group has tickets.")}
	h := NewGroupHandler(groups, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/groups/3", nil)
	testutil.SetAuthContext(c, admin)
	testutil.SetURLParam(c, "id", "3")

	h.DeleteGroup(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGroupMembers(t *testing.T) {
	groups := &fakeGroups{}
	h := NewGroupHandler(groups, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/groups/3/members", map[string]uint{"user": 9})
	testutil.SetAuthContext(c, admin)
	testutil.SetURLParam(c, "id", "3")

	h.RemoveMember(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, groups.member.Remove)
	assert.Equal(t, uint(9), groups.member.UserID)
	assert.Equal(t, uint(3), groups.member.GroupID)
}

type fakeArticles struct {
	ArticleManager
	action articleusecases.ArticleAction
	query  articleusecases.ListArticlesQuery
}

func (f *fakeArticles) Apply(_ context.Context, _ common.Actor, uid int64, action articleusecases.ArticleAction) (*articleusecases.ArticleView, error) {
	f.action = action
	return &articleusecases.ArticleView{UID: uid}, nil
}

func (f *fakeArticles) List(_ context.Context, q articleusecases.ListArticlesQuery) (*articleusecases.ArticleList, error) {
	f.query = q
	return &articleusecases.ArticleList{Items: []*articleusecases.ArticleView{}, Page: q.Page, Limit: q.Limit}, nil
}

func TestArticleActions(t *testing.T) {
	articles := &fakeArticles{}
	h := NewArticleHandler(articles, nil, 10, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/articles/1001/like", nil)
	testutil.SetAuthContext(c, admin)
	testutil.SetURLParam(c, "uid", "1001")
	testutil.SetURLParam(c, "action", "like")
	h.ApplyAction(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, articleusecases.ActionLike, articles.action)

	c, w = testutil.NewTestContext(http.MethodDelete, "/articles/1001", nil)
	testutil.SetAuthContext(c, admin)
	testutil.SetURLParam(c, "uid", "1001")
	h.DeleteArticle(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, articleusecases.ActionDelete, articles.action)
}

func TestListArticles_Filters(t *testing.T) {
	articles := &fakeArticles{}
	h := NewArticleHandler(articles, nil, 10, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/articles?organization=2&category=4&status=published&limit=-1", nil)
	testutil.SetAuthContext(c, admin)
	h.ListArticles(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(2), articles.query.OrgID)
	assert.Equal(t, uint(4), articles.query.CategoryID)
	assert.Equal(t, "published", articles.query.Status)
	assert.Equal(t, -1, articles.query.Limit)

	c, w = testutil.NewTestContext(http.MethodGet, "/articles?organization=abc", nil)
	testutil.SetAuthContext(c, admin)
	h.ListArticles(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type fakeStats struct {
	stats *analyticsusecases.QuickStats
	err   error
}

func (f *fakeStats) Get(_ context.Context, _ common.Actor) (*analyticsusecases.QuickStats, error) {
	return f.stats, f.err
}

func TestGetQuickStats(t *testing.T) {
	h := NewAnalyticsHandler(&fakeStats{err: errors.NewForbiddenError("Not allowed to view reports")}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/analytics/quickstats", nil)
	h.GetQuickStats(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/analytics/quickstats", nil)
	testutil.SetAuthContext(c, common.Actor{ID: 5, Role: "user"})
	h.GetQuickStats(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

type fakeUsers struct {
	UserQueries
	roles []string
}

func (f *fakeUsers) ListAssignable(_ context.Context, roles []string) ([]*userdto.UserResponse, error) {
	f.roles = roles
	return []*userdto.UserResponse{}, nil
}

type fakeRoles []permission.RoleView

func (f fakeRoles) ListRoles() []permission.RoleView { return f }

func TestListAssignable_PassesEveryRole(t *testing.T) {
	users := &fakeUsers{}
	roles := fakeRoles{{ID: "admin"}, {ID: "support"}, {ID: "user"}}
	h := NewUserHandler(users, roles, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/users/assignable", nil)
	testutil.SetAuthContext(c, admin)
	h.ListAssignable(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"admin", "support", "user"}, users.roles)
}

type fakeSystems struct {
	SystemManager
	created   systemusecases.CreateSystemCommand
	updated   systemusecases.UpdateSystemCommand
	listedOrg uint
	deleteErr error
}

func (f *fakeSystems) Create(_ context.Context, cmd systemusecases.CreateSystemCommand) (*systemusecases.SystemView, error) {
	f.created = cmd
	return &systemusecases.SystemView{ID: 1, Name: cmd.Name, OrgID: cmd.OrgID, Status: true}, nil
}

func (f *fakeSystems) Update(_ context.Context, cmd systemusecases.UpdateSystemCommand) (*systemusecases.SystemView, error) {
	f.updated = cmd
	return &systemusecases.SystemView{ID: cmd.ID, Name: cmd.Name, Status: cmd.Status}, nil
}

func (f *fakeSystems) ListByOrg(_ context.Context, orgID uint) ([]*systemusecases.SystemView, error) {
	f.listedOrg = orgID
	return []*systemusecases.SystemView{{ID: 1, OrgID: orgID}}, nil
}

func (f *fakeSystems) Delete(context.Context, common.Actor, uint) error {
	return f.deleteErr
}

func TestCreateSystem(t *testing.T) {
	systems := &fakeSystems{}
	h := NewSystemHandler(systems, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/organizations/4/systems", map[string]string{
		"name":        "Payroll",
		"type":        "erp",
		"description": "monthly runs",
	})
	testutil.SetAuthContext(c, admin)
	testutil.SetURLParam(c, "id", "4")

	h.CreateSystem(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(4), systems.created.OrgID)
	assert.Equal(t, "Payroll", systems.created.Name)
	assert.Equal(t, "monthly runs", systems.created.Description)
	assert.Equal(t, admin, systems.created.Actor)
}

func TestUpdateSystem(t *testing.T) {
	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"deactivate", map[string]any{"name": "Payroll", "desc": "retired", "status": false}, http.StatusOK},
		{"status required", map[string]any{"name": "Payroll"}, http.StatusBadRequest},
		{"name required", map[string]any{"status": true}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			systems := &fakeSystems{}
			h := NewSystemHandler(systems, testutil.NewMockLogger())

			c, w := testutil.NewTestContext(http.MethodPut, "/systems/2", tt.body)
			testutil.SetAuthContext(c, admin)
			testutil.SetURLParam(c, "id", "2")

			h.UpdateSystem(c)

			require.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, uint(2), systems.updated.ID)
				assert.Equal(t, "retired", systems.updated.Description)
				assert.False(t, systems.updated.Status)
			}
		})
	}
}

func TestListOrganizationSystems(t *testing.T) {
	systems := &fakeSystems{}
	h := NewSystemHandler(systems, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/organizations/4/systems", nil)
	testutil.SetAuthContext(c, admin)
	testutil.SetURLParam(c, "id", "4")

	h.ListOrganizationSystems(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(4), systems.listedOrg)
}

func TestDeleteSystem_WithTickets(t *testing.T) {
	systems := &fakeSystems{deleteErr: errors.NewConflictError("Unable to delete system. System has tickets.")}
	h := NewSystemHandler(systems, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/systems/3", nil)
	testutil.SetAuthContext(c, admin)
	testutil.SetURLParam(c, "id", "3")

	h.DeleteSystem(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
