package handlers

import (
	"context"

	analyticsusecases "github.com/orris-inc/helpdesk/internal/application/analytics/usecases"
	articleusecases "github.com/orris-inc/helpdesk/internal/application/article/usecases"
	"github.com/orris-inc/helpdesk/internal/application/common"
	groupusecases "github.com/orris-inc/helpdesk/internal/application/group/usecases"
	orgusecases "github.com/orris-inc/helpdesk/internal/application/organization/usecases"
	"github.com/orris-inc/helpdesk/internal/application/permission"
	settingdto "github.com/orris-inc/helpdesk/internal/application/setting/dto"
	systemusecases "github.com/orris-inc/helpdesk/internal/application/system/usecases"
	tagusecases "github.com/orris-inc/helpdesk/internal/application/tag/usecases"
	typeusecases "github.com/orris-inc/helpdesk/internal/application/tickettype/usecases"
	userdto "github.com/orris-inc/helpdesk/internal/application/user/dto"
)

type TicketTypeManager interface {
	Create(ctx context.Context, cmd typeusecases.CreateTicketTypeCommand) (*typeusecases.TicketTypeView, error)
	List(ctx context.Context) ([]typeusecases.TicketTypeView, error)
	Rename(ctx context.Context, cmd typeusecases.RenameTicketTypeCommand) (*typeusecases.TicketTypeView, error)
}

type TicketTypeDeleter interface {
	Execute(ctx context.Context, cmd typeusecases.DeleteTicketTypeCommand) (*typeusecases.DeleteTicketTypeResult, error)
}

type TagManager interface {
	Create(ctx context.Context, cmd tagusecases.CreateTagCommand) (*tagusecases.TagView, error)
	List(ctx context.Context) ([]tagusecases.TagView, error)
}

type GroupManager interface {
	Create(ctx context.Context, cmd groupusecases.CreateGroupCommand) (*groupusecases.GroupView, error)
	ListVisible(ctx context.Context, actor common.Actor) ([]*groupusecases.GroupView, error)
	Get(ctx context.Context, actor common.Actor, id uint) (*groupusecases.GroupView, error)
	Member(ctx context.Context, cmd groupusecases.MemberCommand) (*groupusecases.GroupView, error)
	Update(ctx context.Context, cmd groupusecases.UpdateGroupCommand) (*groupusecases.GroupView, error)
	Delete(ctx context.Context, actor common.Actor, id uint) error
}

type OrganizationManager interface {
	Create(ctx context.Context, cmd orgusecases.CreateOrganizationCommand) (*orgusecases.OrganizationView, error)
	List(ctx context.Context) ([]*orgusecases.OrganizationView, error)
	Get(ctx context.Context, id uint) (*orgusecases.OrganizationView, error)
	Member(ctx context.Context, cmd orgusecases.MemberCommand) (*orgusecases.OrganizationView, error)
}

type SystemManager interface {
	Create(ctx context.Context, cmd systemusecases.CreateSystemCommand) (*systemusecases.SystemView, error)
	List(ctx context.Context) ([]*systemusecases.SystemView, error)
	ListByOrg(ctx context.Context, orgID uint) ([]*systemusecases.SystemView, error)
	Get(ctx context.Context, id uint) (*systemusecases.SystemView, error)
	Update(ctx context.Context, cmd systemusecases.UpdateSystemCommand) (*systemusecases.SystemView, error)
	Delete(ctx context.Context, actor common.Actor, id uint) error
}

type ArticleManager interface {
	Create(ctx context.Context, cmd articleusecases.CreateArticleCommand) (*articleusecases.ArticleView, error)
	Get(ctx context.Context, actor common.Actor, uid int64) (*articleusecases.ArticleView, error)
	List(ctx context.Context, q articleusecases.ListArticlesQuery) (*articleusecases.ArticleList, error)
	Update(ctx context.Context, cmd articleusecases.UpdateArticleCommand) (*articleusecases.ArticleView, error)
	Apply(ctx context.Context, actor common.Actor, uid int64, action articleusecases.ArticleAction) (*articleusecases.ArticleView, error)
}

type CategoryManager interface {
	Create(ctx context.Context, cmd articleusecases.CreateCategoryCommand) (*articleusecases.CategoryView, error)
	ListByOrg(ctx context.Context, orgID uint) ([]articleusecases.CategoryView, error)
}

type SettingsReader interface {
	GetByCategory(ctx context.Context, actor common.Actor, category string) (*settingdto.CategorySettingsResponse, error)
}

type SettingsWriter interface {
	UpdateCategorySettings(ctx context.Context, actor common.Actor, category string, request settingdto.UpdateCategorySettingsRequest) error
	SetMailerDefaultTicketType(ctx context.Context, actor common.Actor, typeID uint) error
}

type QuickStatsProvider interface {
	Get(ctx context.Context, actor common.Actor) (*analyticsusecases.QuickStats, error)
}

type UserQueries interface {
	ExecuteByID(ctx context.Context, id uint) (*userdto.UserResponse, error)
	Profile(ctx context.Context, id uint) (*userdto.ProfileResponse, error)
	ListAssignable(ctx context.Context, roles []string) ([]*userdto.UserResponse, error)
}

type RoleLister interface {
	ListRoles() []permission.RoleView
}
