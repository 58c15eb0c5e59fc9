package http

import (
	analyticsUsecases "github.com/orris-inc/helpdesk/internal/application/analytics/usecases"
	articleUsecases "github.com/orris-inc/helpdesk/internal/application/article/usecases"
	groupUsecases "github.com/orris-inc/helpdesk/internal/application/group/usecases"
	orgUsecases "github.com/orris-inc/helpdesk/internal/application/organization/usecases"
	permissionApp "github.com/orris-inc/helpdesk/internal/application/permission"
	settingUsecases "github.com/orris-inc/helpdesk/internal/application/setting/usecases"
	systemUsecases "github.com/orris-inc/helpdesk/internal/application/system/usecases"
	tagUsecases "github.com/orris-inc/helpdesk/internal/application/tag/usecases"
	ticketUsecases "github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	typeUsecases "github.com/orris-inc/helpdesk/internal/application/tickettype/usecases"
	userUsecases "github.com/orris-inc/helpdesk/internal/application/user/usecases"
	shareddb "github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Tickets
	createTicket   *ticketUsecases.CreateTicketUseCase
	getTicket      *ticketUsecases.GetTicketUseCase
	listTickets    *ticketUsecases.ListTicketsUseCase
	listAllTickets *ticketUsecases.ListAllTicketsUseCase
	searchTickets  *ticketUsecases.SearchTicketsUseCase
	updateTicket   *ticketUsecases.UpdateTicketUseCase
	updateStatus   *ticketUsecases.UpdateStatusUseCase
	assignTicket   *ticketUsecases.AssignTicketUseCase
	comment        *ticketUsecases.CommentUseCase
	attachment     *ticketUsecases.AttachmentUseCase
	subscription   *ticketUsecases.SubscriptionUseCase
	deleteTicket   *ticketUsecases.DeleteTicketUseCase
	overdue        *ticketUsecases.OverdueTicketsUseCase
	counts         *ticketUsecases.TicketCountsUseCase

	// Catalogue
	manageTypes *typeUsecases.ManageTicketTypesUseCase
	deleteType  *typeUsecases.DeleteTicketTypeUseCase
	tags        *tagUsecases.TagUseCase
	systems     *systemUsecases.SystemUseCase

	// Directory
	groups        *groupUsecases.GroupUseCase
	organizations *orgUsecases.OrganizationUseCase
	getUser       *userUsecases.GetUserUseCase
	roles         *permissionApp.Service

	// Knowledge base
	articles   *articleUsecases.ArticleUseCase
	categories *articleUsecases.CategoryUseCase

	// Settings & reports
	getSettings    *settingUsecases.GetSettingsUseCase
	updateSettings *settingUsecases.UpdateSettingsUseCase
	quickStats     *analyticsUsecases.QuickStatsUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	log := c.log
	perms := c.checker
	hd := c.cfg.Helpdesk

	txm := shareddb.NewTransactionManager(c.db)
	md := markdown.New()
	visibility := ticketUsecases.NewVisibilityResolver(r.groupRepo, perms)
	views := ticketUsecases.NewViewBuilder(r.userRepo, r.groupRepo, r.typeRepo, r.tagRepo, perms)

	c.ucs = &allUseCases{
		createTicket: ticketUsecases.NewCreateTicketUseCase(
			txm, r.counters, r.ticketRepo, r.groupRepo, r.typeRepo, r.tagRepo, r.systemRepo,
			visibility, views, perms, md, c.dispatcher, log,
		),
		getTicket:      ticketUsecases.NewGetTicketUseCase(r.ticketRepo, visibility, views, perms, log),
		listTickets:    ticketUsecases.NewListTicketsUseCase(r.ticketRepo, visibility, views, perms, log),
		listAllTickets: ticketUsecases.NewListAllTicketsUseCase(r.ticketRepo, visibility, views, perms, log),
		searchTickets:  ticketUsecases.NewSearchTicketsUseCase(r.ticketRepo, visibility, views, perms, log),
		updateTicket: ticketUsecases.NewUpdateTicketUseCase(
			r.ticketRepo, r.groupRepo, r.typeRepo, r.tagRepo, r.systemRepo,
			visibility, views, perms, md, c.dispatcher, log,
		),
		updateStatus: ticketUsecases.NewUpdateStatusUseCase(r.ticketRepo, visibility, views, perms, c.dispatcher, log),
		assignTicket: ticketUsecases.NewAssignTicketUseCase(r.ticketRepo, r.userRepo, visibility, views, perms, c.dispatcher, log),
		comment:      ticketUsecases.NewCommentUseCase(r.ticketRepo, visibility, views, perms, md, c.dispatcher, log),
		attachment:   ticketUsecases.NewAttachmentUseCase(r.ticketRepo, visibility, views, perms, c.dispatcher, log),
		subscription: ticketUsecases.NewSubscriptionUseCase(r.ticketRepo, visibility, views, perms, c.dispatcher, log),
		deleteTicket: ticketUsecases.NewDeleteTicketUseCase(r.ticketRepo, visibility, perms, c.dispatcher, log),
		overdue: ticketUsecases.NewOverdueTicketsUseCase(
			r.ticketRepo, visibility, c.cache, perms,
			hd.OverdueThreshold(), hd.OverdueCacheTTL(), log,
		),
		counts: ticketUsecases.NewTicketCountsUseCase(r.ticketRepo, r.groupRepo, r.typeRepo, r.tagRepo, perms, log),

		manageTypes: typeUsecases.NewManageTicketTypesUseCase(r.typeRepo, perms, log),
		deleteType:  typeUsecases.NewDeleteTicketTypeUseCase(txm, r.typeRepo, r.ticketRepo, r.settingRepo, perms, log),
		tags:        tagUsecases.NewTagUseCase(r.tagRepo, perms, log),
		systems:     systemUsecases.NewSystemUseCase(r.systemRepo, r.orgRepo, perms, log),

		groups:        groupUsecases.NewGroupUseCase(r.groupRepo, r.userRepo, r.orgRepo, r.ticketRepo, visibility, perms, log),
		organizations: orgUsecases.NewOrganizationUseCase(r.orgRepo, r.userRepo, perms, log),
		getUser:       userUsecases.NewGetUserUseCase(r.userRepo, perms, log),
		roles:         permissionApp.NewService(c.roles, perms, log),

		articles:   articleUsecases.NewArticleUseCase(txm, r.counters, r.articleRepo, r.categoryRepo, r.orgRepo, perms, md, c.dispatcher, log),
		categories: articleUsecases.NewCategoryUseCase(r.categoryRepo, r.orgRepo, perms, log),

		getSettings:    settingUsecases.NewGetSettingsUseCase(r.settingRepo, perms, log),
		updateSettings: settingUsecases.NewUpdateSettingsUseCase(r.settingRepo, r.typeRepo, perms, log),
		quickStats:     analyticsUsecases.NewQuickStatsUseCase(r.ticketRepo, r.userRepo, c.cache, perms, hd.StatsWindowDays, log),
	}
}
