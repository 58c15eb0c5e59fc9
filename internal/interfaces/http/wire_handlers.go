package http

import (
	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers"
	ticketHandlers "github.com/orris-inc/helpdesk/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	ticketHandler       *ticketHandlers.TicketHandler
	ticketTypeHandler   *handlers.TicketTypeHandler
	tagHandler          *handlers.TagHandler
	systemHandler       *handlers.SystemHandler
	groupHandler        *handlers.GroupHandler
	organizationHandler *handlers.OrganizationHandler
	articleHandler      *handlers.ArticleHandler
	settingHandler      *handlers.SettingHandler
	analyticsHandler    *handlers.AnalyticsHandler
	userHandler         *handlers.UserHandler
}

func (c *Container) initHandlers() {
	u := c.ucs
	log := c.log
	pageSize := c.cfg.Helpdesk.DefaultPageSize

	c.hdlrs = &allHandlers{
		ticketHandler: ticketHandlers.NewTicketHandler(ticketHandlers.UseCases{
			Create:       u.createTicket,
			Get:          u.getTicket,
			List:         u.listTickets,
			ListAll:      u.listAllTickets,
			Search:       u.searchTickets,
			Update:       u.updateTicket,
			UpdateStatus: u.updateStatus,
			Assign:       u.assignTicket,
			Comment:      u.comment,
			Attachment:   u.attachment,
			Subscription: u.subscription,
			Delete:       u.deleteTicket,
			Overdue:      u.overdue,
			Counts:       u.counts,
		}, pageSize, log),
		ticketTypeHandler:   handlers.NewTicketTypeHandler(u.manageTypes, u.deleteType, log),
		tagHandler:          handlers.NewTagHandler(u.tags, log),
		systemHandler:       handlers.NewSystemHandler(u.systems, log),
		groupHandler:        handlers.NewGroupHandler(u.groups, log),
		organizationHandler: handlers.NewOrganizationHandler(u.organizations, log),
		articleHandler:      handlers.NewArticleHandler(u.articles, u.categories, pageSize, log),
		settingHandler:      handlers.NewSettingHandler(u.getSettings, u.updateSettings, log),
		analyticsHandler:    handlers.NewAnalyticsHandler(u.quickStats, log),
		userHandler:         handlers.NewUserHandler(u.getUser, u.roles, log),
	}
}
