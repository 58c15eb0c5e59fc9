package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
)

// SettingRouteConfig covers the administrative catalogue: settings, ticket
// types, tags and reports.
type SettingRouteConfig struct {
	SettingHandler       *handlers.SettingHandler
	TicketTypeHandler    *handlers.TicketTypeHandler
	TagHandler           *handlers.TagHandler
	AnalyticsHandler     *handlers.AnalyticsHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupSettingRoutes(api *gin.RouterGroup, config *SettingRouteConfig) {
	auth := config.AuthMiddleware.RequireAuth()

	settings := api.Group("/settings")
	settings.Use(auth, config.PermissionMiddleware.RequireCapability(permission.CapSettingsManage))
	{
		settings.PUT("/mailer/default-type", config.SettingHandler.SetMailerDefaultType)

		settings.GET("/:category", config.SettingHandler.GetCategorySettings)
		settings.PUT("/:category", config.SettingHandler.UpdateCategorySettings)
	}

	types := api.Group("/tickettypes")
	types.Use(auth)
	{
		types.GET("", config.TicketTypeHandler.ListTicketTypes)
		types.POST("", config.TicketTypeHandler.CreateTicketType)
		types.PUT("/:id", config.TicketTypeHandler.RenameTicketType)
		types.DELETE("/:id", config.TicketTypeHandler.DeleteTicketType)
	}

	tags := api.Group("/tags")
	tags.Use(auth)
	{
		tags.GET("", config.TagHandler.ListTags)
		tags.POST("", config.TagHandler.CreateTag)
	}

	analytics := api.Group("/analytics")
	analytics.Use(auth, config.PermissionMiddleware.RequireCapability(permission.CapReportsView))
	{
		analytics.GET("/quickstats", config.AnalyticsHandler.GetQuickStats)
	}
}
