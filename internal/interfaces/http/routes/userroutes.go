package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
)

// UserRouteConfig covers people and how they are grouped: users, roles,
// groups, organizations and the systems an organization runs.
type UserRouteConfig struct {
	UserHandler         *handlers.UserHandler
	GroupHandler        *handlers.GroupHandler
	OrganizationHandler *handlers.OrganizationHandler
	SystemHandler       *handlers.SystemHandler
	ArticleHandler      *handlers.ArticleHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupUserRoutes(api *gin.RouterGroup, config *UserRouteConfig) {
	auth := config.AuthMiddleware.RequireAuth()

	users := api.Group("/users")
	users.Use(auth)
	{
		users.GET("/me", config.UserHandler.GetProfile)
		users.GET("/assignable", config.UserHandler.ListAssignable)
		users.GET("/:id", config.UserHandler.GetUser)
	}

	api.GET("/roles", auth, config.UserHandler.ListRoles)

	groups := api.Group("/groups")
	groups.Use(auth)
	{
		groups.GET("", config.GroupHandler.ListGroups)
		groups.POST("", config.GroupHandler.CreateGroup)
		groups.POST("/:id/members", config.GroupHandler.AddMember)
		groups.DELETE("/:id/members", config.GroupHandler.RemoveMember)
		groups.GET("/:id", config.GroupHandler.GetGroup)
		groups.PATCH("/:id", config.GroupHandler.UpdateGroup)
		groups.DELETE("/:id", config.GroupHandler.DeleteGroup)
	}

	orgs := api.Group("/organizations")
	orgs.Use(auth)
	{
		orgs.GET("", config.OrganizationHandler.ListOrganizations)
		orgs.POST("", config.OrganizationHandler.CreateOrganization)
		orgs.POST("/:id/members", config.OrganizationHandler.AddMember)
		orgs.DELETE("/:id/members", config.OrganizationHandler.RemoveMember)
		orgs.GET("/:id/categories", config.ArticleHandler.ListCategories)
		orgs.POST("/:id/categories", config.ArticleHandler.CreateCategory)
		orgs.GET("/:id/systems", config.SystemHandler.ListOrganizationSystems)
		orgs.POST("/:id/systems", config.SystemHandler.CreateSystem)
		orgs.GET("/:id", config.OrganizationHandler.GetOrganization)
	}

	systems := api.Group("/systems")
	systems.Use(auth)
	{
		systems.GET("", config.SystemHandler.ListSystems)
		systems.GET("/:id", config.SystemHandler.GetSystem)
		systems.PUT("/:id", config.SystemHandler.UpdateSystem)
		systems.DELETE("/:id", config.SystemHandler.DeleteSystem)
	}
}
