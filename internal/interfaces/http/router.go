package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orris-inc/helpdesk/internal/infrastructure/ratelimit"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/routes"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
	"github.com/orris-inc/helpdesk/internal/shared/version"
)

// Router owns the gin engine and the container behind it.
type Router struct {
	*Container
}

func NewRouter(c *Container) *Router {
	return &Router{Container: c}
}

// SetupRoutes configures middleware and every HTTP route.
func (r *Router) SetupRoutes() {
	e := r.engine
	e.Use(middleware.RequestID())
	e.Use(middleware.CustomLogger(r.log))
	e.Use(middleware.Recovery(r.log))
	e.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	e.Use(middleware.SecurityHeaders())

	limits := ratelimit.Limits{
		PerMinute: r.cfg.Server.RateLimitPerMinute,
		PerHour:   r.cfg.Server.RateLimitPerHour,
	}
	if r.redis != nil && limits.Enabled() {
		e.Use(middleware.RateLimit(ratelimit.NewRedisLimiter(r.redis), limits, r.log))
	}

	e.GET("/health", r.health)
	e.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := e.Group("/api/v1")
	h := r.hdlrs

	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:  h.ticketHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupSettingRoutes(api, &routes.SettingRouteConfig{
		SettingHandler:       h.settingHandler,
		TicketTypeHandler:    h.ticketTypeHandler,
		TagHandler:           h.tagHandler,
		AnalyticsHandler:     h.analyticsHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:         h.userHandler,
		GroupHandler:        h.groupHandler,
		OrganizationHandler: h.organizationHandler,
		SystemHandler:       h.systemHandler,
		ArticleHandler:      h.articleHandler,
		AuthMiddleware:      r.authMiddleware,
	})
	routes.SetupArticleRoutes(api, &routes.ArticleRouteConfig{
		ArticleHandler: h.articleHandler,
		AuthMiddleware: r.authMiddleware,
	})
}

func (r *Router) health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK
	if sqlDB, err := r.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	utils.SuccessResponse(c, code, status, gin.H{
		"version": version.Version,
	})
}

// Handler exposes the engine for http.Server.
func (r *Router) Handler() http.Handler {
	return r.engine
}
