package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/shared/events"
	"github.com/orris-inc/helpdesk/internal/infrastructure/auth"
	"github.com/orris-inc/helpdesk/internal/infrastructure/cache"
	"github.com/orris-inc/helpdesk/internal/infrastructure/config"
	"github.com/orris-inc/helpdesk/internal/infrastructure/pubsub"
	"github.com/orris-inc/helpdesk/internal/infrastructure/scheduler"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases,
// handlers and background services, and shuts them down in reverse order.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client
	cache  cache.Cache

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Auth & permissions
	jwtSvc               *auth.JWTService
	checker              permission.Checker
	roles                []*permission.Role
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware

	// Events
	dispatcher  *events.InMemoryEventDispatcher
	eventBridge *pubsub.RedisEventBridge
	relayCancel context.CancelFunc
	relayDone   <-chan struct{}

	schedulerManager *scheduler.SchedulerManager
}

// NewContainer wires every component. Background work starts in Start.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.initUseCases()
	c.initHandlers()

	sm, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		c.Shutdown()
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	c.schedulerManager = sm
	if err := sm.RegisterStatsJob(c.ucs.quickStats, cfg.Helpdesk.StatsRefreshInterval()); err != nil {
		c.Shutdown()
		return nil, fmt.Errorf("failed to register stats job: %w", err)
	}

	return c, nil
}

// Start launches the scheduler and the cross-instance event relay.
func (c *Container) Start() {
	c.schedulerManager.Start()
	c.startEventRelay()
}

// Shutdown stops background work and releases connections. Safe to call on a
// partially built container.
func (c *Container) Shutdown() {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Warnw("failed to stop scheduler", "error", err)
		}
	}
	if c.relayCancel != nil {
		c.relayCancel()
		<-c.relayDone
	}
	if c.dispatcher != nil {
		if err := c.dispatcher.Stop(); err != nil {
			c.log.Warnw("failed to stop event dispatcher", "error", err)
		}
	}
	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			c.log.Warnw("failed to close cache", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
