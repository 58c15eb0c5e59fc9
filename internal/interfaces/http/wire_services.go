package http

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/helpdesk/internal/domain/article"
	"github.com/orris-inc/helpdesk/internal/domain/shared/events"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/infrastructure/auth"
	"github.com/orris-inc/helpdesk/internal/infrastructure/cache"
	"github.com/orris-inc/helpdesk/internal/infrastructure/config"
	infraPermission "github.com/orris-inc/helpdesk/internal/infrastructure/permission"
	"github.com/orris-inc/helpdesk/internal/infrastructure/pubsub"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/goroutine"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// publishedEventTypes are forwarded to Redis pub/sub.
var publishedEventTypes = []string{
	ticket.EventCreated,
	ticket.EventUpdated,
	ticket.EventDeleted,
	ticket.EventCommentAdded,
	ticket.EventNoteAdded,
	ticket.EventSubscribersChanged,
	article.EventPublished,
}

// initInfrastructure opens Redis, the cache, the permission checker, the
// event dispatcher and the auth middlewares.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Host != "" {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	c.repos = newRepositories(c.db, log)

	appCache, err := cache.New(cfg.Cache, c.redis, log)
	if err != nil {
		return fmt.Errorf("failed to create cache: %w", err)
	}
	c.cache = appCache

	if err := c.initPermissions(); err != nil {
		return err
	}

	c.dispatcher = events.NewInMemoryEventDispatcher(cfg.Helpdesk.EventBufferSize, log)
	if c.redis != nil {
		c.eventBridge = pubsub.NewRedisEventBridge(c.redis, log, publishedEventTypes...)
		if err := c.eventBridge.Register(c.dispatcher); err != nil {
			return err
		}
	}
	if err := c.dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.repos.userRepo, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.checker, log)
	return nil
}

// initPermissions loads the embedded role table into casbin, persisted
// through the gorm adapter when configured.
func (c *Container) initPermissions() error {
	roles, err := infraPermission.DefaultRoles()
	if err != nil {
		return fmt.Errorf("failed to load roles: %w", err)
	}
	c.roles = roles

	if !c.cfg.Permission.PersistPolicies {
		checker, err := infraPermission.NewDefaultChecker(c.log)
		if err != nil {
			return fmt.Errorf("failed to create permission checker: %w", err)
		}
		c.checker = checker
		return nil
	}

	enforcer, err := infraPermission.NewEnforcer(c.db, c.log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := infraPermission.InitRolePolicies(enforcer, roles, c.log); err != nil {
		return fmt.Errorf("failed to initialize role policies: %w", err)
	}
	c.checker = infraPermission.NewChecker(enforcer, c.log)
	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully")

	return redisClient, nil
}

// startEventRelay logs events other instances publish on the shared channel.
func (c *Container) startEventRelay() {
	if c.eventBridge == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.relayCancel = cancel

	c.relayDone = goroutine.SafeGo(c.log, "event-relay", func() {
		err := c.eventBridge.Subscribe(ctx, func(_ context.Context, env pubsub.EventEnvelope) {
			c.log.Debugw("domain event received",
				"event_type", env.EventType,
				"event_id", env.EventID,
				"aggregate_id", env.AggregateID,
			)
		})
		if err != nil && ctx.Err() == nil {
			c.log.Errorw("event relay stopped", "error", err)
		}
	})
}
