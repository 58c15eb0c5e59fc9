package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/helpdesk/internal/shared/config"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendNone   = "none"
)

// Cache stores JSON-encodable values under string keys with a TTL.
// Get reports false on a miss; dest is only written on a hit.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Close() error
}

// New builds the configured backend. The "none" backend yields a nil Cache,
// which callers treat as always-miss.
func New(cfg config.CacheConfig, client *redis.Client, log logger.Interface) (Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendRedis:
		if client == nil {
			return nil, fmt.Errorf("redis cache backend requires a redis client")
		}
		return NewRedisCache(client, log), nil
	case BackendMemory, "":
		return NewMemoryCache(log)
	case BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Backend)
	}
}

// keyKind reduces a key to its first two segments for metric labels,
// e.g. "tickets:overdue:ab12" -> "tickets:overdue".
func keyKind(key string) string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) >= 2 {
		return parts[0] + ":" + parts[1]
	}
	return parts[0]
}
