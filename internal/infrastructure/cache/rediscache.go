package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/orris-inc/helpdesk/internal/infrastructure/metrics"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const redisBreakerName = "redis-cache"

// RedisCache is a Cache over Redis. Calls go through a circuit breaker so an
// unavailable Redis degrades to misses quickly instead of stalling requests.
type RedisCache struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker[[]byte]
	logger logger.Interface
}

func NewRedisCache(client *redis.Client, log logger.Interface) *RedisCache {
	log = log.With("component", "cache.redis")
	metrics.CircuitBreakerState.WithLabelValues(redisBreakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        redisBreakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnw("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &RedisCache{
		client: client,
		cb:     cb,
		logger: log,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.cb.Execute(func() ([]byte, error) {
		b, err := c.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return b, err
	})
	if err != nil {
		metrics.CacheErrors.WithLabelValues(BackendRedis, "get").Inc()
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	if data == nil {
		metrics.CacheMisses.WithLabelValues(BackendRedis, keyKind(key)).Inc()
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		metrics.CacheErrors.WithLabelValues(BackendRedis, "decode").Inc()
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}

	metrics.CacheHits.WithLabelValues(BackendRedis, keyKind(key)).Inc()
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}

	_, err = c.cb.Execute(func() ([]byte, error) {
		return nil, c.client.Set(ctx, key, data, ttl).Err()
	})
	if err != nil {
		metrics.CacheErrors.WithLabelValues(BackendRedis, "set").Inc()
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; the redis client is shared and closed by its owner.
func (c *RedisCache) Close() error {
	return nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
