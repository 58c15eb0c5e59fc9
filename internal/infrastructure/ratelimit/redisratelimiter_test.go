package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestLimits_Enabled(t *testing.T) {
	assert.False(t, Limits{}.Enabled())
	assert.True(t, Limits{PerMinute: 1}.Enabled())
	assert.True(t, Limits{PerHour: 1}.Enabled())
}

func TestRedisLimiter_PerMinute(t *testing.T) {
	limiter := NewRedisLimiter(setupTestRedis(t))
	ctx := context.Background()
	limits := Limits{PerMinute: 5}

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "ip:10.0.0.1", limits)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "ip:10.0.0.1", limits)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")

	allowed, err = limiter.Allow(ctx, "ip:10.0.0.2", limits)
	require.NoError(t, err)
	assert.True(t, allowed, "other keys are counted separately")
}

func TestRedisLimiter_WindowSlides(t *testing.T) {
	limiter := NewRedisLimiter(setupTestRedis(t))
	ctx := context.Background()
	limits := Limits{PerMinute: 2}

	base := time.Now()
	limiter.now = func() time.Time { return base }
	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "k", limits)
		require.NoError(t, err)
		require.True(t, allowed)
	}
	allowed, err := limiter.Allow(ctx, "k", limits)
	require.NoError(t, err)
	assert.False(t, allowed)

	limiter.now = func() time.Time { return base.Add(61 * time.Second) }
	allowed, err = limiter.Allow(ctx, "k", limits)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiter_HourWindow(t *testing.T) {
	limiter := NewRedisLimiter(setupTestRedis(t))
	ctx := context.Background()
	limits := Limits{PerMinute: 100, PerHour: 3}

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "k", limits)
		require.NoError(t, err)
		require.True(t, allowed)
	}
	allowed, err := limiter.Allow(ctx, "k", limits)
	require.NoError(t, err)
	assert.False(t, allowed)
}
