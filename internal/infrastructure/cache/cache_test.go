package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/shared/config"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type overdueEntry struct {
	ID      uint   `json:"id"`
	UID     int64  `json:"uid"`
	Subject string `json:"subject"`
}

func TestOverdueKey(t *testing.T) {
	a := OverdueKey([]uint{3, 1, 2})
	b := OverdueKey([]uint{1, 2, 3, 3, 1})

	assert.Equal(t, a, b)
	assert.Contains(t, a, "tickets:overdue:")
	assert.Len(t, a, len("tickets:overdue:")+64)
	assert.NotEqual(t, a, OverdueKey([]uint{1, 2}))
	assert.NotEqual(t, OverdueKey([]uint{12}), OverdueKey([]uint{1, 2}))
}

func TestKeyKind(t *testing.T) {
	assert.Equal(t, "tickets:overdue", keyKind("tickets:overdue:abc"))
	assert.Equal(t, "quickstats", keyKind(QuickStatsKey))
}

func TestNew_Backends(t *testing.T) {
	log := logger.NewDiscard()

	c, err := New(config.CacheConfig{Backend: BackendNone}, nil, log)
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = New(config.CacheConfig{Backend: BackendRedis}, nil, log)
	assert.Error(t, err)

	_, err = New(config.CacheConfig{Backend: "memcached"}, nil, log)
	assert.Error(t, err)

	c, err = New(config.CacheConfig{Backend: BackendMemory}, nil, log)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.NoError(t, c.Close())
}

func TestMemoryCache_SetGet(t *testing.T) {
	c, err := NewMemoryCache(logger.NewDiscard())
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	var out []overdueEntry

	hit, err := c.Get(ctx, "tickets:overdue:x", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, out)

	in := []overdueEntry{{ID: 1, UID: 1001, Subject: "Printer down"}}
	require.NoError(t, c.Set(ctx, "tickets:overdue:x", in, 10*time.Minute))

	hit, err = c.Get(ctx, "tickets:overdue:x", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, in, out)
}

func TestMemoryCache_Overwrite(t *testing.T) {
	c, err := NewMemoryCache(logger.NewDiscard())
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, QuickStatsKey, map[string]int{"a": 1}, 0))
	require.NoError(t, c.Set(ctx, QuickStatsKey, map[string]int{"b": 2}, 0))

	var out map[string]int
	hit, err := c.Get(ctx, QuickStatsKey, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, map[string]int{"b": 2}, out)
}

func TestMemoryCache_Expiry(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for ttl expiry")
	}
	c, err := NewMemoryCache(logger.NewDiscard())
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", 1, time.Second))

	time.Sleep(2100 * time.Millisecond)

	var out int
	hit, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}
