package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/shared/db"
)

func TestCounterRepository_Next(t *testing.T) {
	repo := NewCounterRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	first, err := repo.Next(ctx, "tickets")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := repo.Next(ctx, "tickets")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)

	other, err := repo.Next(ctx, "articles")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other, "counters are independent")
}

func TestCounterRepository_ConcurrentUnique(t *testing.T) {
	repo := NewCounterRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	const workers = 25
	results := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := repo.Next(ctx, "tickets")
			if assert.NoError(t, err) {
				results <- v
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool, workers)
	for v := range results {
		assert.False(t, seen[v], "value %d allocated twice", v)
		seen[v] = true
	}
	assert.Len(t, seen, workers)
}

func TestCounterRepository_RollsBackWithCaller(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewCounterRepository(gdb, testLogger())
	tm := db.NewTransactionManager(gdb)
	ctx := context.Background()

	_, err := repo.Next(ctx, "tickets")
	require.NoError(t, err)

	boom := errors.New("creation failed")
	err = tm.RunInTransaction(ctx, func(ctx context.Context) error {
		v, err := repo.Next(ctx, "tickets")
		require.NoError(t, err)
		assert.Equal(t, int64(2), v)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	next, err := repo.Next(ctx, "tickets")
	require.NoError(t, err)
	assert.Equal(t, int64(2), next)
}
