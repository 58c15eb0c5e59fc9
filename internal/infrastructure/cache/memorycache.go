package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/orris-inc/helpdesk/internal/infrastructure/metrics"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// MemoryCache is a process-local Cache on an in-memory badger instance.
// Badger expires entries with second granularity.
type MemoryCache struct {
	db     *badger.DB
	logger logger.Interface
}

func NewMemoryCache(log logger.Interface) (*MemoryCache, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory badger: %w", err)
	}

	return &MemoryCache{
		db:     db,
		logger: log.With("component", "cache.memory"),
	}, nil
}

func (c *MemoryCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	found := false
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
	if err != nil {
		metrics.CacheErrors.WithLabelValues(BackendMemory, "get").Inc()
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	if found {
		metrics.CacheHits.WithLabelValues(BackendMemory, keyKind(key)).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(BackendMemory, keyKind(key)).Inc()
	}
	return found, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), data)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		metrics.CacheErrors.WithLabelValues(BackendMemory, "set").Inc()
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

func (c *MemoryCache) Close() error {
	return c.db.Close()
}
