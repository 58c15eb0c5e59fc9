// Package ratelimit counts requests per key over sliding windows.
package ratelimit

import (
	"context"
	"time"
)

// Limits caps requests per window. A zero limit disables that window.
type Limits struct {
	PerMinute int
	PerHour   int
}

// Enabled reports whether any window is limited.
func (l Limits) Enabled() bool {
	return l.PerMinute > 0 || l.PerHour > 0
}

func (l Limits) windows() []window {
	return []window{
		{time.Minute, l.PerMinute},
		{time.Hour, l.PerHour},
	}
}

type window struct {
	duration time.Duration
	limit    int
}

type Limiter interface {
	// Allow records one request for key and reports whether it fits every
	// window.
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
}
