// Package sequence allocates human-readable, strictly increasing uids.
package sequence

import (
	"context"
	"errors"
)

// Counter names.
const (
	CounterTickets  = "tickets"
	CounterArticles = "articles"
)

// ErrInvalidUID is returned when an allocation yields no usable value.
var ErrInvalidUID = errors.New("invalid UID")

// Allocator hands out the next value of a named counter. Concurrent callers
// never receive the same value for the same counter.
type Allocator interface {
	Next(ctx context.Context, counter string) (int64, error)
}
