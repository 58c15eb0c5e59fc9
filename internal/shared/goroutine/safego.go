// Package goroutine runs background work that must not take the process down.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// Recover logs a recovered panic with its stack. Call it deferred.
func Recover(log logger.Interface, name string) {
	r := recover()
	if r == nil {
		return
	}
	log.Errorw("goroutine panicked",
		"goroutine", name,
		"panic", fmt.Sprint(r),
		"stack", string(debug.Stack()),
	)
}

// SafeGo runs fn on a new goroutine. The returned channel is closed once fn
// returns or panics.
func SafeGo(log logger.Interface, name string, fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer Recover(log, name)
		fn()
	}()
	return done
}
