package logger

import (
	"io"
	"log/slog"
)

// Interface is what the application layers log through. The *w variants
// take alternating key/value pairs.
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	Debugw(msg string, kv ...any)
	Infow(msg string, kv ...any)
	Warnw(msg string, kv ...any)
	Errorw(msg string, kv ...any)

	With(kv ...any) Interface
}

type slogAdapter struct{ l *slog.Logger }

// NewLogger wraps the process-wide logger set up by Init.
func NewLogger() Interface { return slogAdapter{l: Get()} }

// NewDiscard returns a logger that drops every record.
func NewDiscard() Interface {
	return slogAdapter{l: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (a slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }

func (a slogAdapter) Debugw(msg string, kv ...any) { a.l.Debug(msg, kv...) }
func (a slogAdapter) Infow(msg string, kv ...any)  { a.l.Info(msg, kv...) }
func (a slogAdapter) Warnw(msg string, kv ...any)  { a.l.Warn(msg, kv...) }
func (a slogAdapter) Errorw(msg string, kv ...any) { a.l.Error(msg, kv...) }

func (a slogAdapter) With(kv ...any) Interface { return slogAdapter{l: a.l.With(kv...)} }
