package tilelight

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// active holds the logger shared by this package and its sub-packages.
// It always holds a non-nil logger, so call sites never check.
var active atomic.Pointer[slog.Logger]

func init() {
	active.Store(slog.New(nopHandler{}))
}

// Logger returns the logger installed with SetLogger. The backend and
// render packages log through it as well, which keeps one switch for the
// whole library without import cycles.
func Logger() *slog.Logger {
	return active.Load()
}

// SetLogger routes the library's log output to l. The library is silent
// until this is called; passing nil silences it again.
//
// Levels in use:
//   - [slog.LevelDebug] per-pass internals (band split, timings)
//   - [slog.LevelInfo] backend selection, pipeline setup
//   - [slog.LevelWarn] degraded operation, such as falling back to the CPU
//
// Safe to call concurrently with logging from any goroutine.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	active.Store(l)
}

// nopHandler discards everything. Enabled reports false so disabled call
// sites skip argument formatting too.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }
