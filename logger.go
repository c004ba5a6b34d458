package clutter

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled returns false so callers skip
// attribute formatting entirely when logging is off.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := slog.New(nopHandler{})
	loggerPtr.Store(l)
}

// SetLogger configures logging for the toolkit and all engine sub-packages.
// The default is silent. Pass nil to restore the silent default.
//
// Levels in use: Debug for per-frame diagnostics (damage resolution, clip
// decisions), Info for lifecycle (backend selection, GL version, stage
// realize), Warn for degradations (unsupported buffer age, swallowed
// window-manager features).
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current toolkit logger. Engine sub-packages call this
// so they share one configuration without import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
