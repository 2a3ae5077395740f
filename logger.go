package smudge

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by smudge.
// By default, smudge produces no log output. Pass nil to restore the
// default silent behavior.
//
// Log levels used by smudge:
//   - [slog.LevelDebug]: stroke lifecycle (strategy initialized, stroke ended)
//   - [slog.LevelWarn]: recovered faults (color space mismatch, unknown
//     composite op, blur unavailable)
//
// Example:
//
//	smudge.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by smudge.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// safeAssert logs msg at warn level when ok is false and returns ok.
// Call sites recover locally:
//
//	if !safeAssert(a.Equal(b), "space mismatch") {
//		return
//	}
func safeAssert(ok bool, msg string, args ...any) bool {
	if !ok {
		Logger().Warn("smudge: "+msg, args...)
	}
	return ok
}
