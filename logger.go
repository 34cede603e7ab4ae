package nonnon

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/nonnon/text"
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

// SetLogger configures the logger for nonnon and its sub-packages.
// By default, nonnon produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Records emitted by a run, by level:
//   - [slog.LevelDebug]: "font source loaded" and "glyph rasterized" from the
//     text package, "frame composited" with the timeline zone and ramp step,
//     "source frame done" with the per-frame elapsed time
//   - [slog.LevelInfo]: "run started" with the text, "word assembled" with
//     the word size, "run finished" with frame counts and the blob size
//   - [slog.LevelWarn]: "source frame skipped" and "intro skipped", carrying
//     the asset fetch or decode error
//
// Example:
//
//	// Enable info-level logging to stderr:
//	nonnon.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full diagnostics:
//	nonnon.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	text.SetLogger(l)
}

// Logger returns the current logger used by nonnon.
// A Pipeline created without WithLogger logs here.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
