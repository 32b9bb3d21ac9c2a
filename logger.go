package d3dshim

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/d3dshim/reftrack"
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
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for d3dshim and all its sub-packages.
// By default, d3dshim produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by d3dshim:
//   - [slog.LevelDebug]: tracker links, feature level probing
//   - [slog.LevelInfo]: reachable object dumps, tracker moves, device creation
//   - [slog.LevelWarn]: unsupported driver types
//   - [slog.LevelError]: failed device or factory creation
//
// Example:
//
//	// Report leaked objects to stderr at exit:
//	d3dshim.SetLogger(slog.Default())
//	defer reftrack.DumpAtExit()
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	// The tracker logs dumps on its own logger.
	reftrack.SetLogger(l)
}

// Logger returns the current logger used by d3dshim.
// Sub-packages (dxgi/, d3d11/) call this to share the same
// logger configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
