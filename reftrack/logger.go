// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package reftrack

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// loggerPtr stores the active logger. Accessed atomically for thread safety.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := slog.New(nopHandler{})
	loggerPtr.Store(l)
}

// slogger returns the current package logger.
// Dumps and tracker moves are logged through it.
func slogger() *slog.Logger { return loggerPtr.Load() }

// SetLogger sets the logger that receives dumps and tracker moves.
// Passing nil restores the default silent logger.
//
// d3dshim.SetLogger propagates here; call this directly only when using
// reftrack on its own.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}
