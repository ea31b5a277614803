package automaton

import (
	"log/slog"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(slog.New(slog.DiscardHandler))
}

// Logger returns the package logger. It discards everything unless SetLogger
// was called.
func Logger() *slog.Logger {
	return defaultLogger.Load()
}

// SetLogger replaces the package logger. A nil logger restores the discarding one.
func SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	defaultLogger.Store(logger)
}
