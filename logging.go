package wasm

import (
	"sync"

	"go.uber.org/zap"
)

var (
	defaultLogger     *zap.Logger
	defaultLoggerOnce sync.Once
)

// noopLogger returns a process-wide no-op logger, lazily constructed.
//
// Sandboxes default to this so the hot paths (load/store/grow) never pay
// for logging unless a caller opts in via WithLogger.
func noopLogger() *zap.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = zap.NewNop()
	})
	return defaultLogger
}
