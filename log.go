package ahash

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	nopLogger = zap.NewNop()
	logger    atomic.Pointer[zap.Logger]
)

// SetLogger replaces the package logger, nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}

func log() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nopLogger
}
