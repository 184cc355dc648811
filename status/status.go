// Package status is the framework's own diagnostic channel. Handlers and
// plugins report problems they cannot return to a caller, such as a target
// that failed while failures are being ignored, or a handler that could not
// be configured. Output goes to a zap logger, stderr at Warn by default.
package status

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var current atomic.Pointer[zap.Logger]

func init() {
	current.Store(newDefault())
}

func newDefault() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Sampling = nil
	cfg.OutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l.Named("nlog")
}

// Logger returns the current status logger.
func Logger() *zap.Logger {
	return current.Load()
}

// SetLogger replaces the status logger and returns the previous one. A nil
// logger silences status output.
func SetLogger(l *zap.Logger) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return current.Swap(l)
}

// Error reports err at error level.
func Error(msg string, err error, fields ...zap.Field) {
	Logger().Error(msg, append(fields, zap.Error(err))...)
}

// Warn reports a non-fatal condition.
func Warn(msg string, fields ...zap.Field) {
	Logger().Warn(msg, fields...)
}
