package testutils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"testing"
)

// NewTestLogger creates a new logger for testing purposes.
//
// The logger uses zaptest to integrate with the testing.T instance, allowing log output to be
// captured and displayed in test results. The logging level is set to Debug to provide detailed
// output during tests.
func NewTestLogger(t *testing.T) *zap.SugaredLogger {
	return zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel)).Sugar()
}

// NewObservedLogger creates a logger that records all entries of at least the given level in memory,
// so that tests can assert on what has been logged.
func NewObservedLogger(level zapcore.Level) (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core).Sugar(), logs
}
