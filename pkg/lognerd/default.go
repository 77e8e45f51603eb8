package lognerd

import (
	"sync"
	"sync/atomic"
)

var (
	defaultMu     sync.Mutex
	defaultLogger atomic.Pointer[Logger]
)

// Default returns the process-wide Logger, creating it from the environment
// on first use.
func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := New(nil)
	defaultLogger.Store(l)
	return l
}

// Configure re-resolves the default Logger with o as caller overrides and
// replaces it. Loggers previously returned by Default keep their old config.
func Configure(o Overrides, opts ...Option) *Logger {
	l := New(&o, opts...)
	SetDefault(l)
	return l
}

// SetDefault replaces the process-wide Logger. A nil l resets it, so the
// next Default call resolves a fresh one.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger.Store(l)
}

func Debug(msg string, data ...any) { Default().Log(LevelDebug, msg, first(data)) }
func Info(msg string, data ...any)  { Default().Log(LevelInfo, msg, first(data)) }
func Warn(msg string, data ...any)  { Default().Log(LevelWarn, msg, first(data)) }
func Error(msg string, data ...any) { Default().Log(LevelError, msg, first(data)) }
