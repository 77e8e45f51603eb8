package lognerd

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"
)

// Logger routes entries at or above its configured level to the console
// and file sinks. It is safe for concurrent use; configuration updates are
// last-writer-wins and a call racing an update may see either snapshot.
type Logger struct {
	cfg     atomic.Pointer[Config]
	fs      afero.Fs
	console io.Writer
	format  Formatter
	diag    *slog.Logger
	now     func() time.Time
}

// New resolves a configuration from custom and the environment, then
// returns a Logger using it. custom may be nil.
func New(custom *Overrides, opts ...Option) *Logger {
	o := newOptions(opts)
	return o.newLogger(o.resolve(custom))
}

// NewWithConfig returns a Logger for an already resolved configuration.
// No resolution or adjustment is performed on cfg.
func NewWithConfig(cfg Config, opts ...Option) *Logger {
	return newOptions(opts).newLogger(cfg)
}

func (o *options) newLogger(cfg Config) *Logger {
	l := &Logger{
		fs:      o.capability.Fs,
		console: o.console,
		format:  o.formatter(),
		diag:    o.diag,
		now:     o.now,
	}
	l.cfg.Store(&cfg)
	return l
}

// Config returns a copy of the current configuration.
func (l *Logger) Config() Config {
	return *l.cfg.Load()
}

// UpdateConfig merges the set fields of o into the current configuration.
// The result is not re-resolved.
func (l *Logger) UpdateConfig(o Overrides) {
	for {
		cur := l.cfg.Load()
		next := o.Apply(*cur)
		if l.cfg.CompareAndSwap(cur, &next) {
			return
		}
	}
}

// Enabled reports whether an entry at level would be emitted.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.cfg.Load().Level
}

// Log emits msg at level with optional structured data. It never panics and
// never returns an error: sink failures are reported on the diagnostic logger.
func (l *Logger) Log(level Level, msg string, data any) {
	cfg := l.cfg.Load()
	if level < cfg.Level {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			l.diag.Error("log call panicked", "level", level.String(), "panic", fmt.Sprint(r))
		}
	}()

	e := Entry{Time: l.now(), Level: level, Message: msg, Data: data}

	if cfg.EnableConsole {
		if _, err := io.WriteString(l.console, l.format.Console(e)+"\n"); err != nil {
			l.diag.Warn("console write failed", "error", err)
		}
	}

	l.writeFile(cfg, e)
}

func (l *Logger) Debug(msg string, data ...any) { l.Log(LevelDebug, msg, first(data)) }
func (l *Logger) Info(msg string, data ...any)  { l.Log(LevelInfo, msg, first(data)) }
func (l *Logger) Warn(msg string, data ...any)  { l.Log(LevelWarn, msg, first(data)) }
func (l *Logger) Error(msg string, data ...any) { l.Log(LevelError, msg, first(data)) }

func first(data []any) any {
	if len(data) == 0 {
		return nil
	}
	return data[0]
}
