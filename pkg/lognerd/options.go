package lognerd

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/thoreinstein/lognerd/internal/env"
	"github.com/thoreinstein/lognerd/internal/logging"
	"github.com/thoreinstein/lognerd/internal/platform"
)

// Option customizes how a Config is resolved and how a Logger writes.
type Option func(*options)

type options struct {
	env        *env.Reader
	capability platform.Capability
	diag       *slog.Logger
	console    io.Writer
	color      *bool
	now        func() time.Time
}

func newOptions(opts []Option) *options {
	o := &options{
		env:        env.New(),
		capability: platform.Host(),
		console:    os.Stdout,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.diag == nil {
		o.diag = logging.Default()
	}
	if o.env == nil {
		o.env = env.Empty()
	}
	if o.console == nil {
		o.console = io.Discard
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// WithEnv sets the environment reader. A nil reader disables environment
// lookups entirely.
func WithEnv(r *env.Reader) Option {
	return func(o *options) { o.env = r }
}

// WithCapability replaces the host capability probe.
func WithCapability(c platform.Capability) Option {
	return func(o *options) { o.capability = c }
}

// WithDiagnostics sets where lognerd reports problems with itself. A nil
// logger silences diagnostics.
func WithDiagnostics(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = logging.NewDiscard()
		}
		o.diag = l
	}
}

// WithConsole sets the console sink writer. Defaults to os.Stdout.
func WithConsole(w io.Writer) Option {
	return func(o *options) { o.console = w }
}

// WithColor forces console colors on or off instead of detecting support.
func WithColor(enabled bool) Option {
	return func(o *options) { o.color = &enabled }
}

// WithClock sets the time source for entry timestamps and rotated names.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func (o *options) formatter() Formatter {
	if o.color != nil {
		return Formatter{Color: *o.color}
	}
	return NewFormatter(o.console)
}
