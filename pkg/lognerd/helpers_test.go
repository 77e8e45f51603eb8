package lognerd

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/thoreinstein/lognerd/internal/env"
	"github.com/thoreinstein/lognerd/internal/logging"
	"github.com/thoreinstein/lognerd/internal/platform"
)

var allEnvKeys = []string{
	EnvKeyLevel,
	EnvKeyEnvironment,
	EnvKeyDeploymentMode,
	EnvKeyEnableConsole,
	EnvKeyEnableFile,
	EnvKeyFilePath,
	EnvKeyMaxFileSize,
	EnvKeyMaxFiles,
	EnvKeyRuntime,
}

// clearEnv blanks every variable the resolver reads. Empty values are
// treated as absent.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvKeys {
		for _, name := range env.Candidates(key) {
			t.Setenv(name, "")
		}
	}
}

// diagLogger captures diagnostics as JSON in the returned buffer and mirrors
// them to the test log.
func diagLogger(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	captured := logging.New(logging.Config{
		Level:  slog.LevelDebug,
		Format: logging.FormatJSON,
		Output: &buf,
	})
	return slog.New(logging.NewMultiHandler(captured.Handler(), logging.ForTest(t).Handler())), &buf
}

type testHarness struct {
	fs      afero.Fs
	console *bytes.Buffer
	diag    *bytes.Buffer
	opts    []Option
}

func newHarness(t *testing.T, fs afero.Fs) *testHarness {
	t.Helper()
	clearEnv(t)

	diag, diagBuf := diagLogger(t)
	h := &testHarness{fs: fs, console: &bytes.Buffer{}, diag: diagBuf}
	h.opts = []Option{
		WithEnv(env.New()),
		WithCapability(platform.Capability{Server: true, Fs: fs}),
		WithDiagnostics(diag),
		WithConsole(h.console),
		WithColor(false),
	}
	return h
}

func (h *testHarness) with(opts ...Option) []Option {
	return append(append([]Option(nil), h.opts...), opts...)
}

// steppingClock returns a clock that advances by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	cur := start
	return func() time.Time {
		now := cur
		cur = cur.Add(step)
		return now
	}
}

func serverCap(fs afero.Fs) platform.Capability {
	return platform.Capability{Server: true, Fs: fs}
}
