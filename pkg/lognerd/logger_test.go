package lognerd

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

func TestLogger_LevelFiltering(t *testing.T) {
	h := newHarness(t, afero.NewMemMapFs())
	l := New(&Overrides{Level: Ptr(LevelWarn), EnableFile: Ptr(false)}, h.opts...)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := h.console.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "[ERROR]")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestLogger_Enabled(t *testing.T) {
	h := newHarness(t, afero.NewMemMapFs())
	l := New(&Overrides{Level: Ptr(LevelInfo)}, h.opts...)

	assert.False(t, l.Enabled(LevelDebug))
	assert.True(t, l.Enabled(LevelInfo))
	assert.True(t, l.Enabled(LevelError))
}

func TestLogger_FileSink(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := newHarness(t, fs)
	l := New(&Overrides{FilePath: Ptr(testLogPath)}, h.with(WithClock(func() time.Time { return testStart }))...)

	l.Info("server started", map[string]any{"port": 8080})
	l.Error("boom")

	data, err := afero.ReadFile(fs, testLogPath)
	require.NoError(t, err)
	assert.Equal(t,
		"2026-03-14T09:26:53.589Z [INFO] server started | Data: {\"port\":8080}\n"+
			"2026-03-14T09:26:53.589Z [ERROR] boom\n",
		string(data))
}

func TestLogger_FileSinkSkippedForClient(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := newHarness(t, fs)
	cfg := Config{Level: LevelDebug, EnableFile: true, FilePath: testLogPath, Runtime: RuntimeClient}
	l := NewWithConfig(cfg, h.opts...)

	l.Info("hello")

	exists, err := afero.Exists(fs, testLogPath)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, h.diag.String())
}

func TestLogger_ServerWithoutFsReportsMisconfiguration(t *testing.T) {
	h := newHarness(t, nil)
	cfg := Config{Level: LevelDebug, EnableFile: true, FilePath: testLogPath, Runtime: RuntimeServer}
	l := NewWithConfig(cfg, h.opts...)

	l.Info("hello")

	assert.Contains(t, h.diag.String(), "server runtime without file access")
}

func TestLogger_WriteFailureIsSwallowed(t *testing.T) {
	h := newHarness(t, nil)
	ro := afero.NewReadOnlyFs(afero.NewMemMapFs())
	cfg := Config{Level: LevelDebug, EnableConsole: true, EnableFile: true, FilePath: testLogPath, Runtime: RuntimeServer}
	l := NewWithConfig(cfg, h.with(WithCapability(serverCap(ro)))...)

	assert.NotPanics(t, func() { l.Error("still logged to console") })

	assert.Contains(t, h.console.String(), "still logged to console")
	assert.Contains(t, h.diag.String(), "file write failed")
}

type panickyData struct{}

func (panickyData) MarshalJSON() ([]byte, error) {
	panic("marshal exploded")
}

func TestLogger_PanicInDataIsRecovered(t *testing.T) {
	h := newHarness(t, afero.NewMemMapFs())
	l := New(&Overrides{EnableFile: Ptr(false)}, h.opts...)

	assert.NotPanics(t, func() { l.Info("bad data", panickyData{}) })
	assert.Contains(t, h.diag.String(), "log call panicked")
}

func TestLogger_UpdateConfig(t *testing.T) {
	h := newHarness(t, afero.NewMemMapFs())
	l := New(&Overrides{FilePath: Ptr(testLogPath)}, h.opts...)
	before := l.Config()

	l.UpdateConfig(Overrides{})
	assert.Equal(t, before, l.Config())

	l.UpdateConfig(Overrides{Level: Ptr(LevelError), MaxFiles: Ptr(2)})
	after := l.Config()
	assert.Equal(t, LevelError, after.Level)
	assert.Equal(t, 2, after.MaxFiles)
	assert.Equal(t, before.FilePath, after.FilePath)
	assert.Equal(t, before.EnableConsole, after.EnableConsole)

	l.Info("filtered")
	assert.Empty(t, h.console.String())
}

func TestLogger_ConfigReturnsCopy(t *testing.T) {
	h := newHarness(t, afero.NewMemMapFs())
	l := New(&Overrides{FilePath: Ptr(testLogPath)}, h.opts...)

	cfg := l.Config()
	cfg.Level = LevelError
	cfg.FilePath = "/elsewhere.log"

	assert.Equal(t, LevelInfo, l.Config().Level)
	assert.Equal(t, testLogPath, l.Config().FilePath)
}

func TestLogger_CustomOverridesNotAliased(t *testing.T) {
	h := newHarness(t, afero.NewMemMapFs())
	custom := &Overrides{Level: Ptr(LevelWarn), FilePath: Ptr(testLogPath)}
	l := New(custom, h.opts...)

	*custom.Level = LevelDebug
	assert.Equal(t, LevelWarn, l.Config().Level)
}

func TestLogger_ConcurrentUse(t *testing.T) {
	fs := afero.NewOsFs()
	h := newHarness(t, fs)
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := Config{Level: LevelDebug, EnableFile: true, FilePath: path, Runtime: RuntimeServer}
	l := NewWithConfig(cfg, h.opts...)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Go(func() {
			l.Info("entry", map[string]int{"i": i})
		})
		wg.Go(func() {
			l.UpdateConfig(Overrides{MaxFiles: Ptr(i + 1)})
		})
	}
	wg.Wait()

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, 8, strings.Count(string(data), "[INFO] entry"))
	assert.Positive(t, l.Config().MaxFiles)
}

func TestLogger_DataRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := newHarness(t, fs)
	l := New(&Overrides{FilePath: Ptr(testLogPath)}, h.opts...)

	data := map[string]any{
		"user":  "ana",
		"count": float64(3),
		"tags":  []any{"a", "<b>"},
		"nested": map[string]any{
			"ok": true,
		},
	}
	l.Info("round trip", data)

	line, err := afero.ReadFile(fs, testLogPath)
	require.NoError(t, err)
	_, fileJSON, found := strings.Cut(strings.TrimSuffix(string(line), "\n"), " | Data: ")
	require.True(t, found)

	var fromFile map[string]any
	require.NoError(t, json.Unmarshal([]byte(fileJSON), &fromFile))
	assert.Equal(t, data, fromFile)

	head, consoleJSON, found := strings.Cut(strings.TrimSuffix(h.console.String(), "\n"), "\n")
	require.True(t, found)
	assert.Contains(t, head, "round trip")

	var fromConsole map[string]any
	require.NoError(t, json.Unmarshal([]byte(consoleJSON), &fromConsole))
	assert.Equal(t, data, fromConsole)
}
