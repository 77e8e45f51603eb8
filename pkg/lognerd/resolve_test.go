package lognerd

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/lognerd/internal/env"
	"github.com/thoreinstein/lognerd/internal/platform"
)

const testLogPath = "/var/log/svc/app.log"

func TestResolveConfig_Defaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := newHarness(t, fs)

	cfg := ResolveConfig(nil, h.opts...)

	assert.Equal(t, LevelInfo, cfg.Level)
	assert.True(t, cfg.EnableConsole)
	assert.True(t, cfg.EnableFile)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, RuntimeServer, cfg.Runtime)
	assert.InDelta(t, DefaultMaxFileSizeMB, cfg.MaxFileSizeMB, 0)
	assert.Equal(t, DefaultMaxFiles, cfg.MaxFiles)
	assert.Equal(t, filepath.Join("logs", "app.log"), filepath.Join(filepath.Base(filepath.Dir(cfg.FilePath)), filepath.Base(cfg.FilePath)))

	ok, err := afero.DirExists(fs, filepath.Dir(cfg.FilePath))
	require.NoError(t, err)
	assert.True(t, ok, "log directory should be created")
}

func TestResolveConfig_LevelPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		envVal string
		custom *Overrides
		want   Level
	}{
		{name: "default", want: LevelInfo},
		{name: "environment", envVal: "WARN", want: LevelWarn},
		{name: "environment lower case", envVal: "error", want: LevelError},
		{name: "malformed environment", envVal: "LOUD", want: LevelInfo},
		{name: "caller beats environment", envVal: "WARN", custom: &Overrides{Level: Ptr(LevelDebug)}, want: LevelDebug},
		{name: "caller only", custom: &Overrides{Level: Ptr(LevelError)}, want: LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, afero.NewMemMapFs())
			t.Setenv(EnvKeyLevel, tt.envVal)

			cfg := ResolveConfig(tt.custom, h.opts...)
			assert.Equal(t, tt.want, cfg.Level)
		})
	}
}

func TestResolveConfig_ClientPrefixedVariables(t *testing.T) {
	h := newHarness(t, afero.NewMemMapFs())
	t.Setenv(EnvKeyLevel, "ERROR")
	t.Setenv(env.ClientPrefix+EnvKeyLevel, "DEBUG")

	cfg := ResolveConfig(nil, h.opts...)
	assert.Equal(t, LevelDebug, cfg.Level)
}

func TestResolveConfig_EnvironmentFields(t *testing.T) {
	h := newHarness(t, afero.NewMemMapFs())
	t.Setenv(EnvKeyFilePath, testLogPath)
	t.Setenv(EnvKeyMaxFileSize, "25")
	t.Setenv(EnvKeyMaxFiles, "7")
	t.Setenv(EnvKeyEnableConsole, "false")

	cfg := ResolveConfig(nil, h.opts...)

	assert.Equal(t, testLogPath, cfg.FilePath)
	assert.InDelta(t, 25, cfg.MaxFileSizeMB, 0)
	assert.Equal(t, 7, cfg.MaxFiles)
	assert.False(t, cfg.EnableConsole)
	assert.True(t, cfg.EnableFile)
}

func TestResolveConfig_MalformedNumbersUseDefaults(t *testing.T) {
	h := newHarness(t, afero.NewMemMapFs())
	t.Setenv(EnvKeyMaxFileSize, "big")
	t.Setenv(EnvKeyMaxFiles, "0x10")

	cfg := ResolveConfig(nil, h.opts...)

	assert.InDelta(t, DefaultMaxFileSizeMB, cfg.MaxFileSizeMB, 0)
	assert.Equal(t, DefaultMaxFiles, cfg.MaxFiles)
}

func TestResolveConfig_DeploymentModeFallback(t *testing.T) {
	tests := []struct {
		name    string
		primary string
		generic string
		want    Environment
	}{
		{name: "primary", primary: "production", want: EnvProduction},
		{name: "generic fallback", generic: "production", want: EnvProduction},
		{name: "primary wins", primary: "development", generic: "production", want: EnvDevelopment},
		{name: "invalid generic ignored", generic: "staging", want: EnvDevelopment},
		{name: "case insensitive", generic: "PRODUCTION", want: EnvProduction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, afero.NewMemMapFs())
			t.Setenv(EnvKeyEnvironment, tt.primary)
			t.Setenv(EnvKeyDeploymentMode, tt.generic)

			cfg := ResolveConfig(&Overrides{FilePath: Ptr(testLogPath)}, h.opts...)
			assert.Equal(t, tt.want, cfg.Environment)
		})
	}
}

func TestResolveConfig_ClientRuntimeDisablesFile(t *testing.T) {
	for _, val := range []string{"C", "client", "CLIENTE", " browser "} {
		t.Run(val, func(t *testing.T) {
			h := newHarness(t, afero.NewMemMapFs())
			t.Setenv(EnvKeyRuntime, val)

			cfg := ResolveConfig(&Overrides{EnableFile: Ptr(true)}, h.opts...)

			assert.Equal(t, RuntimeClient, cfg.Runtime)
			assert.False(t, cfg.EnableFile)
			assert.Contains(t, h.diag.String(), `"level":"WARN"`)
			assert.Contains(t, h.diag.String(), "client runtime cannot write files")
		})
	}
}

func TestResolveConfig_ServerWithoutFileAccess(t *testing.T) {
	h := newHarness(t, nil)
	opts := h.with(WithCapability(platform.Capability{Server: true}))

	cfg := ResolveConfig(nil, opts...)

	assert.Equal(t, RuntimeServer, cfg.Runtime)
	assert.False(t, cfg.EnableFile)
	assert.Contains(t, h.diag.String(), `"level":"ERROR"`)
}

func TestResolveConfig_ForcedServerOnClientHost(t *testing.T) {
	h := newHarness(t, nil)
	t.Setenv(EnvKeyRuntime, "B")
	opts := h.with(WithCapability(platform.Capability{}))

	cfg := ResolveConfig(nil, opts...)

	assert.Equal(t, RuntimeServer, cfg.Runtime)
	assert.False(t, cfg.EnableFile)
}

func TestResolveConfig_ProductionRule(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		custom      Overrides
		wantConsole bool
		wantFile    bool
	}{
		{
			name:        "production defaults",
			env:         map[string]string{EnvKeyEnvironment: "production"},
			wantConsole: false,
			wantFile:    true,
		},
		{
			name: "environment console wins",
			env: map[string]string{
				EnvKeyEnvironment:   "production",
				EnvKeyEnableConsole: "true",
			},
			wantConsole: true,
			wantFile:    true,
		},
		{
			name:        "caller console wins",
			custom:      Overrides{Environment: Ptr(EnvProduction), EnableConsole: Ptr(true), EnableFile: Ptr(false)},
			wantConsole: true,
			wantFile:    false,
		},
		{
			name:        "file forced back on",
			env:         map[string]string{EnvKeyEnvironment: "production"},
			custom:      Overrides{},
			wantConsole: false,
			wantFile:    true,
		},
		{
			name:        "explicit file off kept",
			custom:      Overrides{Environment: Ptr(EnvProduction), EnableFile: Ptr(false)},
			wantConsole: false,
			wantFile:    false,
		},
		{
			name: "environment file off kept",
			env: map[string]string{
				EnvKeyEnvironment: "production",
				EnvKeyEnableFile:  "0",
			},
			wantConsole: false,
			wantFile:    false,
		},
		{
			name:        "development untouched",
			custom:      Overrides{EnableFile: Ptr(false)},
			wantConsole: true,
			wantFile:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, afero.NewMemMapFs())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			custom := tt.custom
			custom.FilePath = Ptr(testLogPath)

			cfg := ResolveConfig(&custom, h.opts...)

			assert.Equal(t, tt.wantConsole, cfg.EnableConsole, "console")
			assert.Equal(t, tt.wantFile, cfg.EnableFile, "file")
		})
	}
}

func TestResolveConfig_ProductionClientNeverWritesFiles(t *testing.T) {
	h := newHarness(t, afero.NewMemMapFs())
	t.Setenv(EnvKeyRuntime, "client")
	t.Setenv(EnvKeyEnvironment, "production")

	cfg := ResolveConfig(nil, h.opts...)

	assert.Equal(t, RuntimeClient, cfg.Runtime)
	assert.False(t, cfg.EnableConsole)
	assert.False(t, cfg.EnableFile)
}

func TestResolveConfig_DirectoryFailure(t *testing.T) {
	h := newHarness(t, nil)
	ro := afero.NewReadOnlyFs(afero.NewMemMapFs())
	opts := h.with(WithCapability(platform.Capability{Server: true, Fs: ro}))

	cfg := ResolveConfig(&Overrides{FilePath: Ptr(testLogPath)}, opts...)

	assert.False(t, cfg.EnableFile)
	assert.Contains(t, h.diag.String(), "cannot create log directory")
}

func TestResolveConfig_DirectoryIsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/var/log/svc", []byte("x"), 0o644))
	h := newHarness(t, fs)

	cfg := ResolveConfig(&Overrides{FilePath: Ptr(testLogPath)}, h.opts...)
	assert.False(t, cfg.EnableFile)
}

func TestResolveConfig_NoEnvironmentAccess(t *testing.T) {
	h := newHarness(t, afero.NewMemMapFs())
	t.Setenv(EnvKeyLevel, "ERROR")
	opts := h.with(WithEnv(nil))

	cfg := ResolveConfig(nil, opts...)
	assert.Equal(t, LevelInfo, cfg.Level)
}

func TestEnvOverrides_OnlyPresentFields(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvKeyLevel, "debug")

	o := EnvOverrides(env.New())

	require.NotNil(t, o.Level)
	assert.Equal(t, LevelDebug, *o.Level)
	assert.Nil(t, o.EnableConsole)
	assert.Nil(t, o.EnableFile)
	assert.Nil(t, o.FilePath)
	assert.Nil(t, o.Environment)
	assert.Nil(t, o.MaxFileSizeMB)
	assert.Nil(t, o.MaxFiles)
}

func TestWithDiagnostics_NilSilences(t *testing.T) {
	o := newOptions([]Option{WithDiagnostics(nil)})
	assert.False(t, o.diag.Enabled(t.Context(), slog.LevelError))

	h := newHarness(t, nil)
	cfg := ResolveConfig(nil, h.with(WithCapability(platform.Capability{}), WithDiagnostics(nil))...)

	assert.Equal(t, RuntimeClient, cfg.Runtime)
	assert.False(t, cfg.EnableFile)
	assert.Empty(t, h.diag.String())
}
