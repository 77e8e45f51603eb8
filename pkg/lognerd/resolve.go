package lognerd

import (
	"path/filepath"

	"github.com/thoreinstein/lognerd/internal/env"
	"github.com/thoreinstein/lognerd/internal/paths"
	"github.com/thoreinstein/lognerd/internal/platform"
	"github.com/thoreinstein/lognerd/pkg/fileutil"
)

// Environment variables read during resolution. Each also accepts the
// CLIENT_ prefixed form, which takes precedence.
const (
	EnvKeyLevel          = "LOGNERD_LEVEL"
	EnvKeyEnvironment    = "LOGNERD_ENVIRONMENT"
	EnvKeyDeploymentMode = "APP_ENV"
	EnvKeyEnableConsole  = "LOGNERD_ENABLE_CONSOLE"
	EnvKeyEnableFile     = "LOGNERD_ENABLE_FILE"
	EnvKeyFilePath       = "LOGNERD_FILE_PATH"
	EnvKeyMaxFileSize    = "LOGNERD_MAX_FILE_SIZE"
	EnvKeyMaxFiles       = "LOGNERD_MAX_FILES"
	EnvKeyRuntime        = platform.OverrideKey
)

// Built-in defaults.
const (
	DefaultMaxFileSizeMB = 10
	DefaultMaxFiles      = 5
)

// DefaultConfig returns the built-in defaults. Runtime is a placeholder that
// resolution always replaces.
func DefaultConfig() Config {
	return Config{
		Level:         LevelInfo,
		EnableConsole: true,
		EnableFile:    true,
		FilePath:      paths.DefaultLogFile(),
		Environment:   EnvDevelopment,
		Runtime:       RuntimeServer,
		MaxFileSizeMB: DefaultMaxFileSizeMB,
		MaxFiles:      DefaultMaxFiles,
	}
}

// ResolveConfig merges defaults, the detected runtime, environment variables
// and custom, then adjusts the result to what the runtime can do. custom may
// be nil. Resolution never fails: incompatible or unusable file settings are
// downgraded to a disabled file sink and reported on the diagnostic logger.
func ResolveConfig(custom *Overrides, opts ...Option) Config {
	return newOptions(opts).resolve(custom)
}

func (o *options) resolve(custom *Overrides) Config {
	cfg := DefaultConfig()
	cfg.Runtime = platform.Detect(o.env, o.capability)

	fromEnv := EnvOverrides(o.env)
	cfg = fromEnv.Apply(cfg)

	var caller Overrides
	if custom != nil {
		caller = *custom
	}
	cfg = caller.Apply(cfg)

	switch {
	case cfg.Runtime == RuntimeClient && cfg.EnableFile:
		o.diag.Warn("file sink disabled: client runtime cannot write files",
			"path", cfg.FilePath,
			"hint", "set LOG_ENVIRONMENT=B when running as a server")
		cfg.EnableFile = false
	case cfg.Runtime == RuntimeServer && cfg.EnableFile && !o.capability.FileCapable():
		o.diag.Error("file sink disabled: server runtime requested but file access is unavailable",
			"path", cfg.FilePath,
			"hint", "set LOG_ENVIRONMENT=C or fix the runtime configuration")
		cfg.EnableFile = false
	}

	// Explicit console intent from env or caller always beats the production default.
	if cfg.Environment == EnvProduction && fromEnv.EnableConsole == nil && caller.EnableConsole == nil {
		cfg.EnableConsole = false
		if fromEnv.EnableFile == nil && caller.EnableFile == nil {
			cfg.EnableFile = true
		}
	}

	if cfg.EnableFile {
		cfg.EnableFile = o.prepareDir(cfg)
	}

	return cfg
}

// prepareDir reports whether the file sink can stay enabled, creating the
// log directory when needed.
func (o *options) prepareDir(cfg Config) bool {
	if cfg.Runtime == RuntimeClient || !o.capability.FileCapable() {
		return false
	}
	if cfg.FilePath == "" {
		return true
	}

	dir := filepath.Dir(cfg.FilePath)
	if err := fileutil.EnsureDir(o.capability.Fs, dir, paths.DefaultDirPerm); err != nil {
		o.diag.Warn("file sink disabled: cannot create log directory", "dir", dir, "error", err)
		return false
	}
	return true
}

// EnvOverrides reads the LOGNERD_* variables. Only variables that are present
// produce a set field. Malformed values fall back to the built-in default for
// that field.
func EnvOverrides(r *env.Reader) Overrides {
	var o Overrides

	if r.Has(EnvKeyLevel) {
		o.Level = Ptr(envLevel(r, EnvKeyLevel, LevelInfo))
	}

	for _, key := range []string{EnvKeyEnvironment, EnvKeyDeploymentMode} {
		val, ok := r.Get(key)
		if !ok {
			continue
		}
		if e, ok := ParseEnvironment(val); ok {
			o.Environment = &e
		}
		break
	}

	if r.Has(EnvKeyEnableConsole) {
		o.EnableConsole = Ptr(r.GetBoolean(EnvKeyEnableConsole, true))
	}
	if r.Has(EnvKeyEnableFile) {
		o.EnableFile = Ptr(r.GetBoolean(EnvKeyEnableFile, true))
	}
	if val, ok := r.Get(EnvKeyFilePath); ok {
		o.FilePath = &val
	}
	if r.Has(EnvKeyMaxFileSize) {
		o.MaxFileSizeMB = Ptr(float64(r.GetNumber(EnvKeyMaxFileSize, DefaultMaxFileSizeMB)))
	}
	if r.Has(EnvKeyMaxFiles) {
		o.MaxFiles = Ptr(r.GetNumber(EnvKeyMaxFiles, DefaultMaxFiles))
	}

	return o
}

// envLevel is the level-typed accessor over the environment reader.
func envLevel(r *env.Reader, key string, def Level) Level {
	lvl, err := ParseLevel(r.GetChoice(key, levelNames, def.String()))
	if err != nil {
		return def
	}
	return lvl
}
