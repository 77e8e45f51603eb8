package doctor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/lognerd/internal/config"
	"github.com/thoreinstein/lognerd/internal/env"
	"github.com/thoreinstein/lognerd/internal/paths"
	"github.com/thoreinstein/lognerd/internal/platform"
	"github.com/thoreinstein/lognerd/pkg/lognerd"
)

const bytesPerMB = 1024 * 1024

// ConfigFileCheck validates the optional config file.
type ConfigFileCheck struct {
	loader *config.Loader
	path   string
}

var _ Check = (*ConfigFileCheck)(nil)

// NewConfigFileCheck checks the file at path, or the default search
// locations when path is empty.
func NewConfigFileCheck(loader *config.Loader, path string) *ConfigFileCheck {
	return &ConfigFileCheck{loader: loader, path: path}
}

// Name returns the unique identifier for this check.
func (c *ConfigFileCheck) Name() string {
	return "config-file"
}

// Category returns the grouping for this check.
func (c *ConfigFileCheck) Category() string {
	return "config"
}

// Run loads and validates the config file.
func (c *ConfigFileCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	f, err := c.loader.Load(c.path)
	if err != nil {
		result.Status = SeverityError
		result.Message = "config file cannot be read: " + err.Error()
		result.FixHint = "Fix the file or run: lognerd config init --force"
		return result
	}

	if f.Path == "" {
		result.Status = SeverityInfo
		result.Message = "no config file found, using defaults and environment"
		result.Details = map[string]any{
			"searched": []string{".", paths.AppConfigDir()},
		}
		return result
	}

	result.Details = map[string]any{"path": f.Path}

	if errs := config.Validate(f); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d invalid value(s): %s", len(errs), strings.Join(msgs, "; "))
		result.FixHint = "Edit " + f.Path
		return result
	}

	result.Status = SeverityPass
	result.Message = "config file is valid"
	return result
}

// RuntimeCheck reports the detected runtime and catches override mistakes.
type RuntimeCheck struct {
	env        *env.Reader
	capability platform.Capability
}

var _ Check = (*RuntimeCheck)(nil)

// NewRuntimeCheck creates a runtime detection check.
func NewRuntimeCheck(r *env.Reader, c platform.Capability) *RuntimeCheck {
	return &RuntimeCheck{env: r, capability: c}
}

// Name returns the unique identifier for this check.
func (c *RuntimeCheck) Name() string {
	return "runtime"
}

// Category returns the grouping for this check.
func (c *RuntimeCheck) Category() string {
	return "runtime"
}

// Run executes the runtime detection check.
func (c *RuntimeCheck) Run() *CheckResult {
	rt := platform.Detect(c.env, c.capability)
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details: map[string]any{
			"runtime":      string(rt),
			"file_capable": c.capability.FileCapable(),
		},
	}

	if val, ok := c.env.Get(platform.OverrideKey); ok {
		result.Details["override"] = val
		if _, known := platform.ParseRuntime(val); !known {
			result.Status = SeverityWarning
			result.Message = fmt.Sprintf("%s=%q is not recognized, detected runtime %s is used", platform.OverrideKey, val, rt)
			result.FixHint = "Use B (server) or C (client)"
			return result
		}
	}

	if rt == platform.RuntimeServer && !c.capability.FileCapable() {
		result.Status = SeverityError
		result.Message = "server runtime selected but this process cannot write files"
		result.FixHint = "Set " + platform.OverrideKey + "=C or run where file access is available"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("runtime %s", rt)
	return result
}

// LogDirCheck verifies that the file sink's directory is writable.
type LogDirCheck struct {
	fs  afero.Fs
	cfg lognerd.Config
}

var _ Check = (*LogDirCheck)(nil)

// NewLogDirCheck creates a log directory check for a resolved config.
func NewLogDirCheck(fs afero.Fs, cfg lognerd.Config) *LogDirCheck {
	return &LogDirCheck{fs: fs, cfg: cfg}
}

// Name returns the unique identifier for this check.
func (c *LogDirCheck) Name() string {
	return "log-directory"
}

// Category returns the grouping for this check.
func (c *LogDirCheck) Category() string {
	return "filesystem"
}

// Run probes the log directory with a temporary file.
func (c *LogDirCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if !c.cfg.EnableFile || c.cfg.FilePath == "" {
		result.Status = SeverityInfo
		result.Message = "file sink disabled"
		return result
	}
	if c.fs == nil {
		result.Status = SeverityError
		result.Message = "file sink enabled without file access"
		return result
	}

	dir := filepath.Dir(c.cfg.FilePath)
	result.Details = map[string]any{"dir": dir}

	ok, err := afero.DirExists(c.fs, dir)
	if err != nil || !ok {
		result.Status = SeverityError
		result.Message = "log directory does not exist: " + dir
		result.FixHint = "mkdir -p " + dir
		return result
	}

	probe, err := afero.TempFile(c.fs, dir, ".lognerd-doctor-*")
	if err != nil {
		result.Status = SeverityError
		result.Message = "log directory is not writable: " + dir
		result.FixHint = "Check the directory permissions"
		return result
	}
	name := probe.Name()
	_ = probe.Close()
	_ = c.fs.Remove(name)

	result.Status = SeverityPass
	result.Message = "log directory is writable"
	return result
}

// RetentionCheck compares rotated files on disk with the retention settings.
type RetentionCheck struct {
	fs  afero.Fs
	cfg lognerd.Config
}

var _ Check = (*RetentionCheck)(nil)

// NewRetentionCheck creates a retention check for a resolved config.
func NewRetentionCheck(fs afero.Fs, cfg lognerd.Config) *RetentionCheck {
	return &RetentionCheck{fs: fs, cfg: cfg}
}

// Name returns the unique identifier for this check.
func (c *RetentionCheck) Name() string {
	return "retention"
}

// Category returns the grouping for this check.
func (c *RetentionCheck) Category() string {
	return "filesystem"
}

// Run executes the retention check.
func (c *RetentionCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if c.fs == nil || c.cfg.FilePath == "" {
		result.Status = SeverityInfo
		result.Message = "no log file to inspect"
		return result
	}

	if ok, _ := afero.DirExists(c.fs, filepath.Dir(c.cfg.FilePath)); !ok {
		result.Status = SeverityInfo
		result.Message = "no log files yet"
		return result
	}

	rotated, err := lognerd.RotatedFiles(c.cfg, c.fs)
	if err != nil {
		result.Status = SeverityWarning
		result.Message = "cannot list rotated files: " + err.Error()
		return result
	}

	result.Details = map[string]any{
		"rotated":   len(rotated),
		"max_files": c.cfg.MaxFiles,
	}

	if c.cfg.MaxFiles > 0 && len(rotated) > c.cfg.MaxFiles {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d rotated files exceed max_files %d", len(rotated), c.cfg.MaxFiles)
		result.FixHint = "Extra files are removed on the next rotation"
		return result
	}

	if c.cfg.MaxFileSizeMB <= 0 {
		result.Status = SeverityInfo
		result.Message = "rotation disabled, the log file grows without limit"
		result.FixHint = "Set max_file_size or LOGNERD_MAX_FILE_SIZE"
		return result
	}

	if info, err := c.fs.Stat(c.cfg.FilePath); err == nil {
		sizeMB := float64(info.Size()) / bytesPerMB
		result.Details["active_mb"] = sizeMB
		if sizeMB >= c.cfg.MaxFileSizeMB {
			result.Status = SeverityInfo
			result.Message = "active file rotates on the next write"
			return result
		}
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d rotated file(s) kept", len(rotated))
	return result
}
