package lognerd

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/thoreinstein/lognerd/internal/errors"
	"github.com/thoreinstein/lognerd/internal/paths"
	"github.com/thoreinstein/lognerd/pkg/fileutil"
)

const bytesPerMB = 1024 * 1024

// writeFile appends the entry to the file sink and rotates when needed.
func (l *Logger) writeFile(cfg *Config, e Entry) {
	if !cfg.EnableFile || cfg.FilePath == "" || cfg.Runtime == RuntimeClient {
		return
	}
	if l.fs == nil {
		if cfg.Runtime == RuntimeServer {
			l.diag.Error("file write skipped: server runtime without file access",
				"path", cfg.FilePath,
				"hint", "check that LOG_ENVIRONMENT=B is set correctly")
		}
		return
	}

	line := l.format.FileLine(e) + "\n"
	if err := fileutil.AppendFile(l.fs, cfg.FilePath, []byte(line)); err != nil {
		l.diag.Warn("file write failed", "path", cfg.FilePath, "error", err)
		return
	}

	if err := l.rotateIfNeeded(cfg, e.Time); err != nil {
		l.diag.Debug("rotation failed", "path", cfg.FilePath, "error", err)
	}
}

// rotateIfNeeded renames the active file once it reaches MaxFileSizeMB and
// prunes old rotated files. now stamps the rotated name.
func (l *Logger) rotateIfNeeded(cfg *Config, now time.Time) error {
	if cfg.MaxFileSizeMB <= 0 {
		return nil
	}

	info, err := l.fs.Stat(cfg.FilePath)
	if err != nil {
		return errors.Wrap(err, "stat active log file")
	}
	if float64(info.Size())/bytesPerMB < cfg.MaxFileSizeMB {
		return nil
	}

	dir, base, ext := paths.SplitLogName(cfg.FilePath)
	name := paths.RotatedName(base, rotationStamp(now), "")
	target, err := fileutil.UniquePath(l.fs, dir, name, ext)
	if err != nil {
		return err
	}
	if err := l.fs.Rename(cfg.FilePath, target); err != nil {
		return errors.Wrapf(err, "renaming %s", cfg.FilePath)
	}

	if err := l.cleanup(cfg); err != nil {
		l.diag.Debug("retention cleanup failed", "dir", dir, "error", err)
	}
	return nil
}

// cleanup deletes rotated files beyond the newest MaxFiles.
func (l *Logger) cleanup(cfg *Config) error {
	if cfg.MaxFiles <= 0 {
		return nil
	}

	files, err := listRotated(l.fs, cfg.FilePath)
	if err != nil {
		return err
	}
	if len(files) <= cfg.MaxFiles {
		return nil
	}

	var errs []error
	for _, f := range files[cfg.MaxFiles:] {
		if err := l.fs.Remove(f.Path); err != nil {
			errs = append(errs, errors.Wrapf(err, "removing %s", f.Name))
		}
	}
	return errors.Join(errs...)
}

// rotationStamp is the ISO timestamp with ':' and '.' replaced by '-'.
func rotationStamp(t time.Time) string {
	return strings.NewReplacer(":", "-", ".", "-").Replace(t.UTC().Format(TimestampFormat))
}

// isRotatedName reports whether name is a rotated copy of base+ext:
// base, a dash, a digit, then anything ending in ext.
func isRotatedName(name, base, ext string) bool {
	prefix := base + "-"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
		return false
	}
	rest := name[len(prefix):]
	if len(rest) <= len(ext) {
		return false
	}
	return rest[0] >= '0' && rest[0] <= '9'
}

// rotationOrder splits a rotated name into its stamp and the "-N" counter
// UniquePath appends on a collision (0 when absent).
func rotationOrder(name, base, ext string) (stamp string, n int) {
	stem := strings.TrimSuffix(strings.TrimPrefix(name, base+"-"), ext)
	if i := strings.LastIndex(stem, "Z-"); i >= 0 {
		if n, err := strconv.Atoi(stem[i+2:]); err == nil {
			return stem[:i+1], n
		}
	}
	return stem, 0
}

// listRotated returns the rotated copies of activePath, newest first. Equal
// mtimes fall back to the stamp, then to the collision counter.
func listRotated(fs afero.Fs, activePath string) ([]fileutil.FileEntry, error) {
	dir, base, ext := paths.SplitLogName(activePath)
	files, err := fileutil.ListByModTime(fs, dir, func(name string) bool {
		return isRotatedName(name, base, ext)
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		si, ni := rotationOrder(files[i].Name, base, ext)
		sj, nj := rotationOrder(files[j].Name, base, ext)
		if si != sj {
			return si > sj
		}
		return ni > nj
	})
	return files, nil
}

// RotatedFiles returns the paths of the rotated copies of cfg.FilePath,
// newest first.
func RotatedFiles(cfg Config, fs afero.Fs) ([]string, error) {
	if cfg.FilePath == "" {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "no file path configured")
	}
	if fs == nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "no file access in this runtime")
	}

	files, err := listRotated(fs, cfg.FilePath)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out, nil
}
