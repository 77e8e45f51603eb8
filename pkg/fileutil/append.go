package fileutil

import (
	"os"

	"github.com/spf13/afero"

	"github.com/thoreinstein/lognerd/internal/errors"
)

// DefaultFilePerm is the permission for files created by AppendFile.
const DefaultFilePerm = 0o644

// AppendFile appends data to path, creating it when missing. Each call opens
// and closes the file, so concurrent writers rely on O_APPEND semantics.
func AppendFile(fs afero.Fs, path string, data []byte) error {
	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DefaultFilePerm)
	if err != nil {
		return errors.Wrap(err, "opening file for append")
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Wrap(err, "appending to file")
	}

	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing file")
	}
	return nil
}

// EnsureDir creates dir and any missing parents. It is a no-op when dir
// already exists, and fails when dir exists but is not a directory.
func EnsureDir(fs afero.Fs, dir string, perm os.FileMode) error {
	info, err := fs.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.Newf("%s exists and is not a directory", dir)
		}
		return nil
	}

	if err := fs.MkdirAll(dir, perm); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}
	return nil
}
