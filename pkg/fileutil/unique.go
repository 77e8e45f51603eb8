package fileutil

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/lognerd/internal/errors"
)

// maxUniqueAttempts bounds the counter appended by UniquePath.
const maxUniqueAttempts = 1000

// UniquePath returns filepath.Join(dir, name+ext) when that path is free,
// and otherwise the first free name+"-N"+ext for N = 1, 2, ...
func UniquePath(fs afero.Fs, dir, name, ext string) (string, error) {
	candidate := filepath.Join(dir, name+ext)
	for i := 1; i <= maxUniqueAttempts; i++ {
		exists, err := afero.Exists(fs, candidate)
		if err != nil {
			return "", errors.Wrap(err, "checking file existence")
		}
		if !exists {
			return candidate, nil
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d%s", name, i, ext))
	}
	return "", errors.Newf("no free file name for %s%s after %d attempts", name, ext, maxUniqueAttempts)
}
