package fileutil

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"

	"github.com/thoreinstein/lognerd/internal/errors"
)

// FileEntry describes one file returned by ListByModTime.
type FileEntry struct {
	Name    string
	Path    string
	ModTime time.Time
}

// ListByModTime lists the regular files in dir whose names satisfy match,
// newest modification time first. Files with equal times are ordered by name,
// descending.
func ListByModTime(fs afero.Fs, dir string, match func(name string) bool) ([]FileEntry, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading directory %s", dir)
	}

	files := make([]FileEntry, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || (match != nil && !match(info.Name())) {
			continue
		}
		files = append(files, FileEntry{
			Name:    info.Name(),
			Path:    filepath.Join(dir, info.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		return files[i].Name > files[j].Name
	})
	return files, nil
}
