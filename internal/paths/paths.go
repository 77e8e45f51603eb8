package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under the XDG config home.
const AppName = "lognerd"

// Default log file layout, relative to the working directory.
const (
	LogDirName  = "logs"
	LogFileName = "app.log"
)

// DefaultDirPerm is the permission for newly created log directories.
const DefaultDirPerm = 0o755

// getwd is swapped in tests.
var getwd = os.Getwd

// DefaultLogFile returns the default log file path.
func DefaultLogFile() string {
	wd, err := getwd()
	if err != nil || wd == "" {
		return "./" + LogDirName + "/" + LogFileName
	}
	return filepath.Join(wd, LogDirName, LogFileName)
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns the lognerd directory under ConfigHome.
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// RotatedName returns the file name used for a rotated copy of base.
// stamp must already be free of characters that are unsafe in file names.
func RotatedName(base, stamp, ext string) string {
	return base + "-" + stamp + ext
}

// LogExt is the extension of every rotated log file.
const LogExt = ".log"

// SplitLogName splits a log file path into its directory, the base name
// rotated copies are derived from, and LogExt. Only a trailing ".log" is
// stripped from the base, so "app.txt" rotates to "app.txt-<stamp>.log".
func SplitLogName(path string) (dir, base, ext string) {
	dir = filepath.Dir(path)
	return dir, strings.TrimSuffix(filepath.Base(path), LogExt), LogExt
}
