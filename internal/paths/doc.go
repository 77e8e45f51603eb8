// Package paths resolves the filesystem locations lognerd uses by default.
//
// # Log File
//
// [DefaultLogFile] is <cwd>/logs/app.log when the working directory can be
// determined, and the relative ./logs/app.log otherwise.
//
// # XDG Base Directory Compliance
//
// Config file lookup wraps github.com/adrg/xdg. On Linux the CLI searches
// ~/.config/lognerd, on macOS ~/Library/Application Support/lognerd, and on
// Windows %LOCALAPPDATA%\lognerd.
package paths
