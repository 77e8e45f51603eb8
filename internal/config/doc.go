// Package config loads the optional lognerd configuration file used by the
// CLI.
//
// The file supplies caller overrides, so it sits above LOGNERD_* environment
// variables and below command-line flags. Only keys present in the file are
// applied. The file is searched for as config.{yaml,yml,toml,json} in the
// current directory and then in the lognerd directory under the XDG config
// home (~/.config/lognerd on Linux):
//
//	level: debug
//	environment: production
//	enable_console: true
//	file_path: /var/log/myapp/app.log
//	max_file_size: 20
//	max_files: 10
//
// Use [Loader.Load] with an empty path to search, or a path to read one file:
//
//	f, err := config.NewLoader(afero.NewOsFs()).Load("")
//	if err != nil {
//	    return err
//	}
//	o, err := f.Overrides()
package config
