package config

import (
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/thoreinstein/lognerd/internal/errors"
	"github.com/thoreinstein/lognerd/internal/paths"
)

// FileName is the config file name without extension.
const FileName = "config"

// File mirrors the config file. Nil fields were absent from the file.
type File struct {
	Level         *string  `mapstructure:"level" yaml:"level,omitempty"`
	EnableConsole *bool    `mapstructure:"enable_console" yaml:"enable_console,omitempty"`
	EnableFile    *bool    `mapstructure:"enable_file" yaml:"enable_file,omitempty"`
	FilePath      *string  `mapstructure:"file_path" yaml:"file_path,omitempty"`
	Environment   *string  `mapstructure:"environment" yaml:"environment,omitempty"`
	Runtime       *string  `mapstructure:"runtime" yaml:"runtime,omitempty"`
	MaxFileSize   *float64 `mapstructure:"max_file_size" yaml:"max_file_size,omitempty"`
	MaxFiles      *int     `mapstructure:"max_files" yaml:"max_files,omitempty"`

	// Path is the file that was read; empty when none was found.
	Path string `mapstructure:"-" yaml:"-"`
}

// Loader reads config files through a private viper instance.
type Loader struct {
	fs afero.Fs
	v  *viper.Viper
}

// NewLoader returns a Loader that reads from fs.
func NewLoader(fs afero.Fs) *Loader {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigName(FileName)

	// Search paths (in order of precedence)
	v.AddConfigPath(".")
	v.AddConfigPath(paths.AppConfigDir())

	return &Loader{fs: fs, v: v}
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file and a missing file is
// an error. If path is empty, it searches the default locations and returns
// an empty File when nothing is found.
func (l *Loader) Load(path string) (*File, error) {
	if path != "" {
		exists, err := afero.Exists(l.fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, "checking config file %s", path)
		}
		if !exists {
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		}
		l.v.SetConfigFile(path)
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return &File{}, nil
		}
		return nil, errors.Wrap(err, "reading config file")
	}

	var f File
	if err := l.v.Unmarshal(&f); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	f.Path = l.v.ConfigFileUsed()

	return &f, nil
}
