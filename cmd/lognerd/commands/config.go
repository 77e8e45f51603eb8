package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/lognerd/internal/config"
	"github.com/thoreinstein/lognerd/internal/editor"
	"github.com/thoreinstein/lognerd/internal/errors"
	"github.com/thoreinstein/lognerd/internal/paths"
	"github.com/thoreinstein/lognerd/internal/platform"
	"github.com/thoreinstein/lognerd/pkg/fileutil"
	"github.com/thoreinstein/lognerd/pkg/lognerd"
)

// configFormat holds the value of the config --format flag.
var configFormat string

// configInitPath and configInitForce hold the config init flags.
var (
	configInitPath  string
	configInitForce bool
)

func init() {
	configCmd.Flags().StringVarP(&configFormat, "format", "f", "yaml",
		"output format: yaml, json, toml")
	configInitCmd.Flags().StringVar(&configInitPath, "path", "",
		"where to write the file (default: $XDG_CONFIG_HOME/lognerd/config.yaml)")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false,
		"overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved logger configuration",
	Long: `Print the configuration a logger would use in this process, after
defaults, environment variables, the config file and flags are merged and
adjusted for the current runtime.`,
	Example: `  # Resolved configuration as YAML
  lognerd config

  # As TOML, in production mode
  lognerd config --format toml --environment production

See Also: lognerd config init`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a config file containing the built-in defaults, ready to edit.

Refuses to overwrite an existing file unless --force is given.`,
	Example: `  # Write to the default location
  lognerd config init

  # Write next to the project
  lognerd config init --path ./config.yaml

See Also: lognerd config`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $EDITOR",
	Long: `Open the config file in your default editor.

Uses the file given with --config, or the default location. Uses $EDITOR,
then $VISUAL, then nano or vi.`,
	Example: `  # Edit the default config
  lognerd config edit

  # With a specific editor
  EDITOR=nano lognerd config edit

See Also: lognerd config init, lognerd doctor`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	o, err := callerOverrides(cmd)
	if err != nil {
		return err
	}

	cfg := lognerd.ResolveConfig(&o, loggerOptions(cmd)...)

	data, err := marshalConfig(cfg, configFormat)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func marshalConfig(cfg lognerd.Config, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case "yaml", "yml":
		data, err = yaml.Marshal(cfg)
	case "json":
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	case "toml":
		data, err = toml.Marshal(cfg)
	default:
		return nil, errors.NewUserError(
			errors.Newf("unknown format %q", format),
			"Valid formats: yaml, json, toml")
	}
	if err != nil {
		return nil, errors.Wrap(err, "marshaling config")
	}
	return data, nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	fs := platform.Host().Fs
	if fs == nil {
		return errors.NewSystemError(errors.New("no file access in this runtime"), "")
	}

	path := configInitPath
	if path == "" {
		path = defaultConfigPath()
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return err
	}
	if exists && !configInitForce {
		return errors.NewUserError(
			errors.Newf("%s already exists", path),
			"Use --force to overwrite it")
	}

	if err := fileutil.EnsureDir(fs, filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.NewSystemError(err, "")
	}

	def := lognerd.DefaultConfig()
	starter := config.File{
		Level:         lognerd.Ptr(def.Level.String()),
		EnableConsole: lognerd.Ptr(def.EnableConsole),
		EnableFile:    lognerd.Ptr(def.EnableFile),
		Environment:   lognerd.Ptr(string(def.Environment)),
		MaxFileSize:   lognerd.Ptr(def.MaxFileSizeMB),
		MaxFiles:      lognerd.Ptr(def.MaxFiles),
	}
	if err := fileutil.AtomicWriteYAML(fs, path, starter); err != nil {
		return errors.NewSystemError(err, "Check that the directory is writable")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	fs := platform.Host().Fs
	if fs == nil {
		return errors.NewSystemError(errors.New("no file access in this runtime"), "")
	}

	path := configFile
	if path == "" {
		path = defaultConfigPath()
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "config file %s", path),
			"Run: lognerd config init")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Location: %s\n", path)
	return editor.Open(path, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func defaultConfigPath() string {
	return filepath.Join(paths.AppConfigDir(), config.FileName+".yaml")
}
