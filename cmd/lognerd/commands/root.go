// Package commands implements the CLI commands for lognerd.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/lognerd/cmd"
	"github.com/thoreinstein/lognerd/internal/config"
	"github.com/thoreinstein/lognerd/internal/errors"
	"github.com/thoreinstein/lognerd/internal/logging"
	"github.com/thoreinstein/lognerd/internal/platform"
	"github.com/thoreinstein/lognerd/pkg/lognerd"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// diagFile holds the path that diagnostics are also written to.
var diagFile string

// configFile holds the value of the --config flag.
var configFile string

// Override flags. Each is applied only when given on the command line.
var (
	levelFlag       string
	environmentFlag string
	filePathFlag    string
	consoleFlag     bool
	fileFlag        bool
)

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase diagnostic verbosity (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"only report diagnostic errors")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"diagnostic format: text, json")
	rootCmd.PersistentFlags().StringVar(&diagFile, "diag-file", "",
		"also write diagnostics to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml, then $XDG_CONFIG_HOME/lognerd/config.yaml)")

	rootCmd.PersistentFlags().StringVar(&levelFlag, "level", "",
		"minimum level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().StringVar(&environmentFlag, "environment", "",
		"deployment environment: development, production")
	rootCmd.PersistentFlags().StringVar(&filePathFlag, "file-path", "",
		"log file path")
	rootCmd.PersistentFlags().BoolVar(&consoleFlag, "console", true,
		"enable the console sink")
	rootCmd.PersistentFlags().BoolVar(&fileFlag, "file", true,
		"enable the file sink")

	rootCmd.Version = cmd.ResolvedVersion()
	rootCmd.SetVersionTemplate("lognerd version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "lognerd",
	Short: "Inspect and exercise lognerd configuration",
	Long: `lognerd resolves logger configuration from defaults, LOGNERD_* environment
variables, an optional config file and flags, and writes entries to the
console and a rotating log file.

Precedence, lowest to highest: built-in defaults, environment variables,
config file, command-line flags.`,
	Example: `  # Show the resolved configuration
  lognerd config

  # Write one entry
  lognerd emit warn "disk almost full" --data '{"free":"2%"}'

  # Pick a rotated log file
  lognerd files --pick

  See Also: lognerd config, lognerd demo`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the diagnostic logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		level = logging.LevelFromVerbosity(verbosity)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if diagFile != "" {
		f, err := os.OpenFile(diagFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open diagnostics file")
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler).With("component", logging.Component)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// callerOverrides merges the config file with the override flags. Flags win.
func callerOverrides(cmd *cobra.Command) (lognerd.Overrides, error) {
	var o lognerd.Overrides

	if fs := platform.Host().Fs; fs != nil {
		f, err := config.NewLoader(fs).Load(configFile)
		if err != nil {
			return o, errors.NewConfigError(err)
		}
		if f.Path != "" {
			logging.FromContext(cmd.Context()).Debug("loaded config file", "path", f.Path)
		}
		o, err = f.Overrides()
		if err != nil {
			return o, errors.NewConfigError(errors.Wrapf(err, "config file %s", f.Path))
		}
	}

	fromFlags, err := flagOverrides(cmd)
	if err != nil {
		return o, err
	}
	return o.Merge(fromFlags), nil
}

func flagOverrides(cmd *cobra.Command) (lognerd.Overrides, error) {
	var o lognerd.Overrides
	flags := cmd.Flags()

	if flags.Changed("level") {
		lvl, err := lognerd.ParseLevel(levelFlag)
		if err != nil {
			return o, errors.NewUserError(err, "Valid levels: DEBUG, INFO, WARN, ERROR")
		}
		o.Level = &lvl
	}
	if flags.Changed("environment") {
		e, ok := lognerd.ParseEnvironment(environmentFlag)
		if !ok {
			return o, errors.NewUserError(
				errors.Wrapf(errors.ErrInvalidConfig, "environment %q", environmentFlag),
				"Valid environments: development, production")
		}
		o.Environment = &e
	}
	if flags.Changed("file-path") {
		o.FilePath = lognerd.Ptr(filePathFlag)
	}
	if flags.Changed("console") {
		o.EnableConsole = lognerd.Ptr(consoleFlag)
	}
	if flags.Changed("file") {
		o.EnableFile = lognerd.Ptr(fileFlag)
	}
	return o, nil
}

// loggerOptions wires a command's output and diagnostics into a lognerd Logger.
func loggerOptions(cmd *cobra.Command, extra ...lognerd.Option) []lognerd.Option {
	opts := []lognerd.Option{
		lognerd.WithDiagnostics(logging.FromContext(cmd.Context())),
		lognerd.WithConsole(cmd.OutOrStdout()),
	}
	return append(opts, extra...)
}

// Execute runs the root command.
func Execute() error {
	return errors.Wrap(rootCmd.Execute(), "executing root command")
}
