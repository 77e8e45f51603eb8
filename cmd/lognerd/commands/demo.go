package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/lognerd/internal/paths"
	"github.com/thoreinstein/lognerd/pkg/lognerd"
)

// demoDir holds the value of the demo --dir flag.
var demoDir string

func init() {
	demoCmd.Flags().StringVar(&demoDir, "dir", paths.LogDirName,
		"directory the demo log files are written to")
	rootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the demonstration scenarios",
	Long: `Run a fixed set of scenarios that show level filtering, custom file
settings, production mode, structured data, the default logger and the
client runtime.

Environment variables still apply. The demo's own settings are caller
overrides and win over them.`,
	Example: `  # Run the demo, writing under ./logs
  lognerd demo

  # Watch the diagnostics too
  lognerd demo -vv --dir /tmp/lognerd-demo`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

type demoScenario struct {
	title string
	run   func(opts []lognerd.Option)
}

func runDemo(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	opts := loggerOptions(cmd)

	for i, s := range demoScenarios(demoDir) {
		if i > 0 {
			fmt.Fprintln(w, "\n---")
		}
		fmt.Fprintf(w, "\n%d. %s\n", i+1, s.title)
		s.run(opts)
	}

	fmt.Fprintf(w, "\nLog files were written under %s\n", demoDir)
	return nil
}

func demoScenarios(dir string) []demoScenario {
	return []demoScenario{
		{
			title: "Default configuration",
			run: func(opts []lognerd.Option) {
				l := lognerd.New(&lognerd.Overrides{FilePath: lognerd.Ptr(filepath.Join(dir, "app.log"))}, opts...)
				l.Info("informational message")
				l.Debug("debug message, hidden at INFO")
				l.Warn("warning message")
				l.Error("error message", map[string]any{"code": 500, "message": "test error"})
			},
		},
		{
			title: "Custom configuration",
			run: func(opts []lognerd.Option) {
				l := lognerd.New(&lognerd.Overrides{
					Level:         lognerd.Ptr(lognerd.LevelDebug),
					Environment:   lognerd.Ptr(lognerd.EnvDevelopment),
					FilePath:      lognerd.Ptr(filepath.Join(dir, "test.log")),
					MaxFileSizeMB: lognerd.Ptr(1.0),
					MaxFiles:      lognerd.Ptr(3),
				}, opts...)
				l.Info("custom logger - INFO")
				l.Debug("custom logger - DEBUG")
				l.Warn("custom logger - WARN")
				l.Error("custom logger - ERROR", map[string]bool{"test": true})
			},
		},
		{
			title: "Production (file only)",
			run: func(opts []lognerd.Option) {
				l := lognerd.New(&lognerd.Overrides{
					Level:       lognerd.Ptr(lognerd.LevelWarn),
					Environment: lognerd.Ptr(lognerd.EnvProduction),
					FilePath:    lognerd.Ptr(filepath.Join(dir, "production-test.log")),
				}, opts...)
				l.Info("filtered by level")
				l.Warn("written to the file only")
				l.Error("also written to the file only", map[string]bool{"production": true})
				describe(opts, l.Config())
			},
		},
		{
			title: "Structured data",
			run: func(opts []lognerd.Option) {
				l := lognerd.New(&lognerd.Overrides{FilePath: lognerd.Ptr(filepath.Join(dir, "app.log"))}, opts...)
				l.Info("user created", map[string]any{
					"id":    123,
					"name":  "Juan",
					"email": "juan@example.com",
					"preferences": map[string]any{
						"theme":         "dark",
						"notifications": true,
					},
				})
				l.Error("user processing failed", map[string]any{
					"userId": 123,
					"error":  "Validation failed",
					"details": map[string]string{
						"field":   "email",
						"message": "Invalid email format",
					},
				})
			},
		},
		{
			title: "Default logger",
			run: func(opts []lognerd.Option) {
				lognerd.Configure(lognerd.Overrides{
					Level:    lognerd.Ptr(lognerd.LevelDebug),
					FilePath: lognerd.Ptr(filepath.Join(dir, "app.log")),
				}, opts...)
				defer lognerd.SetDefault(nil)

				lognerd.Info("first call through the default logger")
				lognerd.Debug("same instance", map[string]bool{"shared": lognerd.Default() == lognerd.Default()})
			},
		},
		{
			title: "Client runtime",
			run: func(opts []lognerd.Option) {
				l := lognerd.New(&lognerd.Overrides{
					Runtime:    lognerd.Ptr(lognerd.RuntimeClient),
					EnableFile: lognerd.Ptr(true),
					FilePath:   lognerd.Ptr(filepath.Join(dir, "client.log")),
				}, opts...)
				l.Info("console only, the file sink was turned off")
				describe(opts, l.Config())
			},
		},
	}
}

// describe prints the sink state of cfg through a console-only logger.
func describe(opts []lognerd.Option, cfg lognerd.Config) {
	l := lognerd.NewWithConfig(lognerd.Config{Level: lognerd.LevelDebug, EnableConsole: true}, opts...)
	l.Debug("resolved sinks", map[string]any{
		"console": cfg.EnableConsole,
		"file":    cfg.EnableFile,
		"runtime": cfg.Runtime,
	})
}
