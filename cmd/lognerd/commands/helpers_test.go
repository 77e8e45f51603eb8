package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thoreinstein/lognerd/internal/env"
	"github.com/thoreinstein/lognerd/pkg/lognerd"
)

var resolverEnvKeys = []string{
	lognerd.EnvKeyLevel,
	lognerd.EnvKeyEnvironment,
	lognerd.EnvKeyDeploymentMode,
	lognerd.EnvKeyEnableConsole,
	lognerd.EnvKeyEnableFile,
	lognerd.EnvKeyFilePath,
	lognerd.EnvKeyMaxFileSize,
	lognerd.EnvKeyMaxFiles,
	lognerd.EnvKeyRuntime,
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// isolate clears the resolver's environment and returns a temp dir holding
// an empty config file, so a developer's own config is never read.
func isolate(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	for _, key := range resolverEnvKeys {
		for _, name := range env.Candidates(key) {
			t.Setenv(name, "")
		}
	}
	t.Setenv("NO_COLOR", "1")

	dir = t.TempDir()
	cfgPath = filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, nil, 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return dir, cfgPath
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}
