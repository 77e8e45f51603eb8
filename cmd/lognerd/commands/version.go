package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/lognerd/cmd"
	"github.com/thoreinstein/lognerd/internal/env"
	"github.com/thoreinstein/lognerd/internal/platform"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, and build date of lognerd, and the runtime it detects.`,
	Run: func(c *cobra.Command, _ []string) {
		w := c.OutOrStdout()
		host := platform.Host()

		fmt.Fprintf(w, "lognerd version %s\n", cmd.ResolvedVersion())
		fmt.Fprintf(w, "  commit:  %s\n", cmd.Commit)
		fmt.Fprintf(w, "  built:   %s\n", cmd.Date)
		fmt.Fprintf(w, "  go:      %s\n", runtime.Version())
		fmt.Fprintf(w, "  runtime: %s (files: %t)\n", platform.Detect(env.New(), host), host.FileCapable())
	},
}
