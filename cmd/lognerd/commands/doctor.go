package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/lognerd/internal/config"
	"github.com/thoreinstein/lognerd/internal/doctor"
	"github.com/thoreinstein/lognerd/internal/env"
	"github.com/thoreinstein/lognerd/internal/errors"
	"github.com/thoreinstein/lognerd/internal/platform"
	"github.com/thoreinstein/lognerd/pkg/lognerd"
)

var (
	doctorJSON bool
	doctorAll  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false,
		"show every check, including passed ones")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose logging configuration issues",
	Long: `Run diagnostic checks on the config file, runtime detection, the log
directory and rotated file retention.

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("warnings found")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("errors found")

func runDoctor(cmd *cobra.Command, _ []string) error {
	host := platform.Host()
	reader := env.New()

	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewRuntimeCheck(reader, host))

	if host.Fs != nil {
		runner.AddCheck(doctor.NewConfigFileCheck(config.NewLoader(host.Fs), configFile))
	}

	// A broken config file is reported by its check; the remaining checks
	// still run against flags and environment.
	o, err := flagOverrides(cmd)
	if err != nil {
		return err
	}
	if fileO, ferr := callerOverrides(cmd); ferr == nil {
		o = fileO
	}

	cfg := lognerd.ResolveConfig(&o, loggerOptions(cmd, lognerd.WithEnv(reader), lognerd.WithCapability(host))...)
	runner.AddCheck(doctor.NewLogDirCheck(host.Fs, cfg))
	runner.AddCheck(doctor.NewRetentionCheck(host.Fs, cfg))

	report := runner.Run(cmd.Context())

	w := cmd.OutOrStdout()
	if doctorJSON {
		if err := writeDoctorJSON(w, report); err != nil {
			return err
		}
	} else {
		writeDoctorText(w, report, doctorAll)
	}

	switch report.Worst() {
	case doctor.SeverityError:
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	case doctor.SeverityWarning:
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

func writeDoctorJSON(w io.Writer, report *doctor.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func writeDoctorText(w io.Writer, report *doctor.Report, showAll bool) {
	results := report.Actionable()
	if showAll {
		results = report.Results
	}

	for _, result := range results {
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && result.Status.Actionable() {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if len(results) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
