package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/lognerd/internal/errors"
	"github.com/thoreinstein/lognerd/pkg/lognerd"
)

// emitData holds the value of the emit --data flag.
var emitData string

func init() {
	emitCmd.Flags().StringVarP(&emitData, "data", "d", "",
		"JSON value attached to the entry")
	rootCmd.AddCommand(emitCmd)
}

var emitCmd = &cobra.Command{
	Use:   "emit <level> <message>",
	Short: "Write one entry through a resolved logger",
	Long: `Write one entry at the given level. The entry goes to whichever sinks the
resolved configuration enables, and may trigger rotation of the log file.`,
	Example: `  # Plain entry
  lognerd emit info "service started"

  # With structured data, file only
  lognerd emit error "payment failed" --data '{"order":42}' --console=false

See Also: lognerd config, lognerd files`,
	Args: cobra.ExactArgs(2),
	RunE: runEmit,
}

func runEmit(cmd *cobra.Command, args []string) error {
	level, err := lognerd.ParseLevel(args[0])
	if err != nil {
		return errors.NewUserError(err, "Valid levels: DEBUG, INFO, WARN, ERROR")
	}

	var data any
	if emitData != "" {
		if err := json.Unmarshal([]byte(emitData), &data); err != nil {
			return errors.NewUserError(errors.Wrap(err, "parsing --data"), "--data must be valid JSON")
		}
	}

	o, err := callerOverrides(cmd)
	if err != nil {
		return err
	}

	logger := lognerd.New(&o, loggerOptions(cmd)...)
	logger.Log(level, args[1], data)
	return nil
}
