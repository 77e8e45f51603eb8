package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/lognerd/internal/errors"
	"github.com/thoreinstein/lognerd/internal/platform"
	"github.com/thoreinstein/lognerd/pkg/fileutil"
	"github.com/thoreinstein/lognerd/pkg/lognerd"
)

// previewBytes is how much of a file the picker preview shows.
const previewBytes = 4096

// File flags.
var (
	filesPick bool
	filesCat  bool
)

func init() {
	filesCmd.Flags().BoolVar(&filesPick, "pick", false,
		"choose a file interactively")
	filesCmd.Flags().BoolVar(&filesCat, "cat", false,
		"print the contents of the chosen file instead of its path")
	rootCmd.AddCommand(filesCmd)
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the active and rotated log files",
	Long: `List the active log file followed by its rotated copies, newest first.

With --pick, choose one of them in a fuzzy finder with a preview of the
end of each file.`,
	Example: `  # List files
  lognerd files

  # Pick one and print it
  lognerd files --pick --cat

See Also: lognerd emit`,
	Args: cobra.NoArgs,
	RunE: runFiles,
}

// pickFile is swapped in tests.
var pickFile = fuzzyPick

func runFiles(cmd *cobra.Command, _ []string) error {
	fs := platform.Host().Fs
	if fs == nil {
		return errors.NewSystemError(errors.New("no file access in this runtime"), "")
	}

	o, err := callerOverrides(cmd)
	if err != nil {
		return err
	}
	cfg := lognerd.ResolveConfig(&o, loggerOptions(cmd)...)

	files, err := logFiles(fs, cfg)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if !filesPick {
		if len(files) == 0 {
			fmt.Fprintln(w, "No log files found.")
			return nil
		}
		for _, f := range files {
			fmt.Fprintln(w, f)
		}
		return nil
	}

	if len(files) == 0 {
		fmt.Fprintln(w, "No log files found.")
		return nil
	}

	chosen, err := pickFile(fs, files)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive pick failed")
	}

	return printChoice(w, fs, chosen)
}

// logFiles returns the active file, when present, followed by rotated copies.
func logFiles(fs afero.Fs, cfg lognerd.Config) ([]string, error) {
	if cfg.FilePath == "" {
		return nil, errors.NewConfigError(errors.Wrap(errors.ErrInvalidConfig, "no log file path configured"))
	}

	var files []string
	exists, err := afero.Exists(fs, cfg.FilePath)
	if err != nil {
		return nil, errors.Wrap(err, "checking active log file")
	}
	if exists {
		files = append(files, cfg.FilePath)
	}

	rotated, err := lognerd.RotatedFiles(cfg, fs)
	if err != nil {
		dirExists, statErr := afero.DirExists(fs, filepath.Dir(cfg.FilePath))
		if statErr == nil && !dirExists {
			return files, nil
		}
		return nil, err
	}
	return append(files, rotated...), nil
}

func printChoice(w io.Writer, fs afero.Fs, path string) error {
	if !filesCat {
		fmt.Fprintln(w, path)
		return nil
	}

	data, err := fileutil.ReadFileWithLimit(fs, path)
	if err != nil {
		return errors.NewUserError(err, "Use a pager on the file directly: "+path)
	}
	_, err = w.Write(data)
	return err
}

func fuzzyPick(fs afero.Fs, files []string) (string, error) {
	idx, err := fuzzyfinder.Find(
		files,
		func(i int) string {
			return files[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			tail, err := fileutil.ReadTail(fs, files[i], previewBytes)
			if err != nil {
				return err.Error()
			}
			return string(tail)
		}),
	)
	if err != nil {
		return "", err
	}
	return files[idx], nil
}
