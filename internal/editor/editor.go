// Package editor launches the user's preferred text editor.
package editor

import (
	"io"
	"os"
	"os/exec"

	"github.com/thoreinstein/lognerd/internal/errors"
)

// Command returns the editor to launch.
// Fallback chain: $EDITOR → $VISUAL → nano → vi
func Command() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	return "vi"
}

// Open runs the editor on path, attached to the given streams, and waits
// for it to exit.
func Open(path string, in io.Reader, out, errOut io.Writer) error {
	cmd := exec.Command(Command(), path)
	cmd.Stdin = in
	cmd.Stdout = out
	cmd.Stderr = errOut

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}
	return nil
}
