package editor

import (
	"os/exec"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name   string
		editor string
		visual string
		want   string
	}{
		{"EDITOR wins", "emacs", "code", "emacs"},
		{"VISUAL fallback", "", "code", "code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)

			if got := Command(); got != tt.want {
				t.Errorf("Command() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommand_DefaultFallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	got := Command()
	if _, err := exec.LookPath("nano"); err == nil {
		if got != "nano" {
			t.Errorf("Command() = %q, want nano", got)
		}
		return
	}
	if got != "vi" {
		t.Errorf("Command() = %q, want vi", got)
	}
}

func TestOpen(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	t.Setenv("EDITOR", "true")

	if err := Open("/tmp/whatever.yaml", nil, nil, nil); err != nil {
		t.Errorf("Open() error = %v", err)
	}
}

func TestOpen_EditorFails(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	t.Setenv("EDITOR", "false")

	if err := Open("/tmp/whatever.yaml", nil, nil, nil); err == nil {
		t.Error("Open() expected error when the editor exits non-zero")
	}
}
