package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/lognerd/internal/errors"
)

func TestGenDoc_Markdown(t *testing.T) {
	isolate(t)
	dir := filepath.Join(t.TempDir(), "docs")

	out, _, err := execute(t, "gen-doc", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Documentation generated in "+dir)

	data, err := os.ReadFile(filepath.Join(dir, "lognerd_emit.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `title: "lognerd emit"`)
	assert.Contains(t, string(data), "/docs/reference/lognerd/")
}

func TestGenDoc_Man(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	_, _, err := execute(t, "gen-doc", "--dir", dir, "--format", "man")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "lognerd-emit.1"))
	assert.NoError(t, err)
}

func TestGenDoc_Errors(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "gen-doc")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	_, _, err = execute(t, "gen-doc", "--dir", t.TempDir(), "--format", "pdf")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestLinkHandler(t *testing.T) {
	assert.Equal(t, "/docs/reference/lognerd_config/", linkHandler("lognerd_config.md"))
}
