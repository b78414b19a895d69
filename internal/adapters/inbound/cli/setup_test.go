package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupCommand_EditorConfig(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "setup", "--editorconfig", "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created .editorconfig")

	data, err := os.ReadFile(filepath.Join(dir, ".editorconfig"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "root = true")
}

func TestSetupCommand_EditorConfigIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".editorconfig", "root = false\n")

	out, err := execute(t, "setup", "--editorconfig", "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "left unchanged")

	data, err := os.ReadFile(filepath.Join(dir, ".editorconfig"))
	require.NoError(t, err)
	assert.Equal(t, "root = false\n", string(data))
}

func TestSetupCommand_ToolsDryRun(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "setup", "--tools", "--dry-run", "--only", "rust", "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "install cargo-edit")
	assert.Contains(t, out, "0 failed")
	assert.NoFileExists(t, filepath.Join(dir, ".editorconfig"), "--tools alone skips the editorconfig")
}

func TestHistoryCommand_Empty(t *testing.T) {
	out, err := execute(t, "history", "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No run history found")
}

func TestHistoryCommand_JSONEmptyArray(t *testing.T) {
	out, err := execute(t, "history", "--json", "--path", t.TempDir())
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}
