package runner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upkeepdev/upkeep/internal/adapters/outbound/runner"
	"github.com/upkeepdev/upkeep/internal/logging"
)

func newSweeper() *runner.Sweeper {
	return runner.NewSweeper(logging.Nop())
}

func mkdirAll(t *testing.T, parts ...string) string {
	t.Helper()
	path := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(path, 0o755))
	return path
}

func touch(t *testing.T, parts ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(parts...), []byte("x"), 0o644))
}

func TestExpandPlainPatterns(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, root, "dist")
	mkdirAll(t, root, "build")
	touch(t, root, "keep.txt")

	paths, err := newSweeper().Expand(root, []string{"dist", "build", "coverage"})

	require.NoError(t, err)
	assert.Equal(t, []string{"build", "dist"}, paths)
}

func TestExpandDeepPattern(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, root, "pkg", "__pycache__")
	touch(t, root, "pkg", "__pycache__", "mod.pyc")
	mkdirAll(t, root, "pkg", "sub", "__pycache__")
	mkdirAll(t, root, "src")

	paths, err := newSweeper().Expand(root, []string{"**/__pycache__"})

	require.NoError(t, err)
	assert.Equal(t, []string{"pkg/__pycache__", "pkg/sub/__pycache__"}, paths)
	// The matched directory is reported whole, not its contents.
	assert.NotContains(t, paths, "pkg/__pycache__/mod.pyc")
}

func TestExpandDeepGlob(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, root, "demo.egg-info")
	mkdirAll(t, root, "sub", "other.egg-info")

	paths, err := newSweeper().Expand(root, []string{"**/*.egg-info"})

	require.NoError(t, err)
	assert.Equal(t, []string{"demo.egg-info", "sub/other.egg-info"}, paths)
}

func TestExpandSkipsVCSAndNodeModules(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, root, ".git", "__pycache__")
	mkdirAll(t, root, "node_modules", "dep", "__pycache__")
	mkdirAll(t, root, "src", "__pycache__")

	paths, err := newSweeper().Expand(root, []string{"**/__pycache__"})

	require.NoError(t, err)
	assert.Equal(t, []string{"src/__pycache__"}, paths)
}

func TestExpandRejectsEscapingPattern(t *testing.T) {
	_, err := newSweeper().Expand(t.TempDir(), []string{"../outside"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes the project root")
}

func TestExpandDeduplicates(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, root, "dist")

	paths, err := newSweeper().Expand(root, []string{"dist", "dist", "d*"})

	require.NoError(t, err)
	assert.Equal(t, []string{"dist"}, paths)
}

func TestRemove(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, root, "dist", "assets")
	touch(t, root, "dist", "assets", "app.js")
	touch(t, root, "keep.txt")

	err := newSweeper().Remove(root, []string{"dist"})

	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(root, "dist"))
	assert.FileExists(t, filepath.Join(root, "keep.txt"))
}

func TestRemoveMissingPathIsNoop(t *testing.T) {
	err := newSweeper().Remove(t.TempDir(), []string{"never-existed"})
	assert.NoError(t, err)
}

func TestRemoveRefusesRootEscape(t *testing.T) {
	err := newSweeper().Remove(t.TempDir(), []string{"../victim"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside project root")
}
