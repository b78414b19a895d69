package toolprobe_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upkeepdev/upkeep/internal/adapters/outbound/toolprobe"
)

func TestAvailable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH probing fixture is unix-only")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "faketool")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	t.Setenv("PATH", dir)

	probe := toolprobe.New()
	assert.True(t, probe.Available("faketool"))
	assert.False(t, probe.Available("missingtool"))
}

func TestAvailableMemoizes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH probing fixture is unix-only")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "faketool")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	t.Setenv("PATH", dir)

	probe := toolprobe.New()
	require.True(t, probe.Available("faketool"))

	// Removing the binary after the first probe must not change the answer
	// within the same run.
	require.NoError(t, os.Remove(script))
	assert.True(t, probe.Available("faketool"))
}
