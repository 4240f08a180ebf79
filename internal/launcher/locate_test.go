package launcher

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/toolenvgo/internal/environ"
)

// writeExecutable creates a file with the given mode and returns its path.
func writeExecutable(t *testing.T, dir, name string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), mode))
	return path
}

func TestLocate_FindsExecutableOnPath(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix execute bits")
	}

	dir := t.TempDir()
	want := writeExecutable(t, dir, "render", 0o755)

	env := environ.New()
	env.Set("PATH", "/nonexistent"+string(os.PathListSeparator)+dir)
	env.Set("PATHEXT", "")

	got, err := Locate("render", env)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLocate_TriesPathExtExtensions(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix execute bits")
	}

	dir := t.TempDir()
	want := writeExecutable(t, dir, "render.bat", 0o755)

	env := environ.New()
	env.Set("PATH", dir)
	env.Set("PATHEXT", ".COM"+string(os.PathListSeparator)+".BAT")

	got, err := Locate("render", env)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLocate_IgnoresNonExecutableFiles(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix execute bits")
	}

	dir := t.TempDir()
	writeExecutable(t, dir, "render", 0o644)

	env := environ.New()
	env.Set("PATH", dir)
	env.Set("PATHEXT", "")

	_, err := Locate("render", env)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocate_NoPathEntry(t *testing.T) {
	t.Parallel()

	_, err := Locate("render", environ.New())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "PATH")
}

func TestLaunch_RunsChildWithEnvironment(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("relies on /bin/sh")
	}

	env := environ.New()
	env.Set("GREETING", "hello from toolenv")

	var out bytes.Buffer
	cmd, err := Launch(context.Background(), "/bin/sh", []string{"-c", `printf '%s' "$GREETING"`}, env, "", &out)
	require.NoError(t, err)
	require.NoError(t, cmd.Wait())

	assert.Equal(t, "hello from toolenv", out.String())
}
