// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package tooldef

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDefinition drops a definition file into dir and fails the test on
// error.
func writeDefinition(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestDiscover_HCLDefinition(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDefinition(t, dir, "houdini.hcl", `
HOUDINI_ROOT = "/opt/houdini"
PATH         = ["{HOUDINI_ROOT}/bin", "{PATH}"]
HOUDINI_OS = {
  linux   = "/lin"
  windows = "C:/win"
  darwin  = "/mac"
}
`)
	loader := NewLoader([]string{dir}, ":")

	env, err := loader.Discover(context.Background(), []string{"houdini"}, "linux")
	require.NoError(t, err)

	assert.Equal(t, []string{"HOUDINI_ROOT", "PATH", "HOUDINI_OS"}, env.Keys())
	path, _ := env.Get("PATH")
	assert.Equal(t, "{HOUDINI_ROOT}/bin:{PATH}", path)
	osValue, _ := env.Get("HOUDINI_OS")
	assert.Equal(t, "/lin", osValue)
}

func TestDiscover_JSONDefinition(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDefinition(t, dir, "maya.json", `{
  "MAYA_ROOT": "/opt/maya",
  "MAYA_BIN": "{MAYA_ROOT}/bin",
  "MAYA_OS": {"linux": "/l", "windows": "C:/w", "darwin": "/d"},
  "MAYA_SCRIPTS": ["{MAYA_ROOT}/scripts", "/shared/scripts"]
}`)
	loader := NewLoader([]string{dir}, ":")

	env, err := loader.Discover(context.Background(), []string{"maya"}, "darwin")
	require.NoError(t, err)

	assert.Equal(t, []string{"MAYA_ROOT", "MAYA_BIN", "MAYA_OS", "MAYA_SCRIPTS"}, env.Keys())
	osValue, _ := env.Get("MAYA_OS")
	assert.Equal(t, "/d", osValue)
	scripts, _ := env.Get("MAYA_SCRIPTS")
	assert.Equal(t, "{MAYA_ROOT}/scripts:/shared/scripts", scripts)
}

func TestDiscover_YAMLDefinition(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDefinition(t, dir, "nuke.yaml", `
NUKE_ROOT: /opt/nuke
NUKE_OS:
  linux: /l
  windows: C:/w
NUKE_PLUGINS:
  - "{NUKE_ROOT}/plugins"
  - /shared/plugins
`)
	loader := NewLoader([]string{dir}, ":")

	env, err := loader.Discover(context.Background(), []string{"nuke"}, "linux")
	require.NoError(t, err)

	assert.Equal(t, []string{"NUKE_ROOT", "NUKE_OS", "NUKE_PLUGINS"}, env.Keys())
	plugins, _ := env.Get("NUKE_PLUGINS")
	assert.Equal(t, "{NUKE_ROOT}/plugins:/shared/plugins", plugins)
}

func TestDiscover_TOMLDefinition(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDefinition(t, dir, "rv.toml", `
RV_ROOT = "/opt/rv"
RV_BIN = ["{RV_ROOT}/bin"]

[RV_OS]
linux = "/l"
windows = "C:/w"
`)
	loader := NewLoader([]string{dir}, ":")

	env, err := loader.Discover(context.Background(), []string{"rv"}, "linux")
	require.NoError(t, err)

	assert.Equal(t, []string{"RV_ROOT", "RV_BIN", "RV_OS"}, env.Keys())
	osValue, _ := env.Get("RV_OS")
	assert.Equal(t, "/l", osValue)
}

func TestDiscover_CombinesToolsInOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDefinition(t, dir, "maya.json", `{"PATH": "/maya/bin", "MAYA_ROOT": "/opt/maya"}`)
	writeDefinition(t, dir, "arnold.json", `{"PATH": "/arnold/bin"}`)
	loader := NewLoader([]string{dir}, ":")

	env, err := loader.Discover(context.Background(), []string{"maya", "arnold"}, "linux")
	require.NoError(t, err)

	// Same-named variables append rather than replace.
	path, _ := env.Get("PATH")
	assert.Equal(t, "/maya/bin:/arnold/bin", path)
	assert.Equal(t, []string{"PATH", "MAYA_ROOT"}, env.Keys())
}

func TestDiscover_SkipsMissingAndMalformedSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDefinition(t, dir, "broken.json", `{"OOPS": `)
	writeDefinition(t, dir, "good.json", `{"GOOD": "1"}`)
	loader := NewLoader([]string{dir}, ":")

	env, err := loader.Discover(context.Background(), []string{"missing", "broken", "good"}, "linux")
	require.NoError(t, err)

	assert.Equal(t, []string{"GOOD"}, env.Keys())
}

func TestDiscover_UnsupportedPlatform(t *testing.T) {
	t.Parallel()

	loader := NewLoader([]string{t.TempDir()}, ":")

	_, err := loader.Discover(context.Background(), []string{"maya"}, "solaris")

	var platformErr *UnsupportedPlatformError
	require.ErrorAs(t, err, &platformErr)
}

func TestDiscover_CachedDefinitionIsNotAliased(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDefinition(t, dir, "maya.json", `{"MAYA_ROOT": "/opt/maya"}`)
	loader := NewLoader([]string{dir}, ":")

	first, err := loader.Discover(context.Background(), []string{"maya"}, "linux")
	require.NoError(t, err)
	second, err := loader.Discover(context.Background(), []string{"maya"}, "linux")
	require.NoError(t, err)

	assert.Equal(t, first.Environ(), second.Environ())
}

func TestSearchPath_Unset(t *testing.T) {
	t.Setenv(EnvSearchPath, "")

	_, err := SearchPath()

	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvSearchPath)
}

func TestSearchPath_SplitsDirectories(t *testing.T) {
	t.Setenv(EnvSearchPath, "/a"+string(os.PathListSeparator)+string(os.PathListSeparator)+"/b")

	dirs, err := SearchPath()
	require.NoError(t, err)

	assert.Equal(t, []string{"/a", "/b"}, dirs)
}
