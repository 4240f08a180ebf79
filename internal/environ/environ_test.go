package environ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_SetPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	env := New()
	env.Set("B", "2")
	env.Set("A", "1")
	env.Set("C", "3")

	assert.Equal(t, []string{"B", "A", "C"}, env.Keys())
}

func TestEnvironment_OverwriteKeepsPosition(t *testing.T) {
	t.Parallel()

	env := New()
	env.Set("A", "1")
	env.Set("B", "2")

	env.Set("A", "updated")

	assert.Equal(t, []string{"A", "B"}, env.Keys())
	value, ok := env.Get("A")
	require.True(t, ok)
	assert.Equal(t, "updated", value)
}

func TestEnvironment_Delete(t *testing.T) {
	t.Parallel()

	env := New()
	env.Set("A", "1")
	env.Set("B", "2")
	env.Set("C", "3")

	env.Delete("B")
	env.Delete("NOPE")

	assert.Equal(t, []string{"A", "C"}, env.Keys())
	_, ok := env.Get("B")
	assert.False(t, ok)
}

func TestEnvironment_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	env := New()
	env.Set("A", "1")

	clone := env.Clone()
	clone.Set("A", "changed")
	clone.Set("B", "new")

	value, _ := env.Get("A")
	assert.Equal(t, "1", value)
	assert.Equal(t, []string{"A"}, env.Keys())
}

func TestEnvironment_MapIsSnapshot(t *testing.T) {
	t.Parallel()

	env := New()
	env.Set("A", "1")

	snapshot := env.Map()
	snapshot["A"] = "mutated"

	value, _ := env.Get("A")
	assert.Equal(t, "1", value)
}

func TestEnvironment_Environ(t *testing.T) {
	t.Parallel()

	env := New()
	env.Set("PATH", "/usr/bin")
	env.Set("HOME", "/home/td")

	assert.Equal(t, []string{"PATH=/usr/bin", "HOME=/home/td"}, env.Environ())
}

func TestFromOS_SortsAndSkipsMalformed(t *testing.T) {
	t.Parallel()

	env := FromOS([]string{"B=2", "A=1", "bogus", "C=x=y", "=empty"})

	assert.Equal(t, []string{"A", "B", "C"}, env.Keys())
	value, _ := env.Get("C")
	assert.Equal(t, "x=y", value)
}

func TestJoin_AppendsSegments(t *testing.T) {
	t.Parallel()

	dst := New()
	dst.Set("PATH", "/maya/bin")
	src := New()
	src.Set("PATH", "/houdini/bin::")
	src.Set("HOUDINI_ROOT", "/houdini")

	joined := Join(dst, src, ":")

	path, _ := joined.Get("PATH")
	assert.Equal(t, "/maya/bin:/houdini/bin", path)
	root, _ := joined.Get("HOUDINI_ROOT")
	assert.Equal(t, "/houdini", root)
	assert.Equal(t, []string{"PATH", "HOUDINI_ROOT"}, joined.Keys())

	// The inputs stay untouched.
	original, _ := dst.Get("PATH")
	assert.Equal(t, "/maya/bin", original)
}

func TestMerge_FillsMissingWithEmptyAndOverlays(t *testing.T) {
	t.Parallel()

	resolved := New()
	resolved.Set("PATH", "/maya/bin:{PATH}")
	resolved.Set("MAYA_MODULES", "{UNSET}/modules")

	live := New()
	live.Set("PATH", "/usr/bin")
	live.Set("HOME", "/home/td")

	merged := Merge(resolved, live)

	path, _ := merged.Get("PATH")
	assert.Equal(t, "/maya/bin:/usr/bin", path)
	modules, _ := merged.Get("MAYA_MODULES")
	assert.Equal(t, "/modules", modules)
	home, _ := merged.Get("HOME")
	assert.Equal(t, "/home/td", home)
}
