package pathlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_DropsDuplicatesKeepingFirst(t *testing.T) {
	t.Parallel()

	got := Normalize("X;Y;X", ";")

	assert.Equal(t, "X;Y", got)
}

func TestNormalize_DropsBlankSegments(t *testing.T) {
	t.Parallel()

	got := Normalize("/a;;  ;/b;", ";")

	assert.Equal(t, "/a;/b", got)
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"X;Y;X", "", ";;;", "/a:/b:/a:/c", "single"}
	for _, input := range inputs {
		for _, sep := range []string{";", ":"} {
			once := Normalize(input, sep)
			assert.Equal(t, once, Normalize(once, sep), "input %q sep %q", input, sep)
		}
	}
}

func TestNormalize_AlreadyNormalizedUnchanged(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/a:/b", Normalize("/a:/b", ":"))
}

func TestAppend(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/a", Append("", "/a", ":"))
	assert.Equal(t, "/a:/b", Append("/a", "/b", ":"))
	assert.Equal(t, "/a", Append("/a", "", ":"))
	assert.Equal(t, "/a", Append("/a", "   ", ":"))
}
