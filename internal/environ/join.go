package environ

import (
	"strings"

	"github.com/vk/toolenvgo/internal/pathlist"
	"github.com/vk/toolenvgo/internal/template"
)

// Join appends every path-like value of src onto the same-named variable
// of dst, returning a new Environment. Values are split on separator and
// blank segments are skipped; segments are only ever appended, never
// replaced, so earlier tools keep their entries when several tool
// environments are combined before resolution.
func Join(dst, src *Environment, separator string) *Environment {
	joined := dst.Clone()
	for _, key := range src.Keys() {
		value, _ := src.Get(key)
		for _, segment := range strings.Split(value, separator) {
			if segment == "" {
				continue
			}
			current, _ := joined.Get(key)
			joined.Set(key, pathlist.Append(current, segment, separator))
		}
	}
	return joined
}

// Merge overlays a resolved dynamic environment onto the live process
// environment. Every value is formatted once more against the live
// environment with missing references replaced by the empty string, which
// finalizes the placeholders Resolve intentionally left intact.
func Merge(env, live *Environment) *Environment {
	merged := live.Clone()
	data := live.Map()
	for _, key := range env.Keys() {
		value, _ := env.Get(key)
		merged.Set(key, template.FormatMissing(value, data, ""))
	}
	return merged
}
