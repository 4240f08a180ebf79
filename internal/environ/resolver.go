package environ

import (
	"context"
	"os"

	"github.com/vk/toolenvgo/internal/ctxlog"
	"github.com/vk/toolenvgo/internal/depgraph"
	"github.com/vk/toolenvgo/internal/pathlist"
	"github.com/vk/toolenvgo/internal/template"
)

// Options controls a single Resolve call.
type Options struct {
	// ResolveDynamicKeys enables the second pass that formats key names
	// themselves, so `{"{PLUGIN}_ROOT": ...}` becomes a concrete name.
	ResolveDynamicKeys bool

	// AllowCycles downgrades a dependency cycle from a CycleError to a
	// logged warning. Values of cyclic keys are still formatted once, but
	// the result may not match intent.
	AllowCycles bool

	// AllowKeyClash downgrades a dynamic key collision from a
	// KeyClashError to a logged warning. The first-produced value wins.
	AllowKeyClash bool

	// NormalizePaths de-duplicates Separator-joined value segments and
	// drops blank ones after resolution.
	NormalizePaths bool

	// Separator splits path-like values. Empty means the platform list
	// separator (":" on unix, ";" on windows).
	Separator string
}

// DefaultOptions returns the options used by the CLI: dynamic keys and
// path normalization on, cycles and key clashes fatal.
func DefaultOptions() Options {
	return Options{
		ResolveDynamicKeys: true,
		NormalizePaths:     true,
	}
}

func (o Options) separator() string {
	if o.Separator != "" {
		return o.Separator
	}
	return string(os.PathListSeparator)
}

// Resolve computes the fully resolved form of a dynamic environment.
//
// Placeholders referencing keys absent from env are left verbatim so a
// later Merge can fill them from the live process environment, and a key
// referencing itself is never substituted for the same reason. The input
// Environment is not mutated. Identical input and options always produce
// identical output.
//
// Resolve fails with *CycleError or *KeyClashError unless the matching
// tolerance option downgrades the condition to a warning.
func Resolve(ctx context.Context, env *Environment, opts Options) (*Environment, error) {
	logger := ctxlog.FromContext(ctx)

	work := env.Clone()
	result := depgraph.Sort(dependencies(work))

	if result.HasCycle() {
		if !opts.AllowCycles {
			return nil, &CycleError{Nodes: result.Cyclic}
		}
		logger.Warn("Dependency cycle detected, result may be unexpected.", "keys", result.Cyclic)
	}

	// Single substitution pass, walked back-to-front so every dependency
	// is fully resolved before a dependent reads it. Each key is formatted
	// against the working environment minus itself; self-references stay
	// intact for the later merge against the live environment.
	formatInPlace := func(key string) {
		value, ok := work.Get(key)
		if !ok {
			return
		}
		data := work.Map()
		delete(data, key)
		work.Set(key, template.Format(value, data))
	}
	for i := len(result.Sorted) - 1; i >= 0; i-- {
		formatInPlace(result.Sorted[i])
	}

	// Cyclic keys get the same single-pass treatment against whatever the
	// acyclic pass left in the working environment.
	for _, key := range result.Cyclic {
		formatInPlace(key)
	}

	if opts.ResolveDynamicKeys {
		resolved, err := resolveKeys(ctx, work, opts)
		if err != nil {
			return nil, err
		}
		work = resolved
	}

	if opts.NormalizePaths {
		separator := opts.separator()
		for _, key := range work.Keys() {
			value, _ := work.Get(key)
			work.Set(key, pathlist.Normalize(value, separator))
		}
	}

	return work, nil
}

// dependencies scans every template value for placeholder names and
// returns the dependency edges, skipping self-references. Emission order
// is key insertion order, then left-to-right within a value.
func dependencies(env *Environment) []depgraph.Edge {
	var edges []depgraph.Edge
	for _, key := range env.Keys() {
		value, _ := env.Get(key)
		for _, name := range template.Placeholders(value) {
			if name == key {
				continue
			}
			edges = append(edges, depgraph.Edge{Dependent: key, Dependency: name})
		}
	}
	return edges
}

// resolveKeys formats every key name against the value-resolved
// environment and rebuilds the Environment keyed by the resolved names.
// Values are read-only context here and carry over untouched.
func resolveKeys(ctx context.Context, env *Environment, opts Options) (*Environment, error) {
	logger := ctxlog.FromContext(ctx)
	data := env.Map()

	resolved := New()
	for _, key := range env.Keys() {
		value, _ := env.Get(key)
		newKey := template.Format(key, data)
		if _, exists := resolved.Get(newKey); exists {
			if !opts.AllowKeyClash {
				return nil, &KeyClashError{Key: newKey, Source: key}
			}
			logger.Warn("Dynamic key clash, keeping earlier value.", "key", newKey, "source", key)
			continue
		}
		resolved.Set(newKey, value)
	}
	return resolved, nil
}
