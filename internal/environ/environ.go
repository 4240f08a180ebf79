// Package environ defines the ordered Environment container and the
// resolver that turns a dynamic environment definition into a fully
// resolved set of key/value pairs.
//
// An Environment maps variable names to template values. Values may
// reference other variables with `{name}` placeholders, and key names may
// themselves contain placeholders (dynamic keys). Insertion order is
// preserved because it decides which source key wins when dynamic keys
// collide.
package environ

import (
	"sort"
	"strings"
)

// Environment is an ordered mapping from variable name to template value.
// The zero value is not usable; construct instances with New or FromOS.
type Environment struct {
	names  []string
	values map[string]string
}

// New returns an empty Environment.
func New() *Environment {
	return &Environment{values: make(map[string]string)}
}

// FromOS builds an Environment from "KEY=VALUE" pairs as returned by
// os.Environ. Keys are sorted so the result is deterministic regardless
// of the process environment's iteration order.
func FromOS(pairs []string) *Environment {
	env := New()
	keys := make([]string, 0, len(pairs))
	byKey := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		if _, exists := byKey[key]; !exists {
			keys = append(keys, key)
		}
		byKey[key] = value
	}
	sort.Strings(keys)
	for _, key := range keys {
		env.Set(key, byKey[key])
	}
	return env
}

// Set stores a value under key. A new key is appended to the iteration
// order; an existing key keeps its original position.
func (e *Environment) Set(key, value string) {
	if _, exists := e.values[key]; !exists {
		e.names = append(e.names, key)
	}
	e.values[key] = value
}

// Get returns the value stored under key and whether the key exists.
func (e *Environment) Get(key string) (string, bool) {
	value, ok := e.values[key]
	return value, ok
}

// Delete removes key from the Environment, preserving the relative order
// of the remaining keys.
func (e *Environment) Delete(key string) {
	if _, exists := e.values[key]; !exists {
		return
	}
	delete(e.values, key)
	for i, name := range e.names {
		if name == key {
			e.names = append(e.names[:i], e.names[i+1:]...)
			break
		}
	}
}

// Len returns the number of variables.
func (e *Environment) Len() int {
	return len(e.names)
}

// Keys returns the variable names in insertion order. The slice is a copy.
func (e *Environment) Keys() []string {
	keys := make([]string, len(e.names))
	copy(keys, e.names)
	return keys
}

// Map returns an unordered snapshot of the Environment. Mutating the
// returned map does not affect the Environment.
func (e *Environment) Map() map[string]string {
	snapshot := make(map[string]string, len(e.values))
	for key, value := range e.values {
		snapshot[key] = value
	}
	return snapshot
}

// Clone returns an independent copy preserving insertion order.
func (e *Environment) Clone() *Environment {
	clone := &Environment{
		names:  make([]string, len(e.names)),
		values: make(map[string]string, len(e.values)),
	}
	copy(clone.names, e.names)
	for key, value := range e.values {
		clone.values[key] = value
	}
	return clone
}

// Environ renders the Environment as "KEY=VALUE" pairs in insertion
// order, suitable for exec.Cmd.Env.
func (e *Environment) Environ() []string {
	pairs := make([]string, 0, len(e.names))
	for _, name := range e.names {
		pairs = append(pairs, name+"="+e.values[name])
	}
	return pairs
}
