// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package tooldef loads tool environment definitions from configuration
// files and flattens them into plain Environments for a target platform.
//
// A definition file is a flat mapping from variable name to one of three
// value shapes: a plain string, a per-platform table keyed by "windows",
// "linux" or "darwin", or a list of path segments. Files may be written
// in HCL, JSON, YAML or TOML; every format decodes into the same ordered
// Definition model.
package tooldef

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
	"github.com/zclconf/go-cty/cty"
)

// Kind discriminates the shapes a definition value can take.
type Kind int

const (
	// FlatKind is a plain string value.
	FlatKind Kind = iota
	// PerPlatformKind is a table of per-platform strings.
	PerPlatformKind
	// ListKind is a sequence of path segments.
	ListKind
)

// Value is the tagged variant for one definition entry. Exactly the field
// matching Kind is meaningful.
type Value struct {
	Kind        Kind
	Flat        string
	PerPlatform map[string]string
	List        []string
}

// Entry pairs a variable name with its raw value.
type Entry struct {
	Name  string
	Value Value
}

// Definition is one tool's environment definition. Entry order follows
// the source file and is preserved all the way into the resolved
// Environment, where it decides dynamic-key clash reporting.
type Definition []Entry

// Clone returns an independent deep copy of the definition, so cached
// definitions can be handed out without aliasing their nested maps and
// slices.
func (d Definition) Clone() Definition {
	var clone Definition
	if err := deepcopy.Copy(&clone, d); err != nil {
		// Definition contains only plain exported fields; a copy failure
		// is a programmer error.
		panic(fmt.Errorf("cloning definition: %w", err))
	}
	return clone
}

// valueFromCty converts an HCL/JSON attribute value into a Value by
// dispatching on its cty type.
func valueFromCty(v cty.Value) (Value, error) {
	if v.IsNull() {
		return Value{}, fmt.Errorf("null value")
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return Value{Kind: FlatKind, Flat: v.AsString()}, nil

	case ty.IsObjectType() || ty.IsMapType():
		table := make(map[string]string)
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			if elem.Type() != cty.String {
				return Value{}, fmt.Errorf("platform %q: expected string, got %s", key.AsString(), elem.Type().FriendlyName())
			}
			table[key.AsString()] = elem.AsString()
		}
		return Value{Kind: PerPlatformKind, PerPlatform: table}, nil

	case ty.IsTupleType() || ty.IsListType():
		var list []string
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if elem.Type() != cty.String {
				return Value{}, fmt.Errorf("list element: expected string, got %s", elem.Type().FriendlyName())
			}
			list = append(list, elem.AsString())
		}
		return Value{Kind: ListKind, List: list}, nil

	default:
		return Value{}, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

// valueFromGo converts a decoded YAML/TOML value into a Value.
func valueFromGo(raw any) (Value, error) {
	switch v := raw.(type) {
	case string:
		return Value{Kind: FlatKind, Flat: v}, nil

	case map[string]any:
		table := make(map[string]string, len(v))
		for key, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return Value{}, fmt.Errorf("platform %q: expected string, got %T", key, elem)
			}
			table[key] = s
		}
		return Value{Kind: PerPlatformKind, PerPlatform: table}, nil

	case []any:
		list := make([]string, 0, len(v))
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return Value{}, fmt.Errorf("list element: expected string, got %T", elem)
			}
			list = append(list, s)
		}
		return Value{Kind: ListKind, List: list}, nil

	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}
