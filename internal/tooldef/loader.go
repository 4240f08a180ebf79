// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package tooldef

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/vk/toolenvgo/internal/ctxlog"
	"github.com/vk/toolenvgo/internal/environ"
)

// EnvSearchPath is the environment variable holding the list-separated
// directories searched for tool definition files.
const EnvSearchPath = "TOOLENV_PATH"

// extensions are the definition file extensions tried per tool, in
// priority order.
var extensions = []string{".hcl", ".json", ".yaml", ".yml", ".toml"}

// Extensions returns the recognized definition file extensions.
func Extensions() []string {
	exts := make([]string, len(extensions))
	copy(exts, extensions)
	return exts
}

// Loader finds and parses tool definition files from a fixed list of
// search directories. Parsed files are cached by path; callers always
// receive clones, so the cache is never aliased.
type Loader struct {
	dirs      []string
	separator string
	cache     map[string]Definition
}

// NewLoader creates a Loader over the given search directories. An empty
// separator defaults to the platform list separator.
func NewLoader(dirs []string, separator string) *Loader {
	if separator == "" {
		separator = string(os.PathListSeparator)
	}
	return &Loader{
		dirs:      dirs,
		separator: separator,
		cache:     make(map[string]Definition),
	}
}

// SearchPath reads the definition search directories from EnvSearchPath.
func SearchPath() ([]string, error) {
	raw := os.Getenv(EnvSearchPath)
	if raw == "" {
		return nil, fmt.Errorf("%s is not set; point it at one or more directories containing tool definition files", EnvSearchPath)
	}
	var dirs []string
	for _, dir := range strings.Split(raw, string(os.PathListSeparator)) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}

// Discover loads the definitions for the named tools, flattens each one
// for the requested platform and appends them into a single combined
// Environment, ready for resolution. A missing or malformed definition
// file is logged and skipped; it never fails the whole load.
func (l *Loader) Discover(ctx context.Context, tools []string, platform string) (*environ.Environment, error) {
	logger := ctxlog.FromContext(ctx)

	if !supportedPlatforms[platform] {
		return nil, &UnsupportedPlatformError{Platform: platform}
	}

	combined := environ.New()
	for _, dir := range l.dirs {
		for _, tool := range tools {
			path, ok := l.find(dir, tool)
			if !ok {
				logger.Debug("No definition file for tool in directory.", "tool", tool, "dir", dir)
				continue
			}
			def, err := l.definition(path)
			if err != nil {
				logger.Error("Skipping unreadable tool definition.", "path", path, "error", err)
				continue
			}
			env, err := def.Flatten(platform, l.separator)
			if err != nil {
				return nil, err
			}
			logger.Debug("Tool definition loaded.", "path", path, "variables", env.Len())
			combined = environ.Join(combined, env, l.separator)
		}
	}
	return combined, nil
}

// find returns the first existing definition file for a tool in dir.
func (l *Loader) find(dir, tool string) (string, bool) {
	for _, ext := range extensions {
		path := filepath.Join(dir, tool+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// definition parses (or retrieves from cache) the definition file at path.
func (l *Loader) definition(path string) (Definition, error) {
	if cached, ok := l.cache[path]; ok {
		return cached.Clone(), nil
	}

	var def Definition
	var err error
	switch ext := filepath.Ext(path); ext {
	case ".hcl":
		def, err = parseHCL(path)
	case ".json":
		def, err = parseJSON(path)
	case ".yaml", ".yml":
		def, err = parseYAML(path)
	case ".toml":
		def, err = parseTOML(path)
	default:
		err = fmt.Errorf("unsupported definition format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	l.cache[path] = def
	return def.Clone(), nil
}

// parseHCL parses a native-syntax HCL definition file.
func parseHCL(path string) (Definition, error) {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", path, diags)
	}
	return definitionFromBody(file.Body)
}

// parseJSON parses a JSON definition file through the HCL JSON syntax, so
// both formats share one attribute model.
func parseJSON(path string) (Definition, error) {
	file, diags := hclparse.NewParser().ParseJSONFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", path, diags)
	}
	return definitionFromBody(file.Body)
}

// definitionFromBody extracts a Definition from the top-level attributes
// of an HCL body. JustAttributes returns an unordered map, so entries are
// re-ordered by source position to keep file order semantic.
func definitionFromBody(body hcl.Body) (Definition, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("reading attributes: %w", diags)
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	var def Definition
	for _, attr := range ordered {
		ctyValue, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating attribute %q: %w", attr.Name, diags)
		}
		value, err := valueFromCty(ctyValue)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", attr.Name, err)
		}
		def = append(def, Entry{Name: attr.Name, Value: value})
	}
	return def, nil
}

// parseYAML parses a YAML definition file. Document nodes are walked
// directly because yaml.Node preserves mapping order where a plain map
// would not.
func parseYAML(path string) (Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing %s: expected a top-level mapping", path)
	}

	root := doc.Content[0]
	var def Definition
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		value, err := valueFromYAML(valueNode)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyNode.Value, err)
		}
		def = append(def, Entry{Name: keyNode.Value, Value: value})
	}
	return def, nil
}

// valueFromYAML converts one YAML value node into a Value.
func valueFromYAML(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		var flat string
		if err := n.Decode(&flat); err != nil {
			return Value{}, err
		}
		return Value{Kind: FlatKind, Flat: flat}, nil

	case yaml.MappingNode:
		var table map[string]string
		if err := n.Decode(&table); err != nil {
			return Value{}, err
		}
		return Value{Kind: PerPlatformKind, PerPlatform: table}, nil

	case yaml.SequenceNode:
		var list []string
		if err := n.Decode(&list); err != nil {
			return Value{}, err
		}
		return Value{Kind: ListKind, List: list}, nil

	default:
		return Value{}, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}

// parseTOML parses a TOML definition file. MetaData.Keys preserves the
// order keys appeared in the document.
func parseTOML(path string) (Definition, error) {
	var raw map[string]any
	md, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var def Definition
	for _, key := range md.Keys() {
		if len(key) != 1 {
			// Nested keys surface through their top-level table.
			continue
		}
		name := key[0]
		value, err := valueFromGo(raw[name])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", name, err)
		}
		def = append(def, Entry{Name: name, Value: value})
	}
	return def, nil
}
