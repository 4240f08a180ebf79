// Package template implements partial string substitution for `{name}`
// placeholders. Unlike fmt-style formatting, unresolved placeholders are
// left verbatim so a string can be formatted repeatedly as more data
// becomes available.
package template

import "regexp"

// placeholderPattern matches text enclosed in a single pair of braces,
// non-greedy, so `{A}/{B}` yields two separate placeholders.
var placeholderPattern = regexp.MustCompile(`\{(.+?)\}`)

// Placeholders returns the placeholder names referenced by s, in
// left-to-right order. Duplicates are preserved.
func Placeholders(s string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// Format replaces every `{name}` placeholder in s with data[name]. Names
// absent from data are left verbatim, braces included. Formatting an
// already fully-resolved string is a no-op.
func Format(s string, data map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[1 : len(match)-1]
		if value, ok := data[name]; ok {
			return value
		}
		return match
	})
}

// FormatMissing behaves like Format but substitutes missing for names
// absent from data instead of leaving the placeholder intact.
func FormatMissing(s string, data map[string]string, missing string) string {
	return placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[1 : len(match)-1]
		if value, ok := data[name]; ok {
			return value
		}
		return missing
	})
}
