// Package pathlist manipulates separator-joined path lists, such as the
// value of PATH or LD_LIBRARY_PATH.
package pathlist

import "strings"

// Normalize de-duplicates the segments of a separator-joined value,
// keeping the first occurrence of each segment in order, and drops
// segments that are empty or whitespace-only. Normalizing an already
// normalized value is a no-op.
func Normalize(value, separator string) string {
	segments := strings.Split(value, separator)
	seen := make(map[string]bool, len(segments))
	kept := segments[:0]
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		if seen[segment] {
			continue
		}
		seen[segment] = true
		kept = append(kept, segment)
	}
	return strings.Join(kept, separator)
}

// Append adds a segment to a separator-joined value, returning the value
// unchanged when the segment is blank.
func Append(value, segment, separator string) string {
	if strings.TrimSpace(segment) == "" {
		return value
	}
	if value == "" {
		return segment
	}
	return value + separator + segment
}
