// Package launcher locates executables on a resolved environment's PATH
// and spawns child processes inside that environment.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/toolenvgo/internal/environ"
)

// ErrNotFound is returned by Locate when no matching executable exists on
// the environment's PATH.
var ErrNotFound = errors.New("executable not found on PATH")

// Locate finds program on the PATH entries of env. Each extension from
// the environment's PATHEXT (falling back to the process environment) is
// tried lowercased; an empty extension list degenerates to the bare
// program name, which is the unix case.
func Locate(program string, env *environ.Environment) (string, error) {
	pathValue, ok := env.Get("PATH")
	if !ok {
		return "", fmt.Errorf("locating %q: environment has no PATH entry", program)
	}
	extValue, ok := env.Get("PATHEXT")
	if !ok {
		extValue = os.Getenv("PATHEXT")
	}

	separator := string(os.PathListSeparator)
	for _, dir := range strings.Split(pathValue, separator) {
		for _, ext := range strings.Split(extValue, separator) {
			name := program + strings.ToLower(ext)
			candidate := filepath.Join(strings.Trim(dir, `"`), name)
			if isExecutable(candidate) {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%q: %w", program, ErrNotFound)
}

// isExecutable reports whether path is a regular file with an execute bit
// set.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}
