// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package tooldef

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/vk/toolenvgo/internal/environ"
)

// supportedPlatforms is the closed set of platform names a definition may
// target.
var supportedPlatforms = map[string]bool{
	"windows": true,
	"linux":   true,
	"darwin":  true,
}

// CurrentPlatform returns the platform name of the running process.
func CurrentPlatform() string {
	return runtime.GOOS
}

// UnsupportedPlatformError reports a platform name outside the supported
// set.
type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("platform %q is not supported (want windows, linux or darwin)", e.Platform)
}

// Flatten reduces a definition to a plain Environment for one platform.
// Per-platform values select the entry for the requested platform, list
// values are joined with separator, and entries that reduce to the empty
// string are omitted. Unknown platform names fail with
// *UnsupportedPlatformError.
func (d Definition) Flatten(platform, separator string) (*environ.Environment, error) {
	if !supportedPlatforms[platform] {
		return nil, &UnsupportedPlatformError{Platform: platform}
	}

	env := environ.New()
	for _, entry := range d {
		var value string
		switch entry.Value.Kind {
		case FlatKind:
			value = entry.Value.Flat
		case PerPlatformKind:
			value = entry.Value.PerPlatform[platform]
		case ListKind:
			value = strings.Join(entry.Value.List, separator)
		}
		if value == "" {
			continue
		}
		env.Set(entry.Name, value)
	}
	return env, nil
}
