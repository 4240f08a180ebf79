package environ

import (
	"fmt"
	"strings"
)

// CycleError reports a dependency cycle in a dynamic environment. Nodes
// holds every variable the sorter classified as cyclic.
type CycleError struct {
	Nodes []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected involving: %s", strings.Join(e.Nodes, ", "))
}

// KeyClashError reports that resolving dynamic key names produced the
// same name twice. Key is the resolved name; Source is the template key
// whose resolution collided with an earlier entry.
type KeyClashError struct {
	Key    string
	Source string
}

func (e *KeyClashError) Error() string {
	return fmt.Sprintf("dynamic key clash on %q (source key %q)", e.Key, e.Source)
}
