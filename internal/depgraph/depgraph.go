// Package depgraph builds and orders the dependency graph between
// environment variables. Nodes are variable names; an edge records that
// one variable's template value references another variable.
package depgraph

// Edge is a single dependency relation: Dependent's template references
// Dependency by name.
type Edge struct {
	Dependent  string
	Dependency string
}

// Result is the outcome of a topological sort. Sorted holds the acyclic
// nodes, each appearing before the nodes it depends on. Cyclic holds every
// node the sort could not place because it participates in, or is only
// reachable through, a dependency cycle. Each node named in any edge
// appears in exactly one of the two slices.
type Result struct {
	Sorted []string
	Cyclic []string
}

// HasCycle reports whether any node was classified cyclic.
func (r Result) HasCycle() bool {
	return len(r.Cyclic) > 0
}

// Sort topologically orders the nodes named in edges using Kahn's
// algorithm. Ties between ready nodes are broken by first-seen order over
// the edge list, so identical input always produces identical output.
//
// Nodes still holding a nonzero in-degree once the queue drains are
// reported in Cyclic, in first-seen order. A node a cycle depends on is
// classified cyclic as well, even when it lies on no cycle itself: its
// in-degree never clears, and the caller treats resolution order around
// cycles as undefined anyway.
func Sort(edges []Edge) Result {
	indegree := make(map[string]int)
	successors := make(map[string][]string)
	var nodes []string
	seen := make(map[string]bool)

	note := func(name string) {
		if !seen[name] {
			seen[name] = true
			nodes = append(nodes, name)
		}
	}

	for _, e := range edges {
		note(e.Dependent)
		note(e.Dependency)
		successors[e.Dependent] = append(successors[e.Dependent], e.Dependency)
		indegree[e.Dependency]++
	}

	var sorted []string
	placed := make(map[string]bool)
	for _, n := range nodes {
		if indegree[n] == 0 {
			sorted = append(sorted, n)
			placed[n] = true
		}
	}

	// Kahn's queue: the slice grows as successors become ready, and the
	// append order keeps the result stable for identical input.
	for i := 0; i < len(sorted); i++ {
		for _, succ := range successors[sorted[i]] {
			indegree[succ]--
			if indegree[succ] == 0 {
				sorted = append(sorted, succ)
				placed[succ] = true
			}
		}
	}

	var cyclic []string
	for _, n := range nodes {
		if !placed[n] {
			cyclic = append(cyclic, n)
		}
	}

	return Result{Sorted: sorted, Cyclic: cyclic}
}
