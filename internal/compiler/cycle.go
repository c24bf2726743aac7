package compiler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/rcc/internal/ir"
)

// CycleError reports a node that depends on itself, directly or through a
// flatten that references it by name. Such a bind waits for its own first
// snapshot and never emits.
type CycleError struct {
	Path []string `json:"path"`
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Path, " → "))
}

// dependencyGraph maps a node name to the nodes it reads from.
type dependencyGraph map[string][]string

// Order returns the node names in an order where every node follows its
// inputs, keeping declaration order where the graph allows it.
//
// Two kinds of edge are considered. Inputs are static. Flatten, where_any and
// set_flatten nodes also depend on every node named by a string that can
// reach them, which is any string value written to an upstream source.
func Order(s *ir.Scenario) ([]string, error) {
	graph := buildDependencyGraph(s)
	names := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		names[i] = n.Name
	}

	for _, scc := range tarjanSCC(names, graph) {
		if len(scc) > 1 || hasSelfLoop(scc[0], graph) {
			return nil, &CycleError{Path: reconstructCyclePath(scc, graph)}
		}
	}

	order := make([]string, 0, len(names))
	placed := make(map[string]bool, len(names))
	var visit func(string)
	visit = func(name string) {
		if placed[name] {
			return
		}
		placed[name] = true
		for _, dep := range graph[name] {
			visit(dep)
		}
		order = append(order, name)
	}
	for _, name := range names {
		visit(name)
	}
	return order, nil
}

func buildDependencyGraph(s *ir.Scenario) dependencyGraph {
	known := make(map[string]ir.Node, len(s.Nodes))
	for _, n := range s.Nodes {
		known[n.Name] = n
	}

	graph := make(dependencyGraph, len(s.Nodes))
	for _, n := range s.Nodes {
		deps := []string{}
		for _, in := range n.Inputs {
			if _, ok := known[in]; ok {
				deps = append(deps, in)
			}
		}
		graph[n.Name] = deps
	}

	// Strings written to each source, initial values and steps alike.
	written := make(map[string][]string)
	collect := func(source string, vs ir.Values) {
		for _, v := range vs {
			if str, ok := v.(ir.String); ok {
				if _, ok := known[string(str)]; ok {
					written[source] = append(written[source], string(str))
				}
			}
		}
	}
	for _, n := range s.Nodes {
		collect(n.Name, n.Initial)
	}
	for _, st := range s.Steps {
		collect(st.Source, st.Values)
	}

	for _, n := range s.Nodes {
		switch n.Kind {
		case ir.KindFlatten, ir.KindWhereAny, ir.KindSetFlatten:
		default:
			continue
		}
		for _, src := range upstreamSources(n.Inputs, known) {
			for _, ref := range written[src] {
				if !slices.Contains(graph[n.Name], ref) {
					graph[n.Name] = append(graph[n.Name], ref)
				}
			}
		}
	}
	return graph
}

// upstreamSources follows inputs back to the source nodes feeding them.
func upstreamSources(inputs []string, known map[string]ir.Node) []string {
	var out []string
	seen := make(map[string]bool)
	stack := slices.Clone(inputs)
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[name] {
			continue
		}
		seen[name] = true
		n, ok := known[name]
		if !ok {
			continue
		}
		if n.Kind.IsSource() {
			out = append(out, name)
		}
		stack = append(stack, n.Inputs...)
	}
	slices.Sort(out)
	return out
}

func hasSelfLoop(node string, graph dependencyGraph) bool {
	return slices.Contains(graph[node], node)
}

// tarjanSCC finds strongly connected components, visiting nodes in the
// given order so results are deterministic.
func tarjanSCC(nodes []string, graph dependencyGraph) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, node := range nodes {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}
	return sccs
}

// reconstructCyclePath finds the shortest walk inside the component from
// its first member back to itself.
func reconstructCyclePath(scc []string, graph dependencyGraph) []string {
	start := scc[0]
	members := make(map[string]bool, len(scc))
	for _, n := range scc {
		members[n] = true
	}

	prev := make(map[string]string)
	seen := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, w := range graph[cur] {
			if !members[w] {
				continue
			}
			if w == start {
				path := []string{start}
				for n := cur; n != start; n = prev[n] {
					path = append(path, n)
				}
				slices.Reverse(path[1:])
				return append(path, start)
			}
			if !seen[w] {
				seen[w] = true
				prev[w] = cur
				queue = append(queue, w)
			}
		}
	}
	return []string{start}
}
