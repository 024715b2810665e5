package compiler

import (
	"strings"
)

// topologicalOrder runs Kahn's algorithm over the dependency graph and
// returns the dense node indices in dependency-respecting order. The queue is
// seeded in declaration order and processed FIFO, so the ordering is stable
// for a fixed graph: compiled definitions stay reproducible and diffable.
//
// If not every node is reached, the remainder contains at least one cycle; a
// concrete cycle path is reconstructed for the error message.
func topologicalOrder(view *executableView, dg *depGraph) ([]int, *CompileError) {
	n := len(view.nodes)

	inDegree := make([]int, n)
	copy(inDegree, dg.inDegree)

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]int, 0, n)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, next := range dg.adjacency[current] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) < n {
		cycle := findCycle(view, dg, inDegree)
		err := newError(ErrCodeCyclicGraph,
			"cycle detected in graph: %s", strings.Join(cycle, " -> "))
		if len(cycle) > 0 {
			err.NodeID = cycle[0]
		}
		err.Suggestion = "break the cycle by removing one of its edges"
		return nil, err
	}

	return order, nil
}

// findCycle reconstructs one concrete cycle among the nodes Kahn's algorithm
// could not reach (those with residual in-degree). Every residual node has at
// least one residual predecessor, so walking predecessors inside the residual
// set must eventually revisit a node; the revisited stretch is a cycle.
func findCycle(view *executableView, dg *depGraph, residual []int) []string {
	remaining := make(map[int]bool)
	start := -1
	for i, deg := range residual {
		if deg > 0 {
			remaining[i] = true
			if start == -1 {
				start = i
			}
		}
	}
	if start == -1 {
		return nil
	}

	predecessor := func(idx int) int {
		for _, edge := range dg.edgesByTarget[idx] {
			from := view.index[edge.Source]
			if remaining[from] {
				return from
			}
		}
		return -1
	}

	visitedAt := make(map[int]int)
	path := []int{}
	current := start
	for {
		if at, seen := visitedAt[current]; seen {
			// path[at:] is the cycle in reverse edge direction.
			cycle := path[at:]
			names := make([]string, 0, len(cycle)+1)
			names = append(names, view.nodes[current].ID)
			for i := len(cycle) - 1; i >= 0; i-- {
				names = append(names, view.nodes[cycle[i]].ID)
			}
			return names
		}
		visitedAt[current] = len(path)
		path = append(path, current)

		prev := predecessor(current)
		if prev == -1 {
			return []string{view.nodes[current].ID}
		}
		current = prev
	}
}
