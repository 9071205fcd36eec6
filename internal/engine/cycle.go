package engine

import (
	"sort"
	"strings"
)

// DFS coloring: unvisited nodes are absent from the color map.
const (
	colorGray  = 1 // On the current DFS path
	colorBlack = 2 // Fully explored, no cycle through it
)

// DetectCycleFrom runs a depth-first search from start and returns the first
// cycle found as a closed loop of question ids ([a, b, ..., a]), or nil when
// none is reachable. Absence of a cycle is not an error.
//
// Neighbors absent from the graph's node set are skipped; dangling references
// are a validation concern, not a traversal one.
func DetectCycleFrom(graph map[string][]string, start string) []string {
	if _, ok := graph[start]; !ok {
		return nil
	}
	colors := make(map[string]int)
	var path []string

	var visit func(node string) []string
	visit = func(node string) []string {
		colors[node] = colorGray
		path = append(path, node)

		for _, next := range graph[node] {
			if _, known := graph[next]; !known {
				continue
			}
			switch colors[next] {
			case colorGray:
				// Back edge: the loop runs from next's first occurrence
				// on the path through the current node.
				for i, id := range path {
					if id == next {
						cycle := make([]string, 0, len(path)-i+1)
						cycle = append(cycle, path[i:]...)
						return append(cycle, next)
					}
				}
			case colorBlack:
				continue
			default:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}

		colors[node] = colorBlack
		path = path[:len(path)-1]
		return nil
	}

	return visit(start)
}

// DetectAllCycles enumerates every distinct cycle in the graph. Cycles that
// are rotations of each other count once: each found cycle is canonicalized
// by its sorted node set before dedup. Nodes already covered by a found
// cycle are skipped as a starting point.
func DetectAllCycles(graph map[string][]string) [][]string {
	nodes := make([]string, 0, len(graph))
	for id := range graph {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)

	var cycles [][]string
	seen := make(map[string]bool)
	covered := make(map[string]bool)

	for _, id := range nodes {
		if covered[id] {
			continue
		}
		cycle := DetectCycleFrom(graph, id)
		if cycle == nil {
			continue
		}
		if key := cycleKey(cycle); !seen[key] {
			seen[key] = true
			cycles = append(cycles, cycle)
		}
		for _, member := range cycle {
			covered[member] = true
		}
	}
	return cycles
}

// cycleKey canonicalizes a closed loop as its sorted node set, so the same
// cycle reported from different members compares equal.
func cycleKey(cycle []string) string {
	members := make([]string, len(cycle)-1)
	copy(members, cycle[:len(cycle)-1])
	sort.Strings(members)
	return strings.Join(members, "\x00")
}

func cycleContains(cycle []string, id string) bool {
	for _, member := range cycle {
		if member == id {
			return true
		}
	}
	return false
}
