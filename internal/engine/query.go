package engine

import (
	"sort"

	"paperdeck/internal/model"
)

// QueryDependencies computes the dependency sets for one question against a
// built graph: direct is the one-hop adjacency lookup, indirect is everything
// reachable in two or more hops (breadth-first closure, excluding the direct
// set and the question itself), and all is their union. A question with no
// recorded dependencies yields empty sets.
func QueryDependencies(graph map[string][]string, questionID string) *model.DependencyInfo {
	info := &model.DependencyInfo{
		QuestionID: questionID,
		Direct:     []string{},
		Indirect:   []string{},
		All:        []string{},
	}

	direct := make(map[string]bool)
	for _, id := range graph[questionID] {
		direct[id] = true
	}

	// BFS outward from the direct set.
	visited := make(map[string]bool, len(direct))
	queue := make([]string, 0, len(direct))
	for id := range direct {
		visited[id] = true
		queue = append(queue, id)
	}

	indirect := make(map[string]bool)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range graph[current] {
			if visited[next] {
				continue
			}
			visited[next] = true
			if next != questionID && !direct[next] {
				indirect[next] = true
			}
			queue = append(queue, next)
		}
	}

	info.Direct = sortedKeys(direct)
	info.Indirect = sortedKeys(indirect)
	for id := range indirect {
		direct[id] = true
	}
	info.All = sortedKeys(direct)
	return info
}

func sortedKeys(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
