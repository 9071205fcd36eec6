// Package engine implements the question-dependency validation engine:
// condition trees are walked into a dependency graph, checked for cycles and
// structural soundness, and summarized for inspection tooling.
//
// The engine is pure. Every call receives a complete snapshot of one paper's
// questions, builds its graph from scratch, and discards it; there is no
// shared state across calls and nothing here performs I/O.
package engine

import (
	"sort"

	"paperdeck/internal/model"
)

// ExtractDependencies returns the distinct question ids referenced anywhere
// in a condition tree, sorted. A nil or malformed tree yields an empty set;
// structural validation is the validator's concern, not the extractor's.
func ExtractDependencies(cond *model.Condition) []string {
	seen := make(map[string]bool)
	collectDependencies(cond, seen)

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func collectDependencies(cond *model.Condition, seen map[string]bool) {
	if cond == nil {
		return
	}
	switch cond.Type {
	case model.ConditionSimple:
		if cond.QuestionID != "" {
			seen[cond.QuestionID] = true
		}
	case model.ConditionComposite:
		for i := range cond.Conditions {
			collectDependencies(&cond.Conditions[i], seen)
		}
	}
}

// BuildGraph derives the adjacency mapping for a paper snapshot:
// question id -> sorted list of question ids its condition references.
// Every question gets an entry, dependency-free ones an empty list.
// Deterministic for a given snapshot.
func BuildGraph(questions []*model.Question) map[string][]string {
	graph := make(map[string][]string, len(questions))
	for _, q := range questions {
		graph[q.ID] = ExtractDependencies(q.Condition)
	}
	return graph
}

// BuildGraphWith rebuilds the graph with one question's condition overridden,
// used to simulate an insertion before it is persisted.
func BuildGraphWith(questions []*model.Question, questionID string, cond *model.Condition) map[string][]string {
	graph := BuildGraph(questions)
	graph[questionID] = ExtractDependencies(cond)
	return graph
}
