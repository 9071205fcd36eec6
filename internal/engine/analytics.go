package engine

import (
	"sort"

	"paperdeck/internal/model"
)

// BuildAnalytics derives the full inspection snapshot for a paper's
// dependency graph: per-node scores, typed/weighted edges, connected
// components and aggregate metrics. Purely derived reporting data;
// validity is decided by ValidateCondition alone.
func BuildAnalytics(questions []*model.Question, graph map[string][]string) *model.GraphAnalytics {
	analytics := &model.GraphAnalytics{
		Nodes:    make([]model.GraphNode, 0, len(questions)),
		Edges:    []model.GraphEdge{},
		Clusters: []model.GraphCluster{},
	}

	ordered := make([]*model.Question, len(questions))
	copy(ordered, questions)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	// Reverse-dependency counts.
	dependents := make(map[string]int)
	for _, deps := range graph {
		for _, dep := range deps {
			dependents[dep]++
		}
	}

	totalComplexity := 0
	maxNesting := 0
	for _, q := range ordered {
		level := q.Condition.NestingLevel()
		complexity := conditionComplexity(q.Condition, 0)
		if level > maxNesting {
			maxNesting = level
		}
		totalComplexity += complexity

		analytics.Nodes = append(analytics.Nodes, model.GraphNode{
			QuestionID:      q.ID,
			Title:           q.Title,
			DependencyCount: len(graph[q.ID]),
			DependentCount:  dependents[q.ID],
			ConditionType:   classifyCondition(q.Condition),
			NestingLevel:    level,
			Complexity:      complexity,
		})

		// One edge per dependency: dep -> q (q depends on dep). Type and
		// weight reflect the dependent's condition shape, for layout only.
		edgeType, weight := edgeShape(q.Condition)
		for _, dep := range graph[q.ID] {
			analytics.Edges = append(analytics.Edges, model.GraphEdge{
				From:   dep,
				To:     q.ID,
				Type:   edgeType,
				Weight: weight,
			})
		}
	}

	analytics.Clusters = buildClusters(ordered, graph)

	cycles := DetectAllCycles(graph)
	isolated := 0
	for _, cluster := range analytics.Clusters {
		if cluster.Kind == model.ClusterIsolated {
			isolated++
		}
	}
	avg := 0.0
	if len(ordered) > 0 {
		avg = float64(totalComplexity) / float64(len(ordered))
	}
	analytics.Metrics = model.GraphMetrics{
		TotalQuestions:  len(ordered),
		TotalEdges:      len(analytics.Edges),
		TotalCycles:     len(cycles),
		MaxNestingLevel: maxNesting,
		AvgComplexity:   avg,
		IsolatedCount:   isolated,
	}
	return analytics
}

// conditionComplexity scores a tree: 1 per simple leaf, and for a composite
// at nesting level l, 2 + 2*l plus its children scored one level deeper.
func conditionComplexity(cond *model.Condition, level int) int {
	if cond == nil {
		return 0
	}
	if cond.Type == model.ConditionSimple {
		return 1
	}
	score := 2 + 2*level
	for i := range cond.Conditions {
		score += conditionComplexity(&cond.Conditions[i], level+1)
	}
	return score
}

func classifyCondition(cond *model.Condition) model.NodeConditionType {
	switch {
	case cond == nil:
		return model.NodeConditionNone
	case cond.Type == model.ConditionSimple:
		return model.NodeConditionSimple
	case cond.NestingLevel() > 1:
		return model.NodeConditionNested
	default:
		return model.NodeConditionComplex
	}
}

// edgeShape tags a dependent's incoming edges by its condition shape and
// weights them by nesting, base 1 plus 0.5 per nesting level.
func edgeShape(cond *model.Condition) (string, float64) {
	level := cond.NestingLevel()
	weight := 1.0 + 0.5*float64(level)
	switch classifyCondition(cond) {
	case model.NodeConditionNested:
		return "nested", weight
	case model.NodeConditionComplex:
		return "complex", weight
	default:
		return "simple", weight
	}
}

// unionFind is a disjoint-set forest with path compression and union by rank,
// used to partition the graph into connected components.
type unionFind struct {
	parent map[string]string
	rank   map[string]int
}

func newUnionFind(ids []string) *unionFind {
	uf := &unionFind{
		parent: make(map[string]string, len(ids)),
		rank:   make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		uf.parent[id] = id
	}
	return uf
}

func (uf *unionFind) find(id string) string {
	root := id
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[id] != root {
		uf.parent[id], id = root, uf.parent[id]
	}
	return root
}

func (uf *unionFind) union(a, b string) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
}

// buildClusters groups questions into connected components over the
// undirected interpretation of the dependency edges and classifies each
// component's shape.
func buildClusters(questions []*model.Question, graph map[string][]string) []model.GraphCluster {
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}

	uf := newUnionFind(ids)
	for id, deps := range graph {
		for _, dep := range deps {
			if _, known := uf.parent[dep]; known {
				uf.union(id, dep)
			}
		}
	}

	members := make(map[string][]string)
	for _, id := range ids {
		root := uf.find(id)
		members[root] = append(members[root], id)
	}

	// Degree bookkeeping for shape classification.
	outDegree := make(map[string]int)
	inDegree := make(map[string]int)
	edgeCount := make(map[string]int)
	for id, deps := range graph {
		for _, dep := range deps {
			if _, known := uf.parent[dep]; !known {
				continue
			}
			outDegree[id]++
			inDegree[dep]++
			edgeCount[uf.find(id)]++
		}
	}

	roots := make([]string, 0, len(members))
	for root := range members {
		roots = append(roots, root)
	}
	sort.Slice(roots, func(i, j int) bool { return members[roots[i]][0] < members[roots[j]][0] })

	clusters := make([]model.GraphCluster, 0, len(roots))
	for i, root := range roots {
		group := members[root]
		sort.Strings(group)
		clusters = append(clusters, model.GraphCluster{
			ID:          i + 1,
			QuestionIDs: group,
			Kind:        classifyCluster(group, edgeCount[root], inDegree, outDegree),
		})
	}
	return clusters
}

func classifyCluster(group []string, edges int, inDegree, outDegree map[string]int) model.ClusterKind {
	if len(group) == 1 && edges == 0 {
		return model.ClusterIsolated
	}
	if edges != len(group)-1 {
		// More edges than a spanning tree means an (undirected) cycle.
		return model.ClusterComplex
	}
	linear := true
	for _, id := range group {
		if inDegree[id] > 1 || outDegree[id] > 1 {
			linear = false
			break
		}
	}
	if linear {
		return model.ClusterChain
	}
	return model.ClusterTree
}
