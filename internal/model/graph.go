package model

// ValidationResult is the verdict for one candidate condition tree.
// Valid iff Errors is empty; warnings never affect validity.
type ValidationResult struct {
	IsValid   bool     `json:"isValid"`
	Errors    []string `json:"errors"`
	Warnings  []string `json:"warnings"`
	CyclePath []string `json:"cyclePath,omitempty"` // Question ids, closed loop, when a cycle was found
}

// DependencyInfo is the answer to a dependency query for one question
type DependencyInfo struct {
	QuestionID string   `json:"questionId"`
	Direct     []string `json:"direct"`   // One hop
	Indirect   []string `json:"indirect"` // Reachable via two or more hops
	All        []string `json:"all"`
}

// NodeConditionType classifies a question's condition for reporting
type NodeConditionType string

const (
	NodeConditionNone    NodeConditionType = "none"
	NodeConditionSimple  NodeConditionType = "simple"
	NodeConditionComplex NodeConditionType = "complex" // Composite of leaves only
	NodeConditionNested  NodeConditionType = "nested"  // Composite containing composites
)

// ClusterKind classifies the shape of a connected component
type ClusterKind string

const (
	ClusterIsolated ClusterKind = "isolated"
	ClusterChain    ClusterKind = "chain"
	ClusterTree     ClusterKind = "tree"
	ClusterComplex  ClusterKind = "complex"
)

// GraphNode is the per-question analytics entry
type GraphNode struct {
	QuestionID      string            `json:"questionId"`
	Title           string            `json:"title"`
	DependencyCount int               `json:"dependencyCount"` // Questions this one depends on
	DependentCount  int               `json:"dependentCount"`  // Questions depending on this one
	ConditionType   NodeConditionType `json:"conditionType"`
	NestingLevel    int               `json:"nestingLevel"`
	Complexity      int               `json:"complexity"`
}

// GraphEdge is one dependency relation: To depends on From
type GraphEdge struct {
	From   string  `json:"from"` // The question depended on
	To     string  `json:"to"`   // The dependent question
	Type   string  `json:"type"` // simple / complex / nested
	Weight float64 `json:"weight"`
}

// GraphCluster is a connected component of the dependency graph
type GraphCluster struct {
	ID          int         `json:"id"`
	QuestionIDs []string    `json:"questionIds"`
	Kind        ClusterKind `json:"kind"`
}

// GraphMetrics are aggregate figures over the whole graph
type GraphMetrics struct {
	TotalQuestions  int     `json:"totalQuestions"`
	TotalEdges      int     `json:"totalEdges"`
	TotalCycles     int     `json:"totalCycles"`
	MaxNestingLevel int     `json:"maxNestingLevel"`
	AvgComplexity   float64 `json:"avgComplexity"`
	IsolatedCount   int     `json:"isolatedCount"`
}

// GraphAnalytics is the full inspection snapshot for a paper's dependency graph.
// Purely derived reporting data; never a source of validity decisions.
type GraphAnalytics struct {
	Nodes    []GraphNode    `json:"nodes"`
	Edges    []GraphEdge    `json:"edges"`
	Clusters []GraphCluster `json:"clusters"`
	Metrics  GraphMetrics   `json:"metrics"`
}
