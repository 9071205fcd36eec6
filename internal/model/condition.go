package model

// ConditionType tags which variant of the condition union a node is
type ConditionType string

const (
	ConditionSimple    ConditionType = "simple"
	ConditionComposite ConditionType = "composite"
)

// ConditionOperator combines sub-conditions of a composite node
type ConditionOperator string

const (
	OperatorAnd ConditionOperator = "AND"
	OperatorOr  ConditionOperator = "OR"
)

// Validation bounds for condition trees
const (
	// MaxNestingDepth is the number of composite levels allowed below the root
	MaxNestingDepth = 3
	// MaxSiblingConditions is the soft cap on sub-conditions of the root composite
	MaxSiblingConditions = 10
	// MaxNestedSiblings is the soft cap on sub-conditions of a nested composite
	MaxNestedSiblings = 5
	// MaxSnapshotQuestions bounds the number of questions a single engine run will process
	MaxSnapshotQuestions = 500
)

// Condition is a display rule for a question. A nil *Condition means the
// question is always visible.
//
// It is an explicitly tagged union: Type selects the variant, and only the
// fields of that variant are meaningful. Simple nodes reference one prior
// question and the option that must have been selected; composite nodes
// combine sub-conditions with AND/OR and may nest up to MaxNestingDepth.
type Condition struct {
	Type ConditionType `json:"type" bson:"type"`

	// Simple variant
	QuestionID     string `json:"questionId,omitempty" bson:"questionId,omitempty"`
	SelectedOption string `json:"selectedOption,omitempty" bson:"selectedOption,omitempty"`

	// Composite variant
	Operator   ConditionOperator `json:"operator,omitempty" bson:"operator,omitempty"`
	Conditions []Condition       `json:"conditions,omitempty" bson:"conditions,omitempty"`
}

// IsSimple reports whether the node is a simple leaf.
func (c *Condition) IsSimple() bool {
	return c != nil && c.Type == ConditionSimple
}

// IsComposite reports whether the node is a composite AND/OR node.
func (c *Condition) IsComposite() bool {
	return c != nil && c.Type == ConditionComposite
}

// NestingLevel returns the number of composite levels in the tree:
// 0 for nil or a simple leaf, 1 for a composite of leaves, and so on.
func (c *Condition) NestingLevel() int {
	if c == nil || c.Type != ConditionComposite {
		return 0
	}
	max := 0
	for i := range c.Conditions {
		if lvl := c.Conditions[i].NestingLevel(); lvl > max {
			max = lvl
		}
	}
	return max + 1
}

// LeafCount returns the number of simple leaves in the tree.
func (c *Condition) LeafCount() int {
	if c == nil {
		return 0
	}
	if c.Type == ConditionSimple {
		return 1
	}
	total := 0
	for i := range c.Conditions {
		total += c.Conditions[i].LeafCount()
	}
	return total
}
