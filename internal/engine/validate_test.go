package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperdeck/internal/model"
)

// nestComposites wraps a simple leaf in n composite levels.
func nestComposites(n int, leaf model.Condition) model.Condition {
	cond := leaf
	for i := 0; i < n; i++ {
		cond = composite(model.OperatorAnd, cond, simple("a", "x"))
	}
	return cond
}

func paperSnapshot() []*model.Question {
	return []*model.Question{
		question("a", "p1", nil),
		question("b", "p1", nil),
		question("c", "p1", nil),
	}
}

func TestValidateNilConditionAlwaysValid(t *testing.T) {
	result := ValidateCondition("b", nil, paperSnapshot())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateSimpleCondition(t *testing.T) {
	cond := simple("a", "yes")
	result := ValidateCondition("b", &cond, paperSnapshot())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateUnknownReference(t *testing.T) {
	cond := simple("nope", "yes")
	result := ValidateCondition("b", &cond, paperSnapshot())

	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors[0], "does not exist")
}

func TestValidateUnknownReferenceNested(t *testing.T) {
	// Existence errors surface regardless of how deep the reference sits.
	cond := composite(model.OperatorAnd,
		simple("a", "yes"),
		composite(model.OperatorOr, simple("a", "no"), simple("nope", "yes")),
	)
	result := ValidateCondition("b", &cond, paperSnapshot())

	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors[0], "does not exist")
}

func TestValidateCrossPaperReference(t *testing.T) {
	snapshot := append(paperSnapshot(), question("other", "p2", nil))
	cond := simple("other", "yes")
	result := ValidateCondition("b", &cond, snapshot)

	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors[0], "different paper")
}

func TestValidateMissingExpectedAnswerIsWarning(t *testing.T) {
	cond := simple("a", "")
	result := ValidateCondition("b", &cond, paperSnapshot())

	assert.True(t, result.IsValid)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no expected answer")
}

func TestValidateOperator(t *testing.T) {
	tests := []struct {
		name  string
		op    model.ConditionOperator
		valid bool
	}{
		{"AND", model.OperatorAnd, true},
		{"OR", model.OperatorOr, true},
		{"lowercase and", "and", false},
		{"NOT", "NOT", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := composite(tt.op, simple("a", "x"), simple("c", "y"))
			result := ValidateCondition("b", &cond, paperSnapshot())
			assert.Equal(t, tt.valid, result.IsValid)
			if !tt.valid {
				assert.Contains(t, result.Errors[0], "invalid operator")
			}
		})
	}
}

func TestValidateEmptyCompositeIsError(t *testing.T) {
	cond := composite(model.OperatorAnd)
	result := ValidateCondition("b", &cond, paperSnapshot())

	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors[0], "no sub-conditions")
}

func TestValidateSingleChildIsWarning(t *testing.T) {
	cond := composite(model.OperatorAnd, simple("a", "x"))
	result := ValidateCondition("b", &cond, paperSnapshot())

	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "single sub-condition")
}

func TestValidateSiblingCaps(t *testing.T) {
	many := make([]model.Condition, model.MaxSiblingConditions+1)
	for i := range many {
		many[i] = simple("a", fmt.Sprintf("opt%d", i))
	}
	root := model.Condition{Type: model.ConditionComposite, Operator: model.OperatorOr, Conditions: many}
	result := ValidateCondition("b", &root, paperSnapshot())
	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "more than the recommended 10")

	// Nested levels have the tighter cap.
	nestedChildren := make([]model.Condition, model.MaxNestedSiblings+1)
	for i := range nestedChildren {
		nestedChildren[i] = simple("a", fmt.Sprintf("opt%d", i))
	}
	nested := composite(model.OperatorAnd,
		simple("c", "x"),
		model.Condition{Type: model.ConditionComposite, Operator: model.OperatorOr, Conditions: nestedChildren},
	)
	result = ValidateCondition("b", &nested, paperSnapshot())
	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "more than the recommended 5")
}

func TestValidateNestingDepthBoundary(t *testing.T) {
	// Root composite plus MaxNestingDepth nested levels is allowed.
	atBound := nestComposites(model.MaxNestingDepth+1, simple("c", "x"))
	result := ValidateCondition("b", &atBound, paperSnapshot())
	assert.True(t, result.IsValid, "errors: %v", result.Errors)

	// One level beyond is a hard error.
	beyond := nestComposites(model.MaxNestingDepth+2, simple("c", "x"))
	result = ValidateCondition("b", &beyond, paperSnapshot())
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors[0], "nesting exceeds")
}

func TestValidateUnknownVariantIsError(t *testing.T) {
	cond := model.Condition{Type: "mystery"}
	result := ValidateCondition("b", &cond, paperSnapshot())

	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors[0], "unknown condition type")
}

func TestValidateSelfReferenceIsCycle(t *testing.T) {
	cond := simple("b", "yes")
	result := ValidateCondition("b", &cond, paperSnapshot())

	require.False(t, result.IsValid)
	assert.Equal(t, []string{"b", "b"}, result.CyclePath)
}

func TestValidateCycleDetected(t *testing.T) {
	condA := simple("b", "x")
	snapshot := []*model.Question{
		question("a", "p1", &condA),
		question("b", "p1", nil),
	}

	// b depending on a closes the loop a -> b -> a.
	cond := simple("a", "y")
	result := ValidateCondition("b", &cond, snapshot)

	require.False(t, result.IsValid)
	assert.Equal(t, []string{"b", "a", "b"}, result.CyclePath)
	assert.Contains(t, result.Errors[0], "circular dependency")
	// Diagnostics use titles, not raw ids.
	assert.Contains(t, result.Errors[0], "Question a")
}

func TestValidatePreexistingCycleElsewhereDoesNotBlock(t *testing.T) {
	condA := simple("b", "x")
	condB := simple("c", "x")
	condC := simple("a", "x")
	snapshot := []*model.Question{
		question("a", "p1", &condA),
		question("b", "p1", &condB),
		question("c", "p1", &condC),
		question("d", "p1", nil),
	}

	// d points into the a/b/c loop but is not part of it.
	cond := simple("a", "x")
	result := ValidateCondition("d", &cond, snapshot)

	assert.True(t, result.IsValid, "errors: %v", result.Errors)
	assert.Empty(t, result.CyclePath)
}

func TestValidateOversizedSnapshotRejected(t *testing.T) {
	snapshot := make([]*model.Question, model.MaxSnapshotQuestions+1)
	for i := range snapshot {
		snapshot[i] = question(fmt.Sprintf("q%d", i), "p1", nil)
	}

	cond := simple("q0", "x")
	result := ValidateCondition("q1", &cond, snapshot)

	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors[0], "exceeding")
}
