package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionVariantTagging(t *testing.T) {
	payload := `{
		"type": "composite",
		"operator": "AND",
		"conditions": [
			{"type": "simple", "questionId": "q1", "selectedOption": "Yes"},
			{"type": "composite", "operator": "OR", "conditions": [
				{"type": "simple", "questionId": "q2", "selectedOption": "Apple"},
				{"type": "simple", "questionId": "q3", "selectedOption": "Samsung"}
			]}
		]
	}`

	var cond Condition
	require.NoError(t, json.Unmarshal([]byte(payload), &cond))

	assert.True(t, cond.IsComposite())
	assert.Equal(t, OperatorAnd, cond.Operator)
	require.Len(t, cond.Conditions, 2)
	assert.True(t, cond.Conditions[0].IsSimple())
	assert.True(t, cond.Conditions[1].IsComposite())
	assert.Equal(t, 2, cond.NestingLevel())
	assert.Equal(t, 3, cond.LeafCount())
}

func TestConditionNestingLevel(t *testing.T) {
	var nilCond *Condition
	assert.Equal(t, 0, nilCond.NestingLevel())
	assert.Equal(t, 0, nilCond.LeafCount())

	leaf := Condition{Type: ConditionSimple, QuestionID: "q1"}
	assert.Equal(t, 0, leaf.NestingLevel())
	assert.Equal(t, 1, leaf.LeafCount())

	flat := Condition{Type: ConditionComposite, Operator: OperatorOr, Conditions: []Condition{leaf, leaf}}
	assert.Equal(t, 1, flat.NestingLevel())
	assert.Equal(t, 2, flat.LeafCount())
}
