package engine

import (
	"fmt"
	"strings"

	"paperdeck/internal/model"
)

// ValidateCondition checks a candidate condition tree for question questionID
// against the full snapshot of its paper and returns a structured verdict.
// The verdict is valid iff no hard error was recorded; warnings are advisory.
//
// This is the sole gate before persisting a condition change. It never
// returns an error or panics: every structural anomaly becomes a hard error
// in the verdict so the caller always gets an answer to show the user.
func ValidateCondition(questionID string, cond *model.Condition, snapshot []*model.Question) *model.ValidationResult {
	result := &model.ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	// Absent condition means always visible; nothing to check.
	if cond == nil {
		result.IsValid = true
		return result
	}

	if len(snapshot) > model.MaxSnapshotQuestions {
		result.Errors = append(result.Errors,
			fmt.Sprintf("paper has %d questions, exceeding the %d supported for condition validation",
				len(snapshot), model.MaxSnapshotQuestions))
		return result
	}

	v := &conditionValidator{
		questionID: questionID,
		byID:       make(map[string]*model.Question, len(snapshot)),
		result:     result,
	}
	for _, q := range snapshot {
		v.byID[q.ID] = q
	}
	if self, ok := v.byID[questionID]; ok {
		v.paperID = self.PaperID
	}

	v.validateNode(cond, 0)

	// Simulate the insertion and look for a cycle through the candidate.
	// A pre-existing cycle elsewhere in the paper does not fail this
	// candidate; only a loop the candidate participates in does.
	if len(result.Errors) == 0 {
		graph := BuildGraphWith(snapshot, questionID, cond)
		if cycle := DetectCycleFrom(graph, questionID); cycle != nil && cycleContains(cycle, questionID) {
			result.CyclePath = cycle
			result.Errors = append(result.Errors,
				fmt.Sprintf("condition would create a circular dependency: %s", v.describeCycle(cycle)))
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

type conditionValidator struct {
	questionID string
	paperID    string
	byID       map[string]*model.Question
	result     *model.ValidationResult
}

// validateNode checks one tree node. depth counts composite levels below the
// root composite: the root is depth 0 and nesting may go MaxNestingDepth
// levels beyond it.
func (v *conditionValidator) validateNode(cond *model.Condition, depth int) {
	switch cond.Type {
	case model.ConditionSimple:
		v.validateSimple(cond)
	case model.ConditionComposite:
		v.validateComposite(cond, depth)
	default:
		v.addError(fmt.Sprintf("unknown condition type %q", string(cond.Type)))
	}
}

func (v *conditionValidator) validateSimple(cond *model.Condition) {
	if cond.QuestionID == "" {
		v.addError("condition references no question")
		return
	}
	ref, ok := v.byID[cond.QuestionID]
	if !ok {
		v.addError(fmt.Sprintf("referenced question %q does not exist", cond.QuestionID))
		return
	}
	if v.paperID != "" && ref.PaperID != v.paperID {
		v.addError(fmt.Sprintf("referenced question %q belongs to a different paper", cond.QuestionID))
		return
	}
	if cond.SelectedOption == "" {
		v.addWarning(fmt.Sprintf("condition on question %q has no expected answer", cond.QuestionID))
	}
}

func (v *conditionValidator) validateComposite(cond *model.Condition, depth int) {
	if depth > model.MaxNestingDepth {
		v.addError(fmt.Sprintf("condition nesting exceeds %d levels", model.MaxNestingDepth))
		return
	}
	if cond.Operator != model.OperatorAnd && cond.Operator != model.OperatorOr {
		v.addError(fmt.Sprintf("invalid operator %q, must be AND or OR", string(cond.Operator)))
	}
	if len(cond.Conditions) == 0 {
		v.addError("composite condition has no sub-conditions")
		return
	}
	if len(cond.Conditions) < 2 {
		v.addWarning("composite condition has a single sub-condition, operator has no effect")
	}
	limit := model.MaxSiblingConditions
	if depth > 0 {
		limit = model.MaxNestedSiblings
	}
	if len(cond.Conditions) > limit {
		v.addWarning(fmt.Sprintf("composite condition has %d sub-conditions, more than the recommended %d",
			len(cond.Conditions), limit))
	}
	for i := range cond.Conditions {
		v.validateNode(&cond.Conditions[i], depth+1)
	}
}

// describeCycle renders a cycle path with question titles where available.
func (v *conditionValidator) describeCycle(cycle []string) string {
	labels := make([]string, len(cycle))
	for i, id := range cycle {
		if q, ok := v.byID[id]; ok && q.Title != "" {
			labels[i] = q.Title
		} else {
			labels[i] = id
		}
	}
	return strings.Join(labels, " -> ")
}

func (v *conditionValidator) addError(msg string) {
	v.result.Errors = append(v.result.Errors, msg)
}

func (v *conditionValidator) addWarning(msg string) {
	v.result.Warnings = append(v.result.Warnings, msg)
}
