package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCycleFromAcyclic(t *testing.T) {
	graph := map[string][]string{
		"a": {},
		"b": {"a"},
		"c": {"b"},
	}

	for _, start := range []string{"a", "b", "c"} {
		assert.Nil(t, DetectCycleFrom(graph, start))
	}
}

func TestDetectCycleFromTriangle(t *testing.T) {
	graph := map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	}

	// Any member reports the full loop, closed, length k+1.
	for _, start := range []string{"a", "b", "c"} {
		cycle := DetectCycleFrom(graph, start)
		assert.Len(t, cycle, 4)
		assert.Equal(t, cycle[0], cycle[len(cycle)-1])
		assert.Contains(t, cycle, "a")
		assert.Contains(t, cycle, "b")
		assert.Contains(t, cycle, "c")
	}
}

func TestDetectCycleFromSelfLoop(t *testing.T) {
	graph := map[string][]string{"a": {"a"}}
	assert.Equal(t, []string{"a", "a"}, DetectCycleFrom(graph, "a"))
}

func TestDetectCycleFromDiamondIsNotACycle(t *testing.T) {
	// a -> b -> d and a -> c -> d reconverge without looping. A naive
	// visited-once check would misreport d's second visit as a cycle.
	graph := map[string][]string{
		"a": {"b", "c"},
		"b": {"d"},
		"c": {"d"},
		"d": {},
	}
	assert.Nil(t, DetectCycleFrom(graph, "a"))
}

func TestDetectCycleFromUnknownNeighborsSkipped(t *testing.T) {
	graph := map[string][]string{
		"a": {"ghost", "b"},
		"b": {"a"},
	}

	cycle := DetectCycleFrom(graph, "a")
	assert.Equal(t, []string{"a", "b", "a"}, cycle)
	assert.Nil(t, DetectCycleFrom(graph, "ghost"))
}

func TestDetectCycleDownstream(t *testing.T) {
	// d is not on the loop but can reach it.
	graph := map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
		"d": {"a"},
	}

	cycle := DetectCycleFrom(graph, "d")
	assert.Len(t, cycle, 4)
	assert.NotContains(t, cycle, "d")
}

func TestDetectAllCyclesEmpty(t *testing.T) {
	graph := map[string][]string{
		"a": {},
		"b": {"a"},
		"c": {"a", "b"},
	}
	assert.Empty(t, DetectAllCycles(graph))
}

func TestDetectAllCyclesSingleCycleReportedOnce(t *testing.T) {
	// One triangle plus a tail; rotations of the same loop must not be
	// counted once per member.
	graph := map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
		"d": {"a"},
	}

	cycles := DetectAllCycles(graph)
	assert.Len(t, cycles, 1)
	assert.Len(t, cycles[0], 4)
}

func TestDetectAllCyclesDisjoint(t *testing.T) {
	graph := map[string][]string{
		"a": {"b"},
		"b": {"a"},
		"x": {"y"},
		"y": {"z"},
		"z": {"x"},
		"q": {},
	}

	cycles := DetectAllCycles(graph)
	assert.Len(t, cycles, 2)

	sizes := []int{len(cycles[0]), len(cycles[1])}
	assert.ElementsMatch(t, []int{3, 4}, sizes)
}

func TestDetectAllCyclesDeterministic(t *testing.T) {
	graph := map[string][]string{
		"a": {"b"},
		"b": {"a"},
		"c": {"d"},
		"d": {"c"},
	}

	first := DetectAllCycles(graph)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DetectAllCycles(graph))
	}
}
