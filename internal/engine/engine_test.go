package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/vmatch/internal/evalctx"
	"github.com/oxhq/vmatch/internal/validator"
	"github.com/oxhq/vmatch/internal/value"
)

func runMatch(mt MatchType, actual, expected any) Result {
	av, ev := value.Of(actual), value.Of(expected)
	root := &Root{Evaluator: evalctx.NewBasicEvaluator(), Validators: validator.New()}
	ctx := NewRootContext(root, av, av.Kind() == value.XML)
	op := New(mt, av, ev, ctx)
	pass := op.Run()
	return BuildResult(mt, pass, root)
}

// Universal invariants (spec.md §8).

func TestEqualsReflexive(t *testing.T) {
	cases := []any{
		1.0, "hi", true, nil,
		[]any{1.0, 2.0}, map[string]any{"a": 1.0},
	}
	for _, v := range cases {
		r := runMatch(EQUALS, v, v)
		assert.True(t, r.Pass, "%v", v)
	}
}

func TestNotEqualsReflexiveFails(t *testing.T) {
	r := runMatch(NOT_EQUALS, 1.0, 1.0)
	require.False(t, r.Pass)
	assert.Contains(t, r.Message, "is equal")
}

func TestListContainsSingleton(t *testing.T) {
	xs := []any{1.0, 2.0, 3.0}
	for _, x := range xs {
		r := runMatch(CONTAINS, xs, []any{x})
		assert.True(t, r.Pass, "%v", x)
	}
}

func TestListWithinSubset(t *testing.T) {
	r := runMatch(WITHIN, []any{1.0, 2.0}, []any{1.0, 2.0, 3.0})
	assert.True(t, r.Pass)
}

func TestMapContainsSubsetPasses(t *testing.T) {
	m := map[string]any{"a": 1.0, "b": 2.0}
	s := map[string]any{"a": 1.0}
	r := runMatch(CONTAINS, m, s)
	assert.True(t, r.Pass)
}

func TestMapEqualsFailsWhenSubsetSmaller(t *testing.T) {
	m := map[string]any{"a": 1.0, "b": 2.0}
	s := map[string]any{"a": 1.0}
	r := runMatch(EQUALS, m, s)
	assert.False(t, r.Pass)
}

func TestEachEqualsTruePredicate(t *testing.T) {
	r := runMatch(EACH_EQUALS, []any{2.0, 4.0, 6.0}, "#number? _ > 0")
	assert.True(t, r.Pass)
}

// Boundary behaviors (spec.md §8).

func TestEmptyListEachFails(t *testing.T) {
	r := runMatch(EACH_EQUALS, []any{}, "#number")
	require.False(t, r.Pass)
	assert.Contains(t, r.Message, "match each failed, empty array / list")
}

func TestMissingActualNotPresentMacroPasses(t *testing.T) {
	root := &Root{Evaluator: evalctx.NewBasicEvaluator(), Validators: validator.New()}
	ctx := NewRootContext(root, value.NotPresentValue(), false)
	op := New(EQUALS, value.NotPresentValue(), value.Of("#notpresent"), ctx)
	assert.True(t, op.Run())
}

func TestMissingActualNonMacroFails(t *testing.T) {
	root := &Root{Evaluator: evalctx.NewBasicEvaluator(), Validators: validator.New()}
	ctx := NewRootContext(root, value.NotPresentValue(), false)
	op := New(EQUALS, value.NotPresentValue(), value.Of("plain"), ctx)
	require.False(t, op.Run())
	assert.Contains(t, op.FailReason, "actual path does not exist")
}

func TestContainsOnlyUnequalLengthFails(t *testing.T) {
	r := runMatch(CONTAINS_ONLY, []any{1.0, 1.0, 2.0}, []any{1.0, 2.0})
	require.False(t, r.Pass)
	assert.Contains(t, r.Message, "actual array length is not equal to expected")
}

// A naive earliest-unvisited-index greedy match lets "#ignore" claim the
// one actual slot a later, more specific expected element needs; the
// fix defers "#ignore" entirely so non-ignore elements match first.
func TestContainsOnlyIgnoreDoesNotStealRequiredSlot(t *testing.T) {
	r := runMatch(CONTAINS_ONLY, []any{"B", "x"}, []any{"#ignore", "B"})
	assert.True(t, r.Pass, r.Message)
}

func TestContainsOnlyIgnoreStillCountsTowardLength(t *testing.T) {
	r := runMatch(CONTAINS_ONLY, []any{"B"}, []any{"#ignore", "B"})
	require.False(t, r.Pass)
	assert.Contains(t, r.Message, "actual array length is not equal to expected")
}

func TestOptionalKeyAbsentPasses(t *testing.T) {
	m := map[string]any{"a": 1.0}
	s := map[string]any{"a": 1.0, "b": "##string"}
	r := runMatch(EQUALS, m, s)
	assert.True(t, r.Pass)
}

func TestNotEqualsKindMismatchPasses(t *testing.T) {
	r := runMatch(NOT_EQUALS, []any{1.0}, map[string]any{"a": 1.0})
	assert.True(t, r.Pass)
}

// End-to-end scenarios (spec.md §8).

func TestScenario1NestedEquality(t *testing.T) {
	actual := map[string]any{"a": 1.0, "b": map[string]any{"c": []any{1.0, 2.0, 3.0}}}
	expected := map[string]any{"a": 1.0, "b": map[string]any{"c": []any{1.0, 2.0, 3.0}}}
	r := runMatch(EQUALS, actual, expected)
	assert.True(t, r.Pass)
}

func TestScenario2ArrayContainsDeep(t *testing.T) {
	actual := []any{
		map[string]any{"id": 1.0, "meta": map[string]any{"tags": []any{"x", "y"}}},
		map[string]any{"id": 2.0},
	}
	expected := []any{
		map[string]any{"meta": map[string]any{"tags": []any{"x"}}},
	}
	r := runMatch(CONTAINS_DEEP, actual, expected)
	assert.True(t, r.Pass)
}

func TestScenario3SizePredicateMacro(t *testing.T) {
	actual := []any{10.0, 20.0, 30.0}
	assert.True(t, runMatch(EQUALS, actual, "#[3]").Pass)
	assert.True(t, runMatch(EQUALS, actual, "#[_ < 5]").Pass)
}

func TestScenario4ValidatorWithPredicate(t *testing.T) {
	assert.True(t, runMatch(EQUALS, 7.0, "#number? _ > 0").Pass)
	r := runMatch(EQUALS, -1.0, "#number? _ > 0")
	require.False(t, r.Pass)
	assert.Contains(t, r.Message, "evaluated to 'false'")
}

func TestScenario5MissingKeyOptionalMarker(t *testing.T) {
	actual := map[string]any{"a": 1.0}
	expected := map[string]any{"a": 1.0, "b": "##string"}
	assert.True(t, runMatch(EQUALS, actual, expected).Pass)
}

func TestScenario6ContainsOnlyDuplicates(t *testing.T) {
	r := runMatch(CONTAINS_ONLY, []any{1.0, 1.0, 2.0}, []any{1.0, 2.0})
	assert.False(t, r.Pass)

	r2 := runMatch(CONTAINS_ONLY, []any{1.0, 2.0, 1.0}, []any{1.0, 1.0, 2.0})
	assert.True(t, r2.Pass)
}

func TestScenario7RegexValidator(t *testing.T) {
	r := runMatch(EQUALS, "abc123", "#regex [a-z]+[0-9]+")
	assert.True(t, r.Pass)
}
