package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/vmatch/internal/config"
	"github.com/oxhq/vmatch/internal/engine"
)

func TestExecuteAutoParsesJSONActual(t *testing.T) {
	result, err := Execute(engine.EQUALS, `{"a":1,"b":[1,2,3]}`, map[string]any{"a": 1.0, "b": []any{1.0, 2.0, 3.0}})
	require.NoError(t, err)
	assert.True(t, result.Pass)
}

func TestExecuteFailureMessage(t *testing.T) {
	result, err := Execute(engine.EQUALS, `{"a":1}`, map[string]any{"a": 2.0})
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Message, "match failed: EQUALS")
}

func TestExecutePreserveActualKeepsStringUnderContains(t *testing.T) {
	actual := `{"a":1}`
	expected := `{"a":1}`

	autoParsed, err := Execute(engine.CONTAINS, actual, expected)
	require.NoError(t, err)
	assert.False(t, autoParsed.Pass, "actual auto-parses to a map, expected stays a literal string: kind mismatch")

	preserved, err := ExecutePreserveActual(engine.CONTAINS, actual, expected)
	require.NoError(t, err)
	assert.True(t, preserved.Pass, "actual stays the literal string, so substring CONTAINS applies")
}

func TestThatPanicsOnFailure(t *testing.T) {
	err := Try(func() {
		That(1.0).Is(engine.EQUALS, 2.0)
	})
	require.Error(t, err)
	var mf MatchFailure
	require.ErrorAs(t, err, &mf)
	assert.False(t, mf.Result.Pass)
}

func TestThatPassesSilently(t *testing.T) {
	assert.NotPanics(t, func() {
		That(1.0).Is(engine.EQUALS, 1.0)
	})
}

// A threshold of 1 byte forces every list in actual to spill to the
// JSONL backend; the match result must agree with what an in-memory
// comparison would produce, proving the engine's LIST iteration paths
// work transparently over a LargeValueStore-backed Value.
func TestExecuteMatchesOverSpilledList(t *testing.T) {
	actual := []any{1.0, 2.0, 3.0, 4.0, 5.0}
	spillCfg := config.StoreConfig{Backend: config.BackendJSONL, SpillThresholdBytes: 1}

	result, err := Execute(engine.CONTAINS, actual, []any{3.0, 5.0}, WithStoreConfig(spillCfg))
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Message)

	result, err = Execute(engine.CONTAINS_ONLY, actual, []any{5.0, 4.0, 3.0, 2.0, 1.0}, WithStoreConfig(spillCfg))
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Message)

	result, err = Execute(engine.CONTAINS, actual, []any{99.0}, WithStoreConfig(spillCfg))
	require.NoError(t, err)
	assert.False(t, result.Pass)
}

func TestSubjectClosesSpilledStoreAfterExecute(t *testing.T) {
	actual := []any{1.0, 2.0, 3.0}
	spillCfg := config.StoreConfig{Backend: config.BackendJSONL, SpillThresholdBytes: 1}

	var captured *Subject
	_, err := Execute(engine.EQUALS, actual, actual,
		WithStoreConfig(spillCfg),
		WithOnResult(func(s *Subject, _ engine.Result) { captured = s }),
	)
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.True(t, captured.Value.IsBackedList(), "actual should have spilled to a store-backed list")
	// Execute defers Close once Is returns, so a second Close is a no-op,
	// not a double-release panic.
	assert.NoError(t, captured.Close())
}

func TestSubjectOnResultCallback(t *testing.T) {
	var got engine.Result
	calls := 0
	s := Evaluate(1.0, WithOnResult(func(_ *Subject, r engine.Result) {
		calls++
		got = r
	}))
	s.Is(engine.EQUALS, 1.0)
	assert.Equal(t, 1, calls)
	assert.True(t, got.Pass)
}
