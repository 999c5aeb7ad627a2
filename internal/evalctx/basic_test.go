package evalctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/vmatch/internal/value"
)

func TestBasicEvaluatorArithmeticAndComparison(t *testing.T) {
	e := NewBasicEvaluator()
	e.Put("_", value.Of(3.0))

	cases := []struct {
		src  string
		want bool
	}{
		{"_ < 5", true},
		{"_ == 3", true},
		{"_ >= 4", false},
		{"_ + 1 == 4", true},
		{"!(_ == 3)", false},
	}
	for _, c := range cases {
		v, err := e.Eval(c.src)
		require.NoError(t, err, c.src)
		assert.Equal(t, c.want, value.Truthy(v), c.src)
	}
}

func TestBasicEvaluatorMemberAndIndex(t *testing.T) {
	e := NewBasicEvaluator()
	e.Put("$", value.Of(map[string]any{
		"items": []any{1.0, 2.0, 3.0},
		"id":    7.0,
	}))

	v, err := e.Eval("$.id == 7")
	require.NoError(t, err)
	assert.True(t, value.Truthy(v))

	v, err = e.Eval("$.items[1] == 2")
	require.NoError(t, err)
	assert.True(t, value.Truthy(v))
}

func TestBasicEvaluatorBuiltins(t *testing.T) {
	e := NewBasicEvaluator()
	e.Put("_", value.Of("hello world"))

	v, err := e.Eval(`contains(_, "world")`)
	require.NoError(t, err)
	assert.True(t, value.Truthy(v))

	v, err = e.Eval(`size(_) == 11`)
	require.NoError(t, err)
	assert.True(t, value.Truthy(v))

	v, err = e.Eval(`startsWith(_, "hello")`)
	require.NoError(t, err)
	assert.True(t, value.Truthy(v))
}

func TestBasicEvaluatorUnknownFunctionErrors(t *testing.T) {
	e := NewBasicEvaluator()
	_, err := e.Eval("nope(1)")
	assert.Error(t, err)
}

func TestBasicEvaluatorPutRemove(t *testing.T) {
	e := NewBasicEvaluator()
	e.Put("x", value.Of(1.0))
	v, err := e.Eval("x")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.Num().Float64())

	e.Remove("x")
	v, err = e.Eval("x")
	require.NoError(t, err)
	assert.True(t, v.IsNotPresent())
}
