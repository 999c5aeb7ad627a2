package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/vmatch/internal/value"
)

func TestBuiltinKindValidators(t *testing.T) {
	r := New()

	cases := []struct {
		name string
		v    value.Value
		want bool
	}{
		{"null", value.NullValue(), true},
		{"null", value.Of("x"), false},
		{"notnull", value.Of("x"), true},
		{"boolean", value.Of(true), true},
		{"boolean", value.Of(1.0), false},
		{"number", value.Of(1.0), true},
		{"string", value.Of("hi"), true},
		{"string", value.NotPresentValue(), false},
		{"array", value.Of([]any{}), true},
		{"object", value.Of(map[string]any{}), true},
		{"ignore", value.NotPresentValue(), true},
		{"present", value.NotPresentValue(), false},
		{"present", value.Of("x"), true},
		{"notpresent", value.NotPresentValue(), true},
	}
	for _, c := range cases {
		fn, ok := r.Lookup(c.name)
		require.True(t, ok, c.name)
		assert.Equal(t, c.want, fn(c.v), "%s(%v)", c.name, c.v.PlainString())
	}
}

func TestUUIDValidator(t *testing.T) {
	r := New()
	fn, ok := r.Lookup("uuid")
	require.True(t, ok)
	assert.True(t, fn(value.Of("123e4567-e89b-12d3-a456-426614174000")))
	assert.False(t, fn(value.Of("not-a-uuid")))
	assert.False(t, fn(value.Of(42.0)))
}

func TestRegexValidatorFullMatch(t *testing.T) {
	r := New()
	fn, ok := r.Lookup("regex [a-z]+[0-9]+")
	require.True(t, ok)
	assert.True(t, fn(value.Of("abc123")))
	assert.False(t, fn(value.Of("abc123xyz")))
	assert.False(t, fn(value.Of(42.0)))
}

func TestRegisterCustomValidator(t *testing.T) {
	r := New()
	err := r.Register("even", func(v value.Value) bool {
		return v.Kind() == value.Number && int64(v.Num().Float64())%2 == 0
	})
	require.NoError(t, err)

	fn, ok := r.Lookup("even")
	require.True(t, ok)
	assert.True(t, fn(value.Of(4.0)))
	assert.False(t, fn(value.Of(3.0)))
}

func TestLookupUnknownName(t *testing.T) {
	r := New()
	_, ok := r.Lookup("does-not-exist")
	assert.False(t, ok)
}

func TestRegisterRejectsEmptyNameOrNilFunc(t *testing.T) {
	r := New()
	assert.Error(t, r.Register("", func(value.Value) bool { return true }))
	assert.Error(t, r.Register("x", nil))
}
