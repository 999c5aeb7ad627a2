package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfClassifiesKinds(t *testing.T) {
	assert.Equal(t, Null, Of(nil).Kind())
	assert.Equal(t, Boolean, Of(true).Kind())
	assert.Equal(t, Number, Of(1.5).Kind())
	assert.Equal(t, String, Of("hi").Kind())
	assert.Equal(t, Bytes, Of([]byte("hi")).Kind())
	assert.Equal(t, List, Of([]any{1, 2}).Kind())
	assert.Equal(t, Map, Of(map[string]any{"a": 1}).Kind())
}

func TestIsNotPresent(t *testing.T) {
	assert.True(t, NotPresentValue().IsNotPresent())
	assert.False(t, Of("hello").IsNotPresent())
}

func TestIsArrayObjectOrReference(t *testing.T) {
	for _, s := range []string{"#[3]", "##[_ < 5]", "#(x)", "##(y)", "#array", "##object"} {
		assert.True(t, Of(s).IsArrayObjectOrReference(), s)
	}
	assert.False(t, Of("#string").IsArrayObjectOrReference())
}

func TestNumEquality(t *testing.T) {
	a := Of(1.0)
	b, ok := decodeJSON("1.0")
	require.True(t, ok)
	bv := Of(b)
	assert.True(t, a.Num().Equal(bv.Num()))
}

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	v, ok := decodeJSON(`{"z":1,"a":2,"m":3}`)
	require.True(t, ok)
	mv := Of(v)
	require.True(t, mv.IsMap())
	assert.Equal(t, []string{"z", "a", "m"}, mv.MapVal().Keys())
}

func TestSortedLike(t *testing.T) {
	actual := Of(map[string]any{"b": 1, "a": 2, "c": 3})
	expected, ok := decodeJSON(`{"a":0,"b":0}`)
	require.True(t, ok)
	sorted := actual.SortedLike(Of(expected))
	assert.Equal(t, []string{"a", "b", "c"}, sorted.MapVal().Keys())
}

func TestParseIfJSONOrXML(t *testing.T) {
	out := ParseIfJSONOrXML(`{"a":1}`)
	mv := Of(out)
	assert.True(t, mv.IsMap())

	out = ParseIfJSONOrXML(`<root><a>1</a></root>`)
	node, ok := out.(*XMLNode)
	require.True(t, ok)
	assert.Equal(t, "root", node.Tag)

	out = ParseIfJSONOrXML(`\{notjson}`)
	assert.Equal(t, "{notjson}", out)

	out = ParseIfJSONOrXML("plain")
	assert.Equal(t, "plain", out)
}

func TestXMLToValue(t *testing.T) {
	node, err := ParseXML(`<order id="1"><item>a</item><item>b</item></order>`)
	require.NoError(t, err)
	v := node.ToValue()
	require.True(t, v.IsMap())
	idv, ok := v.MapVal().Get("@id")
	require.True(t, ok)
	assert.Equal(t, "1", idv.Str())
	items, ok := v.MapVal().Get("item")
	require.True(t, ok)
	require.True(t, items.IsList())
	assert.Equal(t, 2, items.ListSize())
}
