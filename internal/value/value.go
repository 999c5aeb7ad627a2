package value

import (
	"encoding/json"
	"math/big"
	"reflect"
	"strings"
)

// Value is an immutable (kind, payload) pair. Construction never fails;
// anything that does not fit one of the eight concrete shapes falls through
// to Other. Values are immutable once built — callers that need mutable
// bookkeeping (path, evaluator) attach it alongside a Value, never inside
// one; see internal/engine's path context for that seam.
type Value struct {
	kind Kind
	raw  any
}

// NullValue returns the singleton NULL value.
func NullValue() Value { return Value{kind: Null} }

// Of classifies an arbitrary Go value into a Value. It is the single
// construction entry point; every other constructor in this file funnels
// through it or builds the same shapes directly.
func Of(o any) Value {
	switch v := o.(type) {
	case nil:
		return Value{kind: Kind(0)}
	case Value:
		return v
	case bool:
		return Value{kind: Boolean, raw: v}
	case string:
		return Value{kind: String, raw: v}
	case []byte:
		return Value{kind: Bytes, raw: v}
	case Num:
		return Value{kind: Number, raw: v}
	case json.Number:
		return Value{kind: Number, raw: FromNumberString(string(v))}
	case *big.Float:
		return Value{kind: Number, raw: FromBigFloat(v)}
	case *big.Int:
		return Value{kind: Number, raw: FromBigInt(v)}
	case *big.Rat:
		return Value{kind: Number, raw: FromBigRat(v)}
	case int:
		return Value{kind: Number, raw: FromInt64(int64(v))}
	case int32:
		return Value{kind: Number, raw: FromInt64(int64(v))}
	case int64:
		return Value{kind: Number, raw: FromInt64(v)}
	case float32:
		return Value{kind: Number, raw: FromFloat64(float64(v))}
	case float64:
		return Value{kind: Number, raw: FromFloat64(v)}
	case *OrderedMap:
		return Value{kind: Map, raw: v}
	case map[string]any:
		return Value{kind: Map, raw: mapFromGo(v)}
	case *XMLNode:
		return Value{kind: XML, raw: v}
	case []Value:
		return Value{kind: List, raw: v}
	case []any:
		return Value{kind: List, raw: listFromGo(v)}
	}

	rv := reflect.ValueOf(o)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		n := rv.Len()
		out := make([]Value, n)
		for i := range n {
			out[i] = Of(rv.Index(i).Interface())
		}
		return Value{kind: List, raw: out}
	case reflect.Map:
		om := NewOrderedMap()
		for _, k := range rv.MapKeys() {
			om.Set(keyString(k), Of(rv.MapIndex(k).Interface()))
		}
		return Value{kind: Map, raw: om}
	}

	return Value{kind: Other, raw: o}
}

func keyString(rv reflect.Value) string {
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return Of(rv.Interface()).PlainString()
}

func mapFromGo(m map[string]any) *OrderedMap {
	om := NewOrderedMap()
	for k, v := range m {
		om.Set(k, Of(v))
	}
	return om
}

func listFromGo(xs []any) []Value {
	out := make([]Value, len(xs))
	for i, x := range xs {
		out[i] = Of(x)
	}
	return out
}

// NotPresentValue returns the sentinel "this path does not exist" value.
func NotPresentValue() Value {
	return Value{kind: String, raw: NotPresent}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Raw returns the untyped payload accessor.
func (v Value) Raw() any { return v.raw }

func (v Value) IsNull() bool    { return v.kind == Null }
func (v Value) IsBoolean() bool { return v.kind == Boolean }
func (v Value) IsNumber() bool  { return v.kind == Number }
func (v Value) IsString() bool  { return v.kind == String }
func (v Value) IsBytes() bool   { return v.kind == Bytes }
func (v Value) IsList() bool    { return v.kind == List }
func (v Value) IsMap() bool     { return v.kind == Map }
func (v Value) IsXML() bool     { return v.kind == XML }
func (v Value) IsOther() bool   { return v.kind == Other }

// Bool returns the boolean payload; false if not a BOOLEAN.
func (v Value) Bool() bool {
	b, _ := v.raw.(bool)
	return b
}

// Num returns the NUMBER payload.
func (v Value) Num() Num {
	n, _ := v.raw.(Num)
	return n
}

// Str returns the STRING payload.
func (v Value) Str() string {
	s, _ := v.raw.(string)
	return s
}

// BytesVal returns the BYTES payload.
func (v Value) BytesVal() []byte {
	b, _ := v.raw.([]byte)
	return b
}

// ListVal returns the LIST payload as a materialized slice, or nil if not
// a LIST. For a store-backed list (see ListBacking) this drains the whole
// iterator into memory — fine for rendering/estimation callers, but the
// engine's own iteration paths use ListLen/ListAt/ListIter instead so a
// large backed list never has to be fully materialized just to be
// compared.
func (v Value) ListVal() []Value {
	switch raw := v.raw.(type) {
	case []Value:
		return raw
	case ListBacking:
		out := make([]Value, 0, raw.Size())
		it := raw.Iterator()
		for it.Next() {
			out = append(out, it.Value())
		}
		return out
	default:
		return nil
	}
}

// MapVal returns the MAP payload, or nil if not a MAP.
func (v Value) MapVal() *OrderedMap {
	m, _ := v.raw.(*OrderedMap)
	return m
}

// XMLVal returns the XML payload, or nil if not XML.
func (v Value) XMLVal() *XMLNode {
	x, _ := v.raw.(*XMLNode)
	return x
}

// ListSize returns the length of a LIST value, 0 otherwise. Backing-aware
// via ListLen — it never materializes a store-backed list just to count
// it.
func (v Value) ListSize() int {
	return v.ListLen()
}

// ListElement returns the i-th element of a LIST value. Backing-aware via
// ListAt.
func (v Value) ListElement(i int) Value {
	return v.ListAt(i)
}

// IsNotPresent is true iff the payload equals the "#notpresent" sentinel.
func (v Value) IsNotPresent() bool {
	return v.kind == String && v.raw.(string) == NotPresent
}

// IsArrayObjectOrReference is true iff the payload is a string beginning
// with one of "#[", "##[", "#(", "##(" or equal to one of
// "#array"/"##array"/"#object"/"##object". These are the macro prefixes
// that the kind-coercion step in §4.4.1 treats as "the expected side names
// a structural shape, not a literal".
func (v Value) IsArrayObjectOrReference() bool {
	if v.kind != String {
		return false
	}
	s := v.raw.(string)
	switch s {
	case "#array", "##array", "#object", "##object":
		return true
	}
	for _, p := range []string{"#[", "##[", "#(", "##("} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Truthy implements the truthiness rule used wherever the macro
// sub-language (§4.4.3) must decide whether an evaluated expression
// "passed": booleans are used as-is, numbers are truthy iff non-zero,
// strings/lists/maps are truthy iff non-empty, null and not-present are
// always falsy.
func Truthy(v Value) bool {
	switch v.Kind() {
	case Boolean:
		return v.Bool()
	case Number:
		return v.Num().Float64() != 0
	case String:
		return v.Str() != "" && !v.IsNotPresent()
	case Bytes:
		return len(v.BytesVal()) > 0
	case List:
		return v.ListSize() > 0
	case Map:
		return v.MapVal().Len() > 0
	case Null:
		return false
	default:
		return v.Raw() != nil
	}
}

// Equal is a general-purpose structural equality used by the expression
// evaluator's "==" / "!=" operators and by the match engine's scalar
// comparison (NULL/BOOLEAN/NUMBER/BYTES/OTHER); the engine's STRING, LIST,
// MAP and XML comparisons use their own per-kind rules in internal/engine.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case Null:
		return true
	case Boolean:
		return a.Bool() == b.Bool()
	case Number:
		return a.Num().Equal(b.Num())
	case String:
		return a.Str() == b.Str()
	case Bytes:
		return string(a.BytesVal()) == string(b.BytesVal())
	case List:
		if a.ListLen() != b.ListLen() {
			return false
		}
		for i := 0; i < a.ListLen(); i++ {
			if !Equal(a.ListAt(i), b.ListAt(i)) {
				return false
			}
		}
		return true
	case Map:
		am, bm := a.MapVal(), b.MapVal()
		if am.Len() != bm.Len() {
			return false
		}
		for _, k := range am.Keys() {
			av, _ := am.Get(k)
			bv, ok := bm.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return a.PlainString() == b.PlainString()
	}
}

// IsMacro reports whether the value is a string beginning with "#" — the
// signal that it should be interpreted by the macro sub-language (§4.4.3)
// rather than compared literally.
func (v Value) IsMacro() bool {
	return v.kind == String && strings.HasPrefix(v.raw.(string), "#")
}
