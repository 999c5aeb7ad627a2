package value

import (
	"fmt"
	"strconv"
	"strings"
)

// PlainString renders the value the way it should appear inline in a
// failure message: unquoted for strings/numbers/booleans, "null" for NULL,
// the canonical JSON rendering for LIST/MAP, and element-tag form
// (XMLString) for XML.
func (v Value) PlainString() string {
	switch v.kind {
	case Null:
		return "null"
	case Boolean:
		return strconv.FormatBool(v.Bool())
	case Number:
		return v.Num().String()
	case String:
		return v.Str()
	case Bytes:
		return fmt.Sprintf("bytes[%d]", len(v.BytesVal()))
	case List, Map:
		return v.JSONString()
	case XML:
		return v.XMLString()
	default:
		return fmt.Sprintf("%v", v.raw)
	}
}

// JSONString renders the value as canonical JSON text.
func (v Value) JSONString() string {
	var b strings.Builder
	writeJSON(&b, v)
	return b.String()
}

func writeJSON(b *strings.Builder, v Value) {
	switch v.kind {
	case Null:
		b.WriteString("null")
	case Boolean:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case Number:
		b.WriteString(v.Num().String())
	case String:
		b.WriteString(strconv.Quote(v.Str()))
	case Bytes:
		b.WriteString(strconv.Quote(string(v.BytesVal())))
	case List:
		b.WriteByte('[')
		for i, e := range v.ListVal() {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSON(b, e)
		}
		b.WriteByte(']')
	case Map:
		b.WriteByte('{')
		m := v.MapVal()
		for i, k := range m.Keys() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			ev, _ := m.Get(k)
			writeJSON(b, ev)
		}
		b.WriteByte('}')
	case XML:
		writeJSON(b, v.XMLVal().ToValue())
	default:
		b.WriteString(strconv.Quote(fmt.Sprintf("%v", v.raw)))
	}
}

// XMLString renders an XML value back to element-tag form for failure
// messages. Attribute/child ordering follows the node's own insertion
// order; this is for readability only, never reparsed.
func (v Value) XMLString() string {
	if v.kind != XML {
		return v.JSONString()
	}
	var b strings.Builder
	writeXML(&b, v.XMLVal())
	return b.String()
}

func writeXML(b *strings.Builder, n *XMLNode) {
	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, k := range n.Attrs.Keys() {
		av, _ := n.Attrs.Get(k)
		fmt.Fprintf(b, " %s=%q", k, av.PlainString())
	}
	if len(n.Children) == 0 && strings.TrimSpace(n.Text) == "" {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	b.WriteString(n.Text)
	for _, c := range n.Children {
		writeXML(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

// SortedLike returns a MAP value whose key order mirrors other's, followed
// by this value's remaining keys, for readable failure output (spec.md
// §4.1). Non-MAP values are returned unchanged.
func (v Value) SortedLike(other Value) Value {
	if v.kind != Map || other.kind != Map {
		return v
	}
	src := v.MapVal()
	ref := other.MapVal()
	out := NewOrderedMap()
	for _, k := range ref.Keys() {
		if val, ok := src.Get(k); ok {
			out.Set(k, val)
		}
	}
	for _, k := range src.Keys() {
		if !out.Has(k) {
			val, _ := src.Get(k)
			out.Set(k, val)
		}
	}
	return Value{kind: Map, raw: out}
}
