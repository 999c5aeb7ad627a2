package value

import (
	"strings"
)

// XMLNode is the parsed-XML payload wrapped by an XML Value. It is
// intentionally minimal — a tag, its attributes, child elements in document
// order, and any direct text content — because the engine only ever needs
// to convert it to a MAP (spec.md §4.4.2's XML row) before comparing it; no
// XML-specific comparison logic exists beyond that conversion.
type XMLNode struct {
	Tag      string
	Attrs    *OrderedMap // string key -> Value(String)
	Children []*XMLNode
	Text     string
}

// ToValue converts the node's *contents* (attributes, children, text) into
// a MAP Value per spec.md's conversion rule: attributes live under "@name",
// repeated child tags collapse into a LIST, and leaf text lives under "_".
// The node's own tag is not part of the returned map — a parent keys each
// child's map by the child's tag, as the loop below does.
func (n *XMLNode) ToValue() Value {
	om := NewOrderedMap()
	for _, k := range n.Attrs.Keys() {
		v, _ := n.Attrs.Get(k)
		om.Set("@"+k, v)
	}

	order := make([]string, 0, len(n.Children))
	groups := make(map[string][]Value, len(n.Children))
	for _, c := range n.Children {
		if _, ok := groups[c.Tag]; !ok {
			order = append(order, c.Tag)
		}
		groups[c.Tag] = append(groups[c.Tag], c.ToValue())
	}
	for _, tag := range order {
		vs := groups[tag]
		if len(vs) == 1 {
			om.Set(tag, vs[0])
		} else {
			om.Set(tag, Value{kind: List, raw: vs})
		}
	}

	if len(n.Children) == 0 {
		text := strings.TrimSpace(n.Text)
		if text != "" || om.Len() == 0 {
			om.Set("_", Of(text))
		}
	}
	return Value{kind: Map, raw: om}
}
