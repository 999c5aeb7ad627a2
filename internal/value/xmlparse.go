package value

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// ParseXML decodes an XML document into an *XMLNode tree. Grounded on the
// standard library's encoding/xml (no XML-to-tree library appears anywhere
// in the example corpus — see DESIGN.md) with a shape modeled after
// other_examples' map-based XML query engine: elements become nodes keyed
// by tag, attributes are carried alongside, and mixed text content is
// concatenated.
func ParseXML(src string) (*XMLNode, error) {
	dec := xml.NewDecoder(strings.NewReader(src))
	var root *XMLNode
	var stack []*XMLNode

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &XMLNode{Tag: t.Name.Local, Attrs: NewOrderedMap()}
			for _, a := range t.Attr {
				n.Attrs.Set(a.Name.Local, Of(a.Value))
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	return root, nil
}
