package value

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ParseIfJSONOrXML implements spec.md §4.1's parse_if_json_or_xml hook: if o
// is a string that looks like JSON, parse and return the decoded structure;
// if it looks like XML, parse and return the *XMLNode; if it starts with a
// backslash, strip it and return the remainder unchanged; otherwise return
// o as-is.
//
// JSON numbers are decoded with json.Decoder.UseNumber so that every
// JSON-sourced number becomes an arbitrary-precision value.Num (see num.go)
// — the engine never has to guess whether a JSON literal was meant to be
// compared at double precision.
func ParseIfJSONOrXML(o any) any {
	s, ok := o.(string)
	if !ok {
		return o
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return o
	}

	if strings.HasPrefix(trimmed, "\\") {
		return s[strings.Index(s, "\\")+1:]
	}

	if looksLikeJSON(trimmed) {
		if v, ok := decodeJSON(trimmed); ok {
			return v
		}
		return o
	}

	if looksLikeXML(trimmed) {
		if node, err := ParseXML(trimmed); err == nil && node != nil {
			return node
		}
		return o
	}

	return o
}

// ParseJSON decodes s as a single JSON document into a Value, preserving
// MAP key order and arbitrary-precision numbers the same way
// ParseIfJSONOrXML does. Used by internal/store to round-trip spilled
// candidate elements through the disk-backed and SQLite-backed stores.
func ParseJSON(s string) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return Value{}, err
	}
	return Of(v), nil
}

func looksLikeJSON(s string) bool {
	if s == "" {
		return false
	}
	return s[0] == '{' || s[0] == '['
}

func looksLikeXML(s string) bool {
	return strings.HasPrefix(s, "<")
}

// decodeJSON parses s into a Value tree directly off the token stream
// rather than through a map[string]any intermediate, because the latter
// would discard the object key order that "insertion-ordered" MAP
// construction (spec.md §3) requires.
func decodeJSON(s string) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, false
	}
	return v, true
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONFromToken(dec, tok)
}

func decodeJSONFromToken(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			om := NewOrderedMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := keyTok.(string)
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				om.Set(key, Of(val))
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return om, nil
		case '[':
			var out []any
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				out = append(out, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return out, nil
		}
	}
	return tok, nil
}
