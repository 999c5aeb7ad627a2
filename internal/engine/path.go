package engine

import (
	"strconv"
	"strings"

	"github.com/oxhq/vmatch/internal/evalctx"
	"github.com/oxhq/vmatch/internal/validator"
	"github.com/oxhq/vmatch/internal/value"
)

// isPlainKey reports whether a map key can be rendered as ".key" rather
// than "['key']" (spec.md §3: plain iff it contains no "-", space, or
// ".").
func isPlainKey(k string) bool {
	if k == "" {
		return false
	}
	return !strings.ContainsAny(k, "- .")
}

// Root holds everything every Operation in one top-level match shares:
// the evaluator, the accumulated failure list, and the knobs that decide
// otherwise-ambiguous behavior (SPEC_FULL.md Open Question resolutions).
type Root struct {
	Evaluator  evalctx.Evaluator
	Validators *validator.Registry
	Options    Options
	Failures   []Failure
	// Actual is the top-level actual Value this match started from — the
	// `$` binding every macro expression evaluates against (spec.md
	// §4.4.3), as opposed to `_` which tracks the current node.
	Actual value.Value
}

// Options configures the Open Question resolutions SPEC_FULL.md records,
// plus the one caller-supplied flag spec.md §4.4.1 mentions directly
// (match_each_empty_allowed).
type Options struct {
	// EmptyExpectedNotContainsFails resolves "whether NOT_CONTAINS on a
	// map with an empty expected should pass or fail" (spec.md Open
	// Questions). Default false: vacuously passes, matching the reading
	// that an empty expected set has nothing to contradict.
	EmptyExpectedNotContainsFails bool
	// MatchEachEmptyAllowed lets EACH_* pass against an empty actual list
	// instead of the default "match each failed, empty array / list".
	MatchEachEmptyAllowed bool
}

// Context is the Path Context (spec.md §3): everything needed to render
// a human-readable path and to recurse with consistent bookkeeping.
type Context struct {
	Root  *Root
	Depth int
	Path  string
	Name  string
	Index int
	IsXML bool
}

// NewRootContext starts a fresh match at depth 0, path "$" (or "/" for
// XML roots — callers pass isXML when the actual they're about to
// compare is an XML value). actual is recorded on root as the `$`
// binding every macro expression below it evaluates against.
func NewRootContext(root *Root, actual value.Value, isXML bool) *Context {
	root.Actual = actual
	path := "$"
	if isXML {
		path = "/"
	}
	return &Context{Root: root, Path: path, IsXML: isXML}
}

// Child descends into a map/object key. Under an XML context, a key
// beginning with "@" is an attribute and renders via XMLAttr instead
// (spec.md §3: "attributes live under /@").
func (c *Context) Child(key string) *Context {
	if c.IsXML && strings.HasPrefix(key, "@") {
		return c.XMLAttr(key[1:])
	}
	var path string
	if c.IsXML {
		path = c.Path + "/" + key
	} else if isPlainKey(key) {
		path = c.Path + "." + key
	} else {
		path = c.Path + "['" + key + "']"
	}
	return &Context{Root: c.Root, Depth: c.Depth + 1, Path: path, Name: key, IsXML: c.IsXML}
}

// XMLAttr descends into an XML attribute ("@name" map key).
func (c *Context) XMLAttr(name string) *Context {
	path := c.Path + "/@" + name
	return &Context{Root: c.Root, Depth: c.Depth + 1, Path: path, Name: name, IsXML: c.IsXML}
}

// ElementAt descends into a list/array index. oneBased renders XML
// child-list indices starting at 1 instead of 0 (spec.md §3).
func (c *Context) ElementAt(i int, oneBased bool) *Context {
	idx := i
	if oneBased {
		idx++
	}
	path := c.Path + "[" + strconv.Itoa(idx) + "]"
	return &Context{Root: c.Root, Depth: c.Depth + 1, Path: path, Index: i, IsXML: c.IsXML}
}

// AsXML returns a copy of c with IsXML set, used when two XML values are
// converted to MAPs and compared (runXMLMatch).
func (c *Context) AsXML() *Context {
	cp := *c
	cp.IsXML = true
	if cp.Path == "$" {
		cp.Path = "/"
	}
	return &cp
}
