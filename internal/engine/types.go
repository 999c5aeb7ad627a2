// Package engine implements the Match Operation (spec.md §4.4): the
// recursive comparator deciding whether an actual Value conforms to an
// expected Value or macro string under one of the MatchType variants.
// This is the dominant component of the repository (spec.md §2: ~74% of
// budget) — type coercion, macro interpretation, per-kind comparison,
// failure collection, and path tracking all live here.
package engine

import "strings"

// MatchType is the closed set of comparison modes spec.md §3 names.
type MatchType int

const (
	EQUALS MatchType = iota
	NOT_EQUALS
	CONTAINS
	NOT_CONTAINS
	CONTAINS_ONLY
	CONTAINS_ANY
	CONTAINS_DEEP
	CONTAINS_ONLY_DEEP
	CONTAINS_ANY_DEEP
	WITHIN
	NOT_WITHIN
	EACH_EQUALS
	EACH_NOT_EQUALS
	EACH_CONTAINS
	EACH_NOT_CONTAINS
	EACH_CONTAINS_ONLY
	EACH_CONTAINS_ANY
	EACH_CONTAINS_DEEP
)

var matchTypeNames = map[MatchType]string{
	EQUALS:             "EQUALS",
	NOT_EQUALS:         "NOT_EQUALS",
	CONTAINS:           "CONTAINS",
	NOT_CONTAINS:       "NOT_CONTAINS",
	CONTAINS_ONLY:      "CONTAINS_ONLY",
	CONTAINS_ANY:       "CONTAINS_ANY",
	CONTAINS_DEEP:      "CONTAINS_DEEP",
	CONTAINS_ONLY_DEEP: "CONTAINS_ONLY_DEEP",
	CONTAINS_ANY_DEEP:  "CONTAINS_ANY_DEEP",
	WITHIN:             "WITHIN",
	NOT_WITHIN:         "NOT_WITHIN",
	EACH_EQUALS:        "EACH_EQUALS",
	EACH_NOT_EQUALS:    "EACH_NOT_EQUALS",
	EACH_CONTAINS:      "EACH_CONTAINS",
	EACH_NOT_CONTAINS:  "EACH_NOT_CONTAINS",
	EACH_CONTAINS_ONLY: "EACH_CONTAINS_ONLY",
	EACH_CONTAINS_ANY:  "EACH_CONTAINS_ANY",
	EACH_CONTAINS_DEEP: "EACH_CONTAINS_DEEP",
}

func (t MatchType) String() string {
	if s, ok := matchTypeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// ParseMatchType resolves a type name (case-insensitive) to a MatchType.
func ParseMatchType(name string) (MatchType, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for t, s := range matchTypeNames {
		if s == upper {
			return t, true
		}
	}
	return 0, false
}

// attributes is the table of eight orthogonal booleans each MatchType
// carries (spec.md §3).
type attributes struct {
	Each     bool
	Not      bool
	Equals   bool
	Within   bool
	Contains bool
	Any      bool
	Only     bool
	Deep     bool
}

var attrTable = map[MatchType]attributes{
	EQUALS:             {Equals: true},
	NOT_EQUALS:         {Equals: true, Not: true},
	CONTAINS:           {Contains: true},
	NOT_CONTAINS:       {Contains: true, Not: true},
	CONTAINS_ONLY:      {Contains: true, Only: true},
	CONTAINS_ANY:       {Contains: true, Any: true},
	CONTAINS_DEEP:      {Contains: true, Deep: true},
	CONTAINS_ONLY_DEEP: {Contains: true, Only: true, Deep: true},
	CONTAINS_ANY_DEEP:  {Contains: true, Any: true, Deep: true},
	WITHIN:             {Within: true},
	NOT_WITHIN:         {Within: true, Not: true},
	EACH_EQUALS:        {Each: true, Equals: true},
	EACH_NOT_EQUALS:    {Each: true, Equals: true, Not: true},
	EACH_CONTAINS:      {Each: true, Contains: true},
	EACH_NOT_CONTAINS:  {Each: true, Contains: true, Not: true},
	EACH_CONTAINS_ONLY: {Each: true, Contains: true, Only: true},
	EACH_CONTAINS_ANY:  {Each: true, Contains: true, Any: true},
	EACH_CONTAINS_DEEP: {Each: true, Contains: true, Deep: true},
}

func (t MatchType) attrs() attributes { return attrTable[t] }

// IsContainsFamily reports whether t is any CONTAINS-family variant —
// exposed for callers outside this package (spec.md §6's
// execute_preserve_actual: "actual is a string and match_type is a
// CONTAINS variant").
func (t MatchType) IsContainsFamily() bool { return attrTable[t].Contains }

// dePlural maps an EACH_* type to the scalar type run against each
// element (spec.md §4.4.1 step 1).
var dePlural = map[MatchType]MatchType{
	EACH_EQUALS:        EQUALS,
	EACH_NOT_EQUALS:    NOT_EQUALS,
	EACH_CONTAINS:      CONTAINS,
	EACH_NOT_CONTAINS:  NOT_CONTAINS,
	EACH_CONTAINS_ONLY: CONTAINS_ONLY,
	EACH_CONTAINS_ANY:  CONTAINS_ANY,
	EACH_CONTAINS_DEEP: CONTAINS_DEEP,
}

// deepChild returns the match type a CONTAINS_DEEP/CONTAINS_ONLY_DEEP
// parent uses for a nested map/list/XML child — itself, recursively —
// versus the EQUALS fallback for scalar children (spec.md §4.4.2.1).
func deepChild(parent MatchType, childIsNested bool) MatchType {
	if !childIsNested {
		return EQUALS
	}
	switch parent {
	case CONTAINS_DEEP:
		return CONTAINS_DEEP
	case CONTAINS_ONLY_DEEP:
		return CONTAINS_ONLY_DEEP
	case CONTAINS_ANY_DEEP:
		return CONTAINS_ANY_DEEP
	default:
		return EQUALS
	}
}
