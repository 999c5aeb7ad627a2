package engine

import "github.com/oxhq/vmatch/internal/value"

// Failure is one structured entry in a Result's failure list (spec.md
// §3, §4.4.4).
type Failure struct {
	Path          string
	Reason        string
	ActualKind    value.Kind
	ExpectedKind  value.Kind
	ActualValue   value.Value
	ExpectedValue value.Value
	Depth         int
}

// Result is the outcome of a top-level match (spec.md §3): pass/fail
// plus a human-readable message and the structured failures behind it.
type Result struct {
	Pass     bool
	Message  string
	Failures []Failure
}
