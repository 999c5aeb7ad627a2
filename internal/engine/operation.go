package engine

import (
	"fmt"
	"strings"

	"github.com/oxhq/vmatch/internal/value"
)

// Operation is one node in the recursive comparator (spec.md §3): a
// match type, the two sides, the path context it runs under, and the
// outcome once Run has executed. Every Operation within one top-level
// match shares the same Root (and therefore the same failure list) via
// its Ctx — an Operation never owns sibling Operations, it only spawns
// children that point back at the same root.
type Operation struct {
	Type       MatchType
	Actual     value.Value
	Expected   value.Value
	Ctx        *Context
	Pass       bool
	FailReason string
}

// New constructs an Operation. Callers that already hold a Context
// (typically a parent Operation recursing into a child) should build one
// directly instead — New exists for top-level entry points.
func New(t MatchType, actual, expected value.Value, ctx *Context) *Operation {
	return &Operation{Type: t, Actual: actual, Expected: expected, Ctx: ctx}
}

// mark/rollback implement the failure-rollback mechanism spec.md §9
// describes: every search loop records the failure-list length before
// trying a candidate and truncates back to it on success, so the report
// only ever contains the terminal, actually-failing path.
func (c *Context) mark() int { return len(c.Root.Failures) }

func (c *Context) rollback(m int) { c.Root.Failures = c.Root.Failures[:m] }

func (op *Operation) recordFailure(reason string) {
	op.Ctx.Root.Failures = append(op.Ctx.Root.Failures, Failure{
		Path:          op.Ctx.Path,
		Reason:        reason,
		ActualKind:    op.Actual.Kind(),
		ExpectedKind:  op.Expected.Kind(),
		ActualValue:   op.Actual,
		ExpectedValue: op.Expected,
		Depth:         op.Ctx.Depth,
	})
}

func (op *Operation) fail(reason string) bool {
	op.Pass = false
	op.FailReason = reason
	op.recordFailure(reason)
	return false
}

func (op *Operation) succeed() bool {
	op.Pass = true
	return true
}

// child builds a sub-Operation under ctx, sharing this Operation's root.
func (op *Operation) child(t MatchType, actual, expected value.Value, ctx *Context) *Operation {
	return &Operation{Type: t, Actual: actual, Expected: expected, Ctx: ctx}
}

// Run executes the top-level dispatch (spec.md §4.4.1) and returns
// whether the comparison passed. Failures are appended to the shared
// root list as a side effect; Run itself never returns an error — the
// only things that short-circuit a match (UsageError, StoreIoError,
// EvaluatorError) are reported by panicking with a typed value that
// Execute recovers, matching spec.md §7's "these three short-circuit,
// everything else is collected" propagation policy.
func (op *Operation) Run() bool {
	attrs := op.Type.attrs()

	// 1. EACH_* family.
	if attrs.Each {
		return op.runEach()
	}

	// 2. Missing actual.
	if op.Actual.IsNotPresent() && !op.Expected.IsMacro() {
		return op.fail("actual path does not exist")
	}

	// 3. Kind coercion (only when kinds disagree).
	if op.Actual.Kind() != op.Expected.Kind() {
		if pass, handled := op.coerceKinds(); handled {
			return pass
		}
	}

	// 4. Macro on expected.
	if op.Expected.IsMacro() {
		return op.runMacroWithNegation()
	}

	// 5. Kind-equal comparison.
	return op.runKindMatch()
}

func (op *Operation) runEach() bool {
	if op.Actual.Kind() != value.List {
		return op.fail("actual is not an array or list")
	}
	n := op.Actual.ListLen()
	if n == 0 {
		if op.Ctx.Root.Options.MatchEachEmptyAllowed {
			return op.succeed()
		}
		return op.fail("match each failed, empty array / list")
	}

	scalarType := dePlural[op.Type]
	var failingIdx []int
	i := -1
	it := op.Actual.ListIter()
	for it.Next() {
		i++
		el := it.Value()
		if op.Ctx.Root.Evaluator != nil {
			op.Ctx.Root.Evaluator.Put("_$", el)
		}
		childCtx := op.Ctx.ElementAt(i, op.Ctx.IsXML)
		c := op.child(scalarType, el, op.Expected, childCtx)
		pass := c.Run()
		if op.Ctx.Root.Evaluator != nil {
			op.Ctx.Root.Evaluator.Remove("_$")
		}
		if !pass {
			failingIdx = append(failingIdx, i)
		}
	}
	if len(failingIdx) > 0 {
		return op.fail(fmt.Sprintf("match each failed at index %v", failingIdx))
	}
	return op.succeed()
}

// coerceKinds implements spec.md §4.4.1 step 3. It returns (pass,
// handled); handled is false when none of the coercion rules apply and
// Run should continue to the macro/kind-equal steps.
func (op *Operation) coerceKinds() (bool, bool) {
	attrs := op.Type.attrs()

	// actual is a string, expected is XML, CONTAINS variant: compare as
	// a plain substring match against the XML's serialized form.
	if op.Actual.Kind() == value.String && op.Expected.Kind() == value.XML && attrs.Contains {
		needle := op.Expected.XMLString()
		if strings.Contains(op.Actual.Str(), needle) {
			return op.succeed(), true
		}
		return op.fail("actual string does not contain expected"), true
	}

	// CONTAINS variants against a non-list, non-array-like expected:
	// wrap expected in a singleton list and retry.
	if attrs.Contains && op.Expected.Kind() != value.List && !op.Expected.IsArrayObjectOrReference() {
		wrapped := value.Of([]value.Value{op.Expected})
		c := op.child(op.Type, op.Actual, wrapped, op.Ctx)
		pass := c.Run()
		op.Pass, op.FailReason = pass, c.FailReason
		return pass, true
	}

	// WITHIN/NOT_WITHIN against a non-list, non-array-like actual: wrap
	// actual in a singleton list and retry.
	if attrs.Within && op.Actual.Kind() != value.List && !op.Actual.IsArrayObjectOrReference() {
		wrapped := value.Of([]value.Value{op.Actual})
		c := op.child(op.Type, wrapped, op.Expected, op.Ctx)
		pass := c.Run()
		op.Pass, op.FailReason = pass, c.FailReason
		return pass, true
	}

	// expected is XML, actual is MAP: convert expected to a MAP and retry.
	if op.Expected.Kind() == value.XML && op.Actual.Kind() == value.Map {
		c := op.child(op.Type, op.Actual, op.Expected.XMLVal().ToValue(), op.Ctx)
		pass := c.Run()
		op.Pass, op.FailReason = pass, c.FailReason
		return pass, true
	}

	// expected is a non-macro string and kinds still mismatch.
	if op.Expected.Kind() == value.String && !op.Expected.IsMacro() {
		if op.Type == NOT_EQUALS {
			return op.succeed(), true
		}
		return op.fail("data types don't match"), true
	}

	return false, false
}
