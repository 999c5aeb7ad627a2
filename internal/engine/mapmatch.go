package engine

import (
	"fmt"
	"strings"

	"github.com/oxhq/vmatch/internal/value"
)

// runMapMatch dispatches MAP comparisons (spec.md §4.4.2.1, §4.4.2.2).
func (op *Operation) runMapMatch() bool {
	if op.Type.attrs().Within {
		return op.mapWithin()
	}
	return op.mapEqualsOrContains()
}

// isIgnorableMissing reports whether an expected value excuses a key
// missing from actual: a "##..." optional marker, or a literal
// "#ignore"/"#notpresent" (spec.md §4.4.2.1 step 2).
func isIgnorableMissing(v value.Value) bool {
	if v.Kind() != value.String {
		return false
	}
	s := v.Str()
	return strings.HasPrefix(s, "##") || s == "#ignore" || s == "#notpresent"
}

// mapEqualsOrContains implements spec.md §4.4.2.1 — EQUALS and every
// CONTAINS variant share one routine.
func (op *Operation) mapEqualsOrContains() bool {
	attrs := op.Type.attrs()

	if attrs.Not {
		positiveType := EQUALS
		if attrs.Contains {
			positiveType = CONTAINS
		}
		mark := op.Ctx.mark()
		shadow := op.child(positiveType, op.Actual, op.Expected, op.Ctx)
		passed := shadow.Run()
		op.Ctx.rollback(mark)

		if attrs.Contains && op.Expected.MapVal().Len() == 0 {
			if op.Ctx.Root.Options.EmptyExpectedNotContainsFails {
				return op.fail("does not contain expected (vacuous)")
			}
			return op.succeed()
		}
		if passed {
			if attrs.Contains {
				return op.fail("does contain expected")
			}
			return op.fail("is equal")
		}
		return op.succeed()
	}

	A, E := op.Actual.MapVal(), op.Expected.MapVal()
	isEquals, isOnly, isAny, isDeep := attrs.Equals, attrs.Only, attrs.Any, attrs.Deep

	if (isEquals || isOnly) && A.Len() > E.Len() {
		var surplus []string
		for _, k := range A.Keys() {
			if !E.Has(k) {
				surplus = append(surplus, k)
			}
		}
		return op.fail(fmt.Sprintf("actual has %d more key(s) than expected: %v", A.Len()-E.Len(), surplus))
	}

	var missing, failedEquals []string
	matchedAny := false
	unmatched := make(map[string]bool, E.Len())
	for _, k := range E.Keys() {
		unmatched[k] = true
	}

	for _, k := range E.Keys() {
		expVal, _ := E.Get(k)
		actVal, ok := A.Get(k)

		if !ok {
			if isIgnorableMissing(expVal) {
				if isAny {
					matchedAny = true
					break
				}
				delete(unmatched, k)
				continue
			}
			if isAny {
				continue
			}
			missing = append(missing, k)
			continue
		}

		childType := deepChild(op.Type, isDeep && isNestedKind(actVal.Kind()))
		c := op.child(childType, actVal, expVal, op.Ctx.Child(k))
		if c.Run() {
			if isAny {
				matchedAny = true
				break
			}
			delete(unmatched, k)
			continue
		}
		if isEquals {
			failedEquals = append(failedEquals, k)
		}
	}

	if len(missing) > 0 {
		return op.fail(fmt.Sprintf("missing expected key(s): %v", missing))
	}
	if len(failedEquals) > 0 {
		return op.fail(fmt.Sprintf("key(s) failed equality: %v", failedEquals))
	}
	if isAny {
		if matchedAny {
			return op.succeed()
		}
		return op.fail("no key-values matched")
	}
	if !isEquals {
		// Covers both plain CONTAINS (leftover = unconsumed expected keys)
		// and CONTAINS_ONLY/CONTAINS_ONLY_DEEP (leftover means a key that
		// never found a match, since the surplus check above already ruled
		// out |A| > |E|).
		var leftover []string
		for k := range unmatched {
			leftover = append(leftover, k)
		}
		if len(leftover) > 0 {
			return op.fail(fmt.Sprintf("expected key(s) not matched: %v", leftover))
		}
	}
	return op.succeed()
}

// mapWithin implements spec.md §4.4.2.2.
func (op *Operation) mapWithin() bool {
	attrs := op.Type.attrs()
	if attrs.Not {
		mark := op.Ctx.mark()
		shadow := op.child(WITHIN, op.Actual, op.Expected, op.Ctx)
		passed := shadow.Run()
		op.Ctx.rollback(mark)
		if passed {
			return op.fail("actual is within expected")
		}
		return op.succeed()
	}

	A, E := op.Actual.MapVal(), op.Expected.MapVal()
	var missing, failed []string
	for _, k := range A.Keys() {
		actVal, _ := A.Get(k)
		expVal, ok := E.Get(k)
		if !ok {
			missing = append(missing, k)
			continue
		}
		c := op.child(EQUALS, actVal, expVal, op.Ctx.Child(k))
		if !c.Run() {
			failed = append(failed, k)
		}
	}
	if len(missing) > 0 {
		return op.fail(fmt.Sprintf("actual key(s) not found in expected: %v", missing))
	}
	if len(failed) > 0 {
		return op.fail(fmt.Sprintf("key(s) failed equality: %v", failed))
	}
	return op.succeed()
}
