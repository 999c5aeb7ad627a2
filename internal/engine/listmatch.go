package engine

import (
	"fmt"

	"github.com/oxhq/vmatch/internal/value"
)

// runListMatch dispatches LIST comparisons (spec.md §4.4.2's LIST row)
// to the EQUALS, CONTAINS-family, or WITHIN routine. Every routine below
// reads actual/expected through Value.ListLen/ListAt rather than a
// materialized ListVal() slice, so a LIST backed by a LargeValueStore
// (internal/store, spilled at the match/Evaluate boundary for a
// collection too large to hold in memory, spec.md §2) streams through
// the same comparison logic a plain in-memory list does.
func (op *Operation) runListMatch() bool {
	attrs := op.Type.attrs()
	switch {
	case attrs.Within:
		return op.listWithin()
	case attrs.Contains:
		return op.listContains()
	default:
		return op.listEquals()
	}
}

func isNestedKind(k value.Kind) bool {
	return k == value.List || k == value.Map || k == value.XML
}

// elementMatchType is the nested-vs-scalar rule shared by every CONTAINS
// variant: "CONTAINS_DEEP switches nested kinds from EQUALS to
// CONTAINS_DEEP recursively; scalars remain EQUALS" (spec.md §4.4.2).
func elementMatchType(deep bool, actualEl value.Value) MatchType {
	if deep && isNestedKind(actualEl.Kind()) {
		return CONTAINS_DEEP
	}
	return EQUALS
}

// isIgnoreElement reports whether an expected LIST element is the plain
// "#ignore" macro literal (spec.md §4.3's always-pass validator), the one
// CONTAINS_ONLY has to give deferred treatment per Open Question 3.
func isIgnoreElement(v value.Value) bool {
	return v.Kind() == value.String && v.Str() == "#ignore"
}

func (op *Operation) listEquals() bool {
	attrs := op.Type.attrs()
	aLen, eLen := op.Actual.ListLen(), op.Expected.ListLen()

	if !attrs.Not {
		if aLen != eLen {
			return op.fail("actual array length is not equal to expected")
		}
		var failingIdx []int
		for i := 0; i < aLen; i++ {
			c := op.child(EQUALS, op.Actual.ListAt(i), op.Expected.ListAt(i), op.Ctx.ElementAt(i, op.Ctx.IsXML))
			if !c.Run() {
				failingIdx = append(failingIdx, i)
			}
		}
		if len(failingIdx) > 0 {
			return op.fail(fmt.Sprintf("list elements not equal at index %v", failingIdx))
		}
		return op.succeed()
	}

	mark := op.Ctx.mark()
	eq := aLen == eLen
	if eq {
		for i := 0; i < aLen; i++ {
			c := op.child(EQUALS, op.Actual.ListAt(i), op.Expected.ListAt(i), op.Ctx.ElementAt(i, op.Ctx.IsXML))
			if !c.Run() {
				eq = false
			}
		}
	}
	op.Ctx.rollback(mark)
	if eq {
		return op.fail("is equal")
	}
	return op.succeed()
}

func (op *Operation) listContains() bool {
	attrs := op.Type.attrs()

	if attrs.Not {
		mark := op.Ctx.mark()
		shadow := op.child(CONTAINS, op.Actual, op.Expected, op.Ctx)
		passed := shadow.Run()
		op.Ctx.rollback(mark)
		if op.Expected.ListLen() == 0 {
			if op.Ctx.Root.Options.EmptyExpectedNotContainsFails {
				return op.fail("does not contain expected (vacuous)")
			}
			return op.succeed()
		}
		if passed {
			return op.fail("does contain expected")
		}
		return op.succeed()
	}

	switch {
	case attrs.Only:
		return op.listContainsOnly(attrs.Deep)
	case attrs.Any:
		return op.listContainsAny(attrs.Deep)
	default:
		return op.listContainsAll(attrs.Deep)
	}
}

func (op *Operation) listContainsAll(deep bool) bool {
	eLen, aLen := op.Expected.ListLen(), op.Actual.ListLen()
	var missing []int
	for ei := 0; ei < eLen; ei++ {
		exp := op.Expected.ListAt(ei)
		mark := op.Ctx.mark()
		found := false
		for ai := 0; ai < aLen; ai++ {
			act := op.Actual.ListAt(ai)
			c := op.child(elementMatchType(deep, act), act, exp, op.Ctx.ElementAt(ai, op.Ctx.IsXML))
			if c.Run() {
				found = true
				break
			}
		}
		op.Ctx.rollback(mark)
		if !found {
			missing = append(missing, ei)
		}
	}
	if len(missing) > 0 {
		return op.fail(fmt.Sprintf("expected elements not found at index %v", missing))
	}
	return op.succeed()
}

func (op *Operation) listContainsAny(deep bool) bool {
	eLen, aLen := op.Expected.ListLen(), op.Actual.ListLen()
	for ei := 0; ei < eLen; ei++ {
		exp := op.Expected.ListAt(ei)
		mark := op.Ctx.mark()
		for ai := 0; ai < aLen; ai++ {
			act := op.Actual.ListAt(ai)
			c := op.child(elementMatchType(deep, act), act, exp, op.Ctx.ElementAt(ai, op.Ctx.IsXML))
			if c.Run() {
				op.Ctx.rollback(mark)
				return op.succeed()
			}
		}
		op.Ctx.rollback(mark)
	}
	return op.fail("no expected element matched any actual element")
}

// listContainsOnly implements CONTAINS_ONLY/CONTAINS_ONLY_DEEP: every
// actual element must be claimed by exactly one expected element and
// vice versa (spec.md §4.4.2). An expected "#ignore" element is an
// exception (Open Question 3, DESIGN.md): it still counts toward the
// length check below, but is skipped entirely in the matching loop — it
// never scans actual and never claims a visited-bitmap slot, so it can't
// greedily steal the one actual index a later, more specific expected
// element needed. Since the length check already guarantees
// len(actual) == len(expected), whatever slots the non-ignore elements
// don't claim are exactly as many as there are ignore elements.
func (op *Operation) listContainsOnly(deep bool) bool {
	aLen, eLen := op.Actual.ListLen(), op.Expected.ListLen()
	if aLen != eLen {
		return op.fail("actual array length is not equal to expected")
	}

	visited := make([]bool, aLen)
	var notFound []int
	for ei := 0; ei < eLen; ei++ {
		exp := op.Expected.ListAt(ei)
		if isIgnoreElement(exp) {
			continue
		}

		mark := op.Ctx.mark()
		found := -1
		for ai := 0; ai < aLen; ai++ {
			if visited[ai] {
				continue
			}
			act := op.Actual.ListAt(ai)
			c := op.child(elementMatchType(deep, act), act, exp, op.Ctx.ElementAt(ai, op.Ctx.IsXML))
			if c.Run() {
				found = ai
				break
			}
		}
		op.Ctx.rollback(mark)
		if found >= 0 {
			visited[found] = true
		} else {
			notFound = append(notFound, ei)
		}
	}
	if len(notFound) > 0 {
		return op.fail(fmt.Sprintf("expected elements not found at index %v", notFound))
	}
	return op.succeed()
}

// listWithin: every actual element must match some expected element;
// actual length must not exceed expected length (spec.md §4.4.2).
func (op *Operation) listWithin() bool {
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

	aLen, eLen := op.Actual.ListLen(), op.Expected.ListLen()
	if aLen > eLen {
		return op.fail("actual array length exceeds expected")
	}
	var notFound []int
	for ai := 0; ai < aLen; ai++ {
		act := op.Actual.ListAt(ai)
		mark := op.Ctx.mark()
		found := false
		for ei := 0; ei < eLen; ei++ {
			exp := op.Expected.ListAt(ei)
			c := op.child(EQUALS, act, exp, op.Ctx.ElementAt(ai, op.Ctx.IsXML))
			if c.Run() {
				found = true
				break
			}
		}
		op.Ctx.rollback(mark)
		if !found {
			notFound = append(notFound, ai)
		}
	}
	if len(notFound) > 0 {
		return op.fail(fmt.Sprintf("actual elements not found in expected at index %v", notFound))
	}
	return op.succeed()
}
