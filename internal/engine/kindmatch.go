package engine

import (
	"strings"

	"github.com/oxhq/vmatch/internal/value"
)

// runKindMatch is spec.md §4.4.1 step 5 / §4.4.2: the per-kind dispatch
// once kind coercion has run (or found nothing to do). Kinds mismatching
// here means none of the §4.4.1 step-3 rules applied — the closest
// consistent fallback is the same rule 3e already uses for a bare
// mismatched non-macro string: pass under NOT_EQUALS, otherwise fail with
// "data types don't match".
func (op *Operation) runKindMatch() bool {
	if op.Actual.Kind() != op.Expected.Kind() {
		if op.Type == NOT_EQUALS {
			return op.succeed()
		}
		return op.fail("data types don't match")
	}
	switch op.Actual.Kind() {
	case value.String:
		return op.compareString()
	case value.List:
		return op.runListMatch()
	case value.Map:
		return op.runMapMatch()
	case value.XML:
		return op.runXMLMatch()
	default:
		// NULL, BOOLEAN, NUMBER, BYTES, OTHER: payload/arbitrary-precision
		// equality per spec.md §4.4.2's table; CONTAINS/WITHIN have no
		// distinct meaning at these kinds, so they fall back to equality.
		return op.compareScalar()
	}
}

func (op *Operation) compareScalar() bool {
	eq := value.Equal(op.Actual, op.Expected)
	attrs := op.Type.attrs()
	pass := eq
	if attrs.Not {
		pass = !eq
	}
	if pass {
		return op.succeed()
	}
	if attrs.Not {
		return op.fail("is equal")
	}
	return op.fail("values are not equal")
}

func (op *Operation) compareString() bool {
	a, e := op.Actual.Str(), op.Expected.Str()
	attrs := op.Type.attrs()

	switch {
	case attrs.Within:
		pass := strings.Contains(e, a)
		if attrs.Not {
			pass = !pass
		}
		if pass {
			return op.succeed()
		}
		if attrs.Not {
			return op.fail("actual string is within expected")
		}
		return op.fail("actual string is not within expected")
	case attrs.Contains:
		pass := strings.Contains(a, e)
		if attrs.Not {
			pass = !pass
		}
		if pass {
			return op.succeed()
		}
		if attrs.Not {
			return op.fail("actual string contains expected")
		}
		return op.fail("actual string does not contain expected")
	default:
		pass := a == e
		if attrs.Not {
			pass = !pass
		}
		if pass {
			return op.succeed()
		}
		if attrs.Not {
			return op.fail("is equal")
		}
		return op.fail("strings are not equal")
	}
}

// runXMLMatch converts both sides to MAP and reruns the MAP logic, per
// spec.md §4.4.2's XML row. The context switches to XML path rendering
// (slash-separated, attributes under /@) for everything beneath this
// point.
func (op *Operation) runXMLMatch() bool {
	actualMap := op.Actual.XMLVal().ToValue()
	expectedMap := op.Expected.XMLVal().ToValue()
	c := op.child(op.Type, actualMap, expectedMap, op.Ctx.AsXML())
	pass := c.Run()
	op.Pass, op.FailReason = pass, c.FailReason
	return pass
}
