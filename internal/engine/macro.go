package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/oxhq/vmatch/internal/errs"
	"github.com/oxhq/vmatch/internal/value"
)

// runMacroWithNegation is spec.md §4.4.1 step 4: dispatch the macro
// sub-language, then apply the NOT_EQUALS/NOT_CONTAINS negation the macro
// dispatch itself is oblivious to (macro semantics never look at op.Type,
// only at the macro body — see runMacroDispatch).
func (op *Operation) runMacroWithNegation() bool {
	attrs := op.Type.attrs()
	if !attrs.Not {
		return op.runMacroDispatch()
	}

	positiveType := EQUALS
	if attrs.Contains {
		positiveType = CONTAINS
	}
	mark := op.Ctx.mark()
	shadow := op.child(positiveType, op.Actual, op.Expected, op.Ctx)
	passed := shadow.runMacroDispatch()
	op.Ctx.rollback(mark)
	if passed {
		if attrs.Contains {
			return op.fail("does contain expected")
		}
		return op.fail("is equal")
	}
	return op.succeed()
}

// runMacroDispatch implements spec.md §4.4.3: the macro sub-language for
// expected strings beginning with "#". It is one state machine with three
// entry forms plus the optional-null shortcut and the plain-string
// fallback, grounded on the teacher's UniversalParser prefix-stripping
// style (internal/parser).
func (op *Operation) runMacroDispatch() bool {
	m := op.Expected.Str()
	optional := strings.HasPrefix(m, "##")
	body := m[1:]
	if optional {
		body = m[2:]
	}

	if optional && op.Actual.IsNull() {
		return op.succeed()
	}
	if op.Actual.IsNotPresent() {
		if optional || m == "#ignore" || m == "#notpresent" {
			return op.succeed()
		}
		return op.fail("actual path does not exist")
	}

	switch {
	case strings.HasPrefix(body, "(") && strings.HasSuffix(body, ")"):
		return op.macroParenExpr(body)
	case strings.HasPrefix(body, "["):
		return op.macroBracket(body)
	default:
		return op.macroValidator(m, body)
	}
}

var macroOperatorPrefixes = []struct {
	prefix string
	typ    MatchType
}{
	{"^^", CONTAINS_ONLY},
	{"^+", CONTAINS_DEEP},
	{"^*", CONTAINS_ANY},
	{"!^", NOT_CONTAINS},
	{"!<", NOT_WITHIN},
	{"!=", NOT_EQUALS},
	{"^", CONTAINS},
	{"<", WITHIN},
}

// stripOperatorPrefix recognizes the eight comparison-operator prefixes a
// parenthesized macro expression may lead with (spec.md §4.4.3), longest
// first so "^^"/"^+"/"^*" are not swallowed by the bare "^" rule.
func stripOperatorPrefix(inner string) (MatchType, string) {
	for _, p := range macroOperatorPrefixes {
		if strings.HasPrefix(inner, p.prefix) {
			return p.typ, strings.TrimSpace(inner[len(p.prefix):])
		}
	}
	return EQUALS, strings.TrimSpace(inner)
}

// bindAndEval binds $ to the top-level actual and _ to cur on the root
// evaluator, runs source, then unbinds both — the spec.md §4.4.3 binding
// convention shared by every macro form that evaluates an expression.
func (op *Operation) bindAndEval(source string, cur value.Value) (value.Value, error) {
	ev := op.Ctx.Root.Evaluator
	ev.Put("$", op.Ctx.Root.Actual)
	ev.Put("_", cur)
	result, err := ev.Eval(source)
	ev.Remove("$")
	ev.Remove("_")
	return result, err
}

func truthy(v value.Value) bool {
	switch v.Kind() {
	case value.Null:
		return false
	case value.Boolean:
		return v.Bool()
	default:
		return true
	}
}

// macroParenExpr implements the parenthesized-expression form: `#(...)` /
// `##(...)`, body already known to be wrapped in parens.
func (op *Operation) macroParenExpr(body string) bool {
	inner := body[1 : len(body)-1]
	nestedType, rest := stripOperatorPrefix(inner)

	result, err := op.bindAndEval(rest, op.Actual)
	if err != nil {
		panic(&errs.EvaluatorError{Source: rest, Err: err})
	}

	c := op.child(nestedType, op.Actual, result, op.Ctx)
	pass := c.Run()
	op.Pass, op.FailReason = pass, c.FailReason
	return pass
}

var bareUnderscore = regexp.MustCompile(`\b_\b`)

// macroBracket implements the bracket size/each form: `#[expr]trailing`.
func (op *Operation) macroBracket(body string) bool {
	end := strings.IndexByte(body, ']')
	if end < 0 {
		panic(errs.Usage(errs.CodeInvalidMacro, "malformed bracket macro, missing ']'", nil))
	}
	expr := strings.TrimSpace(body[1:end])
	trailing := strings.TrimSpace(body[end+1:])

	if op.Actual.Kind() != value.List {
		return op.fail("actual is not an array or list")
	}

	if expr != "" {
		source := expr
		if !bareUnderscore.MatchString(expr) {
			source = expr + " == _"
		}
		length := value.Of(int64(op.Actual.ListLen()))
		result, err := op.bindAndEval(source, length)
		if err != nil {
			panic(&errs.EvaluatorError{Source: source, Err: err})
		}
		if !truthy(result) {
			return op.fail(fmt.Sprintf("evaluated to '%s'", result.PlainString()))
		}
	}

	if trailing == "" {
		return op.succeed()
	}

	// Whether trailing starts with another "?" (validator-predicate
	// shorthand) or is itself a macro/validator reference, re-wrapping it
	// as a fresh macro and running EACH_EQUALS lets the recursive dispatch
	// resolve its own meaning per element. A trailing part that already
	// starts with "#" is used as-is.
	macro := trailing
	if !strings.HasPrefix(macro, "#") {
		macro = "#" + macro
	}
	expected := value.Of(macro)
	each := op.child(EACH_EQUALS, op.Actual, expected, op.Ctx)
	pass := each.Run()
	op.Pass, op.FailReason = pass, each.FailReason
	return pass
}

// macroValidator implements the validator-plus-predicate form:
// `#name?predicate`. m is the full macro string (used for the #ignore /
// #notpresent literal checks and as the literal fallback value); body is m
// with its leading "#"/"##" already stripped.
func (op *Operation) macroValidator(m, body string) bool {
	name, predicate := splitValidatorName(body)

	registry := op.Ctx.Root.Validators
	var fn func(value.Value) bool
	var ok bool
	if name == "" && strings.HasPrefix(body, "?") {
		// "#?predicate": no validator, only the predicate below.
		fn, ok = func(value.Value) bool { return true }, true
	} else if registry != nil {
		if f, found := registry.Lookup(name); found {
			fn, ok = f, true
		}
	}

	if !ok {
		// Plain string lookalike: fall back to literal comparison.
		if op.Actual.Kind() != value.String {
			return op.fail("data types don't match")
		}
		fallback := op.child(op.Type, op.Actual, value.Of(m), op.Ctx)
		pass := fallback.compareString()
		op.Pass, op.FailReason = pass, fallback.FailReason
		return pass
	}

	if !fn(op.Actual) {
		return op.fail(fmt.Sprintf("validator '%s' failed", name))
	}

	if predicate != "" {
		result, err := op.bindAndEval(predicate, op.Actual)
		if err != nil {
			panic(&errs.EvaluatorError{Source: predicate, Err: err})
		}
		if !truthy(result) {
			return op.fail(fmt.Sprintf("evaluated to '%s'", result.PlainString()))
		}
	}
	return op.succeed()
}

// splitValidatorName splits "name?predicate" at the first "?", except a
// "regex " name keeps its pattern intact — regex patterns routinely embed
// "?" as a quantifier, so there is no predicate split for them (spec.md
// §4.4.3: "regex preserves its trailing ?").
func splitValidatorName(body string) (name, predicate string) {
	if strings.HasPrefix(body, "regex ") {
		return body, ""
	}
	if idx := strings.IndexByte(body, '?'); idx >= 0 {
		return body[:idx], body[idx+1:]
	}
	return body, ""
}
