package evalctx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oxhq/vmatch/internal/value"
)

type literalExpr struct{ v value.Value }

func (e *literalExpr) eval(map[string]value.Value) (value.Value, error) { return e.v, nil }

type numberExpr struct{ text string }

func (e *numberExpr) eval(map[string]value.Value) (value.Value, error) {
	f, err := strconv.ParseFloat(e.text, 64)
	if err != nil {
		return value.Value{}, err
	}
	return value.Of(f), nil
}

type identExpr struct{ name string }

func (e *identExpr) eval(env map[string]value.Value) (value.Value, error) {
	if v, ok := env[e.name]; ok {
		return v, nil
	}
	return value.NotPresentValue(), nil
}

type memberExpr struct {
	target expr
	name   string
}

func (e *memberExpr) eval(env map[string]value.Value) (value.Value, error) {
	tv, err := e.target.eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if tv.Kind() == value.Map {
		if v, ok := tv.MapVal().Get(e.name); ok {
			return v, nil
		}
		return value.NotPresentValue(), nil
	}
	if tv.Kind() == value.XML {
		return memberOfMap(tv.XMLVal().ToValue(), e.name), nil
	}
	return value.NotPresentValue(), nil
}

func memberOfMap(mv value.Value, name string) value.Value {
	if v, ok := mv.MapVal().Get(name); ok {
		return v
	}
	return value.NotPresentValue()
}

type indexExpr struct {
	target expr
	index  expr
}

func (e *indexExpr) eval(env map[string]value.Value) (value.Value, error) {
	tv, err := e.target.eval(env)
	if err != nil {
		return value.Value{}, err
	}
	iv, err := e.index.eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if tv.Kind() != value.List {
		return value.NotPresentValue(), nil
	}
	i := int(iv.Num().Float64())
	if i < 0 || i >= tv.ListSize() {
		return value.NotPresentValue(), nil
	}
	return tv.ListElement(i), nil
}

type unaryExpr struct {
	op      string
	operand expr
}

func (e *unaryExpr) eval(env map[string]value.Value) (value.Value, error) {
	v, err := e.operand.eval(env)
	if err != nil {
		return value.Value{}, err
	}
	switch e.op {
	case "!":
		return value.Of(!value.Truthy(v)), nil
	case "-":
		return value.Of(-v.Num().Float64()), nil
	}
	return value.Value{}, fmt.Errorf("unknown unary operator %q", e.op)
}

type binExpr struct {
	op   string
	l, r expr
}

func (e *binExpr) eval(env map[string]value.Value) (value.Value, error) {
	lv, err := e.l.eval(env)
	if err != nil {
		return value.Value{}, err
	}

	if e.op == "&&" {
		if !value.Truthy(lv) {
			return value.Of(false), nil
		}
		rv, err := e.r.eval(env)
		if err != nil {
			return value.Value{}, err
		}
		return value.Of(value.Truthy(rv)), nil
	}
	if e.op == "||" {
		if value.Truthy(lv) {
			return value.Of(true), nil
		}
		rv, err := e.r.eval(env)
		if err != nil {
			return value.Value{}, err
		}
		return value.Of(value.Truthy(rv)), nil
	}

	rv, err := e.r.eval(env)
	if err != nil {
		return value.Value{}, err
	}

	switch e.op {
	case "==":
		return value.Of(value.Equal(lv, rv)), nil
	case "!=":
		return value.Of(!value.Equal(lv, rv)), nil
	case "<", "<=", ">", ">=":
		return evalComparison(e.op, lv, rv)
	case "+":
		if lv.Kind() == value.String || rv.Kind() == value.String {
			return value.Of(lv.PlainString() + rv.PlainString()), nil
		}
		return value.Of(lv.Num().Float64() + rv.Num().Float64()), nil
	case "-":
		return value.Of(lv.Num().Float64() - rv.Num().Float64()), nil
	case "*":
		return value.Of(lv.Num().Float64() * rv.Num().Float64()), nil
	case "/":
		return value.Of(lv.Num().Float64() / rv.Num().Float64()), nil
	}
	return value.Value{}, fmt.Errorf("unknown binary operator %q", e.op)
}

func evalComparison(op string, lv, rv value.Value) (value.Value, error) {
	var cmp int
	if lv.Kind() == value.String && rv.Kind() == value.String {
		cmp = strings.Compare(lv.Str(), rv.Str())
	} else {
		a, b := lv.Num().Float64(), rv.Num().Float64()
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	}
	switch op {
	case "<":
		return value.Of(cmp < 0), nil
	case "<=":
		return value.Of(cmp <= 0), nil
	case ">":
		return value.Of(cmp > 0), nil
	case ">=":
		return value.Of(cmp >= 0), nil
	}
	return value.Value{}, fmt.Errorf("unknown comparison operator %q", op)
}

type callExpr struct {
	name string
	args []expr
}

func (e *callExpr) eval(env map[string]value.Value) (value.Value, error) {
	args := make([]value.Value, len(e.args))
	for i, a := range e.args {
		v, err := a.eval(env)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	fn, ok := builtins[e.name]
	if !ok {
		return value.Value{}, fmt.Errorf("unknown function %q", e.name)
	}
	return fn(args)
}

var builtins = map[string]func([]value.Value) (value.Value, error){
	"size": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Value{}, fmt.Errorf("size() takes exactly one argument")
		}
		v := args[0]
		switch v.Kind() {
		case value.List:
			return value.Of(float64(v.ListSize())), nil
		case value.Map:
			return value.Of(float64(v.MapVal().Len())), nil
		case value.String:
			return value.Of(float64(len(v.Str()))), nil
		default:
			return value.Of(0.0), nil
		}
	},
	"contains": func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return value.Value{}, fmt.Errorf("contains() takes exactly two arguments")
		}
		haystack, needle := args[0], args[1]
		switch haystack.Kind() {
		case value.String:
			return value.Of(strings.Contains(haystack.Str(), needle.PlainString())), nil
		case value.List:
			for _, e := range haystack.ListVal() {
				if value.Equal(e, needle) {
					return value.Of(true), nil
				}
			}
			return value.Of(false), nil
		default:
			return value.Of(false), nil
		}
	},
	"startsWith": func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return value.Value{}, fmt.Errorf("startsWith() takes exactly two arguments")
		}
		return value.Of(strings.HasPrefix(args[0].Str(), args[1].Str())), nil
	},
	"endsWith": func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return value.Value{}, fmt.Errorf("endsWith() takes exactly two arguments")
		}
		return value.Of(strings.HasSuffix(args[0].Str(), args[1].Str())), nil
	},
}
