package evalctx

import (
	"fmt"
	"sync"

	"github.com/oxhq/vmatch/internal/value"
)

// BasicEvaluator is the default Evaluator: a small recursive-descent
// expression interpreter covering the predicate subset macros actually
// need (spec.md §4.4.3) — comparisons, boolean logic, arithmetic, member
// and index access, and a handful of builtin functions — without
// depending on an embedded scripting runtime (out of scope per spec.md
// §1). It is not meant to be a general-purpose language; it is meant to
// make "#? _ > 0" and "#(_.items[0].id == $.id)" work.
type BasicEvaluator struct {
	mu  sync.Mutex
	env map[string]value.Value
}

// NewBasicEvaluator returns an evaluator with an empty scope.
func NewBasicEvaluator() *BasicEvaluator {
	return &BasicEvaluator{env: make(map[string]value.Value)}
}

func (e *BasicEvaluator) Put(name string, v value.Value) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.env[name] = v
}

func (e *BasicEvaluator) Remove(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.env, name)
}

func (e *BasicEvaluator) Eval(source string) (value.Value, error) {
	e.mu.Lock()
	env := make(map[string]value.Value, len(e.env))
	for k, v := range e.env {
		env[k] = v
	}
	e.mu.Unlock()

	p := newParser(source)
	expr, err := p.parseExpr()
	if err != nil {
		return value.Value{}, fmt.Errorf("parsing `%s`: %w", source, err)
	}
	if !p.atEnd() {
		return value.Value{}, fmt.Errorf("unexpected trailing input in `%s`", source)
	}
	return expr.eval(env)
}
