// Package validator implements the Validator Registry (spec.md §4.3): a
// name → (Value → pass/fail) mapping the match engine consults for the
// "#name" macro form. Grounded on the teacher's internal/registry.Registry
// — same mutex-guarded map-of-name-to-implementation shape, collapsed from
// three parallel maps (providers/aliases/extensions, needed because a
// language provider has several addressing schemes) to the single map this
// domain actually needs: a validator has exactly one name.
package validator

import (
	"fmt"
	"sync"

	"github.com/oxhq/vmatch/internal/value"
)

// Func is a validator: given the actual Value, report whether it passes.
type Func func(actual value.Value) bool

// Registry is a thread-safe name -> Func lookup table. The zero value is
// not usable; construct with New, which seeds the spec.md §4.3 built-ins.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// New returns a Registry seeded with every built-in validator (builtins.go).
func New() *Registry {
	r := &Registry{funcs: make(map[string]Func)}
	for name, fn := range builtinFuncs() {
		r.funcs[name] = fn
	}
	return r
}

// Register adds or replaces a named validator. Name lookup is
// case-sensitive (spec.md §4.3); registering over a built-in name is
// allowed, same as the teacher's provider registry allows rebinding by
// design choice rather than an oversight.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return fmt.Errorf("validator: name cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("validator: func cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
	return nil
}

// Lookup resolves name to a Func. The `regex <pattern>` form is a prefix
// rule handled before the table is ever consulted (see regex.go); every
// other name is a literal table lookup.
func (r *Registry) Lookup(name string) (Func, bool) {
	if fn, ok := lookupRegex(name); ok {
		return fn, true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}
