// Package match is the programmatic entry point spec.md §6 describes:
// evaluate/that/execute wired on top of internal/engine, internal/value,
// internal/validator and internal/evalctx. Callers outside this module
// never construct an engine.Operation directly — this package is the one
// seam between the recursive comparator and the outside world, the way
// the teacher repo's cmd/ layer is the one seam onto its providers.
package match

import (
	"fmt"

	"github.com/oxhq/vmatch/internal/config"
	"github.com/oxhq/vmatch/internal/engine"
	"github.com/oxhq/vmatch/internal/evalctx"
	"github.com/oxhq/vmatch/internal/store"
	"github.com/oxhq/vmatch/internal/validator"
	"github.com/oxhq/vmatch/internal/value"
)

// OnResult is invoked after every Is call on a Subject, receiving the
// Subject it ran against and the Result it produced (spec.md §6's
// "evaluate(actual, ctx, on_result)").
type OnResult func(s *Subject, result engine.Result)

// Subject is an actual Value bound to an evaluator, a validator registry
// and match Options — everything a series of Is calls against it needs.
// It is the Go shape of spec.md §6's "evaluate(actual) -> Value" result
// once a callback and collaborators are attached.
type Subject struct {
	Value       value.Value
	Evaluator   evalctx.Evaluator
	Validators  *validator.Registry
	Options     engine.Options
	OnResult    OnResult
	StoreConfig config.StoreConfig

	stores   []store.LargeValueStore
	spillErr error
}

// Option configures Evaluate/That/Execute.
type Option func(*Subject)

// WithEvaluator injects the external expression evaluator macro bodies
// bind $/_ against. Omitting it defaults to evalctx.NoopEvaluator{}, fine
// as long as no macro in play ever references $ or _.
func WithEvaluator(e evalctx.Evaluator) Option { return func(s *Subject) { s.Evaluator = e } }

// WithValidators injects the validator registry the "#name" macro form
// consults. Omitting it defaults to validator.New()'s built-ins.
func WithValidators(r *validator.Registry) Option { return func(s *Subject) { s.Validators = r } }

// WithOptions overrides the Open Question resolutions (spec.md §9).
func WithOptions(o engine.Options) Option { return func(s *Subject) { s.Options = o } }

// WithOnResult attaches a callback fired after every Is call.
func WithOnResult(cb OnResult) Option { return func(s *Subject) { s.OnResult = cb } }

// WithStoreConfig controls how large LIST values spill to a
// internal/store.LargeValueStore instead of staying in memory (spec.md
// §2's Large Value Store, §1's "handle collections too large to
// materialize in memory"). Omitting it defaults to config.Load()'s
// environment-driven policy: automatic disk spill past
// config.DefaultSpillThresholdBytes.
func WithStoreConfig(cfg config.StoreConfig) Option {
	return func(s *Subject) { s.StoreConfig = cfg }
}

func newSubject(v value.Value, opts []Option) *Subject {
	s := &Subject{
		Value:       v,
		Evaluator:   evalctx.NoopEvaluator{},
		Validators:  validator.New(),
		StoreConfig: config.Load(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Evaluate wraps actual with JSON/XML auto-parse (spec.md §6), spills any
// LIST inside it that crosses the configured size threshold to a
// LargeValueStore (store.SpillLists), and returns a Subject ready to run
// Is calls against. A spill failure is not raised here — Evaluate has no
// error return in spec.md §6's shape — but is recorded and surfaces as a
// StoreIoError the next time Is runs, consistent with every other
// short-circuiting error in spec.md §7.
func Evaluate(actual any, opts ...Option) *Subject {
	s := newSubject(value.Of(value.ParseIfJSONOrXML(actual)), opts)
	spilled, opened, err := store.SpillLists(s.Value, s.StoreConfig)
	s.stores = opened
	if err != nil {
		s.spillErr = err
		return s
	}
	s.Value = spilled
	return s
}

// Close releases every LargeValueStore a prior Evaluate/Is call spilled
// large lists into. Safe to call more than once, and safe on a Subject
// that never spilled anything. Callers driving a Subject across several
// Is calls (That/Evaluate) should defer Close once done with it; Execute
// and ExecutePreserveActual call it automatically after rendering their
// one-shot Result.
func (s *Subject) Close() error {
	var first error
	for _, st := range s.stores {
		if err := st.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.stores = nil
	return first
}

// That is Evaluate plus a default OnResult that panics with MatchFailure
// when a result fails (spec.md §6: "the default on_result throws when the
// result fails"). A caller explicitly passing WithOnResult overrides this
// default entirely, same as the teacher's options-last-wins convention.
func That(actual any, opts ...Option) *Subject {
	s := Evaluate(actual, opts...)
	if s.OnResult == nil {
		s.OnResult = func(_ *Subject, result engine.Result) {
			if !result.Pass {
				panic(MatchFailure{Result: result})
			}
		}
	}
	return s
}

// MatchFailure is what That's default OnResult panics with. Recover it
// with Try, or call recover() directly and type-assert.
type MatchFailure struct {
	Result engine.Result
}

func (e MatchFailure) Error() string { return e.Result.Message }

// Try runs fn, recovering a MatchFailure (or any other error panic) into a
// returned error instead of letting it propagate — the Go counterpart to
// an exception-catching caller around That(...).Is(...).
func Try(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}

// Is runs one match_type comparison of the Subject's Value against
// expected, recording the result through OnResult if one is configured.
func (s *Subject) Is(matchType engine.MatchType, expected any) engine.Result {
	if s.spillErr != nil {
		panic(s.spillErr)
	}
	expVal := value.Of(expected)
	root := &engine.Root{Evaluator: s.Evaluator, Validators: s.Validators, Options: s.Options}
	ctx := engine.NewRootContext(root, s.Value, s.Value.Kind() == value.XML)
	op := engine.New(matchType, s.Value, expVal, ctx)
	pass := op.Run()
	result := engine.BuildResult(matchType, pass, root)
	if s.OnResult != nil {
		s.OnResult(s, result)
	}
	return result
}

// Execute is the one-shot form of spec.md §6: evaluate actual (JSON/XML
// auto-parse), then run matchType against expected. UsageError,
// StoreIoError/StoreClosed and EvaluatorError short-circuit via panic
// inside the engine (spec.md §7); Execute is the recovery boundary that
// turns those back into a returned error.
func Execute(matchType engine.MatchType, actual, expected any, opts ...Option) (result engine.Result, err error) {
	defer recoverEngineError(&err)
	s := Evaluate(actual, opts...)
	defer s.Close()
	result = s.Is(matchType, expected)
	return result, nil
}

// ExecutePreserveActual is Execute except when actual is a string and
// matchType is a CONTAINS variant: actual is then compared literally
// instead of being JSON/XML auto-parsed (spec.md §6).
func ExecutePreserveActual(matchType engine.MatchType, actual, expected any, opts ...Option) (result engine.Result, err error) {
	defer recoverEngineError(&err)

	str, isString := actual.(string)
	var s *Subject
	if isString && matchType.IsContainsFamily() {
		s = newSubject(value.Of(str), opts)
	} else {
		s = Evaluate(actual, opts...)
	}
	defer s.Close()
	result = s.Is(matchType, expected)
	return result, nil
}

func recoverEngineError(err *error) {
	if r := recover(); r != nil {
		switch e := r.(type) {
		case error:
			*err = e
		default:
			*err = fmt.Errorf("match: %v", r)
		}
	}
}
