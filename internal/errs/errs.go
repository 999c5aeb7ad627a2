// Package errs defines the error kinds spec.md §7 assigns to the engine:
// UsageError for caller misconfiguration, and the sentinel EvaluatorError
// wrapping helper. MatchFailure is deliberately absent here — per §7 it is
// never an error, only the returned Result.
package errs

import "encoding/json"

// Code enumerates the programmatic error identifiers a UsageError can
// carry, mirrored on the teacher's CLIError code table
// (internal/core/errorfmt.go) but re-themed to the match engine's own
// usage mistakes.
type Code string

const (
	CodeUnsupportedMatchType Code = "ERR_UNSUPPORTED_MATCH_TYPE"
	CodeUnknownValidator     Code = "ERR_UNKNOWN_VALIDATOR"
	CodeInvalidRegex         Code = "ERR_INVALID_REGEX"
	CodeInvalidMacro         Code = "ERR_INVALID_MACRO"
)

// UsageError is a uniform error payload for an invalid match configuration
// — e.g. WITHIN against a BYTES actual, or a validator name the registry
// does not recognize. Printed with %s it returns Message, followed by
// ": " and Detail when Detail is set; String/JSON give
// the same shape the teacher's CLIError exposes for CLI/JSON duality.
type UsageError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e UsageError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e UsageError) String() string { return e.Error() }

// JSON renders the error as a JSON object, for callers that surface errors
// to a machine client rather than a terminal.
func (e UsageError) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// Usage builds a UsageError, optionally wrapping an inner error as Detail.
func Usage(code Code, msg string, inner error) error {
	e := UsageError{Code: code, Message: msg}
	if inner != nil {
		e.Detail = inner.Error()
	}
	return e
}

// EvaluatorError wraps an error returned by the injected expression
// evaluator so callers can distinguish "your macro predicate blew up" from
// a UsageError without unwrapping sentinel comparisons.
type EvaluatorError struct {
	Source string
	Err    error
}

func (e *EvaluatorError) Error() string {
	return "evaluator error on `" + e.Source + "`: " + e.Err.Error()
}

func (e *EvaluatorError) Unwrap() error { return e.Err }
