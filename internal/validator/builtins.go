package validator

import "github.com/oxhq/vmatch/internal/value"

// builtinFuncs returns the fixed table of validators spec.md §4.3 names.
func builtinFuncs() map[string]Func {
	return map[string]Func{
		"ignore": func(value.Value) bool { return true },

		"null":    func(v value.Value) bool { return v.Kind() == value.Null },
		"notnull": func(v value.Value) bool { return v.Kind() != value.Null },

		"present":    func(v value.Value) bool { return !v.IsNotPresent() },
		"notpresent": func(v value.Value) bool { return v.IsNotPresent() },

		// string fails on "not present" before the kind check; the other
		// kind validators below do not (spec.md §4.3).
		"string": func(v value.Value) bool {
			return !v.IsNotPresent() && v.Kind() == value.String
		},
		"boolean": func(v value.Value) bool { return v.Kind() == value.Boolean },
		"number":  func(v value.Value) bool { return v.Kind() == value.Number },
		"array":   func(v value.Value) bool { return v.Kind() == value.List },
		"object":  func(v value.Value) bool { return v.Kind() == value.Map },

		"uuid": validateUUID,
	}
}
