package validator

import (
	"github.com/google/uuid"

	"github.com/oxhq/vmatch/internal/value"
)

// validateUUID implements the `uuid` built-in (spec.md §4.3): the actual
// must be a string parseable as a UUID. Promoted from the teacher's
// indirect-only google/uuid dependency to direct use.
func validateUUID(v value.Value) bool {
	if v.Kind() != value.String {
		return false
	}
	_, err := uuid.Parse(v.Str())
	return err == nil
}
