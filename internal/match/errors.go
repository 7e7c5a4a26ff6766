package match

import "fmt"

// InvalidInputError reports a candidate or target record that cannot be
// scored, typically a missing identity field. Records are never silently
// skipped: dropping one would misrepresent ranking completeness.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}
