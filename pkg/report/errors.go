package report

import "fmt"

// FormatError reports a violation of the wire format contract: a field
// out of order, a value of the wrong JSON kind, or an unknown level or
// button kind name. Decoding stops at the first violation.
type FormatError struct {
	// Expected describes what the reader required at the failure point,
	// such as `field "name"` or `a warning level name`.
	Expected string

	// Actual is what the input contained instead.
	Actual string
}

// Error returns a description of the contract violation.
func (e *FormatError) Error() string {
	return fmt.Sprintf("report wire: expected %s, read %q", e.Expected, e.Actual)
}
