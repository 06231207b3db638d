package solar

import "fmt"

// InvalidInputError reports a caller-supplied value outside its valid domain.
// It is always caller-correctable and is raised at the offending call; the
// model never retries.
type InvalidInputError struct {
	// Field is the name of the offending parameter.
	Field string
	// Value is the rejected value.
	Value float64
	// Reason describes the valid domain.
	Reason string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// NewInvalidInput creates an InvalidInputError for the given field and value.
func NewInvalidInput(field string, value float64, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Value: value, Reason: reason}
}
