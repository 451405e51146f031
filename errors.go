package conform

import (
	"errors"
	"fmt"
)

// SchemaError reports a defect in a schema description itself: an invalid
// regular expression, an incomparable bound, inverted size limits, a filter
// that is not callable. It is raised during Compile (or eagerly by a
// constructor that can already see the defect), never while validating a
// value.
type SchemaError struct {
	msg string
}

func (e *SchemaError) Error() string { return e.msg }

func schemaErrorf(format string, args ...any) *SchemaError {
	return &SchemaError{msg: fmt.Sprintf(format, args...)}
}

// ValidationError reports either the normal outcome of a value failing its
// schema (carrying the composed violation message) or an ambiguous label
// substitution, which is a usage defect surfaced through the hard error
// channel because it cannot be attributed to a single path in the value.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Message returns the composed violation message.
func (e *ValidationError) Message() string { return e.msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// AsSchemaError extracts a *SchemaError from err using errors.As.
func AsSchemaError(err error) (*SchemaError, bool) {
	var se *SchemaError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsValidationError extracts a *ValidationError from err using errors.As.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
