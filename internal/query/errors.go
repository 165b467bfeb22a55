package query

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every query validation failure.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidationError describes a predicate or descriptor that cannot be
// applied to the schema.
type ValidationError struct {
	Field  string // empty when the failure is not tied to a field
	Op     string // operation name, e.g. "isEmpty", "limit"
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid argument: %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("invalid argument: %s(%s): %s", e.Op, e.Field, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidArgument) hold.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

// IsInvalidArgument reports whether err is a query validation failure.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// AsValidationError extracts a *ValidationError from err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func invalid(field, op, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Op: op, Reason: fmt.Sprintf(format, args...)}
}
