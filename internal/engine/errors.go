package engine

import (
	"errors"
	"fmt"
)

// RuntimeError is a failure while executing a query.
//
// Validation failures keep the underlying *query.ValidationError in Err,
// so query.IsInvalidArgument still recognizes them.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Query is the textual form of the query being executed, if known.
	Query string

	// Err is the underlying cause.
	Err error

	// Details contains additional context.
	Details map[string]string
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeInvalidQuery indicates the query failed validation.
	ErrCodeInvalidQuery RuntimeErrorCode = "INVALID_QUERY"

	// ErrCodeQuotaExceeded indicates the scan exceeded the configured record quota.
	ErrCodeQuotaExceeded RuntimeErrorCode = "QUOTA_EXCEEDED"

	// ErrCodeSourceFailed indicates the record source could not be scanned.
	ErrCodeSourceFailed RuntimeErrorCode = "SOURCE_FAILED"

	// ErrCodeCancelled indicates the context was cancelled mid-execution.
	ErrCodeCancelled RuntimeErrorCode = "CANCELLED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Query != "" {
		msg += fmt.Sprintf(" (query=%s)", e.Query)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsQuotaError reports whether err is a scan quota failure.
func IsQuotaError(err error) bool {
	return hasCode(err, ErrCodeQuotaExceeded)
}

// IsInvalidQuery reports whether err is a query validation failure.
func IsInvalidQuery(err error) bool {
	return hasCode(err, ErrCodeInvalidQuery)
}

func hasCode(err error, code RuntimeErrorCode) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// NewQuotaError creates a RuntimeError for a scan over the record quota.
func NewQuotaError(scanned, limit int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeQuotaExceeded,
		Message: fmt.Sprintf("scan exceeded record quota (%d > %d)", scanned, limit),
		Details: map[string]string{
			"scanned": fmt.Sprintf("%d", scanned),
			"limit":   fmt.Sprintf("%d", limit),
		},
	}
}
