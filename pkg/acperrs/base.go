package acperrs

import "fmt"

// BaseError carries the fields shared by every harness error. The
// typed wrappers in this package embed it, so classification helpers
// only ever need the HarnessError interface.
type BaseError struct {
	code     ErrorCode
	category ErrorCategory
	message  string
	cause    error
	metadata map[string]any
}

func newBase(category ErrorCategory, code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{
		code:     code,
		category: category,
		message:  message,
		cause:    cause,
	}
}

// Error formats as "category/code: message", with the cause appended
// when one exists. The category/code prefix is what the reporter
// prints on a failed step, so it has to stand on its own.
func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s/%s: %s: %v", e.category, e.code, e.message, e.cause)
	}

	return fmt.Sprintf("%s/%s: %s", e.category, e.code, e.message)
}

// Code returns the error code.
func (e *BaseError) Code() ErrorCode {
	return e.code
}

// Category returns the error category.
func (e *BaseError) Category() ErrorCategory {
	return e.category
}

// Unwrap returns the underlying error.
func (e *BaseError) Unwrap() error {
	return e.cause
}

// Metadata returns the error metadata. The map is allocated on first
// use; errors without attached context never carry one.
func (e *BaseError) Metadata() map[string]any {
	if e.metadata == nil {
		e.metadata = make(map[string]any)
	}

	return e.metadata
}

// WithMetadata attaches one context item to the error.
func (e *BaseError) WithMetadata(key string, value any) *BaseError {
	e.Metadata()[key] = value

	return e
}
