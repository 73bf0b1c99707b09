// Package acperrs provides the error handling framework for the ACP
// conformance harness. It defines error categories, codes, and typed
// error values so callers can distinguish transport failures (the peer
// vanished) from protocol failures (the peer spoke garbage) from
// harness-side validation failures.
package acperrs

// ErrorCategory groups errors by the layer that produced them.
type ErrorCategory string

const (
	// CategoryTransport represents stream-level I/O errors.
	CategoryTransport ErrorCategory = "transport"
	// CategoryProtocol represents JSON-RPC framing and decoding errors.
	CategoryProtocol ErrorCategory = "protocol"
	// CategoryProcess represents agent subprocess lifecycle errors.
	CategoryProcess ErrorCategory = "process"
	// CategoryValidation represents response shape validation errors.
	CategoryValidation ErrorCategory = "validation"
)

// ErrorCode identifies a specific failure within a category.
type ErrorCode string

// Transport error codes.
const (
	ErrCodeConnectionClosed ErrorCode = "connection_closed"
	ErrCodeReadFailed       ErrorCode = "read_failed"
	ErrCodeWriteFailed      ErrorCode = "write_failed"
	ErrCodeTimeout          ErrorCode = "timeout"
)

// Protocol error codes.
const (
	ErrCodeMalformedMessage ErrorCode = "malformed_message"
	ErrCodeInvalidMessage   ErrorCode = "invalid_message"
)

// Process error codes.
const (
	ErrCodeProcessSpawnFailed ErrorCode = "process_spawn_failed"
	ErrCodeProcessExited      ErrorCode = "process_exited"
)

// Validation error codes.
const (
	ErrCodeMissingField    ErrorCode = "missing_field"
	ErrCodeUnexpectedShape ErrorCode = "unexpected_shape"
)

// HarnessError is the base interface for all harness errors.
type HarnessError interface {
	error
	// Code returns the error code.
	Code() ErrorCode
	// Category returns the error category.
	Category() ErrorCategory
	// Unwrap returns the underlying error.
	Unwrap() error
	// Metadata returns additional error metadata.
	Metadata() map[string]any
}
