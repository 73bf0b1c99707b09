package acperrs

// TransportError represents stream-level I/O errors.
type TransportError struct {
	*BaseError
}

// NewTransportError creates a new transport error.
func NewTransportError(code ErrorCode, message string, cause error) *TransportError {
	return &TransportError{
		BaseError: newBase(CategoryTransport, code, message, cause),
	}
}

// ProtocolError represents JSON-RPC framing and decoding errors.
type ProtocolError struct {
	*BaseError
}

// NewProtocolError creates a new protocol error.
func NewProtocolError(code ErrorCode, message string, cause error) *ProtocolError {
	return &ProtocolError{
		BaseError: newBase(CategoryProtocol, code, message, cause),
	}
}

// WithLine records the offending wire line on the error.
func (e *ProtocolError) WithLine(line string) *ProtocolError {
	e.WithMetadata("line", line)

	return e
}

// WithMethod records the in-flight method name on the error.
func (e *ProtocolError) WithMethod(method string) *ProtocolError {
	e.WithMetadata("method", method)

	return e
}

// ProcessError represents agent subprocess lifecycle errors.
type ProcessError struct {
	*BaseError
	exitCode int
	stderr   string
}

// NewProcessError creates a new process error.
func NewProcessError(code ErrorCode, message string, cause error, exitCode int, stderr string) *ProcessError {
	err := &ProcessError{
		BaseError: newBase(CategoryProcess, code, message, cause),
		exitCode:  exitCode,
		stderr:    stderr,
	}

	err.WithMetadata("exit_code", exitCode)
	err.WithMetadata("stderr", stderr)

	return err
}

// ExitCode returns the process exit code.
func (e *ProcessError) ExitCode() int {
	return e.exitCode
}

// Stderr returns the buffered process stderr output.
func (e *ProcessError) Stderr() string {
	return e.stderr
}

// WithCommand records the spawned command line on the error.
func (e *ProcessError) WithCommand(command string) *ProcessError {
	e.WithMetadata("command", command)

	return e
}

// ValidationError represents response shape validation errors.
type ValidationError struct {
	*BaseError
	field string
}

// NewValidationError creates a new validation error.
func NewValidationError(code ErrorCode, message string, cause error, field string) *ValidationError {
	err := &ValidationError{
		BaseError: newBase(CategoryValidation, code, message, cause),
		field:     field,
	}

	err.WithMetadata("field", field)

	return err
}

// Field returns the name of the field that failed validation.
func (e *ValidationError) Field() string {
	return e.field
}
