package acperrs

import "errors"

// CodeOf extracts the error code from an error chain.
// Returns an empty code when no HarnessError is present.
func CodeOf(err error) ErrorCode {
	var herr HarnessError
	if errors.As(err, &herr) {
		return herr.Code()
	}

	return ""
}

// CategoryOf extracts the error category from an error chain.
func CategoryOf(err error) ErrorCategory {
	var herr HarnessError
	if errors.As(err, &herr) {
		return herr.Category()
	}

	return ""
}

// IsConnectionClosed reports whether err means the peer closed its
// output stream or exited before producing a full line.
func IsConnectionClosed(err error) bool {
	return CodeOf(err) == ErrCodeConnectionClosed
}

// IsMalformedMessage reports whether err means a wire line could not
// be decoded as JSON.
func IsMalformedMessage(err error) bool {
	return CodeOf(err) == ErrCodeMalformedMessage
}

// IsTimeout reports whether err means a call expired before the
// matching reply arrived. Distinct from IsConnectionClosed: the peer
// is still running, it just never answered in time.
func IsTimeout(err error) bool {
	return CodeOf(err) == ErrCodeTimeout
}

// StderrOf extracts buffered peer stderr from a process error chain,
// for surfacing diagnostics after a failure.
func StderrOf(err error) string {
	var perr *ProcessError
	if errors.As(err, &perr) {
		return perr.Stderr()
	}

	return ""
}
