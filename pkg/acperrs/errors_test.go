package acperrs

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestBaseError(t *testing.T) {
	t.Run("message includes category and code", func(t *testing.T) {
		err := NewTransportError(ErrCodeReadFailed, "read frame", nil)
		if got := err.Error(); got != "transport/read_failed: read frame" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("message includes cause", func(t *testing.T) {
		err := NewTransportError(ErrCodeReadFailed, "read frame", io.ErrUnexpectedEOF)
		if !strings.Contains(err.Error(), "unexpected EOF") {
			t.Errorf("Error() = %q, want cause included", err.Error())
		}
	})

	t.Run("unwrap reaches the cause", func(t *testing.T) {
		cause := fmt.Errorf("pipe gone")
		err := NewTransportError(ErrCodeConnectionClosed, "agent stream ended", cause)
		if !errors.Is(err, cause) {
			t.Error("errors.Is did not reach the cause")
		}
	})

	t.Run("metadata accumulates", func(t *testing.T) {
		err := NewProtocolError(ErrCodeMalformedMessage, "bad frame", nil).
			WithLine("{nope").
			WithMethod("initialize")
		md := err.Metadata()
		if md["line"] != "{nope" || md["method"] != "initialize" {
			t.Errorf("metadata = %v", md)
		}
	})
}

func TestTypedErrors(t *testing.T) {
	t.Run("process error carries exit state", func(t *testing.T) {
		err := NewProcessError(ErrCodeProcessExited, "agent exited", nil, 2, "panic: boom").
			WithCommand("./agent acp")
		if err.ExitCode() != 2 {
			t.Errorf("ExitCode() = %d", err.ExitCode())
		}
		if err.Stderr() != "panic: boom" {
			t.Errorf("Stderr() = %q", err.Stderr())
		}
		if err.Metadata()["command"] != "./agent acp" {
			t.Errorf("metadata = %v", err.Metadata())
		}
	})

	t.Run("validation error names the field", func(t *testing.T) {
		err := NewValidationError(ErrCodeMissingField, "result has no sessionId", nil, "sessionId")
		if err.Field() != "sessionId" {
			t.Errorf("Field() = %q", err.Field())
		}
		if err.Category() != CategoryValidation {
			t.Errorf("Category() = %q", err.Category())
		}
	})

	t.Run("errors.As finds the concrete type through wrapping", func(t *testing.T) {
		inner := NewProcessError(ErrCodeProcessSpawnFailed, "spawn agent", nil, -1, "")
		wrapped := fmt.Errorf("launch: %w", inner)

		var perr *ProcessError
		if !errors.As(wrapped, &perr) {
			t.Fatal("errors.As failed to find ProcessError")
		}
		if perr.Code() != ErrCodeProcessSpawnFailed {
			t.Errorf("Code() = %q", perr.Code())
		}
	})
}

func TestHelpers(t *testing.T) {
	closed := NewTransportError(ErrCodeConnectionClosed, "agent stream ended", io.EOF)
	malformed := NewProtocolError(ErrCodeMalformedMessage, "bad frame", nil)
	timeout := NewTransportError(ErrCodeTimeout, "no reply", nil)

	if !IsConnectionClosed(closed) || IsConnectionClosed(malformed) {
		t.Error("IsConnectionClosed misclassified")
	}
	if !IsMalformedMessage(malformed) || IsMalformedMessage(closed) {
		t.Error("IsMalformedMessage misclassified")
	}
	if !IsTimeout(timeout) || IsTimeout(closed) {
		t.Error("IsTimeout misclassified")
	}

	if CodeOf(errors.New("plain")) != "" {
		t.Error("CodeOf on a plain error should be empty")
	}
	if CategoryOf(closed) != CategoryTransport {
		t.Errorf("CategoryOf = %q", CategoryOf(closed))
	}

	t.Run("wrapped errors still classify", func(t *testing.T) {
		wrapped := fmt.Errorf("call initialize: %w", closed)
		if !IsConnectionClosed(wrapped) {
			t.Error("IsConnectionClosed lost through wrapping")
		}
	})

	t.Run("stderr extraction", func(t *testing.T) {
		perr := NewProcessError(ErrCodeProcessExited, "agent exited", nil, 1, "stack trace")
		wrapped := fmt.Errorf("run: %w", perr)
		if got := StderrOf(wrapped); got != "stack trace" {
			t.Errorf("StderrOf = %q", got)
		}
		if StderrOf(errors.New("plain")) != "" {
			t.Error("StderrOf on a plain error should be empty")
		}
	})
}
