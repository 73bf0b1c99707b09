// Package testutil provides test doubles for the acp packages.
package testutil

import (
	"context"
	"sync"

	"github.com/acpkit/acp-conform/pkg/acp/ports"
)

// FakeTransport simulates an agent connection for hermetic testing.
// It replays a scripted sequence of frames and records every write
// without spawning processes. When the script runs out, ReadLine
// behaves like a peer that closed its stream.
type FakeTransport struct {
	mu           sync.Mutex
	script       [][]byte
	pos          int
	writeHistory [][]byte
	connected    bool
	closed       bool

	stderrText   string
	connectErr   error
	writeErr     error
	exhaustedErr error
}

// NewFakeTransport creates an empty fake transport.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{}
}

// QueueLine appends one frame to the read script.
func (f *FakeTransport) QueueLine(line string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script = append(f.script, []byte(line))
}

// SetStderr sets the diagnostics returned by Stderr.
func (f *FakeTransport) SetStderr(text string) {
	f.stderrText = text
}

// FailConnect makes Connect return err.
func (f *FakeTransport) FailConnect(err error) {
	f.connectErr = err
}

// FailWrites makes WriteLine return err.
func (f *FakeTransport) FailWrites(err error) {
	f.writeErr = err
}

// FailWhenExhausted overrides the error ReadLine returns once the
// script is used up (defaults to a connection_closed transport error).
func (f *FakeTransport) FailWhenExhausted(err error) {
	f.exhaustedErr = err
}

// Connect marks the transport as connected.
func (f *FakeTransport) Connect(_ context.Context) error {
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true

	return nil
}

// WriteLine records the frame.
func (f *FakeTransport) WriteLine(_ context.Context, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.writeErr != nil {
		return f.writeErr
	}

	copied := make([]byte, len(data))
	copy(copied, data)
	f.writeHistory = append(f.writeHistory, copied)

	return nil
}

// ReadLine returns the next scripted frame, or the exhausted error.
func (f *FakeTransport) ReadLine(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if f.pos >= len(f.script) {
		if f.exhaustedErr != nil {
			return nil, f.exhaustedErr
		}

		return nil, errConnectionClosed()
	}

	line := f.script[f.pos]
	f.pos++

	return line, nil
}

// Stderr returns the configured diagnostics.
func (f *FakeTransport) Stderr() string {
	return f.stderrText
}

// Close marks the transport as closed.
func (f *FakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
	f.closed = true

	return nil
}

// Closed reports whether Close was called.
func (f *FakeTransport) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closed
}

// WriteHistory returns copies of every frame written so far.
func (f *FakeTransport) WriteHistory() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	history := make([]string, len(f.writeHistory))
	for i, data := range f.writeHistory {
		history[i] = string(data)
	}

	return history
}

// Compile-time interface check.
var _ ports.Transport = (*FakeTransport)(nil)
