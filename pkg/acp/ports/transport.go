// Package ports defines interfaces that the correlator needs from
// infrastructure. These are "ports" in hexagonal architecture -
// contracts defined by domain needs, not by external systems.
package ports

import "context"

// Transport defines what the correlator needs from a peer connection:
// a way to push one framed line and pull one framed line. The harness
// drives exactly one peer, strictly sequentially, so reads block until
// a full line arrives or the stream closes.
type Transport interface {
	// Connect establishes the connection to the peer.
	Connect(ctx context.Context) error

	// WriteLine sends one frame, appending the newline delimiter and
	// flushing immediately so the peer never waits on a buffer.
	WriteLine(ctx context.Context, data []byte) error

	// ReadLine blocks until one full frame is available and returns it
	// without the delimiter. A closed stream yields a connection_closed
	// transport error, never a silent nil.
	ReadLine(ctx context.Context) ([]byte, error)

	// Stderr returns diagnostics buffered from the peer's error stream.
	// It is read reactively during failure reporting, never as part of
	// normal operation.
	Stderr() string

	// Close tears the connection down. Safe to call on every exit path.
	Close() error
}
