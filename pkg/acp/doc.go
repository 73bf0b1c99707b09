// Package acp provides the client half of the Agent Client Protocol
// used by the conformance harness: a strictly sequential JSON-RPC
// caller over a newline-delimited stdio transport.
//
// The protocol interleaves fire-and-forget session/update notifications
// with request/response traffic on a single shared stream, so replies
// are correlated by id, not by arrival order. Client.Call implements
// the minimal mechanism that is correct under arbitrary notification
// interleaving: write one request, then loop reading frames, returning
// only the frame whose id matches the one just allocated and routing
// everything else to the notification observer or the discard pile.
//
// The client is deliberately single-threaded with at most one request
// in flight. Do not add request pipelining; correlation relies on the
// single-pending-request invariant.
package acp
