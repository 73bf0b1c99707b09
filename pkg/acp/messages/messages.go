// Package messages defines the wire message types for the Agent Client
// Protocol. ACP frames are JSON-RPC 2.0 values delimited by newlines;
// this package models the closed set of shapes a peer can send as a
// discriminated union so downstream logic pattern-matches on a known
// variant instead of probing maps for key presence.
package messages

import "encoding/json"

// Message is the root interface for all wire messages.
// Classification is structural: the concrete variant is determined by
// which combination of id, method, result, and error fields a frame
// carries.
type Message interface {
	// message is a marker method for type safety
	message()
}

// Response is the union of reply shapes a call can produce.
// Both success and error replies are valid protocol outcomes; judging
// the error's contents belongs to the caller.
type Response interface {
	Message
	// ResponseID returns the request id this reply answers.
	ResponseID() int64
}

// Request is a peer-initiated method invocation carrying an id.
// The harness never answers these; the correlator observes and
// discards them like other non-matching traffic.
type Request struct {
	ID     int64
	Method string
	Params json.RawMessage
}

func (Request) message() {}

// SuccessResponse is a reply carrying a result payload.
type SuccessResponse struct {
	ID     int64
	Result json.RawMessage
}

func (SuccessResponse) message() {}

// ResponseID returns the request id this reply answers.
func (r SuccessResponse) ResponseID() int64 { return r.ID }

// ErrorResponse is a reply carrying a JSON-RPC error object.
type ErrorResponse struct {
	ID    int64
	Error ErrorObject
}

func (ErrorResponse) message() {}

// ResponseID returns the request id this reply answers.
func (r ErrorResponse) ResponseID() int64 { return r.ID }

// Notification is an unsolicited event: a method with params and no id.
type Notification struct {
	Method string
	Params json.RawMessage
}

func (Notification) message() {}

// Unknown represents a frame that decoded as JSON but matches none of
// the JSON-RPC shapes (for example an id with no method, result, or
// error). Kept as a variant for forward compatibility; the correlator
// discards it.
type Unknown struct {
	Raw json.RawMessage
}

func (Unknown) message() {}

// ErrorObject is the JSON-RPC error payload of an error reply.
type ErrorObject struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Standard JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)
