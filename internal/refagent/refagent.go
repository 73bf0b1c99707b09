// Package refagent implements a minimal, deterministic ACP agent used
// as a known-conformant peer: `acp-conform run --self` points the
// harness at it, and the test suite drives it in-process. It speaks
// newline-delimited JSON-RPC over a reader/writer pair and supports
// initialize, session/new, and session/prompt; anything else gets a
// method-not-found error, which is exactly what the scenario's last
// step wants to see.
package refagent

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/acpkit/acp-conform/internal/logs"
	"github.com/acpkit/acp-conform/pkg/acp/messages"
)

// AgentTitle identifies the reference agent in initialize replies.
const AgentTitle = "acp-conform reference agent"

// Server is one refagent instance bound to a connection.
type Server struct {
	in  *bufio.Reader
	out io.Writer

	sessions map[string]*session
	writeMu  sync.Mutex
	log      *logrus.Logger
}

type session struct {
	id       string
	cwd      string
	mcpTools []string
}

// NewServer creates a refagent over the given streams.
func NewServer(in io.Reader, out io.Writer) *Server {
	return &Server{
		in:       bufio.NewReader(in),
		out:      out,
		sessions: make(map[string]*session),
		log:      logs.NewLogger("refagent"),
	}
}

// request is the inbound frame shape the refagent dispatches on.
type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Serve reads frames until the peer closes the connection.
func (s *Server) Serve(ctx context.Context) error {
	for {
		line, err := s.in.ReadBytes('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("refagent read: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			_ = s.writeError(nil, messages.CodeParseError, "Parse error", nil)
			continue
		}

		s.dispatch(ctx, &req)
	}
}

func (s *Server) dispatch(ctx context.Context, req *request) {
	s.log.Debugf("dispatching %q", req.Method)

	switch req.Method {
	case "initialize":
		s.handleInitialize(req)
	case "session/new":
		s.handleSessionNew(ctx, req)
	case "session/prompt":
		s.handleSessionPrompt(req)
	default:
		_ = s.writeError(req.ID, messages.CodeMethodNotFound, "Method not found", nil)
	}
}

// writeFrame marshals obj as one newline-delimited frame.
func (s *Server) writeFrame(obj any) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("refagent marshal: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("refagent write: %w", err)
	}

	return nil
}

func (s *Server) writeResult(id json.RawMessage, result any) error {
	return s.writeFrame(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	})
}

func (s *Server) writeError(id json.RawMessage, code int, msg string, data any) error {
	errObj := map[string]any{"code": code, "message": msg}
	if data != nil {
		errObj["data"] = data
	}

	return s.writeFrame(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error":   errObj,
	})
}

func (s *Server) writeNotification(method string, params any) error {
	return s.writeFrame(map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	})
}
