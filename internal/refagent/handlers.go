package refagent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/acpkit/acp-conform/pkg/acp/messages"
)

func (s *Server) handleInitialize(req *request) {
	_ = s.writeResult(req.ID, map[string]any{
		"protocolVersion": 1,
		"agentInfo": map[string]any{
			"title":   AgentTitle,
			"version": "1.0.0",
		},
		"agentCapabilities": map[string]any{
			"loadSession": false,
			"promptCapabilities": map[string]bool{
				"audio":           false,
				"embeddedContext": false,
				"image":           false,
			},
		},
		"authMethods": []any{},
	})
}

type mcpServerSpec struct {
	Name    string   `json:"name"`
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

func (s *Server) handleSessionNew(ctx context.Context, req *request) {
	var params struct {
		Cwd        string          `json:"cwd"`
		McpServers []mcpServerSpec `json:"mcpServers"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		_ = s.writeError(req.ID, messages.CodeInvalidParams, "Invalid params", err.Error())
		return
	}

	sess := &session{
		id:  uuid.NewString(),
		cwd: params.Cwd,
	}

	// MCP attachment is best-effort: a fixture that fails to start
	// should not make session creation fail.
	for _, spec := range params.McpServers {
		tools, err := s.discoverMCPTools(ctx, spec)
		if err != nil {
			s.log.Warnf("mcp server %q unavailable: %v", spec.Name, err)
			continue
		}
		sess.mcpTools = append(sess.mcpTools, tools...)
	}

	s.sessions[sess.id] = sess

	_ = s.writeResult(req.ID, map[string]any{
		"sessionId": sess.id,
	})
}

func (s *Server) handleSessionPrompt(req *request) {
	var params struct {
		SessionID string `json:"sessionId"`
		Content   []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		_ = s.writeError(req.ID, messages.CodeInvalidParams, "Invalid params", err.Error())
		return
	}

	sess, ok := s.sessions[params.SessionID]
	if !ok {
		_ = s.writeError(req.ID, messages.CodeInvalidParams, "Invalid params", "unknown sessionId")
		return
	}

	// Deterministic canned turn: stream one message chunk, then end.
	reply := "Hello! I am the reference agent. I answer every prompt with this message."
	if len(sess.mcpTools) > 0 {
		reply += fmt.Sprintf(" Attached MCP tools: %s.", strings.Join(sess.mcpTools, ", "))
	}

	_ = s.writeNotification("session/update", map[string]any{
		"sessionId": sess.id,
		"update": map[string]any{
			"sessionUpdate": "agent_message_chunk",
			"content": map[string]any{
				"type": "text",
				"text": reply,
			},
		},
	})

	_ = s.writeResult(req.ID, map[string]any{
		"stopReason": "end_turn",
	})
}
