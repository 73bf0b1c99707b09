package harness

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/acpkit/acp-conform/internal/mcpfixture"
	"github.com/acpkit/acp-conform/pkg/acp/messages"
	"github.com/acpkit/acp-conform/pkg/acperrs"
)

// stepInitialize performs the capability handshake and records the
// agent's protocol version and identity.
func (r *Runner) stepInitialize(ctx context.Context) (string, error) {
	params := map[string]any{
		"protocolVersion": r.scenario.ProtocolVersion,
		"clientCapabilities": map[string]any{
			"filesystem": map[string]any{"read": true, "write": true},
			"terminal":   true,
		},
		"clientInfo": map[string]any{
			"name":    r.scenario.ClientName,
			"version": r.scenario.ClientVersion,
		},
	}

	result, err := r.callExpectSuccess(ctx, "initialize", params)
	if err != nil {
		return "", err
	}

	var body struct {
		ProtocolVersion any `json:"protocolVersion"`
		AgentInfo       struct {
			Title string `json:"title"`
		} `json:"agentInfo"`
	}
	if err := json.Unmarshal(result, &body); err != nil {
		return "", acperrs.NewValidationError(
			acperrs.ErrCodeUnexpectedShape, "initialize result is not an object", err, "result")
	}
	if body.ProtocolVersion == nil {
		return "", acperrs.NewValidationError(
			acperrs.ErrCodeMissingField, "initialize result has no protocolVersion", nil, "protocolVersion")
	}

	title := body.AgentInfo.Title
	if title == "" {
		title = "Unknown"
	}
	r.result.ProtocolVersion = body.ProtocolVersion
	r.result.AgentTitle = title

	return fmt.Sprintf("protocol version %v, agent %q", body.ProtocolVersion, title), nil
}

// stepSessionNew creates a session and records its identifier for the
// prompt step. With the MCP fixture enabled, the request also carries
// an mcpServers entry pointing back at this binary so the agent's
// handling of MCP server configs is exercised.
func (r *Runner) stepSessionNew(ctx context.Context) (string, error) {
	params := map[string]any{
		"cwd": r.scenario.SessionCwd,
	}
	if r.scenario.WithMCP {
		entry, err := mcpfixture.ServerEntry()
		if err != nil {
			return "", err
		}
		params["mcpServers"] = []any{entry}
	}

	result, err := r.callExpectSuccess(ctx, "session/new", params)
	if err != nil {
		return "", err
	}

	var body struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(result, &body); err != nil {
		return "", acperrs.NewValidationError(
			acperrs.ErrCodeUnexpectedShape, "session/new result is not an object", err, "result")
	}
	if body.SessionID == "" {
		return "", acperrs.NewValidationError(
			acperrs.ErrCodeMissingField, "session/new result has no sessionId", nil, "sessionId")
	}

	r.result.SessionID = body.SessionID

	return fmt.Sprintf("session id %s", body.SessionID), nil
}

// stepSessionPrompt sends the canned prompt and waits for the turn to
// end. Interleaved session/update notifications reach the observer
// while this call blocks; they are reported but never required.
func (r *Runner) stepSessionPrompt(ctx context.Context) (string, error) {
	params := map[string]any{
		"sessionId": r.result.SessionID,
		"content": []any{
			map[string]any{"type": "text", "text": r.scenario.Prompt},
		},
	}

	result, err := r.callExpectSuccess(ctx, "session/prompt", params)
	if err != nil {
		return "", err
	}

	var body struct {
		StopReason string `json:"stopReason"`
	}
	if err := json.Unmarshal(result, &body); err != nil {
		return "", acperrs.NewValidationError(
			acperrs.ErrCodeUnexpectedShape, "session/prompt result is not an object", err, "result")
	}
	if body.StopReason == "" {
		return "", acperrs.NewValidationError(
			acperrs.ErrCodeMissingField, "session/prompt result has no stopReason", nil, "stopReason")
	}

	r.result.StopReason = body.StopReason

	return fmt.Sprintf("stop reason %q", body.StopReason), nil
}

// stepInvalidMethod inverts the expectation: a conformant agent must
// answer an unknown method with an error reply, method-not-found class.
func (r *Runner) stepInvalidMethod(ctx context.Context) (string, error) {
	reply, err := r.client.Call(ctx, "invalid/method", map[string]any{})
	if err != nil {
		return "", err
	}

	errResp, ok := reply.(messages.ErrorResponse)
	if !ok {
		return "", fmt.Errorf("expected error reply for invalid method, got success")
	}

	return fmt.Sprintf("error code %d (method not found)", errResp.Error.Code), nil
}

// callExpectSuccess issues one call and fails the step on an error
// reply. Transport and protocol failures propagate unchanged.
func (r *Runner) callExpectSuccess(ctx context.Context, method string, params any) (json.RawMessage, error) {
	reply, err := r.client.Call(ctx, method, params)
	if err != nil {
		return nil, err
	}

	switch m := reply.(type) {
	case messages.SuccessResponse:
		return m.Result, nil
	case messages.ErrorResponse:
		return nil, fmt.Errorf("agent returned error %d: %s", m.Error.Code, m.Error.Message)
	default:
		return nil, fmt.Errorf("unexpected reply variant %T", reply)
	}
}
