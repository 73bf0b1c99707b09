package refagent

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// agentConn drives a refagent over in-process pipes with raw frames.
type agentConn struct {
	t      *testing.T
	writer io.WriteCloser
	reader *bufio.Reader
}

func startAgent(t *testing.T) *agentConn {
	t.Helper()

	toAgentReader, toAgentWriter := io.Pipe()
	fromAgentReader, fromAgentWriter := io.Pipe()

	server := NewServer(toAgentReader, fromAgentWriter)
	go func() {
		_ = server.Serve(context.Background())
	}()
	t.Cleanup(func() {
		_ = toAgentWriter.Close()
	})

	return &agentConn{
		t:      t,
		writer: toAgentWriter,
		reader: bufio.NewReader(fromAgentReader),
	}
}

func (c *agentConn) send(frame string) {
	c.t.Helper()
	_, err := c.writer.Write([]byte(frame + "\n"))
	require.NoError(c.t, err)
}

func (c *agentConn) recv() map[string]any {
	c.t.Helper()
	line, err := c.reader.ReadBytes('\n')
	require.NoError(c.t, err)

	var msg map[string]any
	require.NoError(c.t, json.Unmarshal(line, &msg))

	return msg
}

func TestServer_Initialize(t *testing.T) {
	conn := startAgent(t)

	conn.send(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":1}}`)
	reply := conn.recv()

	assert.Equal(t, float64(1), reply["id"])
	result, ok := reply["result"].(map[string]any)
	require.True(t, ok, "expected result object, got %v", reply)
	assert.Equal(t, float64(1), result["protocolVersion"])

	info, ok := result["agentInfo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, AgentTitle, info["title"])
}

func TestServer_UnknownMethod(t *testing.T) {
	conn := startAgent(t)

	conn.send(`{"jsonrpc":"2.0","id":7,"method":"invalid/method","params":{}}`)
	reply := conn.recv()

	errObj, ok := reply["error"].(map[string]any)
	require.True(t, ok, "expected error object, got %v", reply)
	assert.Equal(t, float64(-32601), errObj["code"])
	assert.Equal(t, "Method not found", errObj["message"])
}

func TestServer_ParseError(t *testing.T) {
	conn := startAgent(t)

	conn.send(`this is not json`)
	reply := conn.recv()

	errObj, ok := reply["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(-32700), errObj["code"])
}

func TestServer_PromptLifecycle(t *testing.T) {
	conn := startAgent(t)

	conn.send(`{"jsonrpc":"2.0","id":1,"method":"session/new","params":{"cwd":"/tmp"}}`)
	created := conn.recv()
	result, ok := created["result"].(map[string]any)
	require.True(t, ok)
	sessionID, _ := result["sessionId"].(string)
	require.NotEmpty(t, sessionID)

	conn.send(`{"jsonrpc":"2.0","id":2,"method":"session/prompt","params":{"sessionId":"` +
		sessionID + `","content":[{"type":"text","text":"Hello"}]}}`)

	// One streamed chunk precedes the reply.
	update := conn.recv()
	assert.Equal(t, "session/update", update["method"])
	_, hasID := update["id"]
	assert.False(t, hasID, "notifications carry no id")

	reply := conn.recv()
	assert.Equal(t, float64(2), reply["id"])
	promptResult, ok := reply["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "end_turn", promptResult["stopReason"])
}

func TestServer_PromptUnknownSession(t *testing.T) {
	conn := startAgent(t)

	conn.send(`{"jsonrpc":"2.0","id":1,"method":"session/prompt","params":{"sessionId":"nope","content":[]}}`)
	reply := conn.recv()

	errObj, ok := reply["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(-32602), errObj["code"])
}
