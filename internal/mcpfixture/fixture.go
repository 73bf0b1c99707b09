// Package mcpfixture provides a minimal stdio MCP server that the
// harness can hand to the agent under test in session/new, exercising
// the agent's handling of mcpServers configuration. The fixture is
// served by this same binary via the mcp-fixture subcommand.
package mcpfixture

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const serverName = "acp-conform-fixture"

// NewServer builds the fixture server with a single echo tool.
// One trivial tool is enough: the harness only checks that the agent
// accepts the server config, not what it does with the tools.
func NewServer() *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	echo := mcp.NewTool("echo",
		mcp.WithDescription("Echo the given text back to the caller"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to echo"),
		),
	)
	s.AddTool(echo, echoHandler)

	return s
}

func echoHandler(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(text), nil
}

// Serve runs the fixture over stdio until the peer disconnects.
func Serve() error {
	return server.ServeStdio(NewServer())
}

// ServerEntry returns the mcpServers entry for session/new, pointing
// back at the current executable's mcp-fixture subcommand.
func ServerEntry() (map[string]any, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"name":    serverName,
		"command": exe,
		"args":    []string{"mcp-fixture"},
	}, nil
}
