package refagent

import (
	"context"
	"fmt"
	"os/exec"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// discoverMCPTools launches one configured MCP server, lists its
// tools, and disconnects. The refagent does not call tools; listing
// them proves the config round-trips through session/new.
func (s *Server) discoverMCPTools(ctx context.Context, spec mcpServerSpec) ([]string, error) {
	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)

	client := mcpsdk.NewClient(
		&mcpsdk.Implementation{
			Name:    "acp-conform-refagent",
			Version: "1.0.0",
		},
		nil,
	)

	conn, err := client.Connect(ctx, &mcpsdk.CommandTransport{Command: cmd}, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %q: %w", spec.Name, err)
	}
	defer func() {
		_ = conn.Close()
	}()

	var names []string
	params := &mcpsdk.ListToolsParams{}
	for {
		list, err := conn.ListTools(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("list tools from %q: %w", spec.Name, err)
		}
		for _, tool := range list.Tools {
			names = append(names, tool.Name)
		}
		if list.NextCursor == "" {
			break
		}
		params.Cursor = list.NextCursor
	}

	return names, nil
}
