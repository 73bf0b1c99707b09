package commands

import (
	"github.com/spf13/cobra"

	"github.com/acpkit/acp-conform/internal/mcpfixture"
)

var mcpFixtureCmd = &cobra.Command{
	Use:    "mcp-fixture",
	Short:  "Serve the built-in MCP fixture server over stdio",
	Hidden: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcpfixture.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpFixtureCmd)
}
