package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/acpkit/acp-conform/internal/logs"
	"github.com/acpkit/acp-conform/internal/refagent"
)

var refagentCmd = &cobra.Command{
	Use:   "refagent",
	Short: "Serve the built-in reference ACP agent over stdio",
	Long: `Serves a minimal, deterministic ACP agent on stdin/stdout. Useful as a
known-conformant peer for trying out the harness ('acp-conform run --self')
or for developing ACP clients against a fixed implementation.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logs.SetVerbose(verbose)

		return refagent.NewServer(os.Stdin, os.Stdout).Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(refagentCmd)
}
