// Package commands defines the acp-conform command tree.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	verbose    bool
	jsonOutput bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "acp-conform",
	Short: "Conformance smoke tests for Agent Client Protocol implementations",
	Long: `acp-conform launches a candidate ACP agent as a subprocess and drives
it through the basic lifecycle over its stdio streams:
initialize -> session/new -> session/prompt -> invalid method.

Each step asserts a structurally valid response; the first failure is
conclusive for the run.`,
	SilenceUsage: true,
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable wire-level frame tracing on stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit the run result as JSON on stdout")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}
