package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/acpkit/acp-conform/internal/config"
	"github.com/acpkit/acp-conform/internal/harness"
	"github.com/acpkit/acp-conform/internal/logs"
	"github.com/acpkit/acp-conform/internal/report"
	"github.com/acpkit/acp-conform/pkg/acp/adapters/agentproc"
)

var (
	runTimeout time.Duration
	sessionCwd string
	promptText string
	withMCP    bool
	selfTest   bool
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <agent-command> [args...]",
	Short: "Run the conformance scenario against an agent command",
	Example: `  acp-conform run -- ./my-agent-binary
  acp-conform run -- uv run my-agent acp
  acp-conform run --self`,
	RunE: runScenario,
}

func init() {
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "per-call timeout (0 blocks indefinitely)")
	runCmd.Flags().StringVar(&sessionCwd, "session-cwd", "", "working directory sent in session/new")
	runCmd.Flags().StringVar(&promptText, "prompt", "", "prompt text sent in session/prompt")
	runCmd.Flags().BoolVar(&withMCP, "with-mcp", false, "pass the built-in MCP fixture server in session/new")
	runCmd.Flags().BoolVar(&selfTest, "self", false, "run against the built-in reference agent")

	rootCmd.AddCommand(runCmd)
}

func runScenario(cmd *cobra.Command, args []string) error {
	logs.SetVerbose(verbose)
	if noColor {
		color.NoColor = true
	}

	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	transport := agentproc.NewAdapter(
		cfg.Agent.Command,
		cfg.Agent.Args,
		agentproc.WithCwd(cfg.Agent.Cwd),
		agentproc.WithEnv(cfg.Agent.Env),
	)

	var reporter harness.Reporter = report.NewConsole(os.Stdout)
	if jsonOutput {
		// Progress lines would corrupt the JSON document.
		reporter = nopReporter{}
	} else {
		fmt.Printf("Starting agent: %s\n", commandLine(cfg))
	}

	runner := harness.NewRunner(transport, cfg.Scenario, cfg.Timeout, reporter)
	run := runner.Run(cmd.Context())

	if jsonOutput {
		if err := report.WriteJSON(os.Stdout, run); err != nil {
			return err
		}
	} else if console, ok := reporter.(*report.Console); ok {
		console.Summary(run)
	}

	if !run.Passed {
		return fmt.Errorf("conformance run failed")
	}

	return nil
}

// buildConfig layers CLI flags over the config file over the defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if selfTest {
		exe, err := os.Executable()
		if err != nil {
			return nil, err
		}
		cfg.Agent.Command = exe
		cfg.Agent.Args = []string{"refagent"}
	}
	if len(args) > 0 {
		cfg.Agent.Command = args[0]
		cfg.Agent.Args = args[1:]
	}

	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = runTimeout
	}
	if cmd.Flags().Changed("session-cwd") {
		cfg.Scenario.SessionCwd = sessionCwd
	}
	if cmd.Flags().Changed("prompt") {
		cfg.Scenario.Prompt = promptText
	}
	if cmd.Flags().Changed("with-mcp") {
		cfg.Scenario.WithMCP = withMCP
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func commandLine(cfg *config.Config) string {
	line := cfg.Agent.Command
	for _, arg := range cfg.Agent.Args {
		line += " " + arg
	}

	return line
}

// nopReporter suppresses progress output in JSON mode.
type nopReporter struct{}

func (nopReporter) BeginStep(int, string)            {}
func (nopReporter) EndStep(harness.StepResult)       {}
func (nopReporter) AgentNotification(string, string) {}
