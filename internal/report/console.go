// Package report renders conformance run output: progress lines while
// the scenario runs, a summary table at the end, and a machine-readable
// JSON form for tooling.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/acpkit/acp-conform/internal/harness"
)

// Console renders human-readable progress to a writer.
type Console struct {
	out io.Writer
}

// NewConsole creates a console reporter. Color usage follows the
// global fatih/color settings, so --no-color is honored everywhere.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

var _ harness.Reporter = (*Console)(nil)

// BeginStep announces a scenario step.
func (c *Console) BeginStep(index int, title string) {
	fmt.Fprintf(c.out, "\n%d. Testing %s...\n", index, title)
}

// EndStep prints the step verdict.
func (c *Console) EndStep(res harness.StepResult) {
	if res.Passed {
		fmt.Fprintf(c.out, "   %s %s\n", color.GreenString("OK:"), res.Detail)
		return
	}

	fmt.Fprintf(c.out, "   %s %s\n", color.RedString("FAIL:"), res.Error)
}

// AgentNotification prints an interleaved notification and, when the
// update carried message text, a preview of it.
func (c *Console) AgentNotification(method, text string) {
	fmt.Fprintf(c.out, "  <- Notification: %s\n", method)
	if text != "" {
		fmt.Fprintf(c.out, "     %s\n", text)
	}
}

// Summary prints the per-step table and the overall verdict, plus any
// buffered agent stderr when the run failed.
func (c *Console) Summary(run *harness.RunResult) {
	fmt.Fprintf(c.out, "\n%s\n", strings.Repeat("=", 50))

	table := tablewriter.NewTable(c.out,
		tablewriter.WithHeader([]string{"Step", "Method", "Status", "Detail"}),
	)
	for _, s := range run.Steps {
		status := color.GreenString("pass")
		detail := s.Detail
		if !s.Passed {
			status = color.RedString("fail")
			detail = s.Error
		}
		table.Append([]string{s.Name, s.Method, status, detail})
	}
	table.Render()

	if run.Passed {
		fmt.Fprintf(c.out, "\n%s\n", color.GreenString("All tests passed!"))
		return
	}

	fmt.Fprintf(c.out, "\n%s\n", color.RedString("Conformance run failed."))
	if run.AgentStderr != "" {
		fmt.Fprintf(c.out, "\nAgent stderr:\n%s\n", run.AgentStderr)
	}
}
