// Package harness drives the fixed ACP conformance scenario against
// one agent process: initialize, session/new, session/prompt, and an
// intentionally invalid method. Each step runs exactly once; the first
// failure is conclusive and stops the run. The agent is always torn
// down and reaped before Run returns, whatever the outcome.
package harness

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/acpkit/acp-conform/internal/config"
	"github.com/acpkit/acp-conform/internal/logs"
	"github.com/acpkit/acp-conform/pkg/acp"
	"github.com/acpkit/acp-conform/pkg/acp/messages"
	"github.com/acpkit/acp-conform/pkg/acp/ports"
)

// Reporter receives progress events while the scenario runs.
type Reporter interface {
	// BeginStep announces a step before its request is written.
	BeginStep(index int, title string)
	// EndStep reports a completed step, passed or failed.
	EndStep(res StepResult)
	// AgentNotification surfaces an interleaved notification, with the
	// extracted message text when the update carried one.
	AgentNotification(method, text string)
}

// Runner executes the conformance scenario over one transport.
type Runner struct {
	client   *acp.Client
	scenario config.Scenario
	reporter Reporter
	log      *logrus.Logger

	result RunResult
}

// NewRunner builds a runner. The correlator is constructed here so the
// runner can observe notifications interleaved with replies.
func NewRunner(
	transport ports.Transport,
	scenario config.Scenario,
	timeout time.Duration,
	reporter Reporter,
) *Runner {
	r := &Runner{
		scenario: scenario,
		reporter: reporter,
		log:      logs.NewLogger("harness"),
	}

	r.client = acp.NewClient(
		transport,
		acp.WithNotificationObserver(r.observeNotification),
		acp.WithCallTimeout(timeout),
	)

	return r
}

// step is one entry of the fixed sequence.
type step struct {
	name   string
	method string
	run    func(ctx context.Context) (detail string, err error)
}

// Run launches the agent, executes the scenario, and always closes the
// transport before returning, so the peer process is reaped on every
// exit path.
func (r *Runner) Run(ctx context.Context) *RunResult {
	defer func() {
		if err := r.client.Close(); err != nil {
			r.log.Warnf("closing agent transport: %v", err)
		}
	}()

	if err := r.client.Connect(ctx); err != nil {
		r.result.Passed = false
		r.result.AgentStderr = r.client.Stderr()
		r.reporter.EndStep(r.failedStep(1, "launch agent", "", time.Duration(0), err))

		return &r.result
	}

	steps := []step{
		{name: "initialize", method: "initialize", run: r.stepInitialize},
		{name: "create session", method: "session/new", run: r.stepSessionNew},
		{name: "send prompt", method: "session/prompt", run: r.stepSessionPrompt},
		{name: "error handling (invalid method)", method: "invalid/method", run: r.stepInvalidMethod},
	}

	r.result.Passed = true
	for i, s := range steps {
		index := i + 1
		r.reporter.BeginStep(index, s.name)

		start := time.Now()
		detail, err := s.run(ctx)
		elapsed := time.Since(start)

		if err != nil {
			r.result.Passed = false
			r.result.AgentStderr = r.client.Stderr()
			r.reporter.EndStep(r.failedStep(index, s.name, s.method, elapsed, err))

			// The peer is already known non-conformant for this run;
			// later steps would only produce noise.
			break
		}

		res := StepResult{
			Index:    index,
			Name:     s.name,
			Method:   s.method,
			Passed:   true,
			Detail:   detail,
			Duration: elapsed,
		}
		r.result.Steps = append(r.result.Steps, res)
		r.reporter.EndStep(res)
	}

	return &r.result
}

func (r *Runner) failedStep(index int, name, method string, elapsed time.Duration, err error) StepResult {
	res := StepResult{
		Index:    index,
		Name:     name,
		Method:   method,
		Passed:   false,
		Error:    err.Error(),
		Duration: elapsed,
	}
	r.result.Steps = append(r.result.Steps, res)

	return res
}

// observeNotification runs while a call is blocked waiting for its
// reply. Progress updates carrying agent_message_chunk text are
// surfaced; everything else is reported by method name only.
func (r *Runner) observeNotification(n messages.Notification) {
	r.result.Notifications++

	text := ""
	if n.Method == "session/update" {
		var params struct {
			Update struct {
				SessionUpdate string `json:"sessionUpdate"`
				Content       struct {
					Text string `json:"text"`
				} `json:"content"`
			} `json:"update"`
		}
		if err := json.Unmarshal(n.Params, &params); err == nil &&
			params.Update.SessionUpdate == "agent_message_chunk" {
			text = truncate(params.Update.Content.Text, 100)
		}
	}

	r.reporter.AgentNotification(n.Method, text)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}
