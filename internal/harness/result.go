package harness

import "time"

// StepResult records the outcome of one scenario step.
type StepResult struct {
	Index    int           `json:"index"`
	Name     string        `json:"name"`
	Method   string        `json:"method"`
	Passed   bool          `json:"passed"`
	Detail   string        `json:"detail,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// RunResult is the outcome of one conformance run.
// Steps holds results only for steps that were attempted: the scenario
// stops at the first failure, so a failed step is always the last one.
type RunResult struct {
	Steps       []StepResult `json:"steps"`
	Passed      bool         `json:"passed"`
	AgentStderr string       `json:"agent_stderr,omitempty"`

	// Facts gathered along the way, useful for reporting.
	ProtocolVersion any    `json:"protocol_version,omitempty"`
	AgentTitle      string `json:"agent_title,omitempty"`
	SessionID       string `json:"session_id,omitempty"`
	StopReason      string `json:"stop_reason,omitempty"`
	Notifications   int    `json:"notifications"`
}
