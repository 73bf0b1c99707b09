// Package agentproc implements the subprocess transport adapter.
//
// This adapter implements the Transport port by spawning the agent
// under test and speaking newline-delimited JSON-RPC over its stdin
// and stdout. The agent's stderr is drained into a bounded buffer and
// only surfaced reactively when a failure is being reported, so the
// harness never blocks on two streams at once.
package agentproc

import (
	"bufio"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/acpkit/acp-conform/internal/logs"
	"github.com/acpkit/acp-conform/pkg/acp/ports"
)

// Adapter implements ports.Transport using an agent subprocess.
type Adapter struct {
	command string
	args    []string
	cwd     string
	env     map[string]string

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser
	reader *bufio.Reader

	ready  bool
	reaped bool
	mu     sync.Mutex

	stderrBuf strings.Builder
	stderrMu  sync.Mutex

	log *logrus.Logger
}

// Verify interface compliance at compile time.
var _ ports.Transport = (*Adapter)(nil)

// stderr capture is bounded so a chatty agent cannot grow the harness
// without limit; diagnostics older than the cap are dropped head-first.
const maxStderrBuffer = 64 * 1024

// NewAdapter creates a transport for the given agent command line.
// The process is not started until Connect.
func NewAdapter(command string, args []string, opts ...Option) *Adapter {
	a := &Adapter{
		command: command,
		args:    args,
		log:     logs.NewLogger("agentproc"),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithCwd sets the working directory the agent is launched in.
func WithCwd(cwd string) Option {
	return func(a *Adapter) { a.cwd = cwd }
}

// WithEnv adds environment variables to the agent process.
func WithEnv(env map[string]string) Option {
	return func(a *Adapter) { a.env = env }
}

// WithLogger overrides the adapter's trace logger.
func WithLogger(log *logrus.Logger) Option {
	return func(a *Adapter) { a.log = log }
}
