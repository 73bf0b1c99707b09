package agentproc

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/acpkit/acp-conform/pkg/acperrs"
)

// Connect spawns the agent process and wires up its three pipes.
// The stderr collector starts immediately so diagnostics written
// before the first request are not lost.
func (a *Adapter) Connect(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ready {
		return nil
	}

	a.cmd = exec.CommandContext(ctx, a.command, a.args...)
	a.cmd.Env = a.buildEnvironment()
	if a.cwd != "" {
		a.cmd.Dir = a.cwd
	}

	if err := a.setupPipes(); err != nil {
		return err
	}

	if err := a.cmd.Start(); err != nil {
		return acperrs.NewProcessError(
			acperrs.ErrCodeProcessSpawnFailed,
			"agent process failed to start",
			err, 0, "",
		).WithCommand(a.commandLine())
	}

	a.log.Debugf("started agent: %s (pid %d)", a.commandLine(), a.cmd.Process.Pid)

	go a.collectStderr()

	a.reader = bufio.NewReader(a.stdout)
	a.ready = true

	return nil
}

func (a *Adapter) buildEnvironment() []string {
	env := os.Environ()
	for k, v := range a.env {
		env = append(env, k+"="+v)
	}

	return env
}

func (a *Adapter) setupPipes() error {
	stdin, err := a.cmd.StdinPipe()
	if err != nil {
		return acperrs.NewProcessError(
			acperrs.ErrCodeProcessSpawnFailed, "stdin pipe failed", err, 0, "")
	}
	a.stdin = stdin

	stdout, err := a.cmd.StdoutPipe()
	if err != nil {
		return acperrs.NewProcessError(
			acperrs.ErrCodeProcessSpawnFailed, "stdout pipe failed", err, 0, "")
	}
	a.stdout = stdout

	stderr, err := a.cmd.StderrPipe()
	if err != nil {
		return acperrs.NewProcessError(
			acperrs.ErrCodeProcessSpawnFailed, "stderr pipe failed", err, 0, "")
	}
	a.stderr = stderr

	return nil
}

// collectStderr drains the agent's error stream into the bounded
// buffer. Draining continuously keeps the agent from blocking on a
// full stderr pipe while the buffer itself is only read reactively.
func (a *Adapter) collectStderr() {
	buf := make([]byte, 4096)
	for {
		n, err := a.stderr.Read(buf)
		if n > 0 {
			a.appendStderr(string(buf[:n]))
		}
		if err != nil {
			return
		}
	}
}

func (a *Adapter) appendStderr(chunk string) {
	a.stderrMu.Lock()
	defer a.stderrMu.Unlock()

	a.stderrBuf.WriteString(chunk)
	if a.stderrBuf.Len() > maxStderrBuffer {
		trimmed := a.stderrBuf.String()
		trimmed = trimmed[len(trimmed)-maxStderrBuffer:]
		a.stderrBuf.Reset()
		a.stderrBuf.WriteString(trimmed)
	}
}

func (a *Adapter) commandLine() string {
	if len(a.args) == 0 {
		return a.command
	}

	return a.command + " " + strings.Join(a.args, " ")
}

// Stderr returns a snapshot of the diagnostics buffered so far.
func (a *Adapter) Stderr() string {
	a.stderrMu.Lock()
	defer a.stderrMu.Unlock()

	return a.stderrBuf.String()
}
