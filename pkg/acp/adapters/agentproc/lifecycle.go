package agentproc

// Close terminates the agent process and reaps it.
// Called on every scenario exit path: success, step failure, or fault.
// Idempotent so deferred and explicit closes can coexist.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.reaped {
		return nil
	}
	a.reaped = true
	a.ready = false

	// Close stdin first so a well-behaved agent can exit on its own.
	if a.stdin != nil {
		_ = a.stdin.Close()
	}

	// Kill whatever is still running and always wait, so the process
	// is reaped before the harness exits.
	if a.cmd != nil && a.cmd.Process != nil {
		_ = a.cmd.Process.Kill()
		_ = a.cmd.Wait()
		a.log.Debugf("agent reaped (pid %d)", a.cmd.Process.Pid)
	}

	return nil
}
