package agentproc

import (
	"context"
	"errors"
	"io"

	"github.com/acpkit/acp-conform/pkg/acperrs"
)

// WriteLine sends one frame to the agent's stdin. The pipe is
// unbuffered, so the write is visible to the peer immediately.
func (a *Adapter) WriteLine(ctx context.Context, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.ready {
		return acperrs.NewTransportError(
			acperrs.ErrCodeWriteFailed, "transport not connected", nil)
	}

	errChan := make(chan error, 1)

	go func() {
		frame := make([]byte, 0, len(data)+1)
		frame = append(frame, data...)
		frame = append(frame, '\n')

		_, err := a.stdin.Write(frame)
		errChan <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errChan:
		if err != nil {
			return acperrs.NewTransportError(
				acperrs.ErrCodeWriteFailed, "write to agent stdin failed", err)
		}

		a.log.Debugf("-> %s", data)

		return nil
	}
}

// ReadLine blocks until one full frame is available on the agent's
// stdout. End of input maps to connection_closed: the peer exited or
// closed its stream, which must propagate rather than be swallowed.
func (a *Adapter) ReadLine(ctx context.Context) ([]byte, error) {
	a.mu.Lock()
	if !a.ready {
		a.mu.Unlock()

		return nil, acperrs.NewTransportError(
			acperrs.ErrCodeReadFailed, "transport not connected", nil)
	}
	reader := a.reader
	a.mu.Unlock()

	type result struct {
		data []byte
		err  error
	}
	resultChan := make(chan result, 1)

	go func() {
		line, err := reader.ReadBytes('\n')
		resultChan <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		return a.finishRead(res.data, res.err)
	}
}

func (a *Adapter) finishRead(line []byte, err error) ([]byte, error) {
	switch {
	case err == nil:
		trimmed := trimFrame(line)
		a.log.Debugf("<- %s", trimmed)

		return trimmed, nil
	case errors.Is(err, io.EOF) && len(line) > 0:
		// A final unterminated frame still counts as a frame; the
		// closed stream surfaces on the next read.
		trimmed := trimFrame(line)
		a.log.Debugf("<- %s (eof)", trimmed)

		return trimmed, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrClosedPipe):
		return nil, acperrs.NewTransportError(
			acperrs.ErrCodeConnectionClosed,
			"agent closed connection",
			err,
		)
	default:
		return nil, acperrs.NewTransportError(
			acperrs.ErrCodeReadFailed, "read from agent stdout failed", err)
	}
}

func trimFrame(line []byte) []byte {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}

	return line
}
