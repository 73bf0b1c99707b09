package acp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/acpkit/acp-conform/internal/logs"
	"github.com/acpkit/acp-conform/pkg/acp/messages"
	"github.com/acpkit/acp-conform/pkg/acp/ports"
	"github.com/acpkit/acp-conform/pkg/acperrs"
)

// NotificationObserver receives unsolicited notifications observed
// while a call is waiting for its reply. Observers must not call back
// into the client.
type NotificationObserver func(n messages.Notification)

// Client correlates requests with replies over a transport.
// It owns the outgoing id counter and the notion of which id the
// current call is waiting for. Not safe for concurrent use; the
// protocol model is one call in flight at a time.
type Client struct {
	transport ports.Transport
	observer  NotificationObserver
	timeout   time.Duration
	nextID    int64
	log       *logrus.Logger
}

// NewClient creates a client over the given transport.
func NewClient(transport ports.Transport, opts ...ClientOption) *Client {
	c := &Client{
		transport: transport,
		nextID:    1,
		log:       logs.NewLogger("client"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithNotificationObserver surfaces interleaved notifications, for
// example to display streamed partial output.
func WithNotificationObserver(observer NotificationObserver) ClientOption {
	return func(c *Client) { c.observer = observer }
}

// WithCallTimeout bounds how long a single call may wait for its
// reply. Zero keeps the base behavior of blocking indefinitely.
// Expiry is reported as a timeout error, never as connection_closed.
func WithCallTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { c.timeout = timeout }
}

// WithLogger overrides the client's trace logger.
func WithLogger(log *logrus.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// Connect establishes the underlying transport connection.
func (c *Client) Connect(ctx context.Context) error {
	return c.transport.Connect(ctx)
}

// Close tears down the underlying transport.
func (c *Client) Close() error {
	return c.transport.Close()
}

// Stderr returns buffered peer diagnostics for failure reporting.
func (c *Client) Stderr() string {
	return c.transport.Stderr()
}

// Call issues one JSON-RPC request and blocks until the reply with the
// matching id arrives. Ids start at 1 and increment per call; an id is
// consumed even when the call fails, so ids are never reused within a
// run. Error replies are returned normally: they are a valid protocol
// outcome, and judging their contents belongs to the caller.
func (c *Client) Call(ctx context.Context, method string, params any) (messages.Response, error) {
	id := c.nextID
	c.nextID++

	frame, err := messages.EncodeRequest(id, method, params)
	if err != nil {
		return nil, err
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.transport.WriteLine(callCtx, frame); err != nil {
		return nil, c.wrapCallError(ctx, callCtx, method, err)
	}

	for {
		reply, err := c.readOne(callCtx, id)
		if err != nil {
			return nil, c.wrapCallError(ctx, callCtx, method, err)
		}
		if reply != nil {
			return reply, nil
		}
	}
}

// readOne pulls one frame and classifies it against the pending id.
// Returns (nil, nil) when the frame did not satisfy the call and the
// loop should keep waiting.
func (c *Client) readOne(ctx context.Context, id int64) (messages.Response, error) {
	line, err := c.transport.ReadLine(ctx)
	if err != nil {
		return nil, err
	}

	msg, err := messages.Decode(line)
	if err != nil {
		return nil, err
	}

	switch m := msg.(type) {
	case messages.SuccessResponse:
		if m.ID == id {
			return m, nil
		}
		c.log.Debugf("discarding stale result for id %d while waiting on %d", m.ID, id)
	case messages.ErrorResponse:
		if m.ID == id {
			return m, nil
		}
		c.log.Debugf("discarding stale error for id %d while waiting on %d", m.ID, id)
	case messages.Notification:
		if c.observer != nil {
			c.observer(m)
		}
	case messages.Request:
		// Peer-initiated requests (e.g. fs/read_text_file) are out of
		// scope for this harness; they never satisfy the pending call.
		c.log.Debugf("discarding peer request %q (id %d)", m.Method, m.ID)
	case messages.Unknown:
		c.log.Debugf("discarding unrecognized frame: %s", m.Raw)
	}

	return nil, nil
}

// wrapCallError distinguishes per-call timeout expiry from caller
// cancellation and tags transport failures with the method name.
func (c *Client) wrapCallError(ctx, callCtx context.Context, method string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) && callCtx.Err() != nil && ctx.Err() == nil {
		return acperrs.NewTransportError(
			acperrs.ErrCodeTimeout,
			fmt.Sprintf("call %q timed out after %s", method, c.timeout),
			err,
		)
	}

	return err
}
