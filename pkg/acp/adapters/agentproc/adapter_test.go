package agentproc

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/acpkit/acp-conform/pkg/acperrs"
)

func TestAdapter_Loopback(t *testing.T) {
	// cat echoes stdin to stdout, so any frame written comes straight
	// back: enough to exercise spawn, write, framed read, and teardown.
	adapter := NewAdapter("cat", nil)
	ctx := context.Background()

	if err := adapter.Connect(ctx); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer func() {
		_ = adapter.Close()
	}()

	frame := []byte(`{"jsonrpc":"2.0","id":1,"result":{"ok":true}}`)
	if err := adapter.WriteLine(ctx, frame); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	line, err := adapter.ReadLine(ctx)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(line) != string(frame) {
		t.Errorf("expected %s, got %s", frame, line)
	}

	if err := adapter.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}
	// Second close must be a no-op, not a double kill/wait.
	if err := adapter.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}
}

func TestAdapter_ConnectionClosed(t *testing.T) {
	// true exits immediately without writing anything.
	adapter := NewAdapter("true", nil)
	ctx := context.Background()

	if err := adapter.Connect(ctx); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer func() {
		_ = adapter.Close()
	}()

	_, err := adapter.ReadLine(ctx)
	if err == nil {
		t.Fatal("expected error reading from exited process")
	}
	if !acperrs.IsConnectionClosed(err) {
		t.Errorf("expected connection_closed, got %v", err)
	}
}

func TestAdapter_SpawnFailure(t *testing.T) {
	adapter := NewAdapter("/nonexistent/agent-binary", nil)

	err := adapter.Connect(context.Background())
	if err == nil {
		_ = adapter.Close()
		t.Fatal("expected spawn failure")
	}
	if acperrs.CodeOf(err) != acperrs.ErrCodeProcessSpawnFailed {
		t.Errorf("expected process_spawn_failed, got %v", acperrs.CodeOf(err))
	}
}

func TestAdapter_StderrCapture(t *testing.T) {
	adapter := NewAdapter("sh", []string{"-c", "echo boom >&2; cat"})
	ctx := context.Background()

	if err := adapter.Connect(ctx); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer func() {
		_ = adapter.Close()
	}()

	// Diagnostics are collected in the background; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(adapter.Stderr(), "boom") {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Errorf("expected stderr buffer to contain diagnostics, got %q", adapter.Stderr())
}

func TestAdapter_ReadBeforeConnect(t *testing.T) {
	adapter := NewAdapter("cat", nil)

	if _, err := adapter.ReadLine(context.Background()); err == nil {
		t.Error("expected error reading before connect")
	}
	if err := adapter.WriteLine(context.Background(), []byte("{}")); err == nil {
		t.Error("expected error writing before connect")
	}
}
