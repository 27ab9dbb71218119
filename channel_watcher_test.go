package seqz

import (
	"context"
	"testing"
	"time"
)

func TestChannelWatcher_ForwardsDocuments(t *testing.T) {
	src := make(chan []byte, 3)
	src <- []byte("- a")
	src <- []byte("- b")
	src <- []byte("- c")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, err := NewChannelWatcher(src).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	for i, want := range []string{"- a", "- b", "- c"} {
		select {
		case v := <-out:
			if string(v) != want {
				t.Errorf("expected %q, got %q", want, v)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("timeout waiting for document %d", i)
		}
	}
}

func TestChannelWatcher_ClosesWithSource(t *testing.T) {
	src := make(chan []byte, 1)
	src <- []byte("- a")
	close(src)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, err := NewChannelWatcher(src).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	<-out

	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected channel to be closed")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for channel close")
	}
}

func TestChannelWatcher_ClosesOnContextCancel(t *testing.T) {
	src := make(chan []byte)

	ctx, cancel := context.WithCancel(context.Background())
	out, err := NewChannelWatcher(src).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	cancel()

	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected channel to be closed")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for channel close")
	}
}

func TestChannelWatcher_CancelWhileBlockedOnSend(t *testing.T) {
	src := make(chan []byte)

	ctx, cancel := context.WithCancel(context.Background())
	out, err := NewChannelWatcher(src).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	go func() {
		src <- []byte("- a")
	}()
	// Let the relay pick the document up and block on the unread output.
	time.Sleep(20 * time.Millisecond)
	cancel()

	deadline := time.After(100 * time.Millisecond)
	for {
		select {
		case _, ok := <-out:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel did not close after context cancel")
		}
	}
}

func TestSyncChannelWatcher_ReturnsSource(t *testing.T) {
	src := make(chan []byte, 1)
	src <- []byte("- a")

	out, err := NewSyncChannelWatcher(src).Watch(context.Background())
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if v := <-out; string(v) != "- a" {
		t.Errorf("expected %q, got %q", "- a", v)
	}
}
