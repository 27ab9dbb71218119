package testing

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/seqz"
)

func TestRecorder(t *testing.T) {
	list := seqz.NewList("a", "b")
	r := Record[string](t, list)

	list.Append("c")
	list.Remove(0)
	list.Reverse()

	if r.Len() != 3 {
		t.Fatalf("expected 3 changes, got %d", r.Len())
	}
	RequireKinds(t, r, seqz.Added, seqz.Removed, seqz.Permutated)
	if r.Last().List() != seqz.Observable[string](list) {
		t.Error("expected last change to describe the list")
	}

	r.Reset()
	if r.Len() != 0 || r.Last() != nil {
		t.Error("expected empty recorder after Reset")
	}
}

func TestRecorder_Detach(t *testing.T) {
	list := seqz.NewList(1)
	r := Record[int](t, list)

	r.Detach()
	r.Detach()
	list.Append(2)

	if r.Len() != 0 {
		t.Errorf("expected nothing recorded after Detach, got %d", r.Len())
	}
}

func TestRecorder_BatchFlattensKinds(t *testing.T) {
	list := seqz.NewList(1, 2, 3)
	r := Record[int](t, list)

	list.Batch(func(l *seqz.List[int]) {
		l.Set(0, 9)
		l.Update(1, 2)
	})

	if r.Len() != 1 {
		t.Fatalf("expected one batched change, got %d", r.Len())
	}
	RequireKinds(t, r, seqz.Replaced, seqz.Updated)
}

func TestRequireItems(t *testing.T) {
	list := seqz.NewList("knuth84", "lamport78")
	view, err := seqz.Map(seqz.Observable[string](list), strings.ToUpper)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	defer view.Close()

	RequireItems(t, seqz.Observable[string](view), "KNUTH84", "LAMPORT78")
}

func TestWaitFor(t *testing.T) {
	t.Run("condition met immediately", func(t *testing.T) {
		result := WaitFor(t, 100*time.Millisecond, func() bool {
			return true
		})
		if !result {
			t.Error("expected WaitFor to return true")
		}
	})

	t.Run("condition never met", func(t *testing.T) {
		result := WaitFor(t, 50*time.Millisecond, func() bool {
			return false
		})
		if result {
			t.Error("expected WaitFor to return false on timeout")
		}
	})

	t.Run("condition met after delay", func(t *testing.T) {
		start := time.Now()
		var met atomic.Bool
		go func() {
			time.Sleep(30 * time.Millisecond)
			met.Store(true)
		}()
		result := WaitFor(t, 200*time.Millisecond, met.Load)
		if !result {
			t.Error("expected WaitFor to return true")
		}
		if time.Since(start) < 30*time.Millisecond {
			t.Error("condition should have taken at least 30ms")
		}
	})
}

func TestWaitForState(t *testing.T) {
	f, _, ch := NewTestFeed(t)

	ch <- []byte(`[{"key": "knuth84", "year": 1984}]`)
	StartFeed(t, f)

	if !WaitForState(t, f, seqz.FeedHealthy, 100*time.Millisecond) {
		t.Error("expected feed to reach healthy state")
	}
}

func TestRequireState(t *testing.T) {
	f, _, ch := NewTestFeed(t)

	ch <- []byte("- key: knuth84\n  year: 1984\n")
	StartFeed(t, f)

	// Should not fail for correct state.
	RequireState(t, f, seqz.FeedHealthy)
}

func TestNewTestFeed(t *testing.T) {
	f, list, ch := NewTestFeed(t)
	r := Record[Entry](t, list)

	ch <- []byte("- key: knuth84\n  year: 1984\n- key: lamport78\n  year: 1978\n")
	StartFeed(t, f)

	ch <- []byte("- key: knuth84\n  year: 1984\n")
	if !f.Process(t.Context()) {
		t.Fatal("expected a second document")
	}

	RequireKinds(t, r, seqz.Added, seqz.Removed)
	RequireItems(t, seqz.Observable[Entry](list), Entry{Key: "knuth84", Year: 1984})
}

func TestEntry_Validation(t *testing.T) {
	f, _, ch := NewTestFeed(t)

	ch <- []byte("- key: knuth84\n  year: 84\n")
	if err := f.Start(t.Context()); err == nil {
		t.Error("expected a two-digit year to be rejected")
	}
	RequireState(t, f, seqz.FeedEmpty)
}
