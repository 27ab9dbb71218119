package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/seqz"
	seqztest "github.com/zoobzio/seqz/testing"
)

// loop serializes list edits the way a UI event loop would.
type loop struct {
	mu sync.Mutex
}

func (l *loop) run(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestFeed_FileWatcher_InitialLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.yaml")
	writeFile(t, path, "- key: knuth84\n  title: Literate Programming\n  year: 1984\n")

	list := seqz.NewList[seqztest.Entry]()
	feed := seqz.NewFeed(seqz.NewFileWatcher(path), list).Debounce(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := feed.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	seqztest.RequireState(t, feed, seqz.FeedHealthy)
	seqztest.RequireItems(t, seqz.Observable[seqztest.Entry](list),
		seqztest.Entry{Key: "knuth84", Title: "Literate Programming", Year: 1984})
}

func TestFeed_FileWatcher_UpdatesView(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.json")
	writeFile(t, path, `[{"key": "knuth84", "year": 1984}]`)

	var el loop
	list := seqz.NewList[seqztest.Entry]()
	rows, err := seqz.Map(seqz.Observable[seqztest.Entry](list), func(e seqztest.Entry) string {
		return fmt.Sprintf("%s (%d)", e.Key, e.Year)
	})
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	defer rows.Close()

	var kinds []seqz.Kind
	rows.AddListener(func(c *seqz.Change[string]) {
		for sub := range c.All() {
			kinds = append(kinds, sub.Kind)
		}
	})

	feed := seqz.NewFeed(seqz.NewFileWatcher(path), list).
		Codec(seqz.JSONCodec{}).
		Debounce(10 * time.Millisecond).
		Dispatch(el.run)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := feed.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	writeFile(t, path, `[{"key": "knuth84", "year": 1984}, {"key": "lamport78", "year": 1978}]`)

	ok := waitFor(t, 2*time.Second, func() bool {
		var n int
		el.run(func() { n = rows.Len() })
		return n == 2
	})
	if !ok {
		t.Fatal("timeout waiting for the view to grow")
	}

	el.run(func() {
		v, err := rows.Get(1)
		if err != nil || v != "lamport78 (1978)" {
			t.Errorf("expected lamport78 (1978), got %q (%v)", v, err)
		}
		if len(kinds) != 2 || kinds[0] != seqz.Added || kinds[1] != seqz.Added {
			t.Errorf("expected two Added notifications, got %v", kinds)
		}
	})
}

func TestFeed_FileWatcher_InvalidUpdateDegrades(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.yaml")
	writeFile(t, path, "- key: knuth84\n  year: 1984\n")

	var el loop
	list := seqz.NewList[seqztest.Entry]()
	feed := seqz.NewFeed(seqz.NewFileWatcher(path), list).
		Debounce(10 * time.Millisecond).
		Dispatch(el.run)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := feed.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	writeFile(t, path, "- title: missing key\n  year: 1999\n")

	if !seqztest.WaitForState(t, feed, seqz.FeedDegraded, 2*time.Second) {
		t.Fatalf("expected degraded state, got %s", feed.State())
	}
	el.run(func() {
		if list.Len() != 1 {
			t.Errorf("expected previous entry kept, got %d entries", list.Len())
		}
	})

	writeFile(t, path, "- key: knuth84\n  year: 1984\n- key: dijkstra68\n  year: 1968\n")

	if !seqztest.WaitForState(t, feed, seqz.FeedHealthy, 2*time.Second) {
		t.Fatalf("expected recovery, got %s (%v)", feed.State(), feed.LastError())
	}
}

func TestFeed_FileWatcher_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.yaml")
	writeFile(t, path, "[]")

	stopped := make(chan seqz.FeedState, 1)
	feed := seqz.NewFeed(seqz.NewFileWatcher(path), seqz.NewList[seqztest.Entry]()).
		OnStop(func(s seqz.FeedState) { stopped <- s })

	ctx, cancel := context.WithCancel(context.Background())
	if err := feed.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cancel()

	select {
	case s := <-stopped:
		if s != seqz.FeedHealthy {
			t.Errorf("expected final state healthy, got %s", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for feed to stop")
	}
}
