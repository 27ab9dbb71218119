// Package testing provides test utilities and helpers for seqz lists, views
// and feeds.
package testing

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/zoobzio/seqz"
)

// Entry is a standard element type for testing feeds. Its validate tags
// reject records without a key and years outside four digits.
type Entry struct {
	Key   string `yaml:"key" json:"key" validate:"required"`
	Title string `yaml:"title" json:"title"`
	Year  int    `yaml:"year" json:"year" validate:"min=1000,max=9999"`
}

// Recorder captures every Change an Observable announces.
type Recorder[T any] struct {
	source  seqz.Observable[T]
	sub     seqz.Subscription
	changes []*seqz.Change[T]
}

// Record attaches a Recorder to o. The recorder detaches itself when the
// test finishes.
func Record[T any](t *testing.T, o seqz.Observable[T]) *Recorder[T] {
	t.Helper()
	r := &Recorder[T]{source: o}
	r.sub = o.AddListener(func(c *seqz.Change[T]) {
		r.changes = append(r.changes, c)
	})
	t.Cleanup(r.Detach)
	return r
}

// Detach stops recording. Safe to call more than once.
func (r *Recorder[T]) Detach() {
	r.source.RemoveListener(r.sub)
}

// Changes returns the recorded notifications in delivery order.
func (r *Recorder[T]) Changes() []*seqz.Change[T] {
	return r.changes
}

// Len returns the number of recorded notifications.
func (r *Recorder[T]) Len() int {
	return len(r.changes)
}

// Last returns the most recent notification, or nil.
func (r *Recorder[T]) Last() *seqz.Change[T] {
	if len(r.changes) == 0 {
		return nil
	}
	return r.changes[len(r.changes)-1]
}

// Kinds flattens every recorded sub-change into its kind.
func (r *Recorder[T]) Kinds() []seqz.Kind {
	var kinds []seqz.Kind
	for _, c := range r.changes {
		for sub := range c.All() {
			kinds = append(kinds, sub.Kind)
		}
	}
	return kinds
}

// Reset forgets everything recorded so far.
func (r *Recorder[T]) Reset() {
	r.changes = nil
}

// RequireItems fails the test immediately unless o holds exactly want.
func RequireItems[T comparable](t *testing.T, o seqz.Observable[T], want ...T) {
	t.Helper()
	got := make([]T, 0, o.Len())
	for i := range o.Len() {
		v, err := o.Get(i)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", i, err)
		}
		got = append(got, v)
	}
	if !slices.Equal(got, want) {
		t.Fatalf("expected items %v, got %v", want, got)
	}
}

// RequireKinds fails the test immediately unless the recorder saw exactly
// the given sub-change kinds, in order.
func RequireKinds[T any](t *testing.T, r *Recorder[T], want ...seqz.Kind) {
	t.Helper()
	if got := r.Kinds(); !slices.Equal(got, want) {
		t.Fatalf("expected kinds %v, got %v", want, got)
	}
}

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForState waits until the feed reaches the expected state or timeout occurs.
func WaitForState[T any](t *testing.T, f *seqz.Feed[T], expected seqz.FeedState, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return f.State() == expected
	})
}

// RequireState fails the test immediately if the feed is not in the expected state.
func RequireState[T any](t *testing.T, f *seqz.Feed[T], expected seqz.FeedState) {
	t.Helper()
	if got := f.State(); got != expected {
		t.Fatalf("expected state %s, got %s", expected, got)
	}
}

// NewTestFeed creates a sync-mode feed of Entry over a fresh list.
// Returns the feed, its list and a channel for sending documents.
func NewTestFeed(t *testing.T) (*seqz.Feed[Entry], *seqz.List[Entry], chan<- []byte) {
	t.Helper()
	ch := make(chan []byte, 10)
	list := seqz.NewList[Entry]()
	f := seqz.NewFeed(seqz.NewSyncChannelWatcher(ch), list).SyncMode()
	return f, list, ch
}

// StartFeed starts f and fails the test if the initial document is rejected.
func StartFeed[T any](t *testing.T, f *seqz.Feed[T]) {
	t.Helper()
	if err := f.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
}
