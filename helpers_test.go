package seqz

import (
	"slices"
	"testing"
)

// changeLog records every notification an Observable delivers.
type changeLog[T any] struct {
	changes []*Change[T]
}

func record[T any](o Observable[T]) (*changeLog[T], Subscription) {
	log := &changeLog[T]{}
	sub := o.AddListener(func(c *Change[T]) {
		log.changes = append(log.changes, c)
	})
	return log, sub
}

// only returns the single recorded notification, failing otherwise.
func (l *changeLog[T]) only(t *testing.T) *Change[T] {
	t.Helper()
	if len(l.changes) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(l.changes))
	}
	return l.changes[0]
}

// contents reads every element of o through Get.
func contents[T any](t *testing.T, o Observable[T]) []T {
	t.Helper()
	out := make([]T, 0, o.Len())
	for i := range o.Len() {
		v, err := o.Get(i)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", i, err)
		}
		out = append(out, v)
	}
	return out
}

func requireContents[T comparable](t *testing.T, o Observable[T], want ...T) {
	t.Helper()
	if got := contents(t, o); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func requireSub[T comparable](t *testing.T, s SubChange[T], kind Kind, from, to int, removed ...T) {
	t.Helper()
	if s.Kind != kind || s.From != from || s.To != to {
		t.Fatalf("expected %s[%d,%d), got %s", kind, from, to, s)
	}
	if (kind == Removed || kind == Replaced) && !slices.Equal(s.Removed, removed) {
		t.Fatalf("expected removed %v, got %v", removed, s.Removed)
	}
}
