package seqz

import "sync"

// ring is a thread-safe bounded buffer keeping the most recent values.
// A nil ring accepts pushes and reports nothing.
type ring[T any] struct {
	mu    sync.RWMutex
	buf   []T
	next  int
	count int
}

// newRing creates a ring holding up to size values, or nil when size <= 0.
func newRing[T any](size int) *ring[T] {
	if size <= 0 {
		return nil
	}
	return &ring[T]{buf: make([]T, size)}
}

func (r *ring[T]) push(v T) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[r.next] = v
	r.next = (r.next + 1) % len(r.buf)
	r.count = min(r.count+1, len(r.buf))
}

func (r *ring[T]) reset() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.buf)
	r.next = 0
	r.count = 0
}

// values returns the retained values, oldest first.
func (r *ring[T]) values() []T {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}
	out := make([]T, 0, r.count)
	oldest := (r.next - r.count + len(r.buf)) % len(r.buf)
	for i := range r.count {
		out = append(out, r.buf[(oldest+i)%len(r.buf)])
	}
	return out
}
