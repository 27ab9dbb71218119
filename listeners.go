package seqz

// listeners is the fan-out registry shared by List and View.
//
// remove never mutates the backing array in place, so a fire in progress
// keeps walking the snapshot it started with. Registrations changed during a
// fire apply from the next notification on.
type listeners[T any] struct {
	entries []listenerEntry[T]
}

type listenerEntry[T any] struct {
	tok *token
	fn  Listener[T]
}

func (l *listeners[T]) add(fn Listener[T]) Subscription {
	tok := &token{}
	l.entries = append(l.entries, listenerEntry[T]{tok: tok, fn: fn})
	return Subscription{tok: tok}
}

func (l *listeners[T]) remove(s Subscription) bool {
	if s.tok == nil {
		return false
	}
	for i, e := range l.entries {
		if e.tok != s.tok {
			continue
		}
		next := make([]listenerEntry[T], 0, len(l.entries)-1)
		next = append(next, l.entries[:i]...)
		next = append(next, l.entries[i+1:]...)
		l.entries = next
		return true
	}
	return false
}

func (l *listeners[T]) len() int {
	return len(l.entries)
}

func (l *listeners[T]) fire(c *Change[T]) {
	snapshot := l.entries
	for _, e := range snapshot {
		c.Reset()
		e.fn(c)
	}
	c.Reset()
}
