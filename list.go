package seqz

import (
	"fmt"
	"iter"
	"slices"
)

// List is a mutable Observable backed by a slice. Every mutation updates
// the storage first, then notifies listeners synchronously with one Change.
//
// List is not safe for concurrent use.
type List[T any] struct {
	items     []T
	listeners listeners[T]

	batchDepth int
	pending    []SubChange[T]
}

// NewList creates a List holding a copy of items.
func NewList[T any](items ...T) *List[T] {
	return &List[T]{items: slices.Clone(items)}
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Get returns the element at i.
func (l *List[T]) Get(i int) (T, error) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, indexError(i, len(l.items))
	}
	return l.items[i], nil
}

// All iterates index/element pairs in order.
func (l *List[T]) All() iter.Seq2[int, T] {
	return slices.All(l.items)
}

// Slice returns a copy of the current elements.
func (l *List[T]) Slice() []T {
	return slices.Clone(l.items)
}

// AddListener registers fn for subsequent changes.
func (l *List[T]) AddListener(fn Listener[T]) Subscription {
	return l.listeners.add(fn)
}

// RemoveListener unregisters s.
func (l *List[T]) RemoveListener(s Subscription) {
	l.listeners.remove(s)
}

// Append adds items at the end.
func (l *List[T]) Append(items ...T) {
	_ = l.Replace(len(l.items), len(l.items), items...) //nolint:errcheck // range is always valid
}

// Insert adds items before index i. i may equal Len().
func (l *List[T]) Insert(i int, items ...T) error {
	if i < 0 || i > len(l.items) {
		return fmt.Errorf("insert: %w", indexError(i, len(l.items)))
	}
	return l.Replace(i, i, items...)
}

// Set replaces the element at i and returns the previous value.
func (l *List[T]) Set(i int, v T) (T, error) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, fmt.Errorf("set: %w", indexError(i, len(l.items)))
	}
	old := l.items[i]
	return old, l.Replace(i, i+1, v)
}

// Remove deletes the element at i and returns it.
func (l *List[T]) Remove(i int) (T, error) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, fmt.Errorf("remove: %w", indexError(i, len(l.items)))
	}
	old := l.items[i]
	return old, l.Replace(i, i+1)
}

// RemoveRange deletes the elements in [from, to).
func (l *List[T]) RemoveRange(from, to int) error {
	return l.Replace(from, to)
}

// SetAll replaces the whole content with items.
func (l *List[T]) SetAll(items ...T) {
	_ = l.Replace(0, len(l.items), items...) //nolint:errcheck // range is always valid
}

// Clear removes every element.
func (l *List[T]) Clear() {
	_ = l.Replace(0, len(l.items)) //nolint:errcheck // range is always valid
}

// Replace swaps the elements in [from, to) for items. The notification is
// Added when nothing was removed, Removed when nothing was inserted and
// Replaced otherwise. Replacing nothing with nothing notifies nobody.
func (l *List[T]) Replace(from, to int, items ...T) error {
	if from < 0 || to < from || to > len(l.items) {
		return fmt.Errorf("replace: %w", rangeError(from, to, len(l.items)))
	}
	removed := slices.Clone(l.items[from:to])
	l.items = slices.Replace(l.items, from, to, items...)

	switch {
	case len(removed) == 0 && len(items) == 0:
		return nil
	case len(removed) == 0:
		l.notify(NewAdded[T](from, from+len(items)))
	case len(items) == 0:
		l.notify(NewRemoved(from, removed))
	default:
		l.notify(NewReplaced(from, from+len(items), removed))
	}
	return nil
}

// Update announces that the values in [from, to) changed in place, for
// element types whose contents the caller mutates directly.
func (l *List[T]) Update(from, to int) error {
	if from < 0 || to < from || to > len(l.items) {
		return fmt.Errorf("update: %w", rangeError(from, to, len(l.items)))
	}
	if from == to {
		return nil
	}
	l.notify(NewUpdated[T](from, to))
	return nil
}

// Permute reorders the whole list so the element at old index i moves to
// perm[i]. perm must be a bijection over [0, Len()).
func (l *List[T]) Permute(perm []int) error {
	if len(perm) != len(l.items) {
		return fmt.Errorf("%w: %d entries for %d elements", ErrInvalidPermutation, len(perm), len(l.items))
	}
	if i := badPermutationEntry(0, perm); i >= 0 {
		return fmt.Errorf("%w: entry %d maps to %d", ErrInvalidPermutation, i, perm[i])
	}
	if len(perm) == 0 {
		return nil
	}

	next := make([]T, len(l.items))
	for i, p := range perm {
		next[p] = l.items[i]
	}
	l.items = next
	l.notify(NewPermutated[T](0, slices.Clone(perm)))
	return nil
}

// Reverse reverses the list in place.
func (l *List[T]) Reverse() {
	n := len(l.items)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = n - 1 - i
	}
	_ = l.Permute(perm) //nolint:errcheck // reversal is always a bijection
}

// SortFunc stably sorts the list in place and notifies the resulting
// permutation.
func (l *List[T]) SortFunc(cmp func(a, b T) int) {
	order := make([]int, len(l.items))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp(l.items[a], l.items[b])
	})
	perm := make([]int, len(order))
	for newIdx, oldIdx := range order {
		perm[oldIdx] = newIdx
	}
	_ = l.Permute(perm) //nolint:errcheck // derived from a sort order, always a bijection
}

// Batch groups every mutation made inside fn into one Change. Sub-changes
// keep call order and each one describes the list as left by the previous
// one. Nested batches fold into the outermost.
//
// If fn panics, the mutations it already made are still announced while
// the outermost batch unwinds, before the panic continues.
func (l *List[T]) Batch(fn func(l *List[T])) {
	l.batchDepth++
	defer func() {
		l.batchDepth--
		if l.batchDepth > 0 || len(l.pending) == 0 {
			return
		}
		subs := l.pending
		l.pending = nil
		l.listeners.fire(NewChange[T](l, subs...))
	}()
	fn(l)
}

func (l *List[T]) notify(sub SubChange[T]) {
	if l.batchDepth > 0 {
		l.pending = append(l.pending, sub)
		return
	}
	l.listeners.fire(NewChange[T](l, sub))
}

// badPermutationEntry returns the index of the first entry of perm that
// breaks a bijection over [from, from+len(perm)), or -1.
func badPermutationEntry(from int, perm []int) int {
	seen := make([]bool, len(perm))
	for i, p := range perm {
		k := p - from
		if k < 0 || k >= len(perm) || seen[k] {
			return i
		}
		seen[k] = true
	}
	return -1
}
