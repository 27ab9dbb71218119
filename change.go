package seqz

import (
	"fmt"
	"iter"
	"strings"
)

// Kind identifies the shape of an elementary sub-change.
type Kind int

const (
	// Added means the range [From, To) is newly present.
	Added Kind = iota

	// Removed means the elements formerly at [From, To) are gone. The
	// sub-change carries a snapshot of them.
	Removed

	// Replaced is a removal immediately followed by an addition at the same
	// position. [From, To) is the added range; Removed holds the old values.
	Replaced

	// Updated means the values in [From, To) changed in place.
	Updated

	// Permutated means the elements in [From, To) were reordered.
	Permutated
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Replaced:
		return "replaced"
	case Updated:
		return "updated"
	case Permutated:
		return "permutated"
	default:
		return "unknown"
	}
}

// SubChange is one atomic structural change inside a Change batch.
type SubChange[T any] struct {
	Kind Kind
	From int
	To   int

	// Removed is the snapshot of removed values for Removed and Replaced
	// sub-changes, nil otherwise.
	Removed []T

	// perm[i-From] is the new index of the element formerly at index i.
	perm []int
}

// NewAdded describes elements inserted at [from, to).
func NewAdded[T any](from, to int) SubChange[T] {
	return SubChange[T]{Kind: Added, From: from, To: to}
}

// NewRemoved describes removal of the given values starting at from.
func NewRemoved[T any](from int, removed []T) SubChange[T] {
	return SubChange[T]{Kind: Removed, From: from, To: from + len(removed), Removed: removed}
}

// NewReplaced describes the values removed at from being replaced by the
// elements now at [from, to).
func NewReplaced[T any](from, to int, removed []T) SubChange[T] {
	return SubChange[T]{Kind: Replaced, From: from, To: to, Removed: removed}
}

// NewUpdated describes an in-place update of [from, to).
func NewUpdated[T any](from, to int) SubChange[T] {
	return SubChange[T]{Kind: Updated, From: from, To: to}
}

// NewPermutated describes a reordering of [from, from+len(perm)), where
// perm[k] is the new index of the element formerly at from+k.
// The table is retained, not copied.
func NewPermutated[T any](from int, perm []int) SubChange[T] {
	return SubChange[T]{Kind: Permutated, From: from, To: from + len(perm), perm: perm}
}

// Permutation returns the new index of the element formerly at i. Indices
// outside the permutated range, and every index of non-permutated
// sub-changes, map to themselves.
func (s SubChange[T]) Permutation(i int) int {
	if s.Kind != Permutated || i < s.From || i >= s.To {
		return i
	}
	return s.perm[i-s.From]
}

// AddedSize is the number of elements added by an Added or Replaced sub-change.
func (s SubChange[T]) AddedSize() int {
	if s.Kind == Added || s.Kind == Replaced {
		return s.To - s.From
	}
	return 0
}

// RemovedSize is the number of elements removed by a Removed or Replaced sub-change.
func (s SubChange[T]) RemovedSize() int {
	if s.Kind == Removed || s.Kind == Replaced {
		return len(s.Removed)
	}
	return 0
}

// WasAdded reports whether elements were added, including by a replacement.
func (s SubChange[T]) WasAdded() bool { return s.AddedSize() > 0 }

// WasRemoved reports whether elements were removed, including by a replacement.
func (s SubChange[T]) WasRemoved() bool { return s.RemovedSize() > 0 }

// WasReplaced reports whether this is a Replaced sub-change.
func (s SubChange[T]) WasReplaced() bool { return s.Kind == Replaced }

// WasUpdated reports whether this is an Updated sub-change.
func (s SubChange[T]) WasUpdated() bool { return s.Kind == Updated }

// WasPermutated reports whether this is a Permutated sub-change.
func (s SubChange[T]) WasPermutated() bool { return s.Kind == Permutated }

func (s SubChange[T]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d,%d)", s.Kind, s.From, s.To)
	switch s.Kind {
	case Removed, Replaced:
		fmt.Fprintf(&b, " %v", s.Removed)
	case Permutated:
		b.WriteString(" {")
		for i := s.From; i < s.To; i++ {
			if i > s.From {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%d->%d", i, s.Permutation(i))
		}
		b.WriteByte('}')
	}
	return b.String()
}

// Change is one notification batch: the ordered sub-changes produced by a
// single mutation of an Observable.
//
// A Change doubles as a restartable cursor:
//
//	for c.Next() {
//	    sub := c.Current()
//	    ...
//	}
//	c.Reset() // walk again
//
// Walking never alters the batch itself. Listeners always receive the cursor
// rewound to the start.
type Change[T any] struct {
	list   Observable[T]
	subs   []SubChange[T]
	cursor int
}

// NewChange builds a notification describing subs on list. list must
// already reflect the mutation.
func NewChange[T any](list Observable[T], subs ...SubChange[T]) *Change[T] {
	return &Change[T]{list: list, subs: subs, cursor: -1}
}

// List returns the sequence this notification describes.
func (c *Change[T]) List() Observable[T] {
	return c.list
}

// Next advances the cursor to the next sub-change, reporting whether one exists.
func (c *Change[T]) Next() bool {
	if c.cursor < len(c.subs) {
		c.cursor++
	}
	return c.cursor < len(c.subs)
}

// Reset rewinds the cursor so Next yields the first sub-change again.
func (c *Change[T]) Reset() {
	c.cursor = -1
}

// Current returns the sub-change under the cursor. It panics when Next has
// not been called or has returned false.
func (c *Change[T]) Current() SubChange[T] {
	if c.cursor < 0 || c.cursor >= len(c.subs) {
		panic("seqz: Change.Current called outside of a Next walk")
	}
	return c.subs[c.cursor]
}

// Len returns the number of sub-changes in the batch.
func (c *Change[T]) Len() int {
	return len(c.subs)
}

// At returns the i-th sub-change regardless of the cursor position.
func (c *Change[T]) At(i int) SubChange[T] {
	return c.subs[i]
}

// All iterates the sub-changes in order without touching the cursor.
func (c *Change[T]) All() iter.Seq[SubChange[T]] {
	return func(yield func(SubChange[T]) bool) {
		for _, s := range c.subs {
			if !yield(s) {
				return
			}
		}
	}
}

func (c *Change[T]) String() string {
	parts := make([]string, len(c.subs))
	for i, s := range c.subs {
		parts[i] = s.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
