package seqz

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction is returned when a view is built without a source or
	// without a mapping function.
	ErrConstruction = errors.New("seqz: invalid construction")

	// ErrIndexOutOfRange is returned when an index falls outside [0, Len()).
	ErrIndexOutOfRange = errors.New("seqz: index out of range")

	// ErrPropagation is the sentinel matched by *PropagationError.
	ErrPropagation = errors.New("seqz: inconsistent change notification")

	// ErrInvalidPermutation is returned by List.Permute for tables that are
	// not a bijection over the list's indices.
	ErrInvalidPermutation = errors.New("seqz: invalid permutation")
)

// PropagationError reports a source notification whose sub-change does not
// fit the source's post-mutation size. A view that hits one can no longer
// mirror its source.
type PropagationError struct {
	Kind Kind
	From int
	To   int
	Size int
}

func (e *PropagationError) Error() string {
	return fmt.Sprintf("seqz: %s sub-change [%d, %d) inconsistent with source size %d", e.Kind, e.From, e.To, e.Size)
}

// Unwrap allows errors.Is(err, ErrPropagation).
func (e *PropagationError) Unwrap() error {
	return ErrPropagation
}

func indexError(i, size int) error {
	return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, size)
}

func rangeError(from, to, size int) error {
	return fmt.Errorf("%w: range [%d, %d), size %d", ErrIndexOutOfRange, from, to, size)
}
