package seqz

import (
	"context"
	"errors"
	"fmt"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// View presents every element of a source Observable through a mapping
// function without storing mapped values. Index i of the view is fn applied
// to index i of the source, evaluated on every Get.
//
// A View is itself an Observable, so views chain:
//
//	titles, _ := seqz.Map(entries, func(e Entry) string { return e.Title })
//	upper, _ := seqz.Map(titles, strings.ToUpper)
//
// Every source change is translated and forwarded to the view's listeners
// synchronously, on the mutating caller's stack. The owner must call Close
// once the view is no longer needed to release the source subscription.
type View[S, T any] struct {
	source Observable[S]
	fn     func(S) T
	sub    Subscription

	listeners listeners[T]
	state     State
	lastError error

	name    string
	clock   clockz.Clock
	metrics MetricsProvider
}

// Map creates a View of source through fn and subscribes it to source.
// It returns an error matching ErrConstruction when either is nil.
func Map[S, T any](source Observable[S], fn func(S) T) (*View[S, T], error) {
	if source == nil {
		return nil, fmt.Errorf("%w: nil source", ErrConstruction)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: nil mapping function", ErrConstruction)
	}

	v := &View[S, T]{
		source: source,
		fn:     fn,
		state:  StateSubscribed,
		name:   "view",
		clock:  clockz.RealClock,
	}
	v.sub = source.AddListener(v.onSourceChange)

	capitan.Emit(context.Background(), ViewCreated,
		KeySize.Field(source.Len()),
	)

	return v, nil
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Name sets the identifier attached to the view's signals.
func (v *View[S, T]) Name(name string) *View[S, T] {
	v.name = name
	return v
}

// Clock sets the clock used to time change translation for metrics.
func (v *View[S, T]) Clock(clock clockz.Clock) *View[S, T] {
	v.clock = clock
	return v
}

// Metrics sets a metrics provider for observability integration.
func (v *View[S, T]) Metrics(provider MetricsProvider) *View[S, T] {
	v.metrics = provider
	return v
}

// -----------------------------------------------------------------------------
// Observable
// -----------------------------------------------------------------------------

// Len returns the source length.
func (v *View[S, T]) Len() int {
	return v.source.Len()
}

// Get returns fn applied to the source element at i. Nothing is cached:
// each call reads the source and invokes fn once.
func (v *View[S, T]) Get(i int) (T, error) {
	var zero T
	if n := v.source.Len(); i < 0 || i >= n {
		return zero, indexError(i, n)
	}
	s, err := v.source.Get(i)
	if err != nil {
		return zero, fmt.Errorf("view %s: %w", v.name, err)
	}
	return v.fn(s), nil
}

// AddListener registers fn for translated changes.
func (v *View[S, T]) AddListener(fn Listener[T]) Subscription {
	return v.listeners.add(fn)
}

// RemoveListener unregisters s.
func (v *View[S, T]) RemoveListener(s Subscription) {
	v.listeners.remove(s)
}

// SourceIndex maps a view index to the source index. A View never filters
// or reorders, so this is the identity.
func (v *View[S, T]) SourceIndex(i int) int {
	return i
}

// RootIndex resolves a view index through any chain of views down to the
// index in the innermost non-view source.
func (v *View[S, T]) RootIndex(i int) int {
	idx := v.SourceIndex(i)
	if inner, ok := v.source.(interface{ RootIndex(int) int }); ok {
		return inner.RootIndex(idx)
	}
	return idx
}

// Source returns the observed sequence.
func (v *View[S, T]) Source() Observable[S] {
	return v.source
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// State returns the subscription state.
func (v *View[S, T]) State() State {
	return v.state
}

// LastError returns the propagation error that broke the view, or nil.
func (v *View[S, T]) LastError() error {
	return v.lastError
}

// Close releases the source subscription. Later source changes are neither
// observed nor forwarded. Calling Close again does nothing.
func (v *View[S, T]) Close() {
	if v.state == StateUnsubscribed {
		return
	}
	v.source.RemoveListener(v.sub)
	v.state = StateUnsubscribed

	capitan.Emit(context.Background(), ViewClosed,
		KeyName.Field(v.name),
	)
}

// onSourceChange translates a source notification and fans it out. A change
// that contradicts the source panics with the *PropagationError so the
// mutating caller sees it; a view that went out of sync cannot recover.
func (v *View[S, T]) onSourceChange(c *Change[S]) {
	if v.state == StateUnsubscribed {
		return
	}
	start := v.clock.Now()

	out, err := Translate(c, Observable[T](v), v.fn)
	if err != nil {
		v.fail(err)
		panic(err)
	}

	v.listeners.fire(out)
	if v.metrics != nil {
		v.metrics.OnChangeForwarded(out.Len(), v.clock.Since(start))
	}
}

func (v *View[S, T]) fail(err error) {
	v.lastError = err

	var perr *PropagationError
	if !errors.As(err, &perr) {
		capitan.Emit(context.Background(), ViewPropagationFailed,
			KeyName.Field(v.name),
			KeyError.Field(err.Error()),
		)
		return
	}
	capitan.Emit(context.Background(), ViewPropagationFailed,
		KeyName.Field(v.name),
		KeyError.Field(err.Error()),
		KeyKind.Field(perr.Kind.String()),
		KeyFrom.Field(perr.From),
		KeyTo.Field(perr.To),
		KeySize.Field(perr.Size),
	)
	if v.metrics != nil {
		v.metrics.OnPropagationFailure(perr.Kind)
	}
}
