package seqz

// Observable is an ordered sequence that notifies listeners of structural
// changes. Both List and View implement it, so consumers never need to know
// whether a mapping is interposed.
//
// Implementations are not safe for concurrent use. Mutations, notification
// delivery and listener callbacks all belong to one goroutine.
type Observable[T any] interface {
	// Len returns the current number of elements.
	Len() int

	// Get returns the element at i, or an error matching ErrIndexOutOfRange
	// when i is outside [0, Len()).
	Get(i int) (T, error)

	// AddListener registers fn to receive every subsequent Change. Delivery
	// is synchronous, on the mutating caller's stack, after Len and Get
	// already reflect the mutation.
	AddListener(fn Listener[T]) Subscription

	// RemoveListener unregisters a subscription. Unknown or already removed
	// subscriptions are ignored.
	RemoveListener(s Subscription)
}

// Listener receives change notifications. The Change cursor is rewound
// before each call.
type Listener[T any] func(c *Change[T])

// Subscription identifies a registered listener.
type Subscription struct {
	tok *token
}

// Valid reports whether the subscription was issued by an Observable.
func (s Subscription) Valid() bool {
	return s.tok != nil
}

type token struct{ _ byte }
