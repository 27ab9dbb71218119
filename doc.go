/*
Package seqz provides observable sequences and lazy, index-preserving views
over them.

The core type is View, which presents every element of a source Observable
through a mapping function. Nothing mapped is ever stored: reading index i
applies the function to source element i at the moment of the call. Every
structural change of the source is re-announced by the view in the same
shape, so a list renderer downstream can apply an incremental update.

# Observables

An Observable is an ordered sequence that notifies listeners after each
mutation:

	type Observable[T any] interface {
	    Len() int
	    Get(i int) (T, error)
	    AddListener(fn Listener[T]) Subscription
	    RemoveListener(s Subscription)
	}

List is the mutable implementation shipped with the package. Both List and
View implement Observable, which is what makes views chain.

# Changes

One mutation produces one Change: an ordered batch of sub-changes, each
one of

  - Added: [From, To) is new; values are read through Get
  - Removed: the values formerly at [From, To), carried as a snapshot
  - Replaced: a snapshot of removed values plus the new range [From, To)
  - Updated: values in [From, To) changed in place; read them through Get
  - Permutated: [From, To) was reordered; Permutation(i) is the new index

A Change is a restartable cursor:

	list.AddListener(func(c *seqz.Change[Entry]) {
	    for c.Next() {
	        sub := c.Current()
	        switch sub.Kind {
	        case seqz.Added:
	            table.InsertRows(sub.From, sub.To)
	        case seqz.Removed:
	            table.DeleteRows(sub.From, sub.To)
	        }
	    }
	})

Use List.Batch to group several mutations into one Change.

# Views

	entries := seqz.NewList(Entry{Key: "knuth84"}, Entry{Key: "lamport78"})
	keys, err := seqz.Map(entries, func(e Entry) string { return e.Key })
	if err != nil {
	    return err
	}
	defer keys.Close()

	entries.Append(Entry{Key: "dijkstra68"}) // keys notifies Added [2, 3)

Translation is synchronous and depth-first through chains of views. A view
only evaluates the mapping function eagerly for removal snapshots, because
after the mutation the removed source elements are gone.

A source notification that contradicts the source's own size cannot be
mirrored. The view records it (LastError), emits ViewPropagationFailed and
panics with a *PropagationError on the mutating caller's stack.

# Concurrency

Lists and views are single-goroutine structures: mutations, notification
delivery and listener callbacks all belong to one goroutine, usually an
event loop. They carry no locks.

# Feeds

Feed keeps a List in step with an external document. A Watcher emits raw
bytes (FileWatcher uses fsnotify), a Codec decodes them into []T, elements
are validated with go-playground/validator struct tags, and the result is
applied to the list as one minimal edit. Feed.Dispatch routes the edit to
the goroutine that owns the list.

# Observability

Views and feeds emit capitan signals (ViewCreated, ViewClosed,
ViewPropagationFailed, FeedStateChanged, ...) and report to an optional
MetricsProvider.
*/
package seqz
