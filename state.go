package seqz

// State represents the subscription state of a View.
type State int32

const (
	// StateSubscribed indicates the View is registered on its source and
	// forwards every change.
	StateSubscribed State = iota

	// StateUnsubscribed indicates the View released its source subscription.
	// There is no way back to StateSubscribed.
	StateUnsubscribed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateSubscribed:
		return "subscribed"
	case StateUnsubscribed:
		return "unsubscribed"
	default:
		return "unknown"
	}
}

// FeedState represents the current state of a Feed.
type FeedState int32

const (
	// FeedLoading indicates the Feed has not yet processed any document.
	FeedLoading FeedState = iota

	// FeedHealthy indicates the last document was applied to the list.
	FeedHealthy

	// FeedDegraded indicates the last document failed to decode or validate.
	// The list keeps the content of the previous valid document.
	FeedDegraded

	// FeedEmpty indicates the initial document failed and no valid document
	// has ever been applied. The Feed continues watching for valid updates.
	FeedEmpty
)

// String returns the string representation of the state.
func (s FeedState) String() string {
	switch s {
	case FeedLoading:
		return "loading"
	case FeedHealthy:
		return "healthy"
	case FeedDegraded:
		return "degraded"
	case FeedEmpty:
		return "empty"
	default:
		return "unknown"
	}
}
