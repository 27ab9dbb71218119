package seqz

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key View and Feed events.
type MetricsProvider interface {
	// OnChangeForwarded is called after a View delivered a translated change.
	// subChanges is the batch size, duration covers translation and delivery.
	OnChangeForwarded(subChanges int, duration time.Duration)

	// OnPropagationFailure is called when a View rejects a source change.
	OnPropagationFailure(kind Kind)

	// OnFeedStateChange is called when a Feed transitions between states.
	OnFeedStateChange(from, to FeedState)

	// OnFeedApplySuccess is called when a document is applied to the list.
	OnFeedApplySuccess(duration time.Duration)

	// OnFeedApplyFailure is called when processing fails.
	// Stage is "decode" or "validate".
	OnFeedApplyFailure(stage string, duration time.Duration)

	// OnFeedChangeReceived is called when raw data is received from the watcher.
	OnFeedChangeReceived()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnChangeForwarded(_ int, _ time.Duration)     {}
func (NoOpMetricsProvider) OnPropagationFailure(_ Kind)                  {}
func (NoOpMetricsProvider) OnFeedStateChange(_, _ FeedState)             {}
func (NoOpMetricsProvider) OnFeedApplySuccess(_ time.Duration)           {}
func (NoOpMetricsProvider) OnFeedApplyFailure(_ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnFeedChangeReceived()                        {}
