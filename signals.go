package seqz

import "github.com/zoobzio/capitan"

// View lifecycle signals.
var (
	// ViewCreated is emitted when a View subscribes to its source.
	ViewCreated = capitan.NewSignal(
		"seqz.view.created",
		"View subscribed to its source",
	)

	// ViewClosed is emitted when a View releases its source subscription.
	ViewClosed = capitan.NewSignal(
		"seqz.view.closed",
		"View unsubscribed from its source",
	)

	// ViewPropagationFailed is emitted when a source notification cannot be
	// translated because it contradicts the source's size.
	ViewPropagationFailed = capitan.NewSignal(
		"seqz.view.propagation.failed",
		"Source change inconsistent with source size",
	)
)

// Feed lifecycle signals.
var (
	// FeedStarted is emitted when a Feed begins watching.
	FeedStarted = capitan.NewSignal(
		"seqz.feed.started",
		"Feed watching started",
	)

	// FeedStopped is emitted when a Feed stops watching.
	FeedStopped = capitan.NewSignal(
		"seqz.feed.stopped",
		"Feed watching stopped",
	)

	// FeedStateChanged is emitted when a Feed transitions between states.
	FeedStateChanged = capitan.NewSignal(
		"seqz.feed.state.changed",
		"Feed state transition",
	)
)

// Feed document processing signals.
var (
	// FeedChangeReceived is emitted when raw data is received from the watcher.
	FeedChangeReceived = capitan.NewSignal(
		"seqz.feed.change.received",
		"Raw document received from watcher",
	)

	// FeedDecodeFailed is emitted when a document cannot be decoded.
	FeedDecodeFailed = capitan.NewSignal(
		"seqz.feed.decode.failed",
		"Document decoding failed",
	)

	// FeedValidationFailed is emitted when a decoded element fails validation.
	FeedValidationFailed = capitan.NewSignal(
		"seqz.feed.validation.failed",
		"Element validation failed",
	)

	// FeedApplySucceeded is emitted when a document has been applied to the list.
	FeedApplySucceeded = capitan.NewSignal(
		"seqz.feed.apply.succeeded",
		"Document applied to list",
	)
)
