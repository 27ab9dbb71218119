package seqz

import "github.com/zoobzio/capitan"

// Field keys for View and Feed events.
var (
	// KeyName identifies the emitting View or Feed.
	KeyName = capitan.NewStringKey("name")

	// KeyState is the current state of a Feed.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyKind is the sub-change kind involved in a failure.
	KeyKind = capitan.NewStringKey("kind")

	// KeyFrom is the start of the sub-change range involved in a failure.
	KeyFrom = capitan.NewIntKey("from")

	// KeyTo is the end of the sub-change range involved in a failure.
	KeyTo = capitan.NewIntKey("to")

	// KeySize is the size of the observed sequence.
	KeySize = capitan.NewIntKey("size")

	// KeyItems is the number of elements in an applied document.
	KeyItems = capitan.NewIntKey("items")

	// KeyDebounce is the configured debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")
)
