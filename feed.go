package seqz

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the default debounce duration for document processing.
const DefaultDebounce = 100 * time.Millisecond

// Feed keeps a List in step with an external document holding a sequence
// of T, such as a YAML or JSON file of records.
//
// Each document goes through:
//
//	Watcher → Decode → Validate → Edit list
//
// Elements are validated with go-playground/validator struct tags. If any
// step fails the list keeps its previous content and the Feed enters a
// degraded state while continuing to watch for valid documents. A valid
// document is applied as one Replace over the span that actually differs,
// so views of the list receive a single, minimal change.
type Feed[T any] struct {
	watcher        Watcher
	list           *List[T]
	name           string
	debounce       time.Duration
	startupTimeout time.Duration
	syncMode       bool
	clock          clockz.Clock
	codec          Codec
	metrics        MetricsProvider
	onStop         func(FeedState)
	dispatch       func(apply func())
	equal          func(a, b T) bool
	validate       *validator.Validate

	state        atomic.Int32
	applied      atomic.Bool
	lastError    atomic.Pointer[error]
	errorHistory *ring[error]

	mu      sync.Mutex
	started bool

	applyMu sync.Mutex

	// For sync mode: channel to receive documents
	changes <-chan []byte
}

// NewFeed creates a Feed that writes documents from watcher into list.
//
// Example:
//
//	type Entry struct {
//	    Key   string `yaml:"key" validate:"required"`
//	    Title string `yaml:"title"`
//	}
//
//	entries := seqz.NewList[Entry]()
//	feed := seqz.NewFeed(seqz.NewFileWatcher("library.yaml"), entries).
//	    Debounce(200 * time.Millisecond).
//	    Dispatch(ui.RunLater)
//
//	if err := feed.Start(ctx); err != nil {
//	    log.Printf("initial load failed: %v", err)
//	}
func NewFeed[T any](watcher Watcher, list *List[T]) *Feed[T] {
	f := &Feed[T]{
		watcher:  watcher,
		list:     list,
		name:     "feed",
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
		codec:    AutoCodec{},
		equal:    func(a, b T) bool { return reflect.DeepEqual(a, b) },
		validate: validator.New(),
	}
	f.state.Store(int32(FeedLoading))
	return f
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Name sets the identifier attached to the feed's signals.
func (f *Feed[T]) Name(name string) *Feed[T] {
	f.name = name
	return f
}

// Debounce sets the debounce duration for document processing.
// Documents arriving within this duration are coalesced into a single update.
// Default: 100ms. Must be called before Start().
func (f *Feed[T]) Debounce(d time.Duration) *Feed[T] {
	f.debounce = d
	return f
}

// SyncMode enables synchronous processing for testing.
// In sync mode, documents are processed only by Start and Process, without
// debouncing or goroutines. Must be called before Start().
func (f *Feed[T]) SyncMode() *Feed[T] {
	f.syncMode = true
	return f
}

// Clock sets a custom clock for time operations.
// Use this with clockz.FakeClock for deterministic debounce testing.
// Must be called before Start().
func (f *Feed[T]) Clock(clock clockz.Clock) *Feed[T] {
	f.clock = clock
	return f
}

// Codec sets the codec used to decode documents.
// Default: AutoCodec. Must be called before Start().
func (f *Feed[T]) Codec(codec Codec) *Feed[T] {
	f.codec = codec
	return f
}

// StartupTimeout sets the maximum duration to wait for the initial
// document from the watcher.
// Default: no timeout. Must be called before Start().
func (f *Feed[T]) StartupTimeout(d time.Duration) *Feed[T] {
	f.startupTimeout = d
	return f
}

// Metrics sets a metrics provider for observability integration.
// Must be called before Start().
func (f *Feed[T]) Metrics(provider MetricsProvider) *Feed[T] {
	f.metrics = provider
	return f
}

// OnStop sets a callback invoked with the final state when the feed stops
// watching. Must be called before Start().
func (f *Feed[T]) OnStop(fn func(FeedState)) *Feed[T] {
	f.onStop = fn
	return f
}

// ErrorHistorySize sets the number of recent errors to retain.
// Use 0 (default) to only retain the most recent error via LastError().
// Must be called before Start().
func (f *Feed[T]) ErrorHistorySize(n int) *Feed[T] {
	f.errorHistory = newRing[error](n)
	return f
}

// Dispatch sets how list edits are scheduled. A List and its views belong
// to one goroutine, typically an event loop; pass that loop's "run later"
// function so edits land there. By default edits run on the feed's own
// goroutine, serialized by the feed. The switch to FeedHealthy and the
// FeedApplySucceeded signal happen inside the dispatched edit, after the
// list has changed. Must be called before Start().
func (f *Feed[T]) Dispatch(fn func(apply func())) *Feed[T] {
	f.dispatch = fn
	return f
}

// Equal sets the element equality used to find the span a document changed.
// Default: reflect.DeepEqual. Must be called before Start().
func (f *Feed[T]) Equal(fn func(a, b T) bool) *Feed[T] {
	f.equal = fn
	return f
}

// -----------------------------------------------------------------------------
// Status
// -----------------------------------------------------------------------------

// State returns the current state of the Feed.
func (f *Feed[T]) State() FeedState {
	return FeedState(f.state.Load())
}

// List returns the list the feed writes to.
func (f *Feed[T]) List() *List[T] {
	return f.list
}

// LastError returns the last error encountered, or nil after a success.
func (f *Feed[T]) LastError() error {
	ptr := f.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// ErrorHistory returns recent errors since the last success, oldest first.
// Returns nil if error history is not enabled (see ErrorHistorySize).
func (f *Feed[T]) ErrorHistory() []error {
	return f.errorHistory.values()
}

// -----------------------------------------------------------------------------
// Processing
// -----------------------------------------------------------------------------

// Start begins watching. It blocks until the first document is processed
// (success or failure), then continues watching asynchronously.
//
// If the initial document fails, Start returns the error but keeps
// watching in the background for valid updates.
//
// Start can only be called once. Subsequent calls return an error.
func (f *Feed[T]) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.started {
		f.mu.Unlock()
		return fmt.Errorf("feed already started")
	}
	f.started = true
	f.mu.Unlock()

	capitan.Emit(ctx, FeedStarted,
		KeyName.Field(f.name),
		KeyDebounce.Field(f.debounce),
	)

	changes, err := f.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	startupCtx := ctx
	if f.startupTimeout > 0 {
		var cancel context.CancelFunc
		startupCtx, cancel = f.clock.WithTimeout(ctx, f.startupTimeout)
		defer cancel()
	}

	var initialErr error
	select {
	case <-startupCtx.Done():
		if f.startupTimeout > 0 && startupCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("startup timeout: watcher did not emit initial document within %v", f.startupTimeout)
		}
		return startupCtx.Err()
	case raw, ok := <-changes:
		if !ok {
			return fmt.Errorf("watcher closed before emitting initial document")
		}
		f.received(ctx)
		initialErr = f.process(ctx, raw)
	}

	if f.syncMode {
		f.changes = changes
		return initialErr
	}

	go f.watch(ctx, changes)

	return initialErr
}

// Process reads and processes the next document from the watcher.
// This is only available in sync mode and is used for deterministic testing.
// Returns false if no document is available or the channel is closed.
func (f *Feed[T]) Process(ctx context.Context) bool {
	if !f.syncMode {
		return false
	}

	select {
	case raw, ok := <-f.changes:
		if !ok {
			return false
		}
		f.received(ctx)
		_ = f.process(ctx, raw) //nolint:errcheck // Errors stored via setError
		return true
	default:
		return false
	}
}

func (f *Feed[T]) received(ctx context.Context) {
	capitan.Emit(ctx, FeedChangeReceived, KeyName.Field(f.name))
	if f.metrics != nil {
		f.metrics.OnFeedChangeReceived()
	}
}

// process decodes, validates and applies a single document.
func (f *Feed[T]) process(ctx context.Context, raw []byte) error {
	start := f.clock.Now()
	oldState := f.State()

	var items []T
	if err := f.codec.Unmarshal(raw, &items); err != nil {
		f.failure(ctx, oldState, "decode", start, err)
		capitan.Emit(ctx, FeedDecodeFailed,
			KeyName.Field(f.name),
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("decode failed: %w", err)
	}

	if err := f.check(items); err != nil {
		f.failure(ctx, oldState, "validate", start, err)
		capitan.Emit(ctx, FeedValidationFailed,
			KeyName.Field(f.name),
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("validation failed: %w", err)
	}

	f.apply(ctx, items, start)
	return nil
}

// check validates every struct element against its validate tags.
func (f *Feed[T]) check(items []T) error {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	for i, item := range items {
		if err := f.validate.Struct(item); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// apply edits the list through the dispatcher. Edits never overlap. The
// feed reports success only once the edit has run, so with an asynchronous
// dispatcher State stays unchanged until the owning goroutine gets to it.
func (f *Feed[T]) apply(ctx context.Context, items []T, start time.Time) {
	edit := func() {
		f.applyMu.Lock()
		defer f.applyMu.Unlock()
		applyEdit(f.list, items, f.equal)
		f.succeeded(ctx, len(items), start)
	}
	if f.dispatch != nil {
		f.dispatch(edit)
		return
	}
	edit()
}

// succeeded clears the error record and moves to FeedHealthy.
func (f *Feed[T]) succeeded(ctx context.Context, n int, start time.Time) {
	f.applied.Store(true)
	f.lastError.Store(nil)
	f.errorHistory.reset()
	f.transitionState(ctx, f.State(), FeedHealthy)
	capitan.Emit(ctx, FeedApplySucceeded,
		KeyName.Field(f.name),
		KeyItems.Field(n),
	)
	if f.metrics != nil {
		f.metrics.OnFeedApplySuccess(f.clock.Since(start))
	}
}

// failure records err and moves to the failure state for the given stage.
func (f *Feed[T]) failure(ctx context.Context, oldState FeedState, stage string, start time.Time, err error) {
	f.setError(err)
	f.transitionState(ctx, oldState, f.failureState())
	if f.metrics != nil {
		f.metrics.OnFeedApplyFailure(stage, f.clock.Since(start))
	}
}

// failureState returns the appropriate failure state based on whether
// a valid document has ever been applied.
func (f *Feed[T]) failureState() FeedState {
	if !f.applied.Load() {
		return FeedEmpty
	}
	return FeedDegraded
}

// transitionState updates the state and emits a state change event if changed.
func (f *Feed[T]) transitionState(ctx context.Context, oldState, newState FeedState) {
	if oldState == newState {
		return
	}
	f.state.Store(int32(newState))
	capitan.Emit(ctx, FeedStateChanged,
		KeyName.Field(f.name),
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
	if f.metrics != nil {
		f.metrics.OnFeedStateChange(oldState, newState)
	}
}

// setError stores an error atomically and adds it to the error history.
func (f *Feed[T]) setError(err error) {
	e := err
	f.lastError.Store(&e)
	f.errorHistory.push(err)
}

// watch processes documents from the watcher channel with debouncing.
func (f *Feed[T]) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		finalState := f.State()
		capitan.Emit(ctx, FeedStopped,
			KeyName.Field(f.name),
			KeyState.Field(finalState.String()),
		)
		if f.onStop != nil {
			f.onStop(finalState)
		}
	}()

	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				if hasPending {
					_ = f.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				}
				return
			}

			f.received(ctx)
			pending = raw
			hasPending = true

			if timer == nil {
				timer = f.clock.NewTimer(f.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(f.debounce)
			}

		case <-timerC:
			if hasPending {
				_ = f.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				hasPending = false
			}
		}
	}
}
