package seqz

import "context"

// ChannelWatcher adapts a byte channel into a Watcher. Tests use it to push
// documents into a Feed by hand.
type ChannelWatcher struct {
	src    <-chan []byte
	direct bool
}

// NewChannelWatcher relays src through a goroutine that stops with the
// Watch context.
func NewChannelWatcher(src <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{src: src}
}

// NewSyncChannelWatcher hands src to the Feed as is. Pair it with
// Feed.SyncMode() for deterministic tests.
func NewSyncChannelWatcher(src <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{src: src, direct: true}
}

// Watch returns the channel documents arrive on.
func (w *ChannelWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	if w.direct {
		return w.src, nil
	}
	out := make(chan []byte)
	go relay(ctx, w.src, out)
	return out, nil
}

// relay copies src to out until either side is done, then closes out.
func relay(ctx context.Context, src <-chan []byte, out chan<- []byte) {
	defer close(out)
	for {
		var doc []byte
		select {
		case <-ctx.Done():
			return
		case v, ok := <-src:
			if !ok {
				return
			}
			doc = v
		}
		select {
		case out <- doc:
		case <-ctx.Done():
			return
		}
	}
}
