package realtime

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"storefront/internal/errors"
)

// ErrViewClosed is returned when switching a closed view.
var ErrViewClosed = errors.New("view closed")

// View is a keyed live view holding at most one subscription. Switching the key cancels the
// previous subscription before the next one is opened, and anything the previous one still
// delivers is discarded.
type View[T any] struct {
	src     Source[T]
	compare func(a, b T) int
	logger  *slog.Logger

	switchMu sync.Mutex // serializes Switch and Close so only one subscription is ever open

	mu          sync.Mutex
	key         string
	gen         uint64
	sub         Subscription[T]
	items       []T
	err         error
	ready       chan struct{}
	readyClosed bool
	watchers    map[int]chan []T
	nextWatcher int
	closed      bool
}

// NewView creates a view that re-sorts every snapshot with compare.
func NewView[T any](src Source[T], compare func(a, b T) int, logger *slog.Logger) *View[T] {
	return &View[T]{
		src:      src,
		compare:  compare,
		logger:   logger,
		ready:    make(chan struct{}),
		watchers: make(map[int]chan []T),
	}
}

// Switch points the view at key. Switching to the current key is a no-op.
func (v *View[T]) Switch(ctx context.Context, key string) error {
	v.switchMu.Lock()
	defer v.switchMu.Unlock()

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()

		return ErrViewClosed
	}
	if v.sub != nil && v.key == key {
		v.mu.Unlock()

		return nil
	}

	// 1. Tear down the previous subscription
	if v.sub != nil {
		v.sub.Cancel()
		v.sub = nil
	}

	// 2. Start a new generation so stale deliveries are dropped
	v.gen++
	gen := v.gen
	v.key = key
	v.items = nil
	v.err = nil
	v.ready = make(chan struct{})
	v.readyClosed = false
	v.mu.Unlock()

	// 3. Open the next subscription; its lifetime is bound to Cancel, not to ctx
	sub, err := v.src.Subscribe(context.WithoutCancel(ctx), key)
	if err != nil {
		v.mu.Lock()
		if gen == v.gen {
			v.err = err
			v.markReady()
		}
		v.mu.Unlock()

		return errors.Wrapf(err, "subscribe %q", key)
	}

	v.mu.Lock()
	v.sub = sub
	v.mu.Unlock()

	go v.consume(gen, sub)

	return nil
}

func (v *View[T]) consume(gen uint64, sub Subscription[T]) {
	for snap := range sub.Snapshots() {
		v.apply(gen, snap)
	}
}

func (v *View[T]) apply(gen uint64, snap Snapshot[T]) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.gen {
		return
	}

	if snap.Err != nil {
		v.err = snap.Err
		v.logger.Warn("Live query failed",
			slog.String("key", v.key),
			slog.Any("error", snap.Err),
		)
		v.markReady()

		return
	}

	items := slices.Clone(snap.Items)
	slices.SortStableFunc(items, v.compare)
	v.items = items
	v.err = nil
	v.markReady()

	for _, w := range v.watchers {
		offer(w, slices.Clone(items))
	}
}

// markReady must be called with mu held.
func (v *View[T]) markReady() {
	if !v.readyClosed {
		close(v.ready)
		v.readyClosed = true
	}
}

// Key returns the key the view currently follows.
func (v *View[T]) Key() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.key
}

// Items returns a copy of the latest snapshot, ordered.
func (v *View[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()

	return slices.Clone(v.items)
}

// Err returns the error of the latest delivery, if any.
func (v *View[T]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.err
}

// Ready blocks until the current subscription delivered its first snapshot.
func (v *View[T]) Ready(ctx context.Context) error {
	v.mu.Lock()
	ready := v.ready
	v.mu.Unlock()

	select {
	case <-ready:
		return v.Err()
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}

// Watch streams every replaced item set until ctx is done. The current items are sent first
// when a snapshot has already arrived. A slow reader only sees the latest set.
func (v *View[T]) Watch(ctx context.Context) <-chan []T {
	ch := make(chan []T, 1)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		close(ch)

		return ch
	}
	id := v.nextWatcher
	v.nextWatcher++
	v.watchers[id] = ch
	if v.readyClosed && v.err == nil {
		offer(ch, slices.Clone(v.items))
	}
	v.mu.Unlock()

	go func() {
		<-ctx.Done()
		v.mu.Lock()
		defer v.mu.Unlock()
		if w, ok := v.watchers[id]; ok {
			delete(v.watchers, id)
			close(w)
		}
	}()

	return ch
}

// Close cancels the subscription and ends every watch.
func (v *View[T]) Close() {
	v.switchMu.Lock()
	defer v.switchMu.Unlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	v.gen++
	if v.sub != nil {
		v.sub.Cancel()
		v.sub = nil
	}
	v.markReady()
	for id, w := range v.watchers {
		delete(v.watchers, id)
		close(w)
	}
}

// offer replaces whatever is pending in ch with items. Callers hold the view lock,
// which makes them the only sender.
func offer[T any](ch chan []T, items []T) {
	select {
	case ch <- items:
		return
	default:
	}

	select {
	case <-ch:
	default:
	}

	select {
	case ch <- items:
	default:
	}
}
