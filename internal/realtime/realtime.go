// Package realtime models live document-store queries as streams of full snapshots,
// independent of any concrete backend.
package realtime

import (
	"context"
	"sync"
	"time"
)

// Snapshot is one delivery of a live query: the full current result set, or the error that ended it.
type Snapshot[T any] struct {
	Items []T
	Err   error
}

// Subscription is one open live query.
type Subscription[T any] interface {
	// Snapshots delivers full-replace snapshots in backend order. It is closed once the subscription ends.
	Snapshots() <-chan Snapshot[T]

	// Cancel ends the subscription. It is safe to call more than once.
	Cancel()
}

// Source opens live queries scoped by key (an owner id or a document id).
type Source[T any] interface {
	Subscribe(ctx context.Context, key string) (Subscription[T], error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[T any] func(ctx context.Context, key string) (Subscription[T], error)

// Subscribe calls f(ctx, key).
func (f SourceFunc[T]) Subscribe(ctx context.Context, key string) (Subscription[T], error) {
	return f(ctx, key)
}

// Stream is the producer side of a Subscription. Backends run a goroutine that calls Send
// until Context is done and then Close.
type Stream[T any] struct {
	ch     chan Snapshot[T]
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewStream creates a stream whose lifetime ends when parent is done or Cancel is called.
func NewStream[T any](parent context.Context) *Stream[T] {
	ctx, cancel := context.WithCancel(parent)

	return &Stream[T]{
		ch:     make(chan Snapshot[T], 1),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Snapshots implements Subscription.
func (s *Stream[T]) Snapshots() <-chan Snapshot[T] {
	return s.ch
}

// Cancel implements Subscription.
func (s *Stream[T]) Cancel() {
	s.cancel()
}

// Context is done once the subscription has been cancelled.
func (s *Stream[T]) Context() context.Context {
	return s.ctx
}

// Send delivers snap. An undelivered older snapshot is replaced, so a slow consumer
// only ever sees the latest state. Send reports false once the stream is cancelled.
func (s *Stream[T]) Send(snap Snapshot[T]) bool {
	for {
		if s.ctx.Err() != nil {
			return false
		}

		select {
		case <-s.ctx.Done():
			return false
		case s.ch <- snap:
			return true
		default:
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

// Close closes the snapshot channel. Only the producer calls it, after its last Send.
func (s *Stream[T]) Close() {
	s.once.Do(func() {
		s.cancel()
		close(s.ch)
	})
}

// NewestFirst orders items by creation time, newest first.
func NewestFirst[T any](createdAt func(T) time.Time) func(a, b T) int {
	return func(a, b T) int {
		return createdAt(b).Compare(createdAt(a))
	}
}
