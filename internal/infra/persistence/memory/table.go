// Package memory is an in-process document store. It backs local development and tests and
// fans every write out to the live queries it affects, like the hosted store does.
package memory

import (
	"context"
	"sync"

	"storefront/internal/realtime"
)

type watcher[T any] struct {
	match  func(T) bool
	stream *realtime.Stream[T]
}

// table is one collection of documents keyed by id.
type table[T any] struct {
	clone func(T) T

	mu       sync.Mutex
	docs     map[string]T
	order    []string // insertion order, so snapshots are stable
	watchers map[*watcher[T]]struct{}
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{
		clone:    clone,
		docs:     make(map[string]T),
		watchers: make(map[*watcher[T]]struct{}),
	}
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, ok := t.docs[id]
	if !ok {
		var zero T

		return zero, false
	}

	return t.clone(doc), true
}

func (t *table[T]) list(match func(T) bool) []T {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.snapshotLocked(match)
}

// put inserts or replaces a document and notifies every watcher.
func (t *table[T]) put(id string, doc T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.docs[id]; !exists {
		t.order = append(t.order, id)
	}
	t.docs[id] = t.clone(doc)
	t.notifyLocked()
}

// mutate applies fn to a stored document in place. It reports false when the id is unknown.
func (t *table[T]) mutate(id string, fn func(T)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, ok := t.docs[id]
	if !ok {
		return false
	}
	fn(doc)
	t.notifyLocked()

	return true
}

func (t *table[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.docs[id]; !ok {
		return false
	}
	delete(t.docs, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)

			break
		}
	}
	t.notifyLocked()

	return true
}

// watch opens a live query. The current result set is delivered immediately.
func (t *table[T]) watch(ctx context.Context, match func(T) bool) realtime.Subscription[T] {
	w := &watcher[T]{match: match, stream: realtime.NewStream[T](ctx)}

	t.mu.Lock()
	t.watchers[w] = struct{}{}
	w.stream.Send(realtime.Snapshot[T]{Items: t.snapshotLocked(match)})
	t.mu.Unlock()

	go func() {
		<-w.stream.Context().Done()

		t.mu.Lock()
		delete(t.watchers, w)
		t.mu.Unlock()

		w.stream.Close()
	}()

	return w.stream
}

func (t *table[T]) watcherCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.watchers)
}

func (t *table[T]) notifyLocked() {
	for w := range t.watchers {
		w.stream.Send(realtime.Snapshot[T]{Items: t.snapshotLocked(w.match)})
	}
}

func (t *table[T]) snapshotLocked(match func(T) bool) []T {
	items := make([]T, 0)
	for _, id := range t.order {
		doc := t.docs[id]
		if match(doc) {
			items = append(items, t.clone(doc))
		}
	}

	return items
}
