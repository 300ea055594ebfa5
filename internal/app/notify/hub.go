// Package notify provides the subscription hub for broadcasting state
// snapshots to UI observers.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// subscription represents a single subscriber.
type subscription[T any] struct {
	id string
	fn func(T)
}

// Hub manages subscriptions and broadcasts snapshots to subscribers in
// subscription order. Dispatch is synchronous so the order of observed
// notifications matches the order of Publish calls.
type Hub[T any] struct {
	mu   sync.RWMutex
	subs []subscription[T]
}

// NewHub creates a new hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		subs: make([]subscription[T], 0),
	}
}

// Subscribe adds a listener and returns a function that removes it.
// Listeners must not call back into the publishing engine from the
// callback; they receive a snapshot and need no further reads.
func (h *Hub[T]) Subscribe(fn func(T)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New().String()
	h.subs = append(h.subs, subscription[T]{id: id, fn: fn})

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i], h.subs[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers v to every subscriber.
func (h *Hub[T]) Publish(v T) {
	h.mu.RLock()
	// Copy subscriptions to avoid holding the lock during callbacks
	subs := make([]subscription[T], len(h.subs))
	copy(subs, h.subs)
	h.mu.RUnlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub[T]) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close removes all subscriptions.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = h.subs[:0]
}
