// Package dedupe tracks the ids of user-created calendar entries so transit
// queries can drop computed events that would duplicate them. Transit event
// ids are deterministic from (date, bodies, aspect), which makes a simple
// seen-set sufficient.
package dedupe

import (
	"context"
	"sync"
)

// Registry records calendar-entry ids. Implementations are safe for
// concurrent use.
type Registry interface {
	// Record marks an id as taken by a user entry. Returns false if the
	// id was already recorded.
	Record(ctx context.Context, id string) bool

	// Contains reports whether an id is recorded.
	Contains(ctx context.Context, id string) bool

	// Remove drops an id, e.g. when the user deletes the entry.
	Remove(ctx context.Context, id string)

	// Size returns the number of recorded ids.
	Size() int
}

// inMemoryRegistry is a bounded seen-set with FIFO eviction. When the bound
// is reached the oldest recorded id is evicted; with maxSize <= 0 the set
// grows without bound.
type inMemoryRegistry struct {
	mu      sync.RWMutex
	seen    map[string]struct{}
	order   []string // insertion order, only maintained in bounded mode
	maxSize int
}

// NewInMemoryRegistry creates a registry with configuration options.
func NewInMemoryRegistry(opts ...Option) Registry {
	r := &inMemoryRegistry{
		maxSize: 10_000,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.seen = make(map[string]struct{})
	return r
}

func (r *inMemoryRegistry) Record(_ context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[id]; ok {
		return false
	}
	if r.maxSize > 0 {
		if len(r.seen) >= r.maxSize && len(r.order) > 0 {
			oldest := r.order[0]
			r.order = r.order[1:]
			delete(r.seen, oldest)
		}
		r.order = append(r.order, id)
	}
	r.seen[id] = struct{}{}
	return true
}

func (r *inMemoryRegistry) Contains(_ context.Context, id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.seen[id]
	return ok
}

func (r *inMemoryRegistry) Remove(_ context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[id]; !ok {
		return
	}
	delete(r.seen, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *inMemoryRegistry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.seen)
}
