// Package enginepool caches expensive engine handles such as tokenizers and
// annotators, keyed by the configuration that built them.
package enginepool

import "sync"

// Pool is a get-or-build cache. Keys are compared by value, so a config
// struct is a natural key. Handles are shared and must be safe for
// concurrent read-only use.
type Pool[K comparable, V any] struct {
	mu      sync.Mutex
	handles map[K]V
}

// New creates an empty pool.
func New[K comparable, V any]() *Pool[K, V] {
	return &Pool[K, V]{handles: make(map[K]V)}
}

// Get returns the handle for key, calling build on first use.
// Concurrent first calls build once. A failed build is not cached.
func (p *Pool[K, V]) Get(key K, build func() (V, error)) (V, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if h, ok := p.handles[key]; ok {
		return h, nil
	}
	h, err := build()
	if err != nil {
		var zero V
		return zero, err
	}
	p.handles[key] = h
	return h, nil
}

// Len returns the number of cached handles.
func (p *Pool[K, V]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.handles)
}
