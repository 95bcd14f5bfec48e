// Package drawbuf holds the published snapshot of screen primitives.
package drawbuf

import (
	"sync"

	"github.com/OCAP2/painter/internal/primitive"
)

// Buffer is a single slot holding the most recently published primitives.
// A published slice is never modified; Publish swaps in a new one.
type Buffer struct {
	mu       sync.RWMutex
	items    []primitive.Primitive
	versions uint64
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Load returns the current snapshot. Callers must not modify it.
func (b *Buffer) Load() []primitive.Primitive {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.items
}

// Publish replaces the snapshot. The buffer takes ownership of items.
func (b *Buffer) Publish(items []primitive.Primitive) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = items
	b.versions++
}

// Range calls fn for every primitive of the current snapshot while holding
// the read lock, so a concurrent Publish waits until the iteration ends.
func (b *Buffer) Range(fn func(primitive.Primitive)) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, p := range b.items {
		fn(p)
	}
}

// Len returns the size of the current snapshot.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// Version counts successful publishes.
func (b *Buffer) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.versions
}
