// Package store owns the live set of world-space drawings.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/OCAP2/painter/internal/element"
	"github.com/OCAP2/painter/internal/primitive"
)

// Store is a mutex-guarded, insertion-ordered collection of drawings.
// Sweep holds the lock for the whole pass, so Add may wait on a sweep.
type Store struct {
	mu       sync.Mutex
	drawings []element.Drawing
	expired  []bool
}

// New creates an empty store.
func New() *Store {
	return &Store{
		drawings: make([]element.Drawing, 0),
	}
}

// Add stamps d with defaults and appends it.
func (s *Store) Add(d element.Drawing, defaults element.Defaults) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.State().ApplyDefaults(defaults)
	s.drawings = append(s.drawings, d)
}

// MarkDead sets the dead-time of d to now if it is not set yet.
// It does not take the store lock.
func (s *Store) MarkDead(d element.Drawing, now time.Time) bool {
	return d.State().MarkDead(now)
}

// Len returns the number of drawings, dead ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drawings)
}

// Clear drops every drawing.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.drawings)
	s.drawings = s.drawings[:0]
}

// Sweep advances and projects every drawing once and returns the primitives
// in production order. Drawings whose fade-out finished are removed after the
// pass. On error nothing is removed.
func (s *Store) Sweep(tick *element.Tick) ([]primitive.Primitive, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cap(s.expired) < len(s.drawings) {
		s.expired = make([]bool, len(s.drawings))
	}
	expired := s.expired[:len(s.drawings)]
	clear(expired)

	var out []primitive.Primitive
	removals := 0
	for i, d := range s.drawings {
		l := d.State()
		if exp, ok := l.Expiry(); ok && !tick.Now.Before(exp) {
			l.MarkDead(exp)
		}
		if l.Removable(tick.Now) {
			expired[i] = true
			removals++
		}

		d.AdvanceAnimation(tick.Now)
		prims, err := d.ToScreenPrimitives(tick)
		if err != nil {
			return nil, fmt.Errorf("drawing %d (%T): %w", i, d, err)
		}
		out = append(out, prims...)
	}

	if removals > 0 {
		s.compact(expired)
	}
	return out, nil
}

// compact removes the flagged drawings in one pass, keeping order.
func (s *Store) compact(expired []bool) {
	kept := 0
	for i, d := range s.drawings {
		if expired[i] {
			continue
		}
		s.drawings[kept] = d
		kept++
	}
	clear(s.drawings[kept:])
	s.drawings = s.drawings[:kept]
}
