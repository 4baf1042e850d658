// Package cache keeps values for a limited time.
package cache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Timed is a cache that invalidates elements on a timer basis. It is safe for
// concurrent use.
type Timed[V any] struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu      sync.Mutex
	entries map[string]entry[V]
}

// entry holds a timestamped value to save.
type entry[V any] struct {
	value    V
	creation time.Time
}

// NewTimed creates a new Timed cache where elements will be invalidated after
// a time in cache corresponding to ttl, as measured by clock. A nil clock is
// the wall clock.
func NewTimed[V any](ttl time.Duration, clock clockwork.Clock) *Timed[V] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Timed[V]{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]entry[V]),
	}
}

// Set assigns a value to a key.
func (c *Timed[V]) Set(key string, val V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{
		value:    val,
		creation: c.clock.Now(),
	}
}

// Get retrieves a value for a key. The value may not exist or have expired, in
// which case ok will be false.
func (c *Timed[V]) Get(key string) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return value, false
	}
	if c.expired(e) {
		delete(c.entries, key)
		return value, false
	}
	return e.value, true
}

// Purge drops every expired element and reports how many there were.
func (c *Timed[V]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, key)
			n++
		}
	}
	return n
}

// Len is the number of elements held, expired or not.
func (c *Timed[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Timed[V]) expired(e entry[V]) bool {
	return c.clock.Since(e.creation) > c.ttl
}
