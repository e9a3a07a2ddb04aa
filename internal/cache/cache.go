// Package cache provides a small fixed-TTL memo used in front of the
// repository read paths. It exists to absorb the presentation layer's
// re-render-heavy call pattern, not for correctness: the database stays
// the source of truth and every successful write invalidates the whole
// cache through the Invalidate signal.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Memo is a concurrency-safe key/value memo with per-entry TTL and
// whole-cache invalidation. There is no dependency tracking between keys.
type Memo struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time // test hook
}

// New returns an empty Memo.
func New() *Memo {
	return &Memo{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached value for key when present and not expired.
// Expired entries are dropped on access.
func (m *Memo) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for the given TTL. A non-positive TTL stores
// nothing, which effectively disables caching for that read.
func (m *Memo) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{value: value, expiresAt: m.now().Add(ttl)}
}

// Invalidate drops every entry. Implements port.Invalidator; the campaign
// service notifies it after each successful write.
func (m *Memo) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]entry)
}

// Len reports the number of live entries, counting expired ones until
// they are touched. Used by tests.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
