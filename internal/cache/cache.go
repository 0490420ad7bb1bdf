// Package cache implements the bounded in-memory TTL cache that shields
// live providers from redundant calls. Expiry is checked lazily on Get;
// an expired entry is a miss even while still physically present.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	tag       string
	createdAt time.Time
	ttl       time.Duration
	setSeq    uint64
}

// Cache is a keyed TTL store with a capacity ceiling. Once the ceiling is
// reached the least-recently-set entry is evicted. Safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	maxEntries int
	seq        uint64

	now func() time.Time // overridable in tests
}

// Stats describes the cache contents for introspection endpoints.
type Stats struct {
	EntryCount      int            `json:"entry_count"`
	AgeDistribution map[string]int `json:"age_distribution"`
}

// New creates a cache capped at maxEntries. A non-positive cap defaults
// to 1000.
func New(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &Cache{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the value and provider tag for key. A key that was never set
// and a key whose TTL has elapsed are both reported as absent.
func (c *Cache) Get(key string) (any, string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.createdAt) >= e.ttl {
		return nil, "", false
	}
	return e.value, e.tag, true
}

// Set stores value under key unconditionally, recording the provider tag
// and the current time. Evicts the least-recently-set entry when the
// capacity ceiling would be exceeded.
func (c *Cache) Set(key string, value any, tag string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}

	c.seq++
	c.entries[key] = entry{
		value:     value,
		tag:       tag,
		createdAt: c.now(),
		ttl:       ttl,
		setSeq:    c.seq,
	}
}

// evictOldestLocked drops the entry with the smallest set sequence.
func (c *Cache) evictOldestLocked() {
	var (
		oldestKey string
		oldestSeq uint64
		found     bool
	)
	for k, e := range c.entries {
		if !found || e.setSeq < oldestSeq {
			oldestKey, oldestSeq, found = k, e.setSeq, true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}

// Size returns the number of physically present entries, expired included.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Prune removes physically expired entries and returns how many were
// dropped. Lazy expiry alone keeps reads correct; this just bounds memory.
func (c *Cache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.createdAt) >= e.ttl {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// CacheStats returns the entry count and a coarse age distribution.
func (c *Cache) CacheStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dist := map[string]int{"under_1m": 0, "under_5m": 0, "under_30m": 0, "30m_plus": 0}
	now := c.now()
	for _, e := range c.entries {
		age := now.Sub(e.createdAt)
		switch {
		case age < time.Minute:
			dist["under_1m"]++
		case age < 5*time.Minute:
			dist["under_5m"]++
		case age < 30*time.Minute:
			dist["under_30m"]++
		default:
			dist["30m_plus"]++
		}
	}

	return Stats{EntryCount: len(c.entries), AgeDistribution: dist}
}
