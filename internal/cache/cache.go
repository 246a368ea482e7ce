// Package cache provides a process-local key-value store with per-entry
// expiration, used to hold aggregated article lists for a short TTL so
// repeated requests for the same country/category/query do not fan out to
// the upstream providers again.
package cache

import (
	"sync"
	"time"

	"globenews/internal/domain/entity"
	"globenews/pkg/ratelimit"
)

// Entry is the cached value for one aggregation key.
type Entry struct {
	Articles []entity.Article
}

// Store is a thread-safe TTL cache. Expiry is lazy on read; Sweep removes
// expired entries eagerly and is meant to be run on a schedule. Entries are
// overwritten wholesale on Set, there is no partial update or manual
// invalidation path.
type Store struct {
	mu      sync.RWMutex
	entries map[string]cacheItem
	ttl     time.Duration
	clock   ratelimit.Clock
}

type cacheItem struct {
	entry     Entry
	expiresAt time.Time
}

// New creates a Store whose entries expire ttl after they are set. A nil
// clock defaults to the system clock.
func New(ttl time.Duration, clock ratelimit.Clock) *Store {
	if clock == nil {
		clock = &ratelimit.SystemClock{}
	}
	return &Store{
		entries: make(map[string]cacheItem),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get returns the entry for key if present and not expired.
func (s *Store) Get(key string) (Entry, bool) {
	s.mu.RLock()
	item, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.clock.Now().After(item.expiresAt) {
		return Entry{}, false
	}
	return item.entry, true
}

// Set stores entry under key with the configured TTL, replacing any
// previous value.
func (s *Store) Set(key string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = cacheItem{
		entry:     entry,
		expiresAt: s.clock.Now().Add(s.ttl),
	}
}

// Sweep removes expired entries and returns how many were dropped. Lazy
// expiry already keeps reads correct; sweeping just reclaims memory.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for key, item := range s.entries {
		if now.After(item.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries currently held, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
