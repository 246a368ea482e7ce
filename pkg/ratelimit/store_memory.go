package ratelimit

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryStore is a thread-safe in-memory Store. It keeps a timestamp slice
// per key and bounds memory with an LRU eviction policy: once maxKeys is
// reached, the least recently used tenth of the keys is dropped to make
// room. State is process-local; restarting the server resets all windows.
type MemoryStore struct {
	mu       sync.RWMutex
	requests map[string][]time.Time
	maxKeys  int

	// LRU bookkeeping: front of lru is most recently used.
	lru      *list.List
	elements map[string]*list.Element
}

// MemoryStoreConfig holds configuration for MemoryStore.
type MemoryStoreConfig struct {
	// MaxKeys caps the number of tracked keys. Zero or negative selects
	// the default of 10000.
	MaxKeys int
}

// NewMemoryStore creates an in-memory rate limit store.
func NewMemoryStore(cfg MemoryStoreConfig) *MemoryStore {
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = 10000
	}
	return &MemoryStore{
		requests: make(map[string][]time.Time),
		maxKeys:  cfg.MaxKeys,
		lru:      list.New(),
		elements: make(map[string]*list.Element),
	}
}

// AddRequest records a request timestamp for key, evicting the least
// recently used keys first if the store is at capacity.
func (s *MemoryStore) AddRequest(_ context.Context, key string, timestamp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addLocked(key, timestamp)
	return nil
}

// GetRequestCount returns the number of requests for key after cutoff.
func (s *MemoryStore) GetRequestCount(_ context.Context, key string, cutoff time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.countLocked(key, cutoff), nil
}

// CheckAndAddRequest atomically counts in-window requests for key and
// records the new timestamp if the count is below limit. The returned
// count includes the admitted request.
func (s *MemoryStore) CheckAndAddRequest(_ context.Context, key string, timestamp, cutoff time.Time, limit int) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.countLocked(key, cutoff)
	if count >= limit {
		return false, count, nil
	}
	s.addLocked(key, timestamp)
	return true, count + 1, nil
}

// Cleanup removes timestamps older than cutoff, dropping keys left empty.
func (s *MemoryStore) Cleanup(_ context.Context, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, timestamps := range s.requests {
		valid := timestamps[:0]
		for _, ts := range timestamps {
			if ts.After(cutoff) {
				valid = append(valid, ts)
			}
		}
		if len(valid) == 0 {
			delete(s.requests, key)
			s.removeLRU(key)
			continue
		}
		s.requests[key] = valid
	}
	return nil
}

// KeyCount returns the number of keys currently tracked.
func (s *MemoryStore) KeyCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.requests), nil
}

// addLocked records a timestamp and updates the LRU order. Callers must
// hold the write lock.
func (s *MemoryStore) addLocked(key string, timestamp time.Time) {
	if _, exists := s.requests[key]; !exists && len(s.requests) >= s.maxKeys {
		s.evictLocked()
	}
	s.requests[key] = append(s.requests[key], timestamp)
	s.touchLRU(key)
}

// countLocked counts timestamps for key after cutoff. Callers must hold at
// least the read lock.
func (s *MemoryStore) countLocked(key string, cutoff time.Time) int {
	count := 0
	for _, ts := range s.requests[key] {
		if ts.After(cutoff) {
			count++
		}
	}
	return count
}

// evictLocked drops the least recently used tenth of the keys, at least
// one, so eviction does not run on every insert at capacity.
func (s *MemoryStore) evictLocked() {
	evictCount := s.maxKeys / 10
	if evictCount < 1 {
		evictCount = 1
	}
	for i := 0; i < evictCount; i++ {
		oldest := s.lru.Back()
		if oldest == nil {
			return
		}
		key := oldest.Value.(string)
		delete(s.requests, key)
		s.removeLRU(key)
	}
}

func (s *MemoryStore) touchLRU(key string) {
	if el, ok := s.elements[key]; ok {
		s.lru.MoveToFront(el)
		return
	}
	s.elements[key] = s.lru.PushFront(key)
}

func (s *MemoryStore) removeLRU(key string) {
	if el, ok := s.elements[key]; ok {
		s.lru.Remove(el)
		delete(s.elements, key)
	}
}
