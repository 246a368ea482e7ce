package cache

import (
	"sync"
	"testing"
	"time"

	"globenews/internal/domain/entity"
)

// mockClock is a controllable clock for deterministic expiry tests.
type mockClock struct {
	mu  sync.RWMutex
	now time.Time
}

func newMockClock(now time.Time) *mockClock {
	return &mockClock{now: now}
}

func (c *mockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestStore_GetSet(t *testing.T) {
	store := New(5*time.Minute, newMockClock(time.Now()))

	if _, ok := store.Get("us-all-"); ok {
		t.Error("Get() on empty store should report a miss")
	}

	entry := Entry{Articles: []entity.Article{{Title: "headline", URL: "https://example.com/a"}}}
	store.Set("us-all-", entry)

	got, ok := store.Get("us-all-")
	if !ok {
		t.Fatal("Get() should report a hit after Set()")
	}
	if len(got.Articles) != 1 || got.Articles[0].Title != "headline" {
		t.Errorf("Get() = %+v, want stored entry", got)
	}
}

func TestStore_Expiry(t *testing.T) {
	clock := newMockClock(time.Now())
	store := New(5*time.Minute, clock)

	store.Set("us-technology-", Entry{Articles: []entity.Article{{Title: "a"}}})

	clock.Advance(4 * time.Minute)
	if _, ok := store.Get("us-technology-"); !ok {
		t.Error("entry should still be live before the TTL passes")
	}

	clock.Advance(2 * time.Minute)
	if _, ok := store.Get("us-technology-"); ok {
		t.Error("entry should expire after the TTL passes")
	}
}

func TestStore_SetRefreshesTTL(t *testing.T) {
	clock := newMockClock(time.Now())
	store := New(5*time.Minute, clock)

	store.Set("gb-all-", Entry{Articles: []entity.Article{{Title: "old"}}})
	clock.Advance(4 * time.Minute)
	store.Set("gb-all-", Entry{Articles: []entity.Article{{Title: "new"}}})
	clock.Advance(4 * time.Minute)

	got, ok := store.Get("gb-all-")
	if !ok {
		t.Fatal("overwritten entry should use the new expiry")
	}
	if got.Articles[0].Title != "new" {
		t.Errorf("Title = %q, want %q", got.Articles[0].Title, "new")
	}
}

func TestStore_Sweep(t *testing.T) {
	clock := newMockClock(time.Now())
	store := New(5*time.Minute, clock)

	store.Set("stale-1", Entry{})
	store.Set("stale-2", Entry{})
	clock.Advance(6 * time.Minute)
	store.Set("fresh", Entry{})

	if removed := store.Sweep(); removed != 2 {
		t.Errorf("Sweep() = %d, want 2", removed)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
	if _, ok := store.Get("fresh"); !ok {
		t.Error("Sweep() must not remove live entries")
	}
}

func TestStore_NilClockDefaults(t *testing.T) {
	store := New(time.Minute, nil)
	store.Set("key", Entry{Articles: []entity.Article{{Title: "a"}}})
	if _, ok := store.Get("key"); !ok {
		t.Error("store with default clock should serve fresh entries")
	}
}
