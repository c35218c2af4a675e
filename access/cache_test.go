// access/cache_test.go
package access

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Dev-Muhammad-Junaid/links-maker/model"
)

// fakeStore records snapshots in memory.
type fakeStore struct {
	mu      sync.Mutex
	entries []model.CacheEntry
	saves   int
	loadErr error
	saveErr error
}

func (s *fakeStore) LoadEntries(ctx context.Context) ([]model.CacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]model.CacheEntry(nil), s.entries...), nil
}

func (s *fakeStore) SaveEntries(ctx context.Context, entries []model.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.entries = append([]model.CacheEntry(nil), entries...)
	s.saves++
	return nil
}

func (s *fakeStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func newTestCache(store Store, ttl time.Duration, capacity int) (*Cache, *time.Time) {
	c := NewCache(store, ttl, capacity, time.Hour)
	now := time.Now()
	c.now = func() time.Time { return now }
	return c, &now
}

func verdict(rule string) model.AccessResult {
	return model.AccessResult{Status: model.StatusAccess, Code: 200, Rule: rule}
}

func TestCacheGetSet(t *testing.T) {
	c, _ := newTestCache(nil, time.Minute, 10)

	assert.Nil(t, c.Get("document:abc", "email:a@x.com"))

	c.Set("document:abc", "email:a@x.com", verdict("fallback_status"))
	got := c.Get("document:abc", "email:a@x.com")
	assert.NotNil(t, got)
	assert.Equal(t, model.StatusAccess, got.Status)

	// A different account is a separate entry
	assert.Nil(t, c.Get("document:abc", "email:b@x.com"))
	assert.Equal(t, 1, c.Len())
}

func TestCacheTTLBoundary(t *testing.T) {
	c, now := newTestCache(nil, time.Minute, 10)
	c.Set("document:abc", "auth:0", verdict("fallback_status"))

	*now = now.Add(time.Minute - time.Nanosecond)
	assert.NotNil(t, c.Get("document:abc", "auth:0"), "entry just inside the TTL must hit")

	*now = now.Add(time.Nanosecond)
	assert.Nil(t, c.Get("document:abc", "auth:0"), "entry at exact expiry must miss")
	assert.Equal(t, 0, c.Len(), "expired entry must be removed")
}

func TestCacheCapacityEvictsOldest(t *testing.T) {
	c, now := newTestCache(nil, time.Hour, 2)

	c.Set("document:a", "auth:0", verdict("fallback_status"))
	*now = now.Add(time.Second)
	c.Set("document:b", "auth:0", verdict("fallback_status"))
	*now = now.Add(time.Second)
	c.Set("document:c", "auth:0", verdict("fallback_status"))

	assert.Equal(t, 2, c.Len())
	assert.Nil(t, c.Get("document:a", "auth:0"), "oldest entry must be evicted")
	assert.NotNil(t, c.Get("document:b", "auth:0"))
	assert.NotNil(t, c.Get("document:c", "auth:0"))
}

func TestCacheReplaceMovesToBack(t *testing.T) {
	c, now := newTestCache(nil, time.Hour, 2)

	c.Set("document:a", "auth:0", verdict("fallback_status"))
	*now = now.Add(time.Second)
	c.Set("document:b", "auth:0", verdict("fallback_status"))
	*now = now.Add(time.Second)

	// Refreshing a makes b the oldest
	c.Set("document:a", "auth:0", verdict("login_or_denied"))
	*now = now.Add(time.Second)
	c.Set("document:c", "auth:0", verdict("fallback_status"))

	assert.Nil(t, c.Get("document:b", "auth:0"))
	assert.NotNil(t, c.Get("document:a", "auth:0"))
	assert.NotNil(t, c.Get("document:c", "auth:0"))
}

func TestCacheInvalidation(t *testing.T) {
	seed := func() *Cache {
		c, _ := newTestCache(nil, time.Hour, 10)
		c.Set("document:a", "email:a@x.com", verdict("fallback_status"))
		c.Set("document:a", "auth:1", verdict("fallback_status"))
		c.Set("document:b", "auth:1", verdict("fallback_status"))
		return c
	}

	t.Run("pair", func(t *testing.T) {
		c := seed()
		c.InvalidatePair("document:a", "auth:1")
		assert.Equal(t, 2, c.Len())
		assert.Nil(t, c.Get("document:a", "auth:1"))
		assert.NotNil(t, c.Get("document:a", "email:a@x.com"))
	})

	t.Run("resource", func(t *testing.T) {
		c := seed()
		c.InvalidateResource("document:a")
		assert.Equal(t, 1, c.Len())
		assert.NotNil(t, c.Get("document:b", "auth:1"))
	})

	t.Run("account index drops only index keys", func(t *testing.T) {
		c := seed()
		c.InvalidateAccountIndex(1)
		assert.Equal(t, 1, c.Len())
		assert.NotNil(t, c.Get("document:a", "email:a@x.com"))
	})

	t.Run("clear", func(t *testing.T) {
		c := seed()
		c.Clear()
		assert.Equal(t, 0, c.Len())
	})
}

func TestCacheLoadDropsExpired(t *testing.T) {
	now := time.Now()
	store := &fakeStore{entries: []model.CacheEntry{
		{
			Key:       "document:live|auth:0",
			Result:    verdict("fallback_status"),
			CreatedAt: now.Add(-time.Minute),
			ExpiresAt: now.Add(time.Minute),
		},
		{
			Key:       "document:stale|auth:0",
			Result:    verdict("fallback_status"),
			CreatedAt: now.Add(-2 * time.Hour),
			ExpiresAt: now.Add(-time.Hour),
		},
	}}

	c := NewCache(store, time.Minute, 10, time.Hour)
	c.now = func() time.Time { return now }
	c.Load(context.Background())

	assert.Equal(t, 1, c.Len())
	assert.NotNil(t, c.Get("document:live", "auth:0"))
}

func TestCacheFlushNow(t *testing.T) {
	store := &fakeStore{}
	c, _ := newTestCache(store, time.Hour, 10)

	c.Set("document:a", "auth:0", verdict("fallback_status"))
	c.Set("document:b", "auth:0", verdict("fallback_status"))
	c.FlushNow(context.Background())

	assert.Equal(t, 1, store.saveCount())
	assert.Len(t, store.entries, 2)
}

func TestCacheDebouncedFlushCoalesces(t *testing.T) {
	store := &fakeStore{}
	c := NewCache(store, time.Hour, 10, 30*time.Millisecond)

	// A burst of mutations inside one debounce window
	c.Set("document:a", "auth:0", verdict("fallback_status"))
	c.Set("document:b", "auth:0", verdict("fallback_status"))
	c.Set("document:c", "auth:0", verdict("fallback_status"))

	assert.Equal(t, 0, store.saveCount(), "flush must wait for the debounce window")

	assert.Eventually(t, func() bool {
		return store.saveCount() == 1
	}, time.Second, 10*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, store.saveCount(), "one burst must produce one snapshot")
}

func TestCacheSaveFailureKeepsMemory(t *testing.T) {
	store := &fakeStore{saveErr: assert.AnError}
	c, _ := newTestCache(store, time.Hour, 10)

	c.Set("document:a", "auth:0", verdict("fallback_status"))
	c.FlushNow(context.Background())

	assert.NotNil(t, c.Get("document:a", "auth:0"))
}
