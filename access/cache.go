// access/cache.go

package access

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	logger "github.com/Dev-Muhammad-Junaid/links-maker/logging"
	"github.com/Dev-Muhammad-Junaid/links-maker/model"
)

// Store is the durable side of the verdict cache. Memory is authoritative;
// the store only survives restarts.
type Store interface {
	LoadEntries(ctx context.Context) ([]model.CacheEntry, error)
	SaveEntries(ctx context.Context, entries []model.CacheEntry) error
}

// Cache holds per-(resource, account) verdicts with a TTL and a hard entry
// cap. Eviction is insertion-order: at capacity the single oldest entry goes.
// Mutations mark the cache dirty; a coalescing writer flushes at most one
// snapshot per debounce window.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]model.CacheEntry
	order    []string
	ttl      time.Duration
	capacity int
	store    Store
	debounce time.Duration
	pending  *time.Timer
	now      func() time.Time
}

func NewCache(store Store, ttl time.Duration, capacity int, debounce time.Duration) *Cache {
	return &Cache{
		entries:  make(map[string]model.CacheEntry),
		ttl:      ttl,
		capacity: capacity,
		store:    store,
		debounce: debounce,
		now:      time.Now,
	}
}

func entryKey(resourceID, accountKey string) string {
	return resourceID + "|" + accountKey
}

// Load reads the persisted snapshot once at startup. Entries already past
// expiry are dropped before they reach memory. A storage failure only costs
// the warm start.
func (c *Cache) Load(ctx context.Context) {
	if c.store == nil {
		return
	}
	persisted, err := c.store.LoadEntries(ctx)
	if err != nil {
		logger.Error("Failed to load verdict cache snapshot", zap.Error(err))
		return
	}

	now := c.now()
	kept := make([]model.CacheEntry, 0, len(persisted))
	for _, e := range persisted {
		if e.ExpiresAt.After(now) {
			kept = append(kept, e)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].CreatedAt.Before(kept[j].CreatedAt) })

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range kept {
		if _, exists := c.entries[e.Key]; !exists {
			c.order = append(c.order, e.Key)
		}
		c.entries[e.Key] = e
	}
	logger.Info("Verdict cache loaded",
		zap.Int("persisted", len(persisted)),
		zap.Int("loaded", len(kept)))
}

// Get returns the cached verdict or nil on miss. An expired entry is removed
// and counts as a miss, never a hit.
func (c *Cache) Get(resourceID, accountKey string) *model.AccessResult {
	key := entryKey(resourceID, accountKey)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		logger.Debug("Verdict cache miss", zap.String("key", key))
		return nil
	}
	if !e.ExpiresAt.After(c.now()) {
		c.removeLocked(key)
		c.markDirtyLocked()
		logger.Debug("Verdict cache entry expired", zap.String("key", key))
		return nil
	}
	logger.Debug("Verdict cache hit", zap.String("key", key))
	result := e.Result
	return &result
}

// Set inserts or replaces a verdict. Replacing moves the entry to the back of
// the eviction order; inserting at capacity evicts the oldest entry first.
func (c *Cache) Set(resourceID, accountKey string, result model.AccessResult) {
	key := entryKey(resourceID, accountKey)
	now := c.now()
	entry := model.CacheEntry{
		Key:       key,
		Result:    result,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.removeLocked(key)
	} else if len(c.entries) >= c.capacity && len(c.order) > 0 {
		oldest := c.order[0]
		c.removeLocked(oldest)
		logger.Debug("Verdict cache evicted oldest entry", zap.String("key", oldest))
	}

	c.entries[key] = entry
	c.order = append(c.order, key)
	c.markDirtyLocked()
}

// InvalidatePair drops the verdict for one (resource, account) pair.
func (c *Cache) InvalidatePair(resourceID, accountKey string) {
	c.invalidate(func(key string) bool {
		return key == entryKey(resourceID, accountKey)
	}, "pair")
}

// InvalidateResource drops every account's verdict for one resource.
func (c *Cache) InvalidateResource(resourceID string) {
	prefix := resourceID + "|"
	c.invalidate(func(key string) bool {
		return strings.HasPrefix(key, prefix)
	}, "resource")
}

// InvalidateAccountIndex drops entries cached under the raw index fallback
// key. Used when the index-to-identity mapping changes; email-keyed entries
// survive a reindex.
func (c *Cache) InvalidateAccountIndex(authIndex int) {
	suffix := "|" + model.AuthIndexCacheKey(authIndex)
	c.invalidate(func(key string) bool {
		return strings.HasSuffix(key, suffix)
	}, "account_index")
}

// Clear drops everything.
func (c *Cache) Clear() {
	c.invalidate(func(string) bool { return true }, "all")
}

func (c *Cache) invalidate(match func(key string) bool, scope string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for _, key := range append([]string(nil), c.order...) {
		if match(key) {
			c.removeLocked(key)
			dropped++
		}
	}
	if dropped > 0 {
		c.markDirtyLocked()
	}
	logger.Info("Verdict cache invalidated",
		zap.String("scope", scope),
		zap.Int("dropped", dropped),
		zap.Int("remaining", len(c.entries)))
}

// Len reports the live entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// FlushNow writes the current snapshot immediately, cancelling any pending
// debounced flush. For shutdown and tests.
func (c *Cache) FlushNow(ctx context.Context) {
	c.mu.Lock()
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	snapshot := make([]model.CacheEntry, 0, len(c.order))
	for _, key := range c.order {
		snapshot = append(snapshot, c.entries[key])
	}
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	if err := c.store.SaveEntries(ctx, snapshot); err != nil {
		// Memory stays authoritative; persistence is skipped this cycle.
		logger.Error("Failed to persist verdict cache snapshot", zap.Error(err))
	}
}

// markDirtyLocked schedules at most one flush per debounce window. Callers
// hold c.mu.
func (c *Cache) markDirtyLocked() {
	if c.store == nil || c.pending != nil {
		return
	}
	c.pending = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		c.pending = nil
		c.mu.Unlock()
		c.FlushNow(context.Background())
	})
}

// removeLocked deletes an entry and its order slot. Callers hold c.mu.
func (c *Cache) removeLocked(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
