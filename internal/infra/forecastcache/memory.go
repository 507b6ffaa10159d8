package forecastcache

import (
	"context"
	"sync"
	"time"

	"github.com/alkias2/SolunarBase/internal/domain/solunar"
)

type cachedResult struct {
	payload   solunar.Result
	expiresAt time.Time
}

// MemoryCache is an in-memory forecast cache used for tests/dev.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cachedResult
}

// NewMemoryCache constructs a cache backed by process memory.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]cachedResult)}
}

// Get implements solunar.Cache.
func (c *MemoryCache) Get(_ context.Context, key string) (solunar.Result, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return solunar.Result{}, false, nil
	}
	if hasExpired(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return solunar.Result{}, false, nil
	}
	return entry.payload, true, nil
}

// Set caches the result with optional TTL.
func (c *MemoryCache) Set(_ context.Context, key string, result solunar.Result, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.entries[key] = cachedResult{payload: result, expiresAt: exp}
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ solunar.Cache = (*MemoryCache)(nil)
