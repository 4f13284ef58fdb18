package fx

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MemoryRateCache is a mutex-guarded single-slot cache with a TTL. It backs
// the exchange service when no Redis is configured and doubles as the cache
// used in tests. A non-positive ttl means entries never expire.
type MemoryRateCache struct {
	mu        sync.RWMutex
	rate      decimal.Decimal
	expiresAt time.Time
	present   bool
	ttl       time.Duration
}

func NewMemoryRateCache(ttl time.Duration) *MemoryRateCache {
	return &MemoryRateCache{ttl: ttl}
}

func (c *MemoryRateCache) Get(_ context.Context) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.present {
		return decimal.Zero, false
	}
	if c.ttl > 0 && time.Now().After(c.expiresAt) {
		return decimal.Zero, false
	}
	return c.rate, true
}

func (c *MemoryRateCache) Set(_ context.Context, rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rate = rate
	c.expiresAt = time.Now().Add(c.ttl)
	c.present = true
}

func (c *MemoryRateCache) Evict(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.present = false
	c.rate = decimal.Zero
}
