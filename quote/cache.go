package quote

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long a cached quote stays fresh.
const DefaultTTL = 60 * time.Second

// Cache is a Provider decorator that remembers quotes for a TTL, so a
// report touching the same stock several times hits the network once.
type Cache struct {
	provider Provider
	ttl      time.Duration
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	quote   Quote
	fetched time.Time
}

// NewCache wraps a provider with a TTL cache. A non-positive ttl uses
// DefaultTTL.
func NewCache(p Provider, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		provider: p,
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]cacheEntry),
	}
}

func (c *Cache) Price(ctx context.Context, code string) (Quote, error) {
	c.mu.Lock()
	entry, ok := c.entries[code]
	c.mu.Unlock()
	if ok && c.now().Sub(entry.fetched) < c.ttl {
		return entry.quote, nil
	}

	q, err := c.provider.Price(ctx, code)
	if err != nil {
		// A stale quote beats no quote.
		if ok {
			return entry.quote, nil
		}
		return Quote{}, err
	}

	c.mu.Lock()
	c.entries[code] = cacheEntry{quote: q, fetched: c.now()}
	c.mu.Unlock()
	return q, nil
}

// Invalidate drops all cached quotes.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
