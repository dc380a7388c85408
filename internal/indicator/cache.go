package indicator

import (
	"context"
	"sync"
	"time"
)

// CacheTTL is how long fetched series stay valid before re-fetching.
const CacheTTL = 24 * time.Hour

// CachedSource wraps a Source with TTL-based caching so repeated
// calculations within a day reuse the same series. The clock is injected
// so tests can control expiry deterministically.
type CachedSource struct {
	inner Source
	now   func() time.Time
	ttl   time.Duration

	mu  sync.RWMutex
	ipc *cacheEntry
	uf  *cacheEntry
}

type cacheEntry struct {
	series    Series
	expiresAt time.Time
}

// NewCachedSource wraps src with the default 24h TTL.
func NewCachedSource(src Source) *CachedSource {
	return NewCachedSourceWithClock(src, CacheTTL, time.Now)
}

func NewCachedSourceWithClock(src Source, ttl time.Duration, now func() time.Time) *CachedSource {
	return &CachedSource{inner: src, now: now, ttl: ttl}
}

func (c *CachedSource) FetchIPC(ctx context.Context) (Series, error) {
	return c.fetch(ctx, &c.ipc, c.inner.FetchIPC)
}

func (c *CachedSource) FetchUF(ctx context.Context) (Series, error) {
	return c.fetch(ctx, &c.uf, c.inner.FetchUF)
}

func (c *CachedSource) fetch(ctx context.Context, slot **cacheEntry, load func(context.Context) (Series, error)) (Series, error) {
	c.mu.RLock()
	entry := *slot
	c.mu.RUnlock()
	if entry != nil && c.now().Before(entry.expiresAt) {
		return entry.series, nil
	}

	// Miss or expired. Concurrent misses may fetch redundantly; the last
	// writer wins, which is harmless for an append-only series.
	series, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	*slot = &cacheEntry{series: series, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return series, nil
}
