package cache

import (
	"context"
	"time"
)

// hotBackfillTTL caps how long a backfilled hot-tier entry lives.
// The durable tier keeps the authoritative expiry.
const hotBackfillTTL = time.Hour

// TieredCache layers a fast cache over a durable one, typically Redis
// over Mongo. Reads try the hot tier first and backfill it on a durable
// hit; writes land in both tiers.
type TieredCache struct {
	hot     Cache
	durable Cache
}

// NewTieredCache creates a two-tier cache.
// A nil tier is replaced with a NullCache, so a TieredCache with only
// one live tier degrades to that tier.
func NewTieredCache(hot, durable Cache) Cache {
	if hot == nil {
		hot = NewNullCache()
	}
	if durable == nil {
		durable = NewNullCache()
	}
	return &TieredCache{hot: hot, durable: durable}
}

// Get retrieves a value, preferring the hot tier.
// A hot-tier failure falls through to the durable tier rather than
// surfacing the error.
func (c *TieredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if data, hit, err := c.hot.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	data, hit, err := c.durable.Get(ctx, key)
	if err != nil || !hit {
		return nil, false, err
	}

	_ = c.hot.Set(ctx, key, data, hotBackfillTTL)
	return data, true, nil
}

// Set stores a value in both tiers. The durable tier is authoritative:
// its write must succeed, while a hot-tier failure only costs a future
// backfill.
func (c *TieredCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.durable.Set(ctx, key, data, ttl); err != nil {
		return err
	}

	hotTTL := ttl
	if hotTTL <= 0 || hotTTL > hotBackfillTTL {
		hotTTL = hotBackfillTTL
	}
	_ = c.hot.Set(ctx, key, data, hotTTL)
	return nil
}

// Delete removes a value from both tiers.
func (c *TieredCache) Delete(ctx context.Context, key string) error {
	hotErr := c.hot.Delete(ctx, key)
	durableErr := c.durable.Delete(ctx, key)
	if durableErr != nil {
		return durableErr
	}
	return hotErr
}

// Close closes both tiers.
func (c *TieredCache) Close() error {
	hotErr := c.hot.Close()
	durableErr := c.durable.Close()
	if hotErr != nil {
		return hotErr
	}
	return durableErr
}

// Ensure TieredCache implements Cache.
var _ Cache = (*TieredCache)(nil)
