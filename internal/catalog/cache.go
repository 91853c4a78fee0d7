package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/adudhe01/runroom/internal/domain"
)

// Cache sizing for item-by-ID lookups during snapshot joins. The catalog is
// small, so the LRU mostly exists to bound staleness after re-provisioning.
const (
	defaultCacheSize = 128
	defaultCacheTTL  = 5 * time.Minute
)

// itemCache is an in-memory LRU for item lookups with time-based expiration.
type itemCache struct {
	lru *expirable.LRU[string, *domain.Item]
}

func newItemCache(size int, ttl time.Duration) *itemCache {
	return &itemCache{
		lru: expirable.NewLRU[string, *domain.Item](size, nil, ttl),
	}
}

// Get retrieves an item from the cache.
func (c *itemCache) Get(id string) (*domain.Item, bool) {
	return c.lru.Get(id)
}

// Set stores an item in the cache.
func (c *itemCache) Set(id string, item *domain.Item) {
	c.lru.Add(id, item)
}

// Clear removes all entries. Called after re-provisioning so snapshot joins
// observe updated fields.
func (c *itemCache) Clear() {
	c.lru.Purge()
}
