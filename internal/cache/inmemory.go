package cache

import (
	"context"
	"strings"
	"time"

	goCache "github.com/patrickmn/go-cache"
	"github.com/phenixmation/payables/internal/config"
	"github.com/phenixmation/payables/internal/logger"
)

// DefaultExpiration is the default expiration time for cache entries
const DefaultExpiration = 5 * time.Minute

// DefaultCleanupInterval is how often expired items are removed from the cache
const DefaultCleanupInterval = 10 * time.Minute

// InMemoryCache implements the Cache interface using github.com/patrickmn/go-cache.
// When caching is disabled in the configuration every lookup misses.
type InMemoryCache struct {
	cache   *goCache.Cache
	enabled bool
	logger  *logger.Logger
}

// NewInMemoryCache creates the cache used for remote API answers
func NewInMemoryCache(cfg *config.Configuration, logger *logger.Logger) Cache {
	if !cfg.Cache.Enabled {
		logger.Info("cache is disabled")
	}
	return &InMemoryCache{
		cache:   goCache.New(DefaultExpiration, DefaultCleanupInterval),
		enabled: cfg.Cache.Enabled,
		logger:  logger,
	}
}

// Get retrieves a value from the cache
func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	if !c.enabled {
		return nil, false
	}
	return c.cache.Get(key)
}

// Set adds a value to the cache with the specified expiration
func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) {
	if !c.enabled {
		return
	}
	if expiration == 0 {
		expiration = goCache.DefaultExpiration
	}
	c.cache.Set(key, value, expiration)
}

// Delete removes a key from the cache
func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.cache.Delete(key)
}

// DeleteByPrefix removes all keys with the given prefix
func (c *InMemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
}

// Flush removes all items from the cache
func (c *InMemoryCache) Flush(_ context.Context) {
	c.cache.Flush()
}
