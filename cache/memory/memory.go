// Package memory is the in-process NameCache used when Redis is disabled.
package memory

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/syncnotes/syncnotes/cache"
)

const capacity = 10_000

type MemoryNameCache struct {
	names *ttlcache.Cache[string, string]
}

var _ cache.NameCache = (*MemoryNameCache)(nil)

// NewMemoryNameCache starts the expiry loop, which stops when ctx is done.
func NewMemoryNameCache(ctx context.Context, ttl time.Duration) *MemoryNameCache {
	names := ttlcache.New[string, string](
		ttlcache.WithTTL[string, string](ttl),
		ttlcache.WithCapacity[string, string](capacity),
	)
	go names.Start()
	go func() {
		<-ctx.Done()
		names.Stop()
	}()

	return &MemoryNameCache{names: names}
}

func (c *MemoryNameCache) GetDisplayName(_ context.Context, userId string) (string, bool, error) {
	item := c.names.Get(userId)
	if item == nil {
		return "", false, nil
	}
	return item.Value(), true, nil
}

func (c *MemoryNameCache) SetDisplayName(_ context.Context, userId string, name string) error {
	c.names.Set(userId, name, ttlcache.DefaultTTL)
	return nil
}

func (c *MemoryNameCache) InvalidateDisplayName(_ context.Context, userId string) error {
	c.names.Delete(userId)
	return nil
}
