package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/syncnotes/syncnotes/cache"
)

type RedisNameCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

var _ cache.NameCache = (*RedisNameCache)(nil)

func NewRedisNameCache(ctx context.Context, addr string, useTLS bool, ttl time.Duration) (*RedisNameCache, error) {
	opts := &redis.Options{Addr: addr}
	if useTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisNameCache{client: client, ttl: ttl}, nil
}

func buildNameKey(userId string) string {
	return "user:{" + userId + "}:name"
}

func (c *RedisNameCache) GetDisplayName(ctx context.Context, userId string) (string, bool, error) {
	name, err := c.client.Get(ctx, buildNameKey(userId)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return name, true, nil
}

func (c *RedisNameCache) SetDisplayName(ctx context.Context, userId string, name string) error {
	return c.client.Set(ctx, buildNameKey(userId), name, c.ttl).Err()
}

func (c *RedisNameCache) InvalidateDisplayName(ctx context.Context, userId string) error {
	return c.client.Del(ctx, buildNameKey(userId)).Err()
}

func (c *RedisNameCache) Close() error {
	return c.client.Close()
}
