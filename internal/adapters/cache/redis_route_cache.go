package cache

import (
	"context"
	"errors"
	"fmt"
	"sea-route-service/internal/domain"
	"sea-route-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRouteCache is the shared tier. Values are codec payloads with a TTL.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{client: client, ttl: ttl}
}

// OpenRedis parses a redis:// URL and verifies the server answers.
func OpenRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("open redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("open redis: ping: %w", err)
	}
	return client, nil
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ []domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.redis.Get")(&err)

	if c.client == nil {
		return nil, false, errors.New("redis route cache: client is nil")
	}

	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis route cache get %q: %w", key, err)
	}

	route, err := decodeRoute(b)
	if err != nil {
		return nil, false, fmt.Errorf("redis route cache get %q: %w", key, err)
	}
	return route, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, route []domain.Coordinates) error {
	if c.client == nil {
		return errors.New("redis route cache: client is nil")
	}

	b, err := encodeRoute(route)
	if err != nil {
		return fmt.Errorf("redis route cache put %q: %w", key, err)
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis route cache put %q: %w", key, err)
	}
	return nil
}
