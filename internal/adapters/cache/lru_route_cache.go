package cache

import (
	"context"
	"sea-route-service/internal/domain"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRURouteCache is the in-process tier. Entries expire after ttl.
type LRURouteCache struct {
	lru *expirable.LRU[string, []domain.Coordinates]
}

func NewLRURouteCache(size int, ttl time.Duration) *LRURouteCache {
	if size <= 0 {
		size = 1024
	}
	return &LRURouteCache{lru: expirable.NewLRU[string, []domain.Coordinates](size, nil, ttl)}
}

func (c *LRURouteCache) Get(_ context.Context, key string) ([]domain.Coordinates, bool, error) {
	route, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return append([]domain.Coordinates(nil), route...), true, nil
}

func (c *LRURouteCache) Put(_ context.Context, key string, route []domain.Coordinates) error {
	c.lru.Add(key, append([]domain.Coordinates(nil), route...))
	return nil
}

func (c *LRURouteCache) Len() int { return c.lru.Len() }
