package ports

import (
	"context"
	"sea-route-service/internal/domain"
)

// Port: a key/value store for reference routes returned by the pathfinder.
// Implementations must be safe for concurrent use.
type RouteCache interface {
	// Return the cached route for key; ok is false on a miss.
	Get(ctx context.Context, key string) (route []domain.Coordinates, ok bool, err error)
	// Store a route under key, replacing any previous value.
	Put(ctx context.Context, key string, route []domain.Coordinates) error
}
