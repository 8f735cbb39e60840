package ports

import (
	"context"
	"sea-route-service/internal/domain"
)

// Contract for the external maritime shortest-path search.
type Pathfinder interface {
	// Return an ordered sea-only polyline from origin to destination, or a
	// 2-point straight line when no meaningful path exists.
	FindSeaRoute(ctx context.Context, origin, destination domain.Coordinates, units domain.Units) ([]domain.Coordinates, error)
}
