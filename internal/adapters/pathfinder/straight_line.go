package pathfinder

import (
	"context"
	"sea-route-service/internal/domain"
)

// StraightLinePathfinder returns the two endpoints as the sea route. It lets
// the service run without a searoute backend; guided routes then fall back
// to start -> destination.
type StraightLinePathfinder struct{}

func (StraightLinePathfinder) FindSeaRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	_ domain.Units,
) ([]domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []domain.Coordinates{origin, destination}, nil
}
