package services

import (
	"context"
	"errors"
	"fmt"
	"sea-route-service/internal/domain"
	"sea-route-service/internal/ports"
	"time"
)

// fetchReference obtains a reference route and classifies every failure as
// ErrPathfinderUnavailable.
func fetchReference(
	ctx context.Context,
	pathfinder ports.Pathfinder,
	origin domain.Coordinates,
	destination domain.Coordinates,
	units domain.Units,
) ([]domain.Coordinates, error) {
	if pathfinder == nil {
		return nil, fmt.Errorf("%w: pathfinder is not configured", domain.ErrPathfinderUnavailable)
	}

	route, err := pathfinder.FindSeaRoute(ctx, origin, destination, units)
	if err != nil {
		if errors.Is(err, domain.ErrPathfinderUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: find sea route %s -> %s: %w", domain.ErrPathfinderUnavailable, origin, destination, err)
	}

	if len(route) < 2 {
		return nil, fmt.Errorf(
			"%w: find sea route %s -> %s: pathfinder returned %d points",
			domain.ErrPathfinderUnavailable, origin, destination, len(route),
		)
	}

	return route, nil
}

// boundedPathfinder puts a deadline on every pathfinder call so a request
// fails instead of hanging when the pathfinder does not respond.
type boundedPathfinder struct {
	next    ports.Pathfinder
	timeout time.Duration
}

func (b boundedPathfinder) FindSeaRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	units domain.Units,
) ([]domain.Coordinates, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	return b.next.FindSeaRoute(ctx, origin, destination, units)
}
