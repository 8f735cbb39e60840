package services

import (
	"context"
	"fmt"
	"sea-route-service/internal/domain"
	"sea-route-service/internal/geodesy"
	"sea-route-service/internal/platform/obs"
	"sea-route-service/internal/ports"
)

// Merge points closer than this to the start are not added as a separate waypoint.
const minMergeLegKm = 0.1

type OptimizedRouteRequest struct {
	Start       domain.Coordinates
	Destination domain.Coordinates
	// Optional; fetched from the pathfinder when nil.
	Reference      []domain.Coordinates
	Units          domain.Units
	MaxDeviationKm float64
}

// ComposeOptimizedRoute builds start -> merge point -> rest of the reference
// route -> destination.
//
// The merge point is chosen by SelectMergePoint and is only added as its own
// waypoint when it is more than 100 m from the start.
func ComposeOptimizedRoute(
	ctx context.Context,
	req OptimizedRouteRequest,
	pathfinder ports.Pathfinder,
) (_ *domain.ComposedRoute, err error) {
	defer obs.Time(ctx, "route.optimized")(&err)

	reference := req.Reference
	if reference == nil {
		reference, err = fetchReference(ctx, pathfinder, req.Start, req.Destination, req.Units)
		if err != nil {
			return nil, fmt.Errorf("compose optimized route: %w", err)
		}
	}

	maxDev := req.MaxDeviationKm
	if maxDev <= 0 {
		maxDev = DefaultMaxDeviationKm
	}

	merge, err := SelectMergePoint(req.Start, req.Destination, reference, maxDev)
	if err != nil {
		return nil, fmt.Errorf("compose optimized route: %w", err)
	}

	coords := make([]domain.Coordinates, 0, len(reference)+2)
	coords = append(coords, req.Start)
	if geodesy.DistanceKm(req.Start, merge.Coordinates()) > minMergeLegKm {
		coords = append(coords, merge.Coordinates())
	}
	coords = append(coords, reference[merge.Index()+1:]...)
	coords = finishRoute(coords, req.Destination)

	idx := merge.Index()
	_, fallback := merge.(MergeFallback)
	diag := domain.RouteDiagnostics{
		MergePointIndex:     &idx,
		MergeFallback:       &fallback,
		ReferencePointCount: len(reference),
	}

	// A single-point reference has no segment to project onto.
	if len(reference) >= 2 {
		proj, err := ProjectOntoRoute(req.Start, reference)
		if err != nil {
			return nil, fmt.Errorf("compose optimized route: %w", err)
		}
		diag.ProjectedSegmentIndex = &proj.SegmentIndex
		diag.ProjectedOffsetKm = &proj.OffsetKm
	}

	return newComposedRoute(coords, req.Units, domain.RouteTypeOptimized, diag), nil
}
