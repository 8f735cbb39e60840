package services

import (
	"context"
	"fmt"
	"log"
	"sea-route-service/internal/domain"
	"sea-route-service/internal/geodesy"
	"sea-route-service/internal/platform/obs"
	"sea-route-service/internal/ports"
)

const (
	DefaultWaypointSpacing = 3

	// Nudge applied to both endpoints when the pathfinder only returns a straight line.
	degenerateRetryOffset = 0.1

	// Reference indices [1, guidedStartWindow) are considered as the first waypoint.
	guidedStartWindow = 5
)

type GuidedRouteRequest struct {
	Start           domain.Coordinates
	Destination     domain.Coordinates
	Units           domain.Units
	WaypointSpacing int
}

// BuildGuidedRoute follows the reference route by sampling one waypoint every
// WaypointSpacing points, starting from the early reference point best aligned
// with the direct bearing to the destination.
//
// When the pathfinder returns a straight line, the lookup is retried once
// with slightly offset endpoints; if that still yields no real sea path the
// route is simply start -> destination.
func BuildGuidedRoute(
	ctx context.Context,
	req GuidedRouteRequest,
	pathfinder ports.Pathfinder,
) (_ *domain.ComposedRoute, err error) {
	defer obs.Time(ctx, "route.guided")(&err)

	spacing := req.WaypointSpacing
	if spacing == 0 {
		spacing = DefaultWaypointSpacing
	}
	if spacing < 1 {
		return nil, fmt.Errorf("%w: build guided route: waypoint spacing must be >= 1, got %d", domain.ErrInvalidInput, spacing)
	}

	reference, err := fetchReference(ctx, pathfinder, req.Start, req.Destination, req.Units)
	if err != nil {
		return nil, fmt.Errorf("build guided route: %w", err)
	}

	if len(reference) <= 2 {
		reference = retryDegenerate(ctx, pathfinder, req, reference)
	}

	coords := []domain.Coordinates{req.Start}
	if len(reference) > 2 {
		coords = append(coords, sampleReference(req.Start, req.Destination, reference, spacing)...)
	}
	coords = finishRoute(coords, req.Destination)

	diag := domain.RouteDiagnostics{ReferencePointCount: len(reference)}
	return newComposedRoute(coords, req.Units, domain.RouteTypeGuided, diag), nil
}

// retryDegenerate is a best-effort second lookup; its failures are logged and
// the original reference is kept.
func retryDegenerate(
	ctx context.Context,
	pathfinder ports.Pathfinder,
	req GuidedRouteRequest,
	reference []domain.Coordinates,
) []domain.Coordinates {
	origin := req.Start.Offset(degenerateRetryOffset, degenerateRetryOffset)
	destination := req.Destination.Offset(-degenerateRetryOffset, -degenerateRetryOffset)

	alt, err := fetchReference(ctx, pathfinder, origin, destination, req.Units)
	if err != nil {
		log.Printf("guided route: offset retry failed origin=%s destination=%s err=%v", origin, destination, err)
		return reference
	}
	if len(alt) > 2 {
		return alt
	}
	return reference
}

// sampleReference returns the reference waypoints the guided route passes through.
func sampleReference(
	start domain.Coordinates,
	destination domain.Coordinates,
	reference []domain.Coordinates,
	spacing int,
) []domain.Coordinates {
	n := len(reference)
	bearingToDest := geodesy.Bearing(start, destination)

	// Lowest index wins on ties.
	bestStartIdx := 1
	bestDiff := 180.0
	for i := 1; i < min(n, guidedStartWindow); i++ {
		diff := geodesy.AngularDifference(geodesy.Bearing(start, reference[i]), bearingToDest)
		if diff < bestDiff {
			bestDiff = diff
			bestStartIdx = i
		}
	}

	out := make([]domain.Coordinates, 0, n/spacing+2)
	for i := bestStartIdx; i < n; i += spacing {
		out = append(out, reference[i])
	}

	// Keep the final approach when striding stopped more than one point short of the end.
	if n > spacing {
		lastSampled := bestStartIdx + ((n-bestStartIdx-1)/spacing)*spacing
		if lastSampled < n-2 {
			out = append(out, reference[n-2])
		}
	}

	return out
}
