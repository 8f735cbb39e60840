package services

import (
	"sea-route-service/internal/domain"
	"sea-route-service/internal/geodesy"
)

// newComposedRoute is the only constructor for routes returned by the planner.
// Length and duration are always derived from the final coordinates.
func newComposedRoute(
	coords []domain.Coordinates,
	units domain.Units,
	routeType domain.RouteType,
	diag domain.RouteDiagnostics,
) *domain.ComposedRoute {
	length := geodesy.PathLength(coords, units)

	return &domain.ComposedRoute{
		Coordinates:   coords,
		Length:        length,
		Units:         units,
		DurationHours: length / units.TransitSpeed(),
		Type:          routeType,
		Diagnostics:   diag,
	}
}

// finishRoute appends destination when it is not already the last point and
// removes consecutive duplicates.
func finishRoute(coords []domain.Coordinates, destination domain.Coordinates) []domain.Coordinates {
	if len(coords) == 0 || coords[len(coords)-1] != destination {
		coords = append(coords, destination)
	}
	return domain.DedupConsecutive(coords)
}
