package services

import (
	"sea-route-service/internal/domain"
	"sea-route-service/internal/geodesy"
)

const DefaultHeadingTolerance = 45.0

// ApplyCourseFilter drops leading waypoints that would require turning away
// from the current course.
//
// The first waypoint k >= 1 whose bearing from the start is within
// headingTol of course is kept along with everything after it. When no
// waypoint qualifies the route collapses to start -> destination and the
// CourseMatched diagnostic is false. The input route is not modified.
func ApplyCourseFilter(
	route *domain.ComposedRoute,
	destination domain.Coordinates,
	course float64,
	headingTol float64,
) *domain.ComposedRoute {
	coords := route.Coordinates
	if len(coords) < 2 {
		return route
	}

	k := 1
	for ; k < len(coords); k++ {
		if geodesy.AngularDifference(geodesy.Bearing(coords[0], coords[k]), course) <= headingTol {
			break
		}
	}
	matched := k < len(coords)

	filtered := make([]domain.Coordinates, 0, len(coords)-k+2)
	filtered = append(filtered, coords[0])
	filtered = append(filtered, coords[k:]...)
	filtered = finishRoute(filtered, destination)

	diag := route.Diagnostics
	diag.CourseFiltered = true
	diag.CourseMatched = &matched

	return newComposedRoute(filtered, route.Units, route.Type, diag)
}
