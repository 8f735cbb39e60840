package domain

// Tag identifying how a route was produced.
type RouteType string

const (
	RouteTypeOptimized RouteType = "optimized_from_position"
	RouteTypeGuided    RouteType = "guided"
	RouteTypeOriginal  RouteType = "original"
	RouteTypeDirect    RouteType = "direct"
)

// Diagnostics carries strategy-specific facts about how a route was built.
// Pointer fields are only set by the strategy they belong to.
type RouteDiagnostics struct {
	// Optimized strategy.
	MergePointIndex       *int
	MergeFallback         *bool
	ProjectedSegmentIndex *int
	ProjectedOffsetKm     *float64

	// Number of points in the reference route the strategy worked from.
	ReferencePointCount int

	// Course filter.
	CourseFiltered bool
	CourseMatched  *bool
}

// Represents a navigable route from a start position to a destination.
// A ComposedRoute is created once per request with its aggregate metrics
// already computed from Coordinates. It is never mutated afterwards;
// post-processing produces a new value.
type ComposedRoute struct {
	Coordinates   []Coordinates
	Length        float64
	Units         Units
	DurationHours float64
	Type          RouteType
	Diagnostics   RouteDiagnostics
}

// WaypointCount is the number of coordinates in the route.
func (r *ComposedRoute) WaypointCount() int { return len(r.Coordinates) }
