package services

import (
	"fmt"
	"math"
	"sea-route-service/internal/domain"
	"sea-route-service/internal/geodesy"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Projection describes where a point lands on a polyline.
type Projection struct {
	// Index of the segment (route[i] -> route[i+1]) containing the projected point.
	SegmentIndex int
	// Position within that segment, 0 at route[i] and 1 at route[i+1].
	Fraction float64
	// Closest point on the polyline.
	Point domain.Coordinates
	// Great-circle distance from the input point to Point.
	OffsetKm float64
}

// ProjectOntoRoute projects point onto route.
//
// Lon/lat are treated as planar Cartesian coordinates to locate the closest
// point, which is an acceptable approximation at the scales involved. The
// reported offset is great-circle. Inputs are not modified.
func ProjectOntoRoute(point domain.Coordinates, route []domain.Coordinates) (Projection, error) {
	if len(route) < 2 {
		return Projection{}, fmt.Errorf(
			"%w: project point: polyline needs at least 2 points, got %d",
			domain.ErrComputation, len(route),
		)
	}

	p := orb.Point{point.Lon, point.Lat}

	// Arc-length position of the closest point. The first segment wins on ties.
	projDist := 0.0
	bestSq := math.Inf(1)
	accumulated := 0.0
	for i := 0; i+1 < len(route); i++ {
		a := orb.Point{route[i].Lon, route[i].Lat}
		b := orb.Point{route[i+1].Lon, route[i+1].Lat}
		segLen := planar.Distance(a, b)

		t := segmentFraction(p, a, b)
		closest := orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
		if d := planar.DistanceSquared(p, closest); d < bestSq {
			bestSq = d
			projDist = accumulated + t*segLen
		}
		accumulated += segLen
	}

	projected := interpolateAlong(route, projDist)
	offset := geodesy.DistanceKm(point, projected)

	accumulated = 0
	for i := 0; i+1 < len(route); i++ {
		a := orb.Point{route[i].Lon, route[i].Lat}
		b := orb.Point{route[i+1].Lon, route[i+1].Lat}
		segLen := planar.Distance(a, b)

		if accumulated+segLen >= projDist {
			frac := 0.0
			if segLen > 0 {
				frac = (projDist - accumulated) / segLen
			}
			return Projection{SegmentIndex: i, Fraction: frac, Point: projected, OffsetKm: offset}, nil
		}
		accumulated += segLen
	}

	return Projection{SegmentIndex: len(route) - 2, Fraction: 1.0, Point: projected, OffsetKm: offset}, nil
}

// segmentFraction returns the clamped parameter of the point on segment ab closest to p.
func segmentFraction(p, a, b orb.Point) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return 0
	}

	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / lenSq
	return math.Max(0, math.Min(1, t))
}

// interpolateAlong returns the point at planar arc-length dist along route.
func interpolateAlong(route []domain.Coordinates, dist float64) domain.Coordinates {
	if dist <= 0 {
		return route[0]
	}

	accumulated := 0.0
	for i := 0; i+1 < len(route); i++ {
		a := orb.Point{route[i].Lon, route[i].Lat}
		b := orb.Point{route[i+1].Lon, route[i+1].Lat}
		segLen := planar.Distance(a, b)

		if segLen > 0 && accumulated+segLen >= dist {
			t := (dist - accumulated) / segLen
			return domain.Coordinates{
				Lon: a[0] + t*(b[0]-a[0]),
				Lat: a[1] + t*(b[1]-a[1]),
			}
		}
		accumulated += segLen
	}

	return route[len(route)-1]
}
