// Package geodesy provides the spherical helpers the route composer is built on:
// initial bearings, bearing differences and great-circle distances in the
// supported units.
package geodesy

import (
	"math"

	"sea-route-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Conversion factors from kilometers.
const (
	KmToNauticalMiles = 0.539957
	KmToMiles         = 0.621371
)

func toPoint(c domain.Coordinates) orb.Point { return orb.Point{c.Lon, c.Lat} }

// Bearing returns the initial great-circle bearing from p1 to p2 in degrees, in [0, 360).
func Bearing(p1, p2 domain.Coordinates) float64 {
	b := geo.Bearing(toPoint(p1), toPoint(p2))
	b = math.Mod(b+360, 360)
	if b >= 360 {
		b = 0
	}
	return b
}

// AngularDifference returns the smallest absolute difference between two
// bearings in degrees, in [0, 180].
func AngularDifference(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		return 360 - d
	}
	return d
}

// DistanceKm returns the great-circle distance between two points in kilometers.
func DistanceKm(p1, p2 domain.Coordinates) float64 {
	return geo.DistanceHaversine(toPoint(p1), toPoint(p2)) / 1000
}

// Distance returns the great-circle distance between two points in the given units.
// Units other than km and naut are reported in miles.
func Distance(p1, p2 domain.Coordinates, units domain.Units) float64 {
	return ConvertKm(DistanceKm(p1, p2), units)
}

// ConvertKm converts a kilometer value into the given units.
func ConvertKm(km float64, units domain.Units) float64 {
	switch units {
	case domain.UnitsNauticalMiles:
		return km * KmToNauticalMiles
	case domain.UnitsKilometers:
		return km
	default:
		return km * KmToMiles
	}
}

// PathLength sums the great-circle distances between consecutive coordinates.
func PathLength(coords []domain.Coordinates, units domain.Units) float64 {
	total := 0.0
	for i := 0; i+1 < len(coords); i++ {
		total += Distance(coords[i], coords[i+1], units)
	}
	return total
}
