package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates (longitude, latitude) in degrees.
// Equality is exact-value comparison.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Validate reports whether the coordinates are within the valid degree ranges.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return fmt.Errorf("%w: coordinates must be numbers", ErrInvalidInput)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90 degrees", ErrInvalidInput)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180 degrees", ErrInvalidInput)
	}
	return nil
}

// Offset returns the coordinates shifted by the given deltas in degrees.
func (c Coordinates) Offset(dLon, dLat float64) Coordinates {
	return Coordinates{Lon: c.Lon + dLon, Lat: c.Lat + dLat}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%g,%g)", c.Lon, c.Lat)
}

// DedupConsecutive drops coordinates exactly equal to their predecessor.
// The input slice is not modified.
func DedupConsecutive(coords []Coordinates) []Coordinates {
	if len(coords) == 0 {
		return []Coordinates{}
	}

	out := make([]Coordinates, 0, len(coords))
	out = append(out, coords[0])
	for _, c := range coords[1:] {
		if c != out[len(out)-1] {
			out = append(out, c)
		}
	}
	return out
}
