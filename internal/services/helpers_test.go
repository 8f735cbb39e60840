package services

import (
	"testing"

	"sea-route-service/internal/domain"
	"sea-route-service/internal/geodesy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(lon, lat float64) domain.Coordinates { return domain.Coordinates{Lon: lon, Lat: lat} }

// equatorRoute returns n points along the equator starting at lon 0, one degree apart.
func equatorRoute(n int) []domain.Coordinates {
	out := make([]domain.Coordinates, n)
	for i := range out {
		out[i] = pt(float64(i), 0)
	}
	return out
}

// requireWellFormed checks the properties every composed route must have.
func requireWellFormed(t *testing.T, r *domain.ComposedRoute, start, destination domain.Coordinates) {
	t.Helper()
	require.NotNil(t, r)
	require.NotEmpty(t, r.Coordinates)

	assert.Equal(t, start, r.Coordinates[0], "route must begin at start")
	assert.Equal(t, destination, r.Coordinates[len(r.Coordinates)-1], "route must end at destination")

	for i := 1; i < len(r.Coordinates); i++ {
		assert.NotEqual(t, r.Coordinates[i-1], r.Coordinates[i], "consecutive duplicate at %d", i)
	}

	assertLengthConsistent(t, r)
}

func assertLengthConsistent(t *testing.T, r *domain.ComposedRoute) {
	t.Helper()

	sum := 0.0
	for i := 1; i < len(r.Coordinates); i++ {
		sum += geodesy.Distance(r.Coordinates[i-1], r.Coordinates[i], r.Units)
	}
	if sum == 0 {
		assert.Zero(t, r.Length)
	} else {
		assert.InEpsilon(t, sum, r.Length, 1e-6)
	}
	assert.InDelta(t, r.Length/r.Units.TransitSpeed(), r.DurationHours, 1e-9)
}
