package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinatesValidate(t *testing.T) {
	tests := []struct {
		name string
		c    Coordinates
		ok   bool
	}{
		{name: "origin", c: Coordinates{}, ok: true},
		{name: "corners", c: Coordinates{Lon: 180, Lat: -90}, ok: true},
		{name: "lat high", c: Coordinates{Lon: 0, Lat: 90.0001}},
		{name: "lon low", c: Coordinates{Lon: -180.5, Lat: 0}},
		{name: "nan", c: Coordinates{Lon: math.NaN(), Lat: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.c.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDedupConsecutive(t *testing.T) {
	a, b := Coordinates{Lon: 1, Lat: 1}, Coordinates{Lon: 2, Lat: 2}

	assert.Equal(t, []Coordinates{a, b, a}, DedupConsecutive([]Coordinates{a, a, b, b, b, a}))
	assert.Empty(t, DedupConsecutive(nil))
}

func TestParseUnits(t *testing.T) {
	u, err := ParseUnits(" KM ", UnitsNauticalMiles)
	require.NoError(t, err)
	assert.Equal(t, UnitsKilometers, u)

	u, err = ParseUnits("", UnitsMiles)
	require.NoError(t, err)
	assert.Equal(t, UnitsMiles, u)

	_, err = ParseUnits("leagues", UnitsMiles)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTransitSpeed(t *testing.T) {
	assert.Equal(t, 24.0, UnitsNauticalMiles.TransitSpeed())
	assert.Equal(t, 44.448, UnitsKilometers.TransitSpeed())
	assert.Equal(t, 44.448, UnitsMiles.TransitSpeed())
}
