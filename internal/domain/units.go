package domain

import (
	"fmt"
	"strings"
)

// Distance units supported for route lengths.
type Units string

const (
	UnitsKilometers    Units = "km"
	UnitsMiles         Units = "mi"
	UnitsNauticalMiles Units = "naut"
)

// ParseUnits maps a request value onto a known unit.
// Empty input yields the fallback.
func ParseUnits(s string, fallback Units) (Units, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return fallback, nil
	}

	switch u := Units(s); u {
	case UnitsKilometers, UnitsMiles, UnitsNauticalMiles:
		return u, nil
	}

	return "", fmt.Errorf("%w: units must be one of km, mi, naut (got %q)", ErrInvalidInput, s)
}

// Assumed transit speed, in length units per hour, used for duration estimates.
// 24 knots for nautical miles; 44.448 otherwise.
func (u Units) TransitSpeed() float64 {
	if u == UnitsNauticalMiles {
		return 24.0
	}
	return 44.448
}
