package services

import (
	"testing"

	"sea-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func composed(coords []domain.Coordinates) *domain.ComposedRoute {
	return newComposedRoute(coords, domain.UnitsNauticalMiles, domain.RouteTypeGuided, domain.RouteDiagnostics{})
}

func TestApplyCourseFilter(t *testing.T) {
	tests := []struct {
		name    string
		coords  []domain.Coordinates
		course  float64
		want    []domain.Coordinates
		matched bool
	}{
		{
			name:    "eastbound route, southbound course",
			coords:  []domain.Coordinates{pt(0, 0), pt(5, 0), pt(10, 0)},
			course:  180,
			want:    []domain.Coordinates{pt(0, 0), pt(10, 0)},
			matched: false,
		},
		{
			name:    "first waypoint agrees",
			coords:  []domain.Coordinates{pt(0, 0), pt(1, -2), pt(5, -3), pt(10, 0)},
			course:  180,
			want:    []domain.Coordinates{pt(0, 0), pt(1, -2), pt(5, -3), pt(10, 0)},
			matched: true,
		},
		{
			name:    "drops waypoints behind the course",
			coords:  []domain.Coordinates{pt(0, 0), pt(3, 1), pt(2, -5), pt(10, 0)},
			course:  180,
			want:    []domain.Coordinates{pt(0, 0), pt(2, -5), pt(10, 0)},
			matched: true,
		},
		{
			name:    "tolerance wraps through north",
			coords:  []domain.Coordinates{pt(0, 0), pt(-0.5, 2), pt(10, 0)},
			course:  350,
			want:    []domain.Coordinates{pt(0, 0), pt(-0.5, 2), pt(10, 0)},
			matched: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := composed(tc.coords)
			before := append([]domain.Coordinates(nil), in.Coordinates...)

			out := ApplyCourseFilter(in, pt(10, 0), tc.course, DefaultHeadingTolerance)

			requireWellFormed(t, out, pt(0, 0), pt(10, 0))
			assert.Equal(t, tc.want, out.Coordinates)
			assert.True(t, out.Diagnostics.CourseFiltered)
			require.NotNil(t, out.Diagnostics.CourseMatched)
			assert.Equal(t, tc.matched, *out.Diagnostics.CourseMatched)
			assert.Equal(t, before, in.Coordinates, "input must not be modified")
		})
	}
}

func TestApplyCourseFilter_ShortRouteUnchanged(t *testing.T) {
	in := composed([]domain.Coordinates{pt(1, 1)})

	out := ApplyCourseFilter(in, pt(1, 1), 90, 45)
	assert.Same(t, in, out)
}

func TestApplyCourseFilter_KeepsRouteTypeAndUnits(t *testing.T) {
	in := newComposedRoute([]domain.Coordinates{pt(0, 0), pt(0, -3), pt(0, -6)}, domain.UnitsKilometers, domain.RouteTypeOptimized, domain.RouteDiagnostics{ReferencePointCount: 9})

	out := ApplyCourseFilter(in, pt(0, -6), 180, 10)
	assert.Equal(t, domain.RouteTypeOptimized, out.Type)
	assert.Equal(t, domain.UnitsKilometers, out.Units)
	assert.Equal(t, 9, out.Diagnostics.ReferencePointCount)
	assertLengthConsistent(t, out)
}
