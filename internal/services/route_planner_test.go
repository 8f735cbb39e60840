package services

import (
	"context"
	"math"
	"testing"
	"time"

	"sea-route-service/internal/adapters/pathfinder"
	"sea-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	plannerStart       = pt(0, 0)
	plannerDestination = pt(9, 0)
)

func newTestPlanner(t *testing.T, routes ...pathfinder.MockRoute) (*RoutePlanner, *pathfinder.MockPathfinder) {
	t.Helper()
	if len(routes) == 0 {
		routes = []pathfinder.MockRoute{{From: plannerStart, To: plannerDestination, Route: equatorRoute(10)}}
	}
	mock := pathfinder.NewMockPathfinder(routes)

	p, err := NewRoutePlanner(mock, DefaultPlannerConfig())
	require.NoError(t, err)
	return p, mock
}

// blockingPathfinder never answers before its context is done.
type blockingPathfinder struct{}

func (blockingPathfinder) FindSeaRoute(ctx context.Context, _, _ domain.Coordinates, _ domain.Units) ([]domain.Coordinates, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRoutePlanner_Strategies(t *testing.T) {
	tests := []struct {
		strategy Strategy
		want     domain.RouteType
	}{
		{strategy: "", want: domain.RouteTypeGuided},
		{strategy: StrategyGuided, want: domain.RouteTypeGuided},
		{strategy: StrategyOptimized, want: domain.RouteTypeOptimized},
		{strategy: StrategyOriginal, want: domain.RouteTypeOriginal},
	}

	for _, tc := range tests {
		t.Run(string(tc.want)+"/"+string(tc.strategy), func(t *testing.T) {
			p, _ := newTestPlanner(t)

			r, err := p.Route(context.Background(), RouteRequest{
				Start:       plannerStart,
				Destination: plannerDestination,
				Strategy:    tc.strategy,
			})
			require.NoError(t, err)

			requireWellFormed(t, r, plannerStart, plannerDestination)
			assert.Equal(t, tc.want, r.Type)
			assert.Equal(t, domain.UnitsNauticalMiles, r.Units)
		})
	}
}

func TestRoutePlanner_OriginalIsReferenceAsReturned(t *testing.T) {
	p, _ := newTestPlanner(t)

	r, err := p.Route(context.Background(), RouteRequest{
		Start:       plannerStart,
		Destination: plannerDestination,
		Strategy:    StrategyOriginal,
		Units:       domain.UnitsKilometers,
	})
	require.NoError(t, err)
	assert.Equal(t, equatorRoute(10), r.Coordinates)
	assert.Equal(t, 10, r.Diagnostics.ReferencePointCount)
}

func TestRoutePlanner_UnitsChangeLengthNotShape(t *testing.T) {
	p, _ := newTestPlanner(t)
	ctx := context.Background()

	km, err := p.Route(ctx, RouteRequest{Start: plannerStart, Destination: plannerDestination, Units: domain.UnitsKilometers})
	require.NoError(t, err)
	naut, err := p.Route(ctx, RouteRequest{Start: plannerStart, Destination: plannerDestination, Units: domain.UnitsNauticalMiles})
	require.NoError(t, err)

	assert.Equal(t, km.Coordinates, naut.Coordinates)
	assert.InEpsilon(t, km.Length*0.539957, naut.Length, 1e-6)
	assert.InEpsilon(t, naut.Length/24, naut.DurationHours, 1e-9)
	assert.InEpsilon(t, km.Length/44.448, km.DurationHours, 1e-9)
}

func TestRoutePlanner_CourseFilter(t *testing.T) {
	p, _ := newTestPlanner(t)
	south := 180.0

	r, err := p.Route(context.Background(), RouteRequest{
		Start:       plannerStart,
		Destination: plannerDestination,
		Course:      &south,
	})
	require.NoError(t, err)

	requireWellFormed(t, r, plannerStart, plannerDestination)
	assert.Equal(t, []domain.Coordinates{plannerStart, plannerDestination}, r.Coordinates)
	require.NotNil(t, r.Diagnostics.CourseMatched)
	assert.False(t, *r.Diagnostics.CourseMatched)

	east, wide := 80.0, 30.0
	r, err = p.Route(context.Background(), RouteRequest{
		Start:            plannerStart,
		Destination:      plannerDestination,
		Course:           &east,
		HeadingTolerance: &wide,
	})
	require.NoError(t, err)
	assert.True(t, *r.Diagnostics.CourseMatched)
	assert.Greater(t, len(r.Coordinates), 2)
}

func TestRoutePlanner_InvalidInput(t *testing.T) {
	p, mock := newTestPlanner(t)
	bad := 200.0
	nan := math.NaN()

	tests := map[string]RouteRequest{
		"latitude":  {Start: pt(0, 91), Destination: plannerDestination},
		"longitude": {Start: plannerStart, Destination: pt(181, 0)},
		"units":     {Start: plannerStart, Destination: plannerDestination, Units: "leagues"},
		"strategy":  {Start: plannerStart, Destination: plannerDestination, Strategy: "scenic"},
		"tolerance": {Start: plannerStart, Destination: plannerDestination, HeadingTolerance: &bad},
		"course":    {Start: plannerStart, Destination: plannerDestination, Course: &nan},
	}

	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := p.Route(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, mock.Calls())
}

func TestRoutePlanner_PathfinderUnavailable(t *testing.T) {
	p, _ := newTestPlanner(t, pathfinder.MockRoute{From: pt(50, 50), To: pt(51, 51), Route: equatorRoute(3)})

	for _, s := range []Strategy{StrategyGuided, StrategyOptimized, StrategyOriginal} {
		_, err := p.Route(context.Background(), RouteRequest{Start: plannerStart, Destination: plannerDestination, Strategy: s})
		assert.ErrorIs(t, err, domain.ErrPathfinderUnavailable, "strategy %s", s)
	}
}

func TestRoutePlanner_PathfinderTimeout(t *testing.T) {
	cfg := DefaultPlannerConfig()
	cfg.PathfinderTimeout = 20 * time.Millisecond
	p, err := NewRoutePlanner(blockingPathfinder{}, cfg)
	require.NoError(t, err)

	_, err = p.Route(context.Background(), RouteRequest{Start: plannerStart, Destination: plannerDestination})
	assert.ErrorIs(t, err, domain.ErrPathfinderUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRoutePlanner_Compare(t *testing.T) {
	p, mock := newTestPlanner(t)

	cmp, err := p.Compare(context.Background(), plannerStart, plannerDestination, domain.UnitsKilometers)
	require.NoError(t, err)

	for name, r := range map[string]*domain.ComposedRoute{
		"original":  cmp.Original,
		"optimized": cmp.Optimized,
		"guided":    cmp.Guided,
		"direct":    cmp.Direct,
	} {
		requireWellFormed(t, r, plannerStart, plannerDestination)
		assert.Equal(t, domain.UnitsKilometers, r.Units, name)
	}

	assert.Equal(t, domain.RouteTypeOriginal, cmp.Original.Type)
	assert.Equal(t, domain.RouteTypeOptimized, cmp.Optimized.Type)
	assert.Equal(t, domain.RouteTypeGuided, cmp.Guided.Type)
	assert.Equal(t, domain.RouteTypeDirect, cmp.Direct.Type)
	assert.Equal(t, []domain.Coordinates{plannerStart, plannerDestination}, cmp.Direct.Coordinates)

	// Optimized reuses the original reference.
	assert.Equal(t, 2, mock.Calls())
}

func TestRoutePlanner_CompareFailsAsAWhole(t *testing.T) {
	p, _ := newTestPlanner(t, pathfinder.MockRoute{From: pt(50, 50), To: pt(51, 51), Route: equatorRoute(3)})

	_, err := p.Compare(context.Background(), plannerStart, plannerDestination, "")
	assert.ErrorIs(t, err, domain.ErrPathfinderUnavailable)
}

func TestNewRoutePlanner_Validation(t *testing.T) {
	_, err := NewRoutePlanner(nil, DefaultPlannerConfig())
	assert.Error(t, err)

	cfg := DefaultPlannerConfig()
	cfg.DefaultUnits = "furlongs"
	_, err = NewRoutePlanner(pathfinder.StraightLinePathfinder{}, cfg)
	assert.Error(t, err)

	cfg = DefaultPlannerConfig()
	cfg.HeadingTolerance = -1
	_, err = NewRoutePlanner(pathfinder.StraightLinePathfinder{}, cfg)
	assert.Error(t, err)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy(" Optimized ")
	require.NoError(t, err)
	assert.Equal(t, StrategyOptimized, s)

	s, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyGuided, s)

	_, err = ParseStrategy("fastest")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDirectRoute_SamePoint(t *testing.T) {
	r := DirectRoute(pt(1, 1), pt(1, 1), domain.UnitsNauticalMiles)
	assert.Equal(t, []domain.Coordinates{pt(1, 1)}, r.Coordinates)
	assert.Zero(t, r.Length)
}

func TestRoutePlanner_OriginalKeepsSnappedEndpoints(t *testing.T) {
	snapped := []domain.Coordinates{pt(0.2, 0.1), pt(4, 0), pt(8.9, 0.1)}
	p, _ := newTestPlanner(t, pathfinder.MockRoute{From: plannerStart, To: plannerDestination, Route: snapped})

	r, err := p.Route(context.Background(), RouteRequest{
		Start:       plannerStart,
		Destination: plannerDestination,
		Strategy:    StrategyOriginal,
	})
	require.NoError(t, err)
	assert.Equal(t, snapped, r.Coordinates)
	assertLengthConsistent(t, r)
}
