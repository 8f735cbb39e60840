package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sea-route-service/internal/domain"
	"sea-route-service/internal/platform/obs"
	"sea-route-service/internal/ports"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Strategy selects how a route is composed from the reference route.
type Strategy string

const (
	StrategyGuided    Strategy = "guided"
	StrategyOptimized Strategy = "optimized"
	StrategyOriginal  Strategy = "original"
)

// ParseStrategy maps a request value onto a Strategy. Empty input yields guided.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.TrimSpace(strings.ToLower(s))); st {
	case "":
		return StrategyGuided, nil
	case StrategyGuided, StrategyOptimized, StrategyOriginal:
		return st, nil
	}
	return "", fmt.Errorf("%w: route_type must be one of guided, optimized, original (got %q)", domain.ErrInvalidInput, s)
}

// Immutable defaults applied to every request.
type PlannerConfig struct {
	DefaultUnits      domain.Units
	HeadingTolerance  float64
	MaxDeviationKm    float64
	WaypointSpacing   int
	PathfinderTimeout time.Duration
}

// DefaultPlannerConfig returns the defaults the HTTP API documents.
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		DefaultUnits:      domain.UnitsNauticalMiles,
		HeadingTolerance:  DefaultHeadingTolerance,
		MaxDeviationKm:    DefaultMaxDeviationKm,
		WaypointSpacing:   DefaultWaypointSpacing,
		PathfinderTimeout: 20 * time.Second,
	}
}

// RoutePlanner is constructed once at startup and shared by all requests.
// It holds no per-request state and is safe for concurrent use as long as
// its pathfinder is.
type RoutePlanner struct {
	pathfinder ports.Pathfinder
	cfg        PlannerConfig
}

func NewRoutePlanner(pathfinder ports.Pathfinder, cfg PlannerConfig) (*RoutePlanner, error) {
	if pathfinder == nil {
		return nil, errors.New("new route planner: pathfinder must be non-nil")
	}
	if cfg.DefaultUnits == "" {
		cfg.DefaultUnits = domain.UnitsNauticalMiles
	}
	if _, err := domain.ParseUnits(string(cfg.DefaultUnits), ""); err != nil {
		return nil, fmt.Errorf("new route planner: default units: %w", err)
	}
	if cfg.HeadingTolerance < 0 || cfg.HeadingTolerance > 180 {
		return nil, fmt.Errorf("new route planner: heading tolerance must be within [0, 180], got %g", cfg.HeadingTolerance)
	}
	if cfg.MaxDeviationKm <= 0 {
		cfg.MaxDeviationKm = DefaultMaxDeviationKm
	}
	if cfg.WaypointSpacing <= 0 {
		cfg.WaypointSpacing = DefaultWaypointSpacing
	}

	return &RoutePlanner{
		pathfinder: boundedPathfinder{next: pathfinder, timeout: cfg.PathfinderTimeout},
		cfg:        cfg,
	}, nil
}

// Config returns the planner's defaults.
func (p *RoutePlanner) Config() PlannerConfig { return p.cfg }

type RouteRequest struct {
	Start       domain.Coordinates
	Destination domain.Coordinates
	// Empty means the planner default.
	Units    domain.Units
	Strategy Strategy
	// Current course in degrees; nil disables the course filter.
	Course *float64
	// Nil means the planner default.
	HeadingTolerance *float64
}

// Route computes a single route with the requested strategy and, when a
// course is given, drops leading waypoints that disagree with it.
func (p *RoutePlanner) Route(ctx context.Context, req RouteRequest) (_ *domain.ComposedRoute, err error) {
	defer obs.Time(ctx, "planner.Route")(&err)

	units, err := p.validate(req.Start, req.Destination, req.Units)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	tol := p.cfg.HeadingTolerance
	if req.HeadingTolerance != nil {
		tol = *req.HeadingTolerance
	}
	if math.IsNaN(tol) || tol < 0 || tol > 180 {
		return nil, fmt.Errorf("%w: plan route: heading_tol must be within [0, 180]", domain.ErrInvalidInput)
	}
	if req.Course != nil && (math.IsNaN(*req.Course) || math.IsInf(*req.Course, 0)) {
		return nil, fmt.Errorf("%w: plan route: course must be a finite number of degrees", domain.ErrInvalidInput)
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = StrategyGuided
	}

	var route *domain.ComposedRoute
	switch strategy {
	case StrategyOptimized:
		route, err = ComposeOptimizedRoute(ctx, OptimizedRouteRequest{
			Start:          req.Start,
			Destination:    req.Destination,
			Units:          units,
			MaxDeviationKm: p.cfg.MaxDeviationKm,
		}, p.pathfinder)
	case StrategyGuided:
		route, err = BuildGuidedRoute(ctx, GuidedRouteRequest{
			Start:           req.Start,
			Destination:     req.Destination,
			Units:           units,
			WaypointSpacing: p.cfg.WaypointSpacing,
		}, p.pathfinder)
	case StrategyOriginal:
		route, err = p.originalRoute(ctx, req.Start, req.Destination, units)
	default:
		return nil, fmt.Errorf("%w: plan route: unknown strategy %q", domain.ErrInvalidInput, strategy)
	}
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	if req.Course != nil && len(route.Coordinates) > 1 {
		route = ApplyCourseFilter(route, req.Destination, *req.Course, tol)
	}

	return route, nil
}

// Comparison holds every strategy's route for the same endpoints.
type Comparison struct {
	Original  *domain.ComposedRoute
	Optimized *domain.ComposedRoute
	Guided    *domain.ComposedRoute
	Direct    *domain.ComposedRoute
}

// Compare computes the original, optimized, guided and direct routes.
// The optimized route reuses the original reference instead of asking the
// pathfinder again.
func (p *RoutePlanner) Compare(
	ctx context.Context,
	start domain.Coordinates,
	destination domain.Coordinates,
	units domain.Units,
) (_ *Comparison, err error) {
	defer obs.Time(ctx, "planner.Compare")(&err)

	units, err = p.validate(start, destination, units)
	if err != nil {
		return nil, fmt.Errorf("compare routes: %w", err)
	}

	var (
		reference []domain.Coordinates
		out       Comparison
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ref, err := fetchReference(gctx, p.pathfinder, start, destination, units)
		if err != nil {
			return fmt.Errorf("original route: %w", err)
		}
		reference = ref
		return nil
	})
	g.Go(func() error {
		guided, err := BuildGuidedRoute(gctx, GuidedRouteRequest{
			Start:           start,
			Destination:     destination,
			Units:           units,
			WaypointSpacing: p.cfg.WaypointSpacing,
		}, p.pathfinder)
		if err != nil {
			return err
		}
		out.Guided = guided
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compare routes: %w", err)
	}

	out.Original = newOriginalRoute(reference, units)

	out.Optimized, err = ComposeOptimizedRoute(ctx, OptimizedRouteRequest{
		Start:          start,
		Destination:    destination,
		Reference:      reference,
		Units:          units,
		MaxDeviationKm: p.cfg.MaxDeviationKm,
	}, p.pathfinder)
	if err != nil {
		return nil, fmt.Errorf("compare routes: %w", err)
	}

	out.Direct = DirectRoute(start, destination, units)

	return &out, nil
}

// DirectRoute is the straight great-circle leg from start to destination.
func DirectRoute(start, destination domain.Coordinates, units domain.Units) *domain.ComposedRoute {
	coords := domain.DedupConsecutive([]domain.Coordinates{start, destination})
	return newComposedRoute(coords, units, domain.RouteTypeDirect, domain.RouteDiagnostics{})
}

func (p *RoutePlanner) originalRoute(
	ctx context.Context,
	start domain.Coordinates,
	destination domain.Coordinates,
	units domain.Units,
) (_ *domain.ComposedRoute, err error) {
	defer obs.Time(ctx, "route.original")(&err)

	reference, err := fetchReference(ctx, p.pathfinder, start, destination, units)
	if err != nil {
		return nil, fmt.Errorf("original route: %w", err)
	}
	return newOriginalRoute(reference, units), nil
}

// newOriginalRoute reports the pathfinder's polyline as-is apart from
// dropping consecutive duplicates. Its endpoints are wherever the pathfinder
// snapped to, so unlike the composed types it need not start at the
// requested start or end at the destination.
func newOriginalRoute(reference []domain.Coordinates, units domain.Units) *domain.ComposedRoute {
	coords := domain.DedupConsecutive(reference)
	diag := domain.RouteDiagnostics{ReferencePointCount: len(reference)}
	return newComposedRoute(coords, units, domain.RouteTypeOriginal, diag)
}

func (p *RoutePlanner) validate(start, destination domain.Coordinates, units domain.Units) (domain.Units, error) {
	if err := start.Validate(); err != nil {
		return "", fmt.Errorf("start: %w", err)
	}
	if err := destination.Validate(); err != nil {
		return "", fmt.Errorf("destination: %w", err)
	}
	return domain.ParseUnits(string(units), p.cfg.DefaultUnits)
}
