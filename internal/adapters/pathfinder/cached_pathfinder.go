package pathfinder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sea-route-service/internal/domain"
	"sea-route-service/internal/platform/obs"
	"sea-route-service/internal/ports"
	"time"

	"golang.org/x/sync/singleflight"
)

// CachedPathfinder consults its cache tiers, fastest first, before asking
// the wrapped pathfinder. A hit in a lower tier is copied into every tier
// above it. Identical concurrent misses share one upstream lookup.
//
// The shared upstream lookup is detached from any one caller's cancellation
// and bounded by lookupTimeout instead; each caller still stops waiting when
// its own context is done.
//
// Cache failures are logged and treated as misses.
type CachedPathfinder struct {
	next          ports.Pathfinder
	tiers         []ports.RouteCache
	lookupTimeout time.Duration
	group         singleflight.Group
}

const defaultLookupTimeout = 30 * time.Second

// NewCachedPathfinder wraps next. A non-positive lookupTimeout uses 30s.
func NewCachedPathfinder(next ports.Pathfinder, lookupTimeout time.Duration, tiers ...ports.RouteCache) (*CachedPathfinder, error) {
	if next == nil {
		return nil, errors.New("cached pathfinder: next pathfinder is nil")
	}

	kept := make([]ports.RouteCache, 0, len(tiers))
	for _, t := range tiers {
		if t != nil {
			kept = append(kept, t)
		}
	}

	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}

	return &CachedPathfinder{next: next, tiers: kept, lookupTimeout: lookupTimeout}, nil
}

func (c *CachedPathfinder) FindSeaRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	units domain.Units,
) (_ []domain.Coordinates, err error) {
	defer obs.Time(ctx, "pathfinder.cached")(&err)

	key := RouteKey(origin, destination, units)

	if route, ok := c.lookup(ctx, key); ok {
		return route, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		// Keeps request values for logging but not the caller's deadline.
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.lookupTimeout)
		defer cancel()

		route, err := c.next.FindSeaRoute(lookupCtx, origin, destination, units)
		if err != nil {
			return nil, err
		}
		if len(route) >= 2 {
			c.fill(lookupCtx, key, route, len(c.tiers))
		}
		return route, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		route := res.Val.([]domain.Coordinates)
		return append([]domain.Coordinates(nil), route...), nil
	}
}

func (c *CachedPathfinder) lookup(ctx context.Context, key string) ([]domain.Coordinates, bool) {
	for i, tier := range c.tiers {
		route, ok, err := tier.Get(ctx, key)
		if err != nil {
			log.Printf("req_id=%s route cache get failed tier=%d key=%s err=%v", obs.RequestID(ctx), i, key, err)
			continue
		}
		if ok && len(route) >= 2 {
			c.fill(ctx, key, route, i)
			return route, true
		}
	}
	return nil, false
}

// fill stores route in tiers[0:upto].
func (c *CachedPathfinder) fill(ctx context.Context, key string, route []domain.Coordinates, upto int) {
	for i := 0; i < upto; i++ {
		if err := c.tiers[i].Put(ctx, key, route); err != nil {
			log.Printf("req_id=%s route cache put failed tier=%d key=%s err=%v", obs.RequestID(ctx), i, key, err)
		}
	}
}

// RouteKey identifies a pathfinder lookup. Endpoints are rounded to five
// decimal places (about a metre).
func RouteKey(origin, destination domain.Coordinates, units domain.Units) string {
	return fmt.Sprintf("searoute:v1:%s:%.5f,%.5f:%.5f,%.5f",
		units, origin.Lon, origin.Lat, destination.Lon, destination.Lat)
}
