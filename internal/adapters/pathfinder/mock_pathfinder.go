package pathfinder

import (
	"context"
	"fmt"
	"sea-route-service/internal/domain"
	"sync"
)

type MockRoute struct {
	From, To domain.Coordinates
	Route    []domain.Coordinates
	Err      error
}

// MockPathfinder answers from a fixed table and counts lookups.
type MockPathfinder struct {
	m map[string]MockRoute

	mu    sync.Mutex
	calls int
}

func NewMockPathfinder(routes []MockRoute) *MockPathfinder {
	m := make(map[string]MockRoute, len(routes))
	for _, r := range routes {
		m[mockKey(r.From, r.To)] = r
	}
	return &MockPathfinder{m: m}
}

func (p *MockPathfinder) FindSeaRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	_ domain.Units,
) ([]domain.Coordinates, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, ok := p.m[mockKey(origin, destination)]
	if !ok {
		return nil, fmt.Errorf("missing route %s -> %s", origin, destination)
	}
	if r.Err != nil {
		return nil, r.Err
	}

	return append([]domain.Coordinates(nil), r.Route...), nil
}

// Calls reports how many lookups reached the mock.
func (p *MockPathfinder) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func mockKey(from, to domain.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", from.Lon, from.Lat, to.Lon, to.Lat)
}
