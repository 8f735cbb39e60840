package services

import (
	"fmt"
	"math"
	"sea-route-service/internal/domain"
	"sea-route-service/internal/geodesy"
)

const DefaultMaxDeviationKm = 200.0

// MergePoint is where a composed route rejoins the reference route.
// It is either a MergeFound or a MergeFallback.
type MergePoint interface {
	// Index into the reference route.
	Index() int
	// Reference route coordinates at Index.
	Coordinates() domain.Coordinates
	isMergePoint()
}

// MergeFound is a merge point chosen by scoring candidates within the deviation bound.
type MergeFound struct {
	RouteIndex   int
	Point        domain.Coordinates
	Score        float64
	ClosestIndex int
}

// MergeFallback is used when no candidate was within the deviation bound:
// the route is joined a quarter of its length past the closest point.
type MergeFallback struct {
	RouteIndex   int
	Point        domain.Coordinates
	ClosestIndex int
}

func (m MergeFound) Index() int { return m.RouteIndex }

func (m MergeFound) Coordinates() domain.Coordinates { return m.Point }

func (MergeFound) isMergePoint() {}

func (m MergeFallback) Index() int { return m.RouteIndex }

func (m MergeFallback) Coordinates() domain.Coordinates { return m.Point }

func (MergeFallback) isMergePoint() {}

type mergeCandidate struct {
	index int
	score float64
	point domain.Coordinates
}

// SelectMergePoint picks the reference route index to splice onto from start.
//
// Candidates are only considered from the point closest to start onwards, so
// the composed route never revisits territory the reference has already
// covered. Each candidate within maxDeviationKm is scored by its distance in
// km plus twice its bearing misalignment in degrees; lowest score wins.
func SelectMergePoint(
	start domain.Coordinates,
	destination domain.Coordinates,
	route []domain.Coordinates,
	maxDeviationKm float64,
) (MergePoint, error) {
	if len(route) == 0 {
		return nil, fmt.Errorf("%w: select merge point: reference route is empty", domain.ErrComputation)
	}

	closestIdx := 0
	minDist := math.Inf(1)
	for i, p := range route {
		if d := geodesy.DistanceKm(start, p); d < minDist {
			minDist = d
			closestIdx = i
		}
	}

	bearingToDest := geodesy.Bearing(start, destination)

	var best *mergeCandidate
	for i := closestIdx; i < len(route); i++ {
		p := route[i]

		distKm := geodesy.DistanceKm(start, p)
		if distKm > maxDeviationKm {
			continue
		}

		diff := geodesy.AngularDifference(geodesy.Bearing(start, p), bearingToDest)
		score := distKm + 2*diff

		if best == nil || score < best.score {
			best = &mergeCandidate{index: i, score: score, point: p}
		}
	}

	if best == nil {
		idx := min(closestIdx+len(route)/4, len(route)-1)
		return MergeFallback{RouteIndex: idx, Point: route[idx], ClosestIndex: closestIdx}, nil
	}

	return MergeFound{
		RouteIndex:   best.index,
		Point:        best.point,
		Score:        best.score,
		ClosestIndex: closestIdx,
	}, nil
}
