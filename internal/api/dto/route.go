package dto

import (
	"sea-route-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"
)

// RouteFeature renders a composed route as a GeoJSON Feature with a
// LineString geometry in [lon, lat] order.
//
// Properties always carry length, units, duration_hours, route_type and
// encoded_polyline; strategy diagnostics are added when present.
func RouteFeature(r *domain.ComposedRoute) *geojson.Feature {
	line := make(orb.LineString, 0, len(r.Coordinates))
	for _, c := range r.Coordinates {
		line = append(line, orb.Point{c.Lon, c.Lat})
	}

	f := geojson.NewFeature(line)
	f.Properties["length"] = r.Length
	f.Properties["units"] = string(r.Units)
	f.Properties["duration_hours"] = r.DurationHours
	f.Properties["route_type"] = string(r.Type)
	f.Properties["encoded_polyline"] = EncodePolyline(r.Coordinates)

	d := r.Diagnostics
	switch r.Type {
	case domain.RouteTypeOptimized:
		// null when the merge point could not be determined.
		if d.MergePointIndex != nil {
			f.Properties["merge_point_index"] = *d.MergePointIndex
		} else {
			f.Properties["merge_point_index"] = nil
		}
		if d.MergeFallback != nil {
			f.Properties["merge_fallback"] = *d.MergeFallback
		}
		if d.ProjectedSegmentIndex != nil {
			f.Properties["projected_segment_index"] = *d.ProjectedSegmentIndex
		}
		if d.ProjectedOffsetKm != nil {
			f.Properties["projected_offset_km"] = *d.ProjectedOffsetKm
		}
	case domain.RouteTypeGuided:
		f.Properties["reference_points_used"] = d.ReferencePointCount
		f.Properties["waypoints_created"] = r.WaypointCount()
	}

	if d.CourseFiltered {
		f.Properties["course_filtered"] = true
		if d.CourseMatched != nil {
			f.Properties["course_matched"] = *d.CourseMatched
		}
	}

	return f
}

// EncodePolyline encodes coordinates with the Google polyline algorithm
// (precision 5, lat/lng order).
func EncodePolyline(coords []domain.Coordinates) string {
	pts := make([][]float64, len(coords))
	for i, c := range coords {
		pts[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(pts))
}

type CompareResponse struct {
	Original  *geojson.Feature `json:"original"`
	Optimized *geojson.Feature `json:"optimized"`
	Guided    *geojson.Feature `json:"guided"`
	Direct    *geojson.Feature `json:"direct"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
