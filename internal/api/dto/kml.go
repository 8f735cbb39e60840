package dto

import (
	"fmt"
	"io"
	"sea-route-service/internal/domain"

	"github.com/twpayne/go-kml"
)

// WriteRouteKML writes the route as a KML document holding one Placemark
// with a LineString geometry.
func WriteRouteKML(w io.Writer, name string, r *domain.ComposedRoute) error {
	coords := make([]kml.Coordinate, 0, len(r.Coordinates))
	for _, c := range r.Coordinates {
		coords = append(coords, kml.Coordinate{Lon: c.Lon, Lat: c.Lat})
	}

	description := fmt.Sprintf("%s route: %.2f %s, %.2f h", r.Type, r.Length, r.Units, r.DurationHours)

	doc := kml.KML(
		kml.Document(
			kml.Name(name),
			kml.Placemark(
				kml.Name(string(r.Type)),
				kml.Description(description),
				kml.LineString(
					kml.Tessellate(true),
					kml.Coordinates(coords...),
				),
			),
		),
	)

	if err := doc.WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("write kml: %w", err)
	}
	return nil
}
