package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sea-route-service/internal/api/dto"
	"sea-route-service/internal/domain"
	"sea-route-service/internal/platform/obs"
	"sea-route-service/internal/services"
	"strings"
)

const geoJSONContentType = "application/geo+json"

// RoutePlanner is the part of services.RoutePlanner the handlers need.
type RoutePlanner interface {
	Route(ctx context.Context, req services.RouteRequest) (*domain.ComposedRoute, error)
	Compare(ctx context.Context, start, destination domain.Coordinates, units domain.Units) (*services.Comparison, error)
}

type RouteHandler struct {
	Planner RoutePlanner
}

// Route answers GET /route with a single composed route.
func (h *RouteHandler) Route(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}

	req, format, err := parseRouteRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	route, err := h.Planner.Route(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if format == "kml" {
		name := fmt.Sprintf("Route %s to %s", req.Start, req.Destination)
		w.Header().Set("Content-Type", "application/vnd.google-earth.kml+xml")
		w.WriteHeader(http.StatusOK)
		if err := dto.WriteRouteKML(w, name, route); err != nil {
			log.Printf("req_id=%s kml encode failed: path=%s err=%v", obs.RequestID(r.Context()), r.URL.Path, err)
		}
		return
	}

	writeJSONAs(w, r, geoJSONContentType, http.StatusOK, dto.RouteFeature(route))
}

// Compare answers GET /route/compare with every strategy's route.
func (h *RouteHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}

	q := r.URL.Query()
	start, destination, err := parseEndpoints(q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	cmp, err := h.Planner.Compare(r.Context(), start, destination, domain.Units(q.Get("units")))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CompareResponse{
		Original:  dto.RouteFeature(cmp.Original),
		Optimized: dto.RouteFeature(cmp.Optimized),
		Guided:    dto.RouteFeature(cmp.Guided),
		Direct:    dto.RouteFeature(cmp.Direct),
	})
}

func parseRouteRequest(r *http.Request) (services.RouteRequest, string, error) {
	q := r.URL.Query()

	start, destination, err := parseEndpoints(q)
	if err != nil {
		return services.RouteRequest{}, "", err
	}

	strategy, err := services.ParseStrategy(q.Get("route_type"))
	if err != nil {
		return services.RouteRequest{}, "", err
	}

	course, err := optionalFloat(q, "course")
	if err != nil {
		return services.RouteRequest{}, "", err
	}
	tol, err := optionalFloat(q, "heading_tol")
	if err != nil {
		return services.RouteRequest{}, "", err
	}

	format := strings.ToLower(strings.TrimSpace(q.Get("format")))
	switch format {
	case "", "geojson":
		format = "geojson"
	case "kml":
	default:
		return services.RouteRequest{}, "", fmt.Errorf("%w: format must be geojson or kml, got %q", domain.ErrInvalidInput, format)
	}

	return services.RouteRequest{
		Start:            start,
		Destination:      destination,
		Units:            domain.Units(q.Get("units")),
		Strategy:         strategy,
		Course:           course,
		HeadingTolerance: tol,
	}, format, nil
}
