package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"sea-route-service/internal/domain"
	"sea-route-service/internal/platform/obs"
	"strconv"
	"strings"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	writeJSONAs(w, r, "application/json", status, v)
}

func writeJSONAs(w http.ResponseWriter, r *http.Request, contentType string, status int, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("req_id=%s encode failed: method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps planner errors onto HTTP statuses. Invalid input is
// the caller's fault; everything else is reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	log.Printf("req_id=%s route failed: method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.RequestURI(), err)

	msg := "Error computing route: " + err.Error()
	if errors.Is(err, domain.ErrPathfinderUnavailable) {
		msg = "Routing unavailable: " + err.Error()
	}
	writeError(w, r, http.StatusInternalServerError, msg)
}

func requireGET(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// parseFloat reads a finite float query parameter. ok is false when the
// parameter is absent.
func parseFloat(q url.Values, name string) (v float64, ok bool, err error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("%w: %s must be a number, got %q", domain.ErrInvalidInput, name, raw)
	}
	return v, true, nil
}

func requiredFloat(q url.Values, name string) (float64, error) {
	v, ok, err := parseFloat(q, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, name)
	}
	return v, nil
}

func optionalFloat(q url.Values, name string) (*float64, error) {
	v, ok, err := parseFloat(q, name)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// parseEndpoints reads start_lat, start_lng, end_lat and end_lng.
func parseEndpoints(q url.Values) (start, destination domain.Coordinates, err error) {
	vals := make(map[string]float64, 4)
	for _, name := range []string{"start_lat", "start_lng", "end_lat", "end_lng"} {
		v, err := requiredFloat(q, name)
		if err != nil {
			return start, destination, err
		}
		vals[name] = v
	}

	start = domain.Coordinates{Lon: vals["start_lng"], Lat: vals["start_lat"]}
	destination = domain.Coordinates{Lon: vals["end_lng"], Lat: vals["end_lat"]}
	return start, destination, nil
}
