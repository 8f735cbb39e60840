package api

import (
	"net/http"
	"sea-route-service/internal/api/handlers"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner handlers.RoutePlanner) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Planner: planner}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/route", routeHandler.Route)
	mux.HandleFunc("/route/compare", routeHandler.Compare)

	return requestIDMiddleware(loggingMiddleware(recoveryMiddleware(mux)))
}
