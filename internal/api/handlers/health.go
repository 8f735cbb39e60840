package handlers

import (
	"net/http"
	"sea-route-service/internal/api/dto"
)

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.HealthResponse{Status: "ok"})
}
