package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/blaisecz/sleep-records/pkg/response"
)

// HealthStatus is the liveness payload.
type HealthStatus struct {
	Status    string    `json:"status" example:"ok"`
	Timestamp time.Time `json:"timestamp" example:"2024-01-16T07:05:00Z"`
}

// Health handles GET /api/health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthStatus "Service is up"
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", response.ContentType)
	json.NewEncoder(w).Encode(HealthStatus{Status: "ok", Timestamp: time.Now().UTC()})
}
