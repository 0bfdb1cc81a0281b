package rest

import (
	"context"
	"net/http"
	"time"
)

const pingTimeout = 3 * time.Second

// storePinger is the preference backend as seen by the health checks.
type storePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness, readiness and health endpoints.
type HealthHandler struct {
	store   storePinger
	driver  string
	version string
}

// NewHealthHandler creates a HealthHandler. driver names the preference
// backend in the /health report.
func NewHealthHandler(store storePinger, driver, version string) *HealthHandler {
	return &HealthHandler{store: store, driver: driver, version: version}
}

// HealthResponse is the JSON body of all three endpoints.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Driver  string `json:"driver,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Live always answers 200 while the process serves HTTP.
// GET /live
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 200 when the preference store responds, 503 otherwise.
// GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: time.Now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Health reports the version and the preference store with ping latency.
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	start := time.Now()
	err := h.store.Ping(ctx)
	latency := time.Since(start)

	store := CompStatus{Status: "ok", Driver: h.driver, Latency: latency.String()}
	overall, code := "ok", http.StatusOK
	if err != nil {
		store = CompStatus{Status: "down", Driver: h.driver}
		overall, code = "down", http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: map[string]CompStatus{"preferences": store},
		Timestamp:  time.Now(),
	})
}
