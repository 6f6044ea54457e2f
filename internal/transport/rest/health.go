package rest

import (
	"context"
	"net/http"
	"time"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// scanStatus reports the outcome of the last scheduled escalation scan.
// ok is false when no scan has completed yet.
type scanStatus interface {
	LastScan() (at time.Time, failed int, ok bool)
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db      dbPinger
	scans   scanStatus
	version string
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler. scans may be nil when the
// periodic escalation scan is disabled.
func NewHealthHandler(db dbPinger, scans scanStatus, version string) *HealthHandler {
	return &HealthHandler{db: db, scans: scans, version: version, now: time.Now}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string     `json:"status"`
	Latency string     `json:"latency,omitempty"`
	LastRun *time.Time `json:"lastRun,omitempty"`
	Failed  int        `json:"failed,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready is the readiness probe. Pings DB: 200 if OK, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: h.now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Health is the full health check: database latency plus the state of the
// escalation scheduler. A failing scan degrades the report but does not
// make the service unavailable.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	components := make(map[string]CompStatus)
	overall := "ok"

	start := time.Now()
	err := h.db.Ping(ctx)
	latency := time.Since(start)
	if err != nil {
		components["database"] = CompStatus{Status: "down"}
		overall = "down"
	} else {
		components["database"] = CompStatus{Status: "ok", Latency: latency.String()}
	}

	if h.scans != nil {
		comp := CompStatus{Status: "pending"}
		if at, failed, ok := h.scans.LastScan(); ok {
			comp = CompStatus{Status: "ok", LastRun: &at, Failed: failed}
			if failed > 0 {
				comp.Status = "degraded"
				if overall == "ok" {
					overall = "degraded"
				}
			}
		}
		components["escalation_scan"] = comp
	}

	status := http.StatusOK
	if overall == "down" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  h.now(),
	})
}
