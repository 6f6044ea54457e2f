package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/grievance-backend/internal/domain"
)

type timelineService interface {
	History(ctx context.Context, caseID uuid.UUID) ([]domain.TimelineEntry, error)
	RecentActivity(ctx context.Context, limit int) ([]domain.TimelineEntry, error)
	TimeSinceLastActivity(ctx context.Context, caseID uuid.UUID) (time.Duration, error)
}

// TimelineHandler serves the audit timeline.
type TimelineHandler struct {
	svc timelineService
	log *slog.Logger
}

// NewTimelineHandler creates a TimelineHandler.
func NewTimelineHandler(svc timelineService, logger *slog.Logger) *TimelineHandler {
	return &TimelineHandler{svc: svc, log: logger.With("handler", "timeline")}
}

// CaseHistory handles GET /api/cases/{id}/timeline.
func (h *TimelineHandler) CaseHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	entries, err := h.svc.History(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTimelineResponses(entries))
}

// Recent handles GET /api/activity?limit=N.
func (h *TimelineHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	entries, err := h.svc.RecentActivity(r.Context(), limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTimelineResponses(entries))
}

type idleResponse struct {
	CaseID      uuid.UUID `json:"caseId"`
	IdleSeconds int64     `json:"idleSeconds"`
	Idle        string    `json:"idle"`
}

// Idle handles GET /api/cases/{id}/idle: time since the case's last
// recorded activity.
func (h *TimelineHandler) Idle(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	d, err := h.svc.TimeSinceLastActivity(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, idleResponse{
		CaseID:      id,
		IdleSeconds: int64(d / time.Second),
		Idle:        d.Truncate(time.Second).String(),
	})
}
