package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/grievance-backend/internal/domain"
)

type workloadService interface {
	Current(ctx context.Context, caseworkerID uuid.UUID) (domain.WorkloadSummary, error)
}

type dashboardService interface {
	Upcoming(ctx context.Context, caseworkerID uuid.UUID, withinDays int) ([]domain.DeadlineView, error)
	Overdue(ctx context.Context, caseworkerID uuid.UUID) ([]domain.DeadlineView, error)
}

// CaseworkerHandler serves the caseworker dashboard: workload and the
// deadlines of the cases they hold.
type CaseworkerHandler struct {
	workload  workloadService
	deadlines dashboardService
	log       *slog.Logger
}

// NewCaseworkerHandler creates a CaseworkerHandler.
func NewCaseworkerHandler(workload workloadService, deadlines dashboardService, logger *slog.Logger) *CaseworkerHandler {
	return &CaseworkerHandler{
		workload:  workload,
		deadlines: deadlines,
		log:       logger.With("handler", "caseworker"),
	}
}

// Upcoming handles GET /api/caseworkers/{id}/deadlines/upcoming?days=N.
func (h *CaseworkerHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	days, err := queryInt(r, "days", 0)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.deadlines.Upcoming(r.Context(), id, days)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDeadlineViews(list))
}

// Overdue handles GET /api/caseworkers/{id}/deadlines/overdue.
func (h *CaseworkerHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.deadlines.Overdue(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDeadlineViews(list))
}

// Workload handles GET /api/caseworkers/{id}/workload.
func (h *CaseworkerHandler) Workload(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	ws, err := h.workload.Current(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, workloadResponse{
		CaseworkerID:      ws.CaseworkerID,
		ActiveCases:       ws.ActiveCases,
		Capacity:          ws.Capacity,
		AvailableCapacity: ws.AvailableCapacity,
	})
}
