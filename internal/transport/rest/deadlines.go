package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/deadline"
	"github.com/heartmarshall/grievance-backend/pkg/ctxutil"
)

type deadlineService interface {
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Deadline, error)
	AddCustom(ctx context.Context, input deadline.AddCustomInput) (*domain.Deadline, error)
	MarkMet(ctx context.Context, deadlineID uuid.UUID) (*domain.Deadline, error)
}

// DeadlineHandler serves per-case deadline endpoints.
type DeadlineHandler struct {
	deadlines deadlineService
	log       *slog.Logger
}

// NewDeadlineHandler creates a DeadlineHandler.
func NewDeadlineHandler(deadlines deadlineService, logger *slog.Logger) *DeadlineHandler {
	return &DeadlineHandler{
		deadlines: deadlines,
		log:       logger.With("handler", "deadline"),
	}
}

// ListByCase handles GET /api/cases/{id}/deadlines.
func (h *DeadlineHandler) ListByCase(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.deadlines.ListByCase(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDeadlineResponses(list))
}

type addDeadlineRequest struct {
	DueAt time.Time `json:"dueAt"`
}

// AddCustom handles POST /api/cases/{id}/deadlines.
func (h *DeadlineHandler) AddCustom(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req addDeadlineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	d, err := h.deadlines.AddCustom(r.Context(), deadline.AddCustomInput{
		CaseID:    id,
		DueAt:     req.DueAt,
		CreatedBy: ctxutil.PerformedBy(r.Context()),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDeadlineResponse(*d))
}

// MarkMet handles POST /api/deadlines/{id}/met. Repeating the call is a no-op.
func (h *DeadlineHandler) MarkMet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	d, err := h.deadlines.MarkMet(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDeadlineResponse(*d))
}
