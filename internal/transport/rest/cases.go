package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/assignment"
	"github.com/heartmarshall/grievance-backend/internal/service/grievance"
	"github.com/heartmarshall/grievance-backend/pkg/ctxutil"
)

type caseService interface {
	CreateCase(ctx context.Context, input grievance.CreateCaseInput) (*grievance.CreateCaseResult, error)
	GetCase(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	ChangeStatus(ctx context.Context, input grievance.ChangeStatusInput) (*domain.Case, error)
}

type assignmentService interface {
	AssignTo(ctx context.Context, input assignment.ManualAssignInput) (*domain.Assignment, error)
	AutoAssign(ctx context.Context, caseID uuid.UUID, department string, requestedBy *uuid.UUID) (*domain.Assignment, error)
	History(ctx context.Context, caseID uuid.UUID) ([]domain.Assignment, error)
}

// CaseHandler serves case lifecycle and routing endpoints.
type CaseHandler struct {
	cases       caseService
	assignments assignmentService
	log         *slog.Logger
}

// NewCaseHandler creates a CaseHandler.
func NewCaseHandler(cases caseService, assignments assignmentService, logger *slog.Logger) *CaseHandler {
	return &CaseHandler{
		cases:       cases,
		assignments: assignments,
		log:         logger.With("handler", "case"),
	}
}

type createCaseRequest struct {
	SubmitterID uuid.UUID `json:"submitterId"`
	Category    string    `json:"category"`
	Subcategory *string   `json:"subcategory"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
}

// Create handles POST /api/cases.
func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	result, err := h.cases.CreateCase(r.Context(), grievance.CreateCaseInput{
		SubmitterID: req.SubmitterID,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		PerformedBy: ctxutil.PerformedBy(r.Context()),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createCaseResponse{
		Case:       toCaseResponse(result.Case),
		Deadlines:  toDeadlineResponses(result.Deadlines),
		Assignment: toAssignmentResponse(result.Assignment),
	})
}

// Get handles GET /api/cases/{id}.
func (h *CaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.cases.GetCase(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCaseResponse(c))
}

type changeStatusRequest struct {
	Status string  `json:"status"`
	Note   *string `json:"note"`
}

// ChangeStatus handles PATCH /api/cases/{id}/status.
func (h *CaseHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req changeStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	c, err := h.cases.ChangeStatus(r.Context(), grievance.ChangeStatusInput{
		CaseID:      id,
		Status:      domain.CaseStatus(req.Status),
		PerformedBy: ctxutil.PerformedBy(r.Context()),
		Note:        req.Note,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCaseResponse(c))
}

type assignRequest struct {
	CaseworkerID uuid.UUID `json:"caseworkerId"`
	Note         *string   `json:"note"`
}

// Assign handles POST /api/cases/{id}/assignments.
func (h *CaseHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req assignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	a, err := h.assignments.AssignTo(r.Context(), assignment.ManualAssignInput{
		CaseID:       id,
		CaseworkerID: req.CaseworkerID,
		AssignedBy:   ctxutil.PerformedBy(r.Context()),
		Note:         req.Note,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAssignmentResponse(a))
}

type autoAssignRequest struct {
	Department string `json:"department"`
}

// AutoAssign handles POST /api/cases/{id}/auto-assign.
func (h *CaseHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req autoAssignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	a, err := h.assignments.AutoAssign(r.Context(), id, req.Department, ctxutil.PerformedBy(r.Context()))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAssignmentResponse(a))
}

// Assignments handles GET /api/cases/{id}/assignments.
func (h *CaseHandler) Assignments(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.assignments.History(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]*assignmentResponse, 0, len(list))
	for i := range list {
		out = append(out, toAssignmentResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}
