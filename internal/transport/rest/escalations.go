package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/escalation"
	"github.com/heartmarshall/grievance-backend/pkg/ctxutil"
)

type escalationService interface {
	RunScan(ctx context.Context) (*domain.ScanReport, error)
	Escalate(ctx context.Context, input escalation.ManualEscalationInput) (*domain.EscalationEvent, error)
	History(ctx context.Context, input escalation.HistoryInput) (*escalation.HistoryResult, error)
	CreateRule(ctx context.Context, input escalation.CreateRuleInput) (*domain.EscalationRule, error)
	ListRules(ctx context.Context, activeOnly bool) ([]domain.EscalationRule, error)
	SetRuleActive(ctx context.Context, ruleID uuid.UUID, active bool) (*domain.EscalationRule, error)
}

// EscalationHandler serves escalation scans, manual escalations, history
// and rule management.
type EscalationHandler struct {
	svc escalationService
	log *slog.Logger
}

// NewEscalationHandler creates an EscalationHandler.
func NewEscalationHandler(svc escalationService, logger *slog.Logger) *EscalationHandler {
	return &EscalationHandler{svc: svc, log: logger.With("handler", "escalation")}
}

// Scan handles POST /api/escalations/scan. A scan in which some actions
// failed still answers 200 with partialFailure set.
func (h *EscalationHandler) Scan(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.RunScan(r.Context())
	if err != nil && !(report != nil && errors.Is(err, domain.ErrPartialBatchFailure)) {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toScanReportResponse(report))
}

type escalateRequest struct {
	RuleID       *uuid.UUID `json:"ruleId"`
	Action       string     `json:"action"`
	ActionTarget string     `json:"actionTarget"`
	Reason       string     `json:"reason"`
}

// Escalate handles POST /api/cases/{id}/escalations.
func (h *EscalationHandler) Escalate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req escalateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	event, err := h.svc.Escalate(r.Context(), escalation.ManualEscalationInput{
		CaseID:       id,
		RuleID:       req.RuleID,
		Action:       domain.EscalationAction(req.Action),
		ActionTarget: req.ActionTarget,
		Reason:       req.Reason,
		PerformedBy:  ctxutil.PerformedBy(r.Context()),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(event))
}

// History handles GET /api/escalations?case_id=&limit=&offset=.
func (h *EscalationHandler) History(w http.ResponseWriter, r *http.Request) {
	input := escalation.HistoryInput{}
	if raw := r.URL.Query().Get("case_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("case_id", "must be a UUID"))
			return
		}
		input.CaseID = &id
	}
	var err error
	if input.Limit, err = queryInt(r, "limit", 0); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if input.Offset, err = queryInt(r, "offset", 0); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	result, err := h.svc.History(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	limit := input.Limit
	if limit == 0 {
		limit = escalation.DefaultHistoryLimit
	}
	resp := escalationHistoryResponse{
		Events: make([]eventResponse, 0, len(result.Events)),
		Total:  result.Total,
		Limit:  limit,
		Offset: input.Offset,
	}
	for i := range result.Events {
		resp.Events = append(resp.Events, toEventResponse(&result.Events[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

type createRuleRequest struct {
	RuleName         string  `json:"ruleName"`
	CategoryFilter   *string `json:"categoryFilter"`
	PriorityFilter   *string `json:"priorityFilter"`
	TriggerCondition string  `json:"triggerCondition"`
	TriggerValue     float64 `json:"triggerValue"`
	Action           string  `json:"action"`
	ActionTarget     string  `json:"actionTarget"`
}

// CreateRule handles POST /api/escalation-rules.
func (h *EscalationHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req createRuleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	input := escalation.CreateRuleInput{
		RuleName:         req.RuleName,
		CategoryFilter:   req.CategoryFilter,
		TriggerCondition: domain.TriggerCondition(req.TriggerCondition),
		TriggerValue:     req.TriggerValue,
		Action:           domain.EscalationAction(req.Action),
		ActionTarget:     req.ActionTarget,
	}
	if req.PriorityFilter != nil {
		p := domain.Priority(*req.PriorityFilter)
		input.PriorityFilter = &p
	}

	rule, err := h.svc.CreateRule(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	h.log.InfoContext(r.Context(), "escalation rule created via api",
		slog.String("rule_id", rule.ID.String()),
		slog.String("actor_id", actorString(r.Context())),
	)
	writeJSON(w, http.StatusCreated, toRuleResponse(rule))
}

// ListRules handles GET /api/escalation-rules?active=true.
func (h *EscalationHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if raw := r.URL.Query().Get("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("active", "must be a boolean"))
			return
		}
		activeOnly = v
	}

	rules, err := h.svc.ListRules(r.Context(), activeOnly)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]ruleResponse, 0, len(rules))
	for i := range rules {
		out = append(out, toRuleResponse(&rules[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

type setRuleActiveRequest struct {
	Active *bool `json:"active"`
}

// SetRuleActive handles PATCH /api/escalation-rules/{id}.
func (h *EscalationHandler) SetRuleActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req setRuleActiveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}
	if req.Active == nil {
		handleError(h.log, w, r, domain.NewValidationError("active", "required"))
		return
	}

	rule, err := h.svc.SetRuleActive(r.Context(), id, *req.Active)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRuleResponse(rule))
}

func actorString(ctx context.Context) string {
	if id, ok := ctxutil.ActorIDFromCtx(ctx); ok {
		return id.String()
	}
	return "anonymous"
}
