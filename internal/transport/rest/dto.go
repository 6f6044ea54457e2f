package rest

import (
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/grievance-backend/internal/domain"
)

type caseResponse struct {
	ID          uuid.UUID  `json:"id"`
	Category    string     `json:"category"`
	Subcategory *string    `json:"subcategory,omitempty"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	SubmitterID uuid.UUID  `json:"submitterId"`
	SubmittedAt time.Time  `json:"submittedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
}

func toCaseResponse(c *domain.Case) caseResponse {
	return caseResponse{
		ID:          c.ID,
		Category:    c.Category,
		Subcategory: c.Subcategory,
		Description: c.Description,
		Status:      c.Status.String(),
		Priority:    c.Priority.String(),
		SubmitterID: c.SubmitterID,
		SubmittedAt: c.SubmittedAt,
		UpdatedAt:   c.UpdatedAt,
		ResolvedAt:  c.ResolvedAt,
	}
}

type createCaseResponse struct {
	Case       caseResponse        `json:"case"`
	Deadlines  []deadlineResponse  `json:"deadlines"`
	Assignment *assignmentResponse `json:"assignment"`
}

type assignmentResponse struct {
	ID           uuid.UUID  `json:"id"`
	CaseID       uuid.UUID  `json:"caseId"`
	CaseworkerID uuid.UUID  `json:"caseworkerId"`
	AssignedAt   time.Time  `json:"assignedAt"`
	AssignedBy   *uuid.UUID `json:"assignedBy,omitempty"`
	Note         *string    `json:"note,omitempty"`
	Active       bool       `json:"active"`
}

func toAssignmentResponse(a *domain.Assignment) *assignmentResponse {
	if a == nil {
		return nil
	}
	return &assignmentResponse{
		ID:           a.ID,
		CaseID:       a.CaseID,
		CaseworkerID: a.CaseworkerID,
		AssignedAt:   a.AssignedAt,
		AssignedBy:   a.AssignedBy,
		Note:         a.Note,
		Active:       a.Active,
	}
}

type workloadResponse struct {
	CaseworkerID      uuid.UUID `json:"caseworkerId"`
	ActiveCases       int       `json:"activeCases"`
	Capacity          int       `json:"capacity"`
	AvailableCapacity int       `json:"availableCapacity"`
}

type deadlineResponse struct {
	ID        uuid.UUID  `json:"id"`
	CaseID    uuid.UUID  `json:"caseId"`
	Kind      string     `json:"kind"`
	DueAt     time.Time  `json:"dueAt"`
	CreatedBy *uuid.UUID `json:"createdBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	Met       bool       `json:"met"`
	MetAt     *time.Time `json:"metAt,omitempty"`
}

func toDeadlineResponse(d domain.Deadline) deadlineResponse {
	return deadlineResponse{
		ID:        d.ID,
		CaseID:    d.CaseID,
		Kind:      d.Kind.String(),
		DueAt:     d.DueAt,
		CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt,
		Met:       d.Met,
		MetAt:     d.MetAt,
	}
}

func toDeadlineResponses(list []domain.Deadline) []deadlineResponse {
	out := make([]deadlineResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDeadlineResponse(d))
	}
	return out
}

type deadlineViewResponse struct {
	deadlineResponse
	CaseCategory  string  `json:"caseCategory"`
	CasePriority  string  `json:"casePriority"`
	DaysRemaining float64 `json:"daysRemaining"`
}

func toDeadlineViews(list []domain.DeadlineView) []deadlineViewResponse {
	out := make([]deadlineViewResponse, 0, len(list))
	for _, v := range list {
		out = append(out, deadlineViewResponse{
			deadlineResponse: toDeadlineResponse(v.Deadline),
			CaseCategory:     v.CaseCategory,
			CasePriority:     v.CasePriority.String(),
			DaysRemaining:    v.DaysRemaining,
		})
	}
	return out
}

type ruleResponse struct {
	ID               uuid.UUID `json:"id"`
	RuleName         string    `json:"ruleName"`
	CategoryFilter   *string   `json:"categoryFilter,omitempty"`
	PriorityFilter   *string   `json:"priorityFilter,omitempty"`
	TriggerCondition string    `json:"triggerCondition"`
	TriggerValue     float64   `json:"triggerValue"`
	Action           string    `json:"action"`
	ActionTarget     string    `json:"actionTarget"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"createdAt"`
}

func toRuleResponse(r *domain.EscalationRule) ruleResponse {
	resp := ruleResponse{
		ID:               r.ID,
		RuleName:         r.RuleName,
		CategoryFilter:   r.CategoryFilter,
		TriggerCondition: r.TriggerCondition.String(),
		TriggerValue:     r.TriggerValue,
		Action:           r.Action.String(),
		ActionTarget:     r.ActionTarget,
		Active:           r.Active,
		CreatedAt:        r.CreatedAt,
	}
	if r.PriorityFilter != nil {
		p := r.PriorityFilter.String()
		resp.PriorityFilter = &p
	}
	return resp
}

type eventResponse struct {
	ID               uuid.UUID  `json:"id"`
	CaseID           uuid.UUID  `json:"caseId"`
	RuleID           *uuid.UUID `json:"ruleId,omitempty"`
	TriggeredAt      time.Time  `json:"triggeredAt"`
	Reason           string     `json:"reason"`
	Action           string     `json:"action"`
	Success          bool       `json:"success"`
	PreviousStatus   string     `json:"previousStatus,omitempty"`
	NewStatus        string     `json:"newStatus,omitempty"`
	PreviousAssignee *uuid.UUID `json:"previousAssignee,omitempty"`
	NewAssignee      *uuid.UUID `json:"newAssignee,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

func toEventResponse(e *domain.EscalationEvent) eventResponse {
	return eventResponse{
		ID:               e.ID,
		CaseID:           e.CaseID,
		RuleID:           e.RuleID,
		TriggeredAt:      e.TriggeredAt,
		Reason:           e.Reason,
		Action:           e.Action.String(),
		Success:          e.Success,
		PreviousStatus:   e.PreviousStatus.String(),
		NewStatus:        e.NewStatus.String(),
		PreviousAssignee: e.PreviousAssignee,
		NewAssignee:      e.NewAssignee,
		Notes:            e.Notes,
	}
}

type escalationHistoryResponse struct {
	Events []eventResponse `json:"events"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type scanResultResponse struct {
	CaseID   uuid.UUID  `json:"caseId"`
	RuleID   *uuid.UUID `json:"ruleId,omitempty"`
	RuleName string     `json:"ruleName,omitempty"`
	Action   string     `json:"action"`
	Success  bool       `json:"success"`
	Message  string     `json:"message,omitempty"`
}

type scanReportResponse struct {
	StartedAt      time.Time            `json:"startedAt"`
	Evaluated      int                  `json:"evaluated"`
	Fired          int                  `json:"fired"`
	Succeeded      int                  `json:"succeeded"`
	Failed         int                  `json:"failed"`
	Suppressed     int                  `json:"suppressed"`
	PartialFailure bool                 `json:"partialFailure"`
	Results        []scanResultResponse `json:"results"`
}

func toScanReportResponse(r *domain.ScanReport) scanReportResponse {
	resp := scanReportResponse{
		StartedAt:      r.StartedAt,
		Evaluated:      r.Evaluated,
		Fired:          r.Fired,
		Succeeded:      r.Succeeded,
		Failed:         r.Failed,
		Suppressed:     r.Suppressed,
		PartialFailure: r.Failed > 0,
		Results:        make([]scanResultResponse, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		resp.Results = append(resp.Results, scanResultResponse{
			CaseID:   res.CaseID,
			RuleID:   res.RuleID,
			RuleName: res.RuleName,
			Action:   res.Action.String(),
			Success:  res.Success,
			Message:  res.Message,
		})
	}
	return resp
}

type timelineEntryResponse struct {
	ID          uuid.UUID       `json:"id"`
	Seq         int64           `json:"seq"`
	CaseID      uuid.UUID       `json:"caseId"`
	ActionType  string          `json:"actionType"`
	Description string          `json:"description"`
	PerformedBy *uuid.UUID      `json:"performedBy,omitempty"`
	PerformedAt time.Time       `json:"performedAt"`
	Metadata    domain.Metadata `json:"metadata,omitempty"`
}

func toTimelineResponses(list []domain.TimelineEntry) []timelineEntryResponse {
	out := make([]timelineEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, timelineEntryResponse{
			ID:          e.ID,
			Seq:         e.Seq,
			CaseID:      e.CaseID,
			ActionType:  e.ActionType.String(),
			Description: e.Description,
			PerformedBy: e.PerformedBy,
			PerformedAt: e.PerformedAt,
			Metadata:    e.Metadata,
		})
	}
	return out
}
