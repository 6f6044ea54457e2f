package graphql

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/escalation"
	"github.com/heartmarshall/grievance-backend/internal/transport/graphql/dataloader"
)

type caseService interface {
	GetCase(ctx context.Context, id uuid.UUID) (*domain.Case, error)
}

type workloadService interface {
	Current(ctx context.Context, caseworkerID uuid.UUID) (domain.WorkloadSummary, error)
}

type dashboardService interface {
	Upcoming(ctx context.Context, caseworkerID uuid.UUID, withinDays int) ([]domain.DeadlineView, error)
	Overdue(ctx context.Context, caseworkerID uuid.UUID) ([]domain.DeadlineView, error)
}

type escalationService interface {
	History(ctx context.Context, input escalation.HistoryInput) (*escalation.HistoryResult, error)
	ListRules(ctx context.Context, activeOnly bool) ([]domain.EscalationRule, error)
}

type activityService interface {
	RecentActivity(ctx context.Context, limit int) ([]domain.TimelineEntry, error)
}

// Resolver holds the services behind the root query fields. Nested
// per-case relations are read through the request's DataLoaders.
type Resolver struct {
	cases       caseService
	workload    workloadService
	deadlines   dashboardService
	escalations escalationService
	activity    activityService
}

// NewResolver creates a Resolver.
func NewResolver(
	cases caseService,
	workload workloadService,
	deadlines dashboardService,
	escalations escalationService,
	activity activityService,
) *Resolver {
	return &Resolver{
		cases:       cases,
		workload:    workload,
		deadlines:   deadlines,
		escalations: escalations,
		activity:    activity,
	}
}

// types returns the field resolvers of every object type in the schema.
func (r *Resolver) types() map[string]objectType {
	return map[string]objectType{
		"Query": {
			"case":               r.queryCase,
			"caseworkerWorkload": r.queryWorkload,
			"upcomingDeadlines":  r.queryUpcoming,
			"overdueDeadlines":   r.queryOverdue,
			"escalationHistory":  r.queryEscalationHistory,
			"escalationRules":    r.queryEscalationRules,
			"recentActivity":     r.queryRecentActivity,
		},
		"Case":              caseFields(),
		"Assignment":        assignmentFields(),
		"Deadline":          deadlineFields(),
		"DeadlineView":      deadlineViewFields(),
		"Workload":          workloadFields(),
		"EscalationHistory": historyFields(),
		"EscalationEvent":   eventFields(),
		"EscalationRule":    ruleFields(),
		"TimelineEntry":     timelineFields(),
	}
}

// ---------------------------------------------------------------------------
// Query
// ---------------------------------------------------------------------------

func (r *Resolver) queryCase(ctx context.Context, _ any, args map[string]any) (any, error) {
	id, err := uuidArg(args, "id")
	if err != nil {
		return nil, err
	}
	c, err := r.cases.GetCase(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Resolver) queryWorkload(ctx context.Context, _ any, args map[string]any) (any, error) {
	id, err := uuidArg(args, "caseworkerId")
	if err != nil {
		return nil, err
	}
	w, err := r.workload.Current(ctx, id)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Resolver) queryUpcoming(ctx context.Context, _ any, args map[string]any) (any, error) {
	id, err := uuidArg(args, "caseworkerId")
	if err != nil {
		return nil, err
	}
	days, err := intArg(args, "withinDays")
	if err != nil {
		return nil, err
	}
	views, err := r.deadlines.Upcoming(ctx, id, days)
	if err != nil {
		return nil, err
	}
	return pointers(views), nil
}

func (r *Resolver) queryOverdue(ctx context.Context, _ any, args map[string]any) (any, error) {
	id, err := uuidArg(args, "caseworkerId")
	if err != nil {
		return nil, err
	}
	views, err := r.deadlines.Overdue(ctx, id)
	if err != nil {
		return nil, err
	}
	return pointers(views), nil
}

func (r *Resolver) queryEscalationHistory(ctx context.Context, _ any, args map[string]any) (any, error) {
	caseID, err := optUUIDArg(args, "caseId")
	if err != nil {
		return nil, err
	}
	limit, err := intArg(args, "limit")
	if err != nil {
		return nil, err
	}
	offset, err := intArg(args, "offset")
	if err != nil {
		return nil, err
	}
	h, err := r.escalations.History(ctx, escalation.HistoryInput{CaseID: caseID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (r *Resolver) queryEscalationRules(ctx context.Context, _ any, args map[string]any) (any, error) {
	activeOnly, _ := args["activeOnly"].(bool)
	rules, err := r.escalations.ListRules(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return pointers(rules), nil
}

func (r *Resolver) queryRecentActivity(ctx context.Context, _ any, args map[string]any) (any, error) {
	limit, err := intArg(args, "limit")
	if err != nil {
		return nil, err
	}
	entries, err := r.activity.RecentActivity(ctx, limit)
	if err != nil {
		return nil, err
	}
	return pointers(entries), nil
}

// ---------------------------------------------------------------------------
// Object types
// ---------------------------------------------------------------------------

func caseFields() objectType {
	return objectType{
		"id":          leaf(func(c *domain.Case) any { return MarshalUUID(c.ID) }),
		"category":    leaf(func(c *domain.Case) any { return graphql.MarshalString(c.Category) }),
		"subcategory": leaf(func(c *domain.Case) any { return optString(c.Subcategory) }),
		"description": leaf(func(c *domain.Case) any { return graphql.MarshalString(c.Description) }),
		"status":      leaf(func(c *domain.Case) any { return enum(c.Status) }),
		"priority":    leaf(func(c *domain.Case) any { return enum(c.Priority) }),
		"submitterId": leaf(func(c *domain.Case) any { return MarshalUUID(c.SubmitterID) }),
		"submittedAt": leaf(func(c *domain.Case) any { return MarshalDateTime(c.SubmittedAt) }),
		"updatedAt":   leaf(func(c *domain.Case) any { return MarshalDateTime(c.UpdatedAt) }),
		"resolvedAt":  leaf(func(c *domain.Case) any { return optDateTime(c.ResolvedAt) }),
		"assignment": field(func(ctx context.Context, c *domain.Case) (any, error) {
			a, err := dataloader.FromContext(ctx).AssignmentByCaseID.Load(ctx, c.ID)()
			if err != nil || a == nil {
				return nil, err
			}
			return a, nil
		}),
		"deadlines": field(func(ctx context.Context, c *domain.Case) (any, error) {
			ds, err := dataloader.FromContext(ctx).DeadlinesByCaseID.Load(ctx, c.ID)()
			if err != nil {
				return nil, err
			}
			return pointers(ds), nil
		}),
		"timeline": field(func(ctx context.Context, c *domain.Case) (any, error) {
			entries, err := dataloader.FromContext(ctx).TimelineByCaseID.Load(ctx, c.ID)()
			if err != nil {
				return nil, err
			}
			return pointers(entries), nil
		}),
	}
}

func assignmentFields() objectType {
	return objectType{
		"id":           leaf(func(a *domain.Assignment) any { return MarshalUUID(a.ID) }),
		"caseId":       leaf(func(a *domain.Assignment) any { return MarshalUUID(a.CaseID) }),
		"caseworkerId": leaf(func(a *domain.Assignment) any { return MarshalUUID(a.CaseworkerID) }),
		"assignedAt":   leaf(func(a *domain.Assignment) any { return MarshalDateTime(a.AssignedAt) }),
		"assignedBy":   leaf(func(a *domain.Assignment) any { return optUUID(a.AssignedBy) }),
		"note":         leaf(func(a *domain.Assignment) any { return optString(a.Note) }),
		"active":       leaf(func(a *domain.Assignment) any { return graphql.MarshalBoolean(a.Active) }),
	}
}

func deadlineFields() objectType {
	return objectType{
		"id":        leaf(func(d *domain.Deadline) any { return MarshalUUID(d.ID) }),
		"caseId":    leaf(func(d *domain.Deadline) any { return MarshalUUID(d.CaseID) }),
		"kind":      leaf(func(d *domain.Deadline) any { return enum(d.Kind) }),
		"dueAt":     leaf(func(d *domain.Deadline) any { return MarshalDateTime(d.DueAt) }),
		"createdBy": leaf(func(d *domain.Deadline) any { return optUUID(d.CreatedBy) }),
		"createdAt": leaf(func(d *domain.Deadline) any { return MarshalDateTime(d.CreatedAt) }),
		"met":       leaf(func(d *domain.Deadline) any { return graphql.MarshalBoolean(d.Met) }),
		"metAt":     leaf(func(d *domain.Deadline) any { return optDateTime(d.MetAt) }),
	}
}

func deadlineViewFields() objectType {
	return objectType{
		"id":            leaf(func(v *domain.DeadlineView) any { return MarshalUUID(v.ID) }),
		"caseId":        leaf(func(v *domain.DeadlineView) any { return MarshalUUID(v.CaseID) }),
		"kind":          leaf(func(v *domain.DeadlineView) any { return enum(v.Kind) }),
		"dueAt":         leaf(func(v *domain.DeadlineView) any { return MarshalDateTime(v.DueAt) }),
		"met":           leaf(func(v *domain.DeadlineView) any { return graphql.MarshalBoolean(v.Met) }),
		"caseCategory":  leaf(func(v *domain.DeadlineView) any { return graphql.MarshalString(v.CaseCategory) }),
		"casePriority":  leaf(func(v *domain.DeadlineView) any { return enum(v.CasePriority) }),
		"daysRemaining": leaf(func(v *domain.DeadlineView) any { return graphql.MarshalFloat(v.DaysRemaining) }),
		"case":          field(func(ctx context.Context, v *domain.DeadlineView) (any, error) { return loadCase(ctx, v.CaseID) }),
	}
}

func workloadFields() objectType {
	return objectType{
		"caseworkerId":      leaf(func(w *domain.WorkloadSummary) any { return MarshalUUID(w.CaseworkerID) }),
		"activeCases":       leaf(func(w *domain.WorkloadSummary) any { return graphql.MarshalInt(w.ActiveCases) }),
		"capacity":          leaf(func(w *domain.WorkloadSummary) any { return graphql.MarshalInt(w.Capacity) }),
		"availableCapacity": leaf(func(w *domain.WorkloadSummary) any { return graphql.MarshalInt(w.AvailableCapacity) }),
	}
}

func historyFields() objectType {
	return objectType{
		"events": leaf(func(h *escalation.HistoryResult) any { return pointers(h.Events) }),
		"total":  leaf(func(h *escalation.HistoryResult) any { return graphql.MarshalInt(h.Total) }),
	}
}

func eventFields() objectType {
	return objectType{
		"id":               leaf(func(e *domain.EscalationEvent) any { return MarshalUUID(e.ID) }),
		"caseId":           leaf(func(e *domain.EscalationEvent) any { return MarshalUUID(e.CaseID) }),
		"ruleId":           leaf(func(e *domain.EscalationEvent) any { return optUUID(e.RuleID) }),
		"triggeredAt":      leaf(func(e *domain.EscalationEvent) any { return MarshalDateTime(e.TriggeredAt) }),
		"reason":           leaf(func(e *domain.EscalationEvent) any { return graphql.MarshalString(e.Reason) }),
		"action":           leaf(func(e *domain.EscalationEvent) any { return enum(e.Action) }),
		"success":          leaf(func(e *domain.EscalationEvent) any { return graphql.MarshalBoolean(e.Success) }),
		"previousStatus":   leaf(func(e *domain.EscalationEvent) any { return enum(e.PreviousStatus) }),
		"newStatus":        leaf(func(e *domain.EscalationEvent) any { return enum(e.NewStatus) }),
		"previousAssignee": leaf(func(e *domain.EscalationEvent) any { return optUUID(e.PreviousAssignee) }),
		"newAssignee":      leaf(func(e *domain.EscalationEvent) any { return optUUID(e.NewAssignee) }),
		"notes":            leaf(func(e *domain.EscalationEvent) any { return graphql.MarshalString(e.Notes) }),
		"case":             field(func(ctx context.Context, e *domain.EscalationEvent) (any, error) { return loadCase(ctx, e.CaseID) }),
	}
}

func ruleFields() objectType {
	return objectType{
		"id":               leaf(func(r *domain.EscalationRule) any { return MarshalUUID(r.ID) }),
		"ruleName":         leaf(func(r *domain.EscalationRule) any { return graphql.MarshalString(r.RuleName) }),
		"categoryFilter":   leaf(func(r *domain.EscalationRule) any { return optString(r.CategoryFilter) }),
		"priorityFilter":   leaf(func(r *domain.EscalationRule) any { return optEnum(r.PriorityFilter) }),
		"triggerCondition": leaf(func(r *domain.EscalationRule) any { return enum(r.TriggerCondition) }),
		"triggerValue":     leaf(func(r *domain.EscalationRule) any { return graphql.MarshalFloat(r.TriggerValue) }),
		"action":           leaf(func(r *domain.EscalationRule) any { return enum(r.Action) }),
		"actionTarget":     leaf(func(r *domain.EscalationRule) any { return graphql.MarshalString(r.ActionTarget) }),
		"active":           leaf(func(r *domain.EscalationRule) any { return graphql.MarshalBoolean(r.Active) }),
		"createdAt":        leaf(func(r *domain.EscalationRule) any { return MarshalDateTime(r.CreatedAt) }),
	}
}

func timelineFields() objectType {
	return objectType{
		"id":          leaf(func(e *domain.TimelineEntry) any { return MarshalUUID(e.ID) }),
		"seq":         leaf(func(e *domain.TimelineEntry) any { return graphql.MarshalInt64(e.Seq) }),
		"caseId":      leaf(func(e *domain.TimelineEntry) any { return MarshalUUID(e.CaseID) }),
		"actionType":  leaf(func(e *domain.TimelineEntry) any { return enum(e.ActionType) }),
		"description": leaf(func(e *domain.TimelineEntry) any { return graphql.MarshalString(e.Description) }),
		"performedBy": leaf(func(e *domain.TimelineEntry) any { return optUUID(e.PerformedBy) }),
		"performedAt": leaf(func(e *domain.TimelineEntry) any { return MarshalDateTime(e.PerformedAt) }),
		"metadata":    leaf(func(e *domain.TimelineEntry) any { return MarshalJSON(e.Metadata) }),
		"case":        field(func(ctx context.Context, e *domain.TimelineEntry) (any, error) { return loadCase(ctx, e.CaseID) }),
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func loadCase(ctx context.Context, id uuid.UUID) (any, error) {
	c, err := dataloader.FromContext(ctx).CaseByID.Load(ctx, id)()
	if err != nil || c == nil {
		return nil, err
	}
	return c, nil
}

// leaf adapts a field that reads straight off its parent.
func leaf[T any](fn func(*T) any) fieldFunc {
	return func(_ context.Context, obj any, _ map[string]any) (any, error) {
		o, ok := obj.(*T)
		if !ok {
			return nil, fmt.Errorf("unexpected parent %T", obj)
		}
		return fn(o), nil
	}
}

// field adapts a field that needs the request context.
func field[T any](fn func(context.Context, *T) (any, error)) fieldFunc {
	return func(ctx context.Context, obj any, _ map[string]any) (any, error) {
		o, ok := obj.(*T)
		if !ok {
			return nil, fmt.Errorf("unexpected parent %T", obj)
		}
		return fn(ctx, o)
	}
}

func pointers[T any](xs []T) []any {
	out := make([]any, len(xs))
	for i := range xs {
		out[i] = &xs[i]
	}
	return out
}
