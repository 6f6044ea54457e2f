package rest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/assignment"
	"github.com/heartmarshall/grievance-backend/internal/service/deadline"
	"github.com/heartmarshall/grievance-backend/internal/service/escalation"
	"github.com/heartmarshall/grievance-backend/internal/service/grievance"
)

type caseServiceStub struct {
	createFn       func(ctx context.Context, input grievance.CreateCaseInput) (*grievance.CreateCaseResult, error)
	getFn          func(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	changeStatusFn func(ctx context.Context, input grievance.ChangeStatusInput) (*domain.Case, error)
}

func (s *caseServiceStub) CreateCase(ctx context.Context, input grievance.CreateCaseInput) (*grievance.CreateCaseResult, error) {
	return s.createFn(ctx, input)
}

func (s *caseServiceStub) GetCase(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	return s.getFn(ctx, id)
}

func (s *caseServiceStub) ChangeStatus(ctx context.Context, input grievance.ChangeStatusInput) (*domain.Case, error) {
	return s.changeStatusFn(ctx, input)
}

type assignmentServiceStub struct {
	assignToFn   func(ctx context.Context, input assignment.ManualAssignInput) (*domain.Assignment, error)
	autoAssignFn func(ctx context.Context, caseID uuid.UUID, department string, requestedBy *uuid.UUID) (*domain.Assignment, error)
	historyFn    func(ctx context.Context, caseID uuid.UUID) ([]domain.Assignment, error)
}

func (s *assignmentServiceStub) AssignTo(ctx context.Context, input assignment.ManualAssignInput) (*domain.Assignment, error) {
	return s.assignToFn(ctx, input)
}

func (s *assignmentServiceStub) AutoAssign(ctx context.Context, caseID uuid.UUID, department string, requestedBy *uuid.UUID) (*domain.Assignment, error) {
	return s.autoAssignFn(ctx, caseID, department, requestedBy)
}

func (s *assignmentServiceStub) History(ctx context.Context, caseID uuid.UUID) ([]domain.Assignment, error) {
	return s.historyFn(ctx, caseID)
}

type deadlineServiceStub struct {
	listByCaseFn func(ctx context.Context, caseID uuid.UUID) ([]domain.Deadline, error)
	addCustomFn  func(ctx context.Context, input deadline.AddCustomInput) (*domain.Deadline, error)
	markMetFn    func(ctx context.Context, id uuid.UUID) (*domain.Deadline, error)
	upcomingFn   func(ctx context.Context, caseworkerID uuid.UUID, withinDays int) ([]domain.DeadlineView, error)
	overdueFn    func(ctx context.Context, caseworkerID uuid.UUID) ([]domain.DeadlineView, error)
}

func (s *deadlineServiceStub) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Deadline, error) {
	return s.listByCaseFn(ctx, caseID)
}

func (s *deadlineServiceStub) AddCustom(ctx context.Context, input deadline.AddCustomInput) (*domain.Deadline, error) {
	return s.addCustomFn(ctx, input)
}

func (s *deadlineServiceStub) MarkMet(ctx context.Context, id uuid.UUID) (*domain.Deadline, error) {
	return s.markMetFn(ctx, id)
}

func (s *deadlineServiceStub) Upcoming(ctx context.Context, caseworkerID uuid.UUID, withinDays int) ([]domain.DeadlineView, error) {
	return s.upcomingFn(ctx, caseworkerID, withinDays)
}

func (s *deadlineServiceStub) Overdue(ctx context.Context, caseworkerID uuid.UUID) ([]domain.DeadlineView, error) {
	return s.overdueFn(ctx, caseworkerID)
}

type workloadServiceStub struct {
	currentFn func(ctx context.Context, caseworkerID uuid.UUID) (domain.WorkloadSummary, error)
}

func (s *workloadServiceStub) Current(ctx context.Context, caseworkerID uuid.UUID) (domain.WorkloadSummary, error) {
	return s.currentFn(ctx, caseworkerID)
}

type escalationServiceStub struct {
	runScanFn       func(ctx context.Context) (*domain.ScanReport, error)
	escalateFn      func(ctx context.Context, input escalation.ManualEscalationInput) (*domain.EscalationEvent, error)
	historyFn       func(ctx context.Context, input escalation.HistoryInput) (*escalation.HistoryResult, error)
	createRuleFn    func(ctx context.Context, input escalation.CreateRuleInput) (*domain.EscalationRule, error)
	listRulesFn     func(ctx context.Context, activeOnly bool) ([]domain.EscalationRule, error)
	setRuleActiveFn func(ctx context.Context, ruleID uuid.UUID, active bool) (*domain.EscalationRule, error)
}

func (s *escalationServiceStub) RunScan(ctx context.Context) (*domain.ScanReport, error) {
	return s.runScanFn(ctx)
}

func (s *escalationServiceStub) Escalate(ctx context.Context, input escalation.ManualEscalationInput) (*domain.EscalationEvent, error) {
	return s.escalateFn(ctx, input)
}

func (s *escalationServiceStub) History(ctx context.Context, input escalation.HistoryInput) (*escalation.HistoryResult, error) {
	return s.historyFn(ctx, input)
}

func (s *escalationServiceStub) CreateRule(ctx context.Context, input escalation.CreateRuleInput) (*domain.EscalationRule, error) {
	return s.createRuleFn(ctx, input)
}

func (s *escalationServiceStub) ListRules(ctx context.Context, activeOnly bool) ([]domain.EscalationRule, error) {
	return s.listRulesFn(ctx, activeOnly)
}

func (s *escalationServiceStub) SetRuleActive(ctx context.Context, ruleID uuid.UUID, active bool) (*domain.EscalationRule, error) {
	return s.setRuleActiveFn(ctx, ruleID, active)
}

type timelineServiceStub struct {
	historyFn func(ctx context.Context, caseID uuid.UUID) ([]domain.TimelineEntry, error)
	recentFn  func(ctx context.Context, limit int) ([]domain.TimelineEntry, error)
	idleFn    func(ctx context.Context, caseID uuid.UUID) (time.Duration, error)
}

func (s *timelineServiceStub) History(ctx context.Context, caseID uuid.UUID) ([]domain.TimelineEntry, error) {
	return s.historyFn(ctx, caseID)
}

func (s *timelineServiceStub) RecentActivity(ctx context.Context, limit int) ([]domain.TimelineEntry, error) {
	return s.recentFn(ctx, limit)
}

func (s *timelineServiceStub) TimeSinceLastActivity(ctx context.Context, caseID uuid.UUID) (time.Duration, error) {
	return s.idleFn(ctx, caseID)
}
