// Package escalation evaluates escalation rules against open cases and
// dispatches their remediation actions.
package escalation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/timeline"
)

type caseRepo interface {
	OpenSnapshots(ctx context.Context, now time.Time) ([]domain.CaseSnapshot, error)
	Snapshot(ctx context.Context, id uuid.UUID, now time.Time) (domain.CaseSnapshot, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	UpdatePriorityStatus(ctx context.Context, id uuid.UUID, priority domain.Priority, status domain.CaseStatus, updatedAt time.Time) error
}

type escalationRepo interface {
	CreateRule(ctx context.Context, rule *domain.EscalationRule) error
	GetRule(ctx context.Context, id uuid.UUID) (*domain.EscalationRule, error)
	ListRules(ctx context.Context, activeOnly bool) ([]domain.EscalationRule, error)
	SetRuleActive(ctx context.Context, id uuid.UUID, active bool) error
	CreateEvent(ctx context.Context, e *domain.EscalationEvent) error
	ListEvents(ctx context.Context, f domain.EscalationEventFilter) ([]domain.EscalationEvent, int, error)
	LastFiredAt(ctx context.Context, caseID, ruleID uuid.UUID) (*time.Time, error)
}

type balancer interface {
	AutoAssign(ctx context.Context, caseID uuid.UUID, department string, requestedBy *uuid.UUID) (*domain.Assignment, error)
	Active(ctx context.Context, caseID uuid.UUID) (*domain.Assignment, error)
}

type notifier interface {
	Notify(ctx context.Context, recipient, text string, caseID uuid.UUID) error
}

type timelineRecorder interface {
	Append(ctx context.Context, input timeline.AppendInput) (*domain.TimelineEntry, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config tunes the rule engine.
type Config struct {
	// Cooldown suppresses a rule for a case it fired on within the window.
	// Zero re-fires on every scan while the condition holds.
	Cooldown time.Duration
	// NotifyOnFailure sends a message to the action target when a
	// REASSIGN or ESCALATE_PRIORITY action fails.
	NotifyOnFailure bool
}

// Service is the escalation rule engine.
type Service struct {
	cfg      Config
	cases    caseRepo
	rules    escalationRepo
	balancer balancer
	notifier notifier
	timeline timelineRecorder
	tx       txManager
	clock    domain.Clock
	log      *slog.Logger

	// scanMu serializes RunScan within the process.
	scanMu sync.Mutex
}

// NewService creates a new Escalation service.
func NewService(
	log *slog.Logger,
	cfg Config,
	cases caseRepo,
	rules escalationRepo,
	balancer balancer,
	notifier notifier,
	timeline timelineRecorder,
	tx txManager,
	clock domain.Clock,
) *Service {
	return &Service{
		cfg:      cfg,
		cases:    cases,
		rules:    rules,
		balancer: balancer,
		notifier: notifier,
		timeline: timeline,
		tx:       tx,
		clock:    clock,
		log:      log.With("service", "escalation"),
	}
}
