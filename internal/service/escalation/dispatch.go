package escalation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/timeline"
)

// firing is one action about to be dispatched against a case.
type firing struct {
	rule   *domain.EscalationRule // nil for ad-hoc escalations
	action domain.EscalationAction
	target string
	reason string
	by     *uuid.UUID // nil = system
}

func (f firing) ruleID() *uuid.UUID {
	if f.rule == nil {
		return nil
	}
	id := f.rule.ID
	return &id
}

// dispatch performs the action and records exactly one EscalationEvent and
// one ESCALATED timeline entry for it, whether the action succeeded or not.
// The returned error is the reason the action failed, if it did.
func (s *Service) dispatch(ctx context.Context, snap domain.CaseSnapshot, f firing) (*domain.EscalationEvent, error) {
	now := s.clock.Now()
	event := &domain.EscalationEvent{
		ID:             uuid.New(),
		CaseID:         snap.CaseID,
		RuleID:         f.ruleID(),
		TriggeredAt:    now,
		Reason:         f.reason,
		Action:         f.action,
		PreviousStatus: snap.Status,
		NewStatus:      snap.Status,
	}
	event.PreviousAssignee = s.currentAssignee(ctx, snap.CaseID)
	event.NewAssignee = event.PreviousAssignee

	var actionErr, err error
	switch f.action {
	case domain.ActionEscalatePriority:
		// The priority change and its record commit together.
		err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			var extra domain.Metadata
			extra, actionErr = s.bumpPriority(txCtx, event, now)
			if actionErr != nil && !errors.Is(actionErr, domain.ErrInvalidTransition) {
				return actionErr
			}
			return s.record(txCtx, event, f, extra)
		})

	case domain.ActionReassign:
		actionErr = s.reassign(ctx, event, f)
		err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			return s.record(txCtx, event, f, nil)
		})

	case domain.ActionNotifySupervisor:
		s.notify(ctx, event, snap, f)
		err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			return s.record(txCtx, event, f, nil)
		})

	default:
		return nil, domain.NewValidationError("action", "invalid value")
	}

	if err != nil {
		return event, fmt.Errorf("escalate case %s: %w", snap.CaseID, err)
	}
	if actionErr != nil {
		s.notifyFailure(ctx, event, f)
		return event, actionErr
	}
	return event, nil
}

// bumpPriority raises the case one priority level and marks it ESCALATED.
// At URGENT, or on a closed case, it leaves the case untouched and returns
// domain.ErrInvalidTransition.
func (s *Service) bumpPriority(ctx context.Context, event *domain.EscalationEvent, now time.Time) (domain.Metadata, error) {
	c, err := s.cases.GetByIDForUpdate(ctx, event.CaseID)
	if err != nil {
		return nil, fmt.Errorf("lock case: %w", err)
	}
	event.PreviousStatus, event.NewStatus = c.Status, c.Status

	if c.Status.IsTerminal() {
		event.Notes = fmt.Sprintf("case is %s", c.Status)
		return nil, fmt.Errorf("case %s is %s: %w", c.ID, c.Status, domain.ErrInvalidTransition)
	}

	next, ok := c.Priority.Next()
	if !ok {
		event.Notes = fmt.Sprintf("already at maximum priority %s", c.Priority)
		return nil, fmt.Errorf("case %s already at maximum priority: %w", c.ID, domain.ErrInvalidTransition)
	}

	if err := s.cases.UpdatePriorityStatus(ctx, c.ID, next, domain.CaseStatusEscalated, now); err != nil {
		return nil, fmt.Errorf("update priority: %w", err)
	}

	event.Success = true
	event.NewStatus = domain.CaseStatusEscalated
	event.Notes = fmt.Sprintf("priority %s -> %s", c.Priority, next)

	return domain.Metadata{
		"previous_priority": c.Priority.String(),
		"new_priority":      next.String(),
	}, nil
}

func (s *Service) reassign(ctx context.Context, event *domain.EscalationEvent, f firing) error {
	a, err := s.balancer.AutoAssign(ctx, event.CaseID, f.target, f.by)
	if err != nil {
		event.Notes = fmt.Sprintf("reassignment within %s failed: %v", f.target, err)
		return err
	}

	event.Success = true
	event.NewAssignee = &a.CaseworkerID
	event.Notes = fmt.Sprintf("reassigned within %s", f.target)
	return nil
}

// notify never fails the escalation: a delivery error is logged and noted.
func (s *Service) notify(ctx context.Context, event *domain.EscalationEvent, snap domain.CaseSnapshot, f firing) {
	text := fmt.Sprintf("Case %s (%s, %s priority) needs attention: %s",
		snap.CaseID, snap.Category, snap.Priority, f.reason)

	event.Success = true
	if err := s.notifier.Notify(ctx, f.target, text, snap.CaseID); err != nil {
		s.log.WarnContext(ctx, "supervisor notification failed",
			slog.String("case_id", snap.CaseID.String()),
			slog.String("recipient", f.target),
			slog.String("error", err.Error()),
		)
		event.Notes = fmt.Sprintf("notification to %s failed: %v", f.target, err)
		return
	}
	event.Notes = fmt.Sprintf("notified %s", f.target)
}

func (s *Service) notifyFailure(ctx context.Context, event *domain.EscalationEvent, f firing) {
	if !s.cfg.NotifyOnFailure || f.target == "" {
		return
	}

	text := fmt.Sprintf("Escalation %s failed for case %s: %s", event.Action, event.CaseID, event.Notes)
	if err := s.notifier.Notify(ctx, f.target, text, event.CaseID); err != nil {
		s.log.WarnContext(ctx, "failure notification failed",
			slog.String("case_id", event.CaseID.String()),
			slog.String("recipient", f.target),
			slog.String("error", err.Error()),
		)
	}
}

// record writes the event and its timeline entry. Run it inside a transaction.
func (s *Service) record(ctx context.Context, event *domain.EscalationEvent, f firing, extra domain.Metadata) error {
	if err := s.rules.CreateEvent(ctx, event); err != nil {
		return fmt.Errorf("create escalation event: %w", err)
	}

	meta := domain.Metadata{
		"escalation_event_id": event.ID.String(),
		"action":              event.Action.String(),
		"success":             event.Success,
		"reason":              event.Reason,
	}
	if f.rule != nil {
		meta["rule_id"] = f.rule.ID.String()
		meta["rule_name"] = f.rule.RuleName
	}
	if event.Notes != "" {
		meta["notes"] = event.Notes
	}
	if event.NewAssignee != nil && (event.PreviousAssignee == nil || *event.NewAssignee != *event.PreviousAssignee) {
		meta["new_assignee"] = event.NewAssignee.String()
	}
	for k, v := range extra {
		meta[k] = v
	}

	if _, err := s.timeline.Append(ctx, timeline.AppendInput{
		CaseID:      event.CaseID,
		ActionType:  domain.TimelineEscalated,
		Description: describeEscalation(event, f),
		PerformedBy: f.by,
		Metadata:    meta,
	}); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	return nil
}

func describeEscalation(event *domain.EscalationEvent, f firing) string {
	desc := fmt.Sprintf("Manual escalation: %s", event.Action)
	if f.rule != nil {
		desc = fmt.Sprintf("Rule %q fired: %s", f.rule.RuleName, event.Action)
	}
	if !event.Success {
		desc += " (failed)"
	}
	return desc
}

// currentAssignee returns the caseworker actively assigned to the case, or
// nil if there is none or it cannot be read.
func (s *Service) currentAssignee(ctx context.Context, caseID uuid.UUID) *uuid.UUID {
	a, err := s.balancer.Active(ctx, caseID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "read current assignee",
				slog.String("case_id", caseID.String()),
				slog.String("error", err.Error()),
			)
		}
		return nil
	}
	id := a.CaseworkerID
	return &id
}
