package escalation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

const defaultManualReason = "Manual escalation"

// Escalate fires one action against one open case on an operator's request,
// bypassing rule filters and trigger conditions. MANUAL rules can only be
// fired this way. The event is recorded even when the action fails.
func (s *Service) Escalate(ctx context.Context, input ManualEscalationInput) (*domain.EscalationEvent, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.cases.Snapshot(ctx, input.CaseID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}
	if snap.Status.IsTerminal() {
		return nil, fmt.Errorf("case %s is %s: %w", snap.CaseID, snap.Status, domain.ErrInvalidTransition)
	}

	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		reason = defaultManualReason
	}
	f := firing{
		action: input.Action,
		target: strings.TrimSpace(input.ActionTarget),
		reason: reason,
		by:     input.PerformedBy,
	}

	if input.RuleID != nil {
		rule, err := s.rules.GetRule(ctx, *input.RuleID)
		if err != nil {
			return nil, fmt.Errorf("get rule: %w", err)
		}
		if !rule.Active {
			return nil, domain.NewValidationError("rule_id", "rule is inactive")
		}
		f.rule, f.action, f.target = rule, rule.Action, rule.ActionTarget
	}

	event, err := s.dispatch(ctx, snap, f)
	if err != nil {
		return nil, fmt.Errorf("manual escalation: %w", err)
	}

	s.log.InfoContext(ctx, "case escalated manually",
		slog.String("case_id", snap.CaseID.String()),
		slog.String("action", f.action.String()),
		slog.String("event_id", event.ID.String()),
	)

	return event, nil
}
