package escalation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// RunScan evaluates every active rule against every open case and
// dispatches the actions of the rules that fire. One case failing does not
// stop the batch; the report carries per-action results.
//
// The returned error is the report's Err() (domain.ErrPartialBatchFailure)
// when some actions failed, or the cause when the scan could not run at all.
func (s *Service) RunScan(ctx context.Context) (*domain.ScanReport, error) {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	now := s.clock.Now()
	report := &domain.ScanReport{StartedAt: now}

	rules, err := s.rules.ListRules(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	snaps, err := s.cases.OpenSnapshots(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("load open cases: %w", err)
	}
	report.Evaluated = len(snaps)

	for _, snap := range snaps {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("scan interrupted: %w", err)
		}

		for i := range rules {
			rule := &rules[i]
			if rule.TriggerCondition == domain.TriggerManual || !rule.AppliesTo(snap.Category, snap.Priority) {
				continue
			}

			fired, reason := rule.Triggered(snap, now)
			if !fired {
				continue
			}

			if s.suppressed(ctx, snap.CaseID, rule, now) {
				report.Suppressed++
				continue
			}

			event, err := s.dispatch(ctx, snap, firing{
				rule:   rule,
				action: rule.Action,
				target: rule.ActionTarget,
				reason: reason,
			})
			res := scanResult(snap.CaseID, rule, event, err)
			if !res.Success {
				s.log.WarnContext(ctx, "escalation action failed",
					slog.String("case_id", snap.CaseID.String()),
					slog.String("rule", rule.RuleName),
					slog.String("action", rule.Action.String()),
					slog.String("message", res.Message),
				)
			}
			report.Add(res)

			// Later rules see the case as this action left it.
			if res.Success && changesCase(rule.Action) {
				fresh, err := s.cases.Snapshot(ctx, snap.CaseID, now)
				if err != nil {
					s.log.WarnContext(ctx, "refresh case after escalation, skipping its remaining rules",
						slog.String("case_id", snap.CaseID.String()),
						slog.String("error", err.Error()),
					)
					break
				}
				snap = fresh
			}
		}
	}

	s.log.InfoContext(ctx, "escalation scan finished",
		slog.Int("evaluated", report.Evaluated),
		slog.Int("fired", report.Fired),
		slog.Int("succeeded", report.Succeeded),
		slog.Int("failed", report.Failed),
		slog.Int("suppressed", report.Suppressed),
		slog.Duration("duration", s.clock.Now().Sub(now)),
	)

	return report, report.Err()
}

// changesCase reports whether a successful action alters the case's
// priority, status or assignee.
func changesCase(a domain.EscalationAction) bool {
	return a == domain.ActionEscalatePriority || a == domain.ActionReassign
}

// suppressed reports whether the rule already fired for the case within
// the cool-down window. A failed lookup does not suppress.
func (s *Service) suppressed(ctx context.Context, caseID uuid.UUID, rule *domain.EscalationRule, now time.Time) bool {
	if s.cfg.Cooldown <= 0 {
		return false
	}

	last, err := s.rules.LastFiredAt(ctx, caseID, rule.ID)
	if err != nil {
		s.log.WarnContext(ctx, "cool-down lookup failed",
			slog.String("case_id", caseID.String()),
			slog.String("rule_id", rule.ID.String()),
			slog.String("error", err.Error()),
		)
		return false
	}
	return last != nil && now.Sub(*last) < s.cfg.Cooldown
}

func scanResult(caseID uuid.UUID, rule *domain.EscalationRule, event *domain.EscalationEvent, err error) domain.EscalationResult {
	ruleID := rule.ID
	res := domain.EscalationResult{
		CaseID:   caseID,
		RuleID:   &ruleID,
		RuleName: rule.RuleName,
		Action:   rule.Action,
	}
	if err != nil {
		res.Message = err.Error()
		return res
	}
	res.Success = event.Success
	res.Message = event.Notes
	return res
}
