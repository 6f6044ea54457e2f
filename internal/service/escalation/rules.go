package escalation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// CreateRule validates and stores a new active rule.
func (s *Service) CreateRule(ctx context.Context, input CreateRuleInput) (*domain.EscalationRule, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	rule := &domain.EscalationRule{
		ID:               uuid.New(),
		RuleName:         strings.TrimSpace(input.RuleName),
		CategoryFilter:   trimOrNil(input.CategoryFilter),
		PriorityFilter:   input.PriorityFilter,
		TriggerCondition: input.TriggerCondition,
		TriggerValue:     input.TriggerValue,
		Action:           input.Action,
		ActionTarget:     strings.TrimSpace(input.ActionTarget),
		Active:           true,
		CreatedAt:        s.clock.Now(),
	}

	if err := s.rules.CreateRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("create rule: %w", err)
	}

	s.log.InfoContext(ctx, "escalation rule created",
		slog.String("rule_id", rule.ID.String()),
		slog.String("rule", rule.RuleName),
		slog.String("trigger", rule.TriggerCondition.String()),
		slog.String("action", rule.Action.String()),
	)

	return rule, nil
}

// ListRules returns the rules, optionally only the active ones.
func (s *Service) ListRules(ctx context.Context, activeOnly bool) ([]domain.EscalationRule, error) {
	rules, err := s.rules.ListRules(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	return rules, nil
}

// SetRuleActive enables or disables a rule. Inactive rules are skipped by
// scans and cannot be fired manually.
func (s *Service) SetRuleActive(ctx context.Context, ruleID uuid.UUID, active bool) (*domain.EscalationRule, error) {
	if err := s.rules.SetRuleActive(ctx, ruleID, active); err != nil {
		return nil, fmt.Errorf("set rule active: %w", err)
	}

	rule, err := s.rules.GetRule(ctx, ruleID)
	if err != nil {
		return nil, fmt.Errorf("get rule: %w", err)
	}

	s.log.InfoContext(ctx, "escalation rule toggled",
		slog.String("rule_id", ruleID.String()),
		slog.Bool("active", active),
	)

	return rule, nil
}

// History returns a page of escalation events, newest first.
func (s *Service) History(ctx context.Context, input HistoryInput) (*HistoryResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultHistoryLimit
	}

	events, total, err := s.rules.ListEvents(ctx, domain.EscalationEventFilter{
		CaseID: input.CaseID,
		Limit:  limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list escalation events: %w", err)
	}

	return &HistoryResult{Events: events, Total: total}, nil
}
