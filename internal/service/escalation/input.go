package escalation

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

const (
	maxRuleNameLength = 200
	maxReasonLength   = 1000

	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// CreateRuleInput holds the parameters for a new escalation rule.
type CreateRuleInput struct {
	RuleName         string
	CategoryFilter   *string
	PriorityFilter   *domain.Priority
	TriggerCondition domain.TriggerCondition
	TriggerValue     float64
	Action           domain.EscalationAction
	ActionTarget     string
}

// Validate checks all fields and collects all errors.
func (i CreateRuleInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.RuleName)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "rule_name", Message: "required"})
	} else if len(name) > maxRuleNameLength {
		errs = append(errs, domain.FieldError{Field: "rule_name", Message: "max 200 characters"})
	}

	if i.PriorityFilter != nil && !i.PriorityFilter.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority_filter", Message: "invalid value"})
	}

	if !i.TriggerCondition.IsValid() {
		errs = append(errs, domain.FieldError{Field: "trigger_condition", Message: "invalid value"})
	}
	switch i.TriggerCondition {
	case domain.TriggerTimeExceeded, domain.TriggerStatusUnchanged:
		if i.TriggerValue <= 0 {
			errs = append(errs, domain.FieldError{Field: "trigger_value", Message: "must be positive hours"})
		}
	default:
		if i.TriggerValue < 0 {
			errs = append(errs, domain.FieldError{Field: "trigger_value", Message: "must not be negative"})
		}
	}

	errs = append(errs, validateAction(i.Action, i.ActionTarget)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ManualEscalationInput fires one action against one case on an operator's
// request: either an existing rule (RuleID) or an ad-hoc Action.
type ManualEscalationInput struct {
	CaseID       uuid.UUID
	RuleID       *uuid.UUID
	Action       domain.EscalationAction
	ActionTarget string
	Reason       string
	PerformedBy  *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i ManualEscalationInput) Validate() error {
	var errs []domain.FieldError

	if i.CaseID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "case_id", Message: "required"})
	}

	switch {
	case i.RuleID != nil && i.Action != "":
		errs = append(errs, domain.FieldError{Field: "action", Message: "give either rule_id or action, not both"})
	case i.RuleID != nil:
		if *i.RuleID == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "rule_id", Message: "invalid value"})
		}
	default:
		errs = append(errs, validateAction(i.Action, i.ActionTarget)...)
	}

	if len(strings.TrimSpace(i.Reason)) > maxReasonLength {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// HistoryInput selects a page of escalation events.
type HistoryInput struct {
	CaseID *uuid.UUID
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i HistoryInput) Validate() error {
	var errs []domain.FieldError

	if i.Limit < 0 || i.Limit > MaxHistoryLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// HistoryResult is one page of escalation events.
type HistoryResult struct {
	Events []domain.EscalationEvent
	Total  int
}

func validateAction(action domain.EscalationAction, target string) []domain.FieldError {
	if !action.IsValid() {
		return []domain.FieldError{{Field: "action", Message: "invalid value"}}
	}
	if action != domain.ActionEscalatePriority && strings.TrimSpace(target) == "" {
		return []domain.FieldError{{Field: "action_target", Message: "required for " + action.String()}}
	}
	return nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
