package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EscalationRule is a declarative condition -> action policy evaluated during a scan.
type EscalationRule struct {
	ID               uuid.UUID
	RuleName         string
	CategoryFilter   *string   // nil = any category
	PriorityFilter   *Priority // nil = any priority
	TriggerCondition TriggerCondition
	TriggerValue     float64 // hours for TIME_EXCEEDED and STATUS_UNCHANGED
	Action           EscalationAction
	ActionTarget     string // department, role or user reference
	Active           bool
	CreatedAt        time.Time
}

// AppliesTo reports whether the rule's category/priority filters match the case.
func (r *EscalationRule) AppliesTo(category string, priority Priority) bool {
	if r.CategoryFilter != nil && *r.CategoryFilter != category {
		return false
	}
	if r.PriorityFilter != nil && *r.PriorityFilter != priority {
		return false
	}
	return true
}

// Triggered evaluates the trigger condition against a case snapshot at now.
// MANUAL rules never trigger on their own. The returned reason is empty when
// the condition does not hold.
func (r *EscalationRule) Triggered(c CaseSnapshot, now time.Time) (bool, string) {
	switch r.TriggerCondition {
	case TriggerTimeExceeded:
		hours := now.Sub(c.SubmittedAt).Hours()
		if hours > r.TriggerValue {
			return true, fmt.Sprintf("open for %.1fh, limit %.1fh", hours, r.TriggerValue)
		}
	case TriggerStatusUnchanged:
		hours := now.Sub(LastActivityAt(c.LastActivityAt, c.SubmittedAt)).Hours()
		if hours > r.TriggerValue {
			return true, fmt.Sprintf("no activity for %.1fh, limit %.1fh", hours, r.TriggerValue)
		}
	case TriggerDeadlineMissed:
		if c.MissedDeadlines > 0 {
			return true, fmt.Sprintf("%d deadline(s) missed", c.MissedDeadlines)
		}
	}
	return false, ""
}

// CaseSnapshot is the per-case input of an escalation scan, read in one query.
type CaseSnapshot struct {
	CaseID          uuid.UUID
	Category        string
	Priority        Priority
	Status          CaseStatus
	SubmittedAt     time.Time
	LastActivityAt  *time.Time // latest timeline entry, nil if none
	MissedDeadlines int        // unmet deadlines with due_at < now
}

// EscalationEvent is the immutable record of one rule firing.
type EscalationEvent struct {
	ID               uuid.UUID
	CaseID           uuid.UUID
	RuleID           *uuid.UUID // nil for ad-hoc manual escalations
	TriggeredAt      time.Time
	Reason           string
	Action           EscalationAction
	Success          bool
	PreviousStatus   CaseStatus
	NewStatus        CaseStatus
	PreviousAssignee *uuid.UUID
	NewAssignee      *uuid.UUID
	Notes            string
}

// EscalationResult is the outcome of one dispatched action during a scan.
type EscalationResult struct {
	CaseID   uuid.UUID
	RuleID   *uuid.UUID
	RuleName string
	Action   EscalationAction
	Success  bool
	Message  string
}

// ScanReport aggregates the results of one escalation scan.
type ScanReport struct {
	StartedAt  time.Time
	Evaluated  int // open cases inspected
	Fired      int // actions dispatched
	Succeeded  int
	Failed     int
	Suppressed int // skipped by the cool-down window
	Results    []EscalationResult
}

// Add records a dispatched action's result.
func (r *ScanReport) Add(res EscalationResult) {
	r.Results = append(r.Results, res)
	r.Fired++
	if res.Success {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

// Err returns ErrPartialBatchFailure when any dispatched action failed.
func (r *ScanReport) Err() error {
	if r.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d escalation actions failed: %w", r.Failed, r.Fired, ErrPartialBatchFailure)
}

// EscalationEventFilter selects a page of escalation history.
// A nil CaseID lists events of all cases.
type EscalationEventFilter struct {
	CaseID *uuid.UUID
	Limit  int
	Offset int
}
