package domain

import (
	"time"

	"github.com/google/uuid"
)

// Deadline is a time-bound target for case progress.
type Deadline struct {
	ID        uuid.UUID
	CaseID    uuid.UUID
	Kind      DeadlineKind
	DueAt     time.Time
	CreatedBy *uuid.UUID // nil = system
	CreatedAt time.Time
	Met       bool
	MetAt     *time.Time
}

// IsOverdue reports whether the deadline is unmet and already past due at now.
func (d *Deadline) IsOverdue(now time.Time) bool {
	return !d.Met && d.DueAt.Before(now)
}

// DeadlineView is a deadline as shown on a caseworker dashboard.
type DeadlineView struct {
	Deadline
	CaseCategory  string
	CasePriority  Priority
	DaysRemaining float64 // fractional; negative when overdue
}

// DaysUntil returns the fractional number of days from now to due.
// A deadline 30 minutes away yields ~0.0208, not 0.
func DaysUntil(due, now time.Time) float64 {
	return due.Sub(now).Hours() / 24
}
