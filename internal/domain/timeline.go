package domain

import (
	"time"

	"github.com/google/uuid"
)

// Metadata is a schemaless payload attached to a timeline entry.
// Its shape depends on the ActionType.
type Metadata map[string]any

// TimelineEntry is an immutable audit record of one lifecycle action.
type TimelineEntry struct {
	ID          uuid.UUID
	Seq         int64
	CaseID      uuid.UUID
	ActionType  TimelineAction
	Description string
	PerformedBy *uuid.UUID // nil = system
	PerformedAt time.Time
	Metadata    Metadata
}

// LastActivityAt returns the reference time for "time since last activity":
// the latest timeline entry if any, otherwise the case submission time.
func LastActivityAt(lastEntryAt *time.Time, submittedAt time.Time) time.Time {
	if lastEntryAt == nil || lastEntryAt.IsZero() {
		return submittedAt
	}
	return *lastEntryAt
}
