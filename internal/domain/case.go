package domain

import (
	"time"

	"github.com/google/uuid"
)

// Case is a submitted grievance under management. Cases are never deleted.
type Case struct {
	ID          uuid.UUID
	Category    string
	Subcategory *string
	Description string
	Status      CaseStatus
	Priority    Priority
	SubmitterID uuid.UUID
	SubmittedAt time.Time
	UpdatedAt   time.Time
	ResolvedAt  *time.Time
}

// IsOpen reports whether the case still participates in workload and escalation.
func (c *Case) IsOpen() bool {
	return !c.Status.IsTerminal()
}

// Student is the submitter of a case. Owned by the identity domain; read-only here.
type Student struct {
	ID         uuid.UUID
	UserRef    string
	Department string
}

// Caseworker is a staff member eligible to receive cases.
type Caseworker struct {
	ID                 uuid.UUID
	UserRef            string
	Department         string
	Specialization     *string
	MaxConcurrentCases int
	Active             bool
}

// Assignment binds a case to a caseworker. Only one assignment per case is active.
type Assignment struct {
	ID           uuid.UUID
	CaseID       uuid.UUID
	CaseworkerID uuid.UUID
	AssignedAt   time.Time
	AssignedBy   *uuid.UUID // nil = system
	Note         *string
	Active       bool
}

// WorkloadSummary is a caseworker's open-case count against capacity.
type WorkloadSummary struct {
	CaseworkerID      uuid.UUID
	ActiveCases       int
	Capacity          int
	AvailableCapacity int // may be negative when over capacity
}

// NewWorkloadSummary derives AvailableCapacity from the raw counts.
func NewWorkloadSummary(caseworkerID uuid.UUID, activeCases, capacity int) WorkloadSummary {
	return WorkloadSummary{
		CaseworkerID:      caseworkerID,
		ActiveCases:       activeCases,
		Capacity:          capacity,
		AvailableCapacity: capacity - activeCases,
	}
}

// HasCapacity reports whether at least one more case can be taken.
func (w WorkloadSummary) HasCapacity() bool {
	return w.AvailableCapacity > 0
}
