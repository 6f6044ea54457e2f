package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueDepartment returns a department name no other test uses, so workload
// and pool queries are isolated from parallel tests sharing the database.
func UniqueDepartment(prefix string) string {
	return prefix + "-" + uniqueSuffix()
}

// SeedStudent creates a student in the given department.
func SeedStudent(t *testing.T, pool *pgxpool.Pool, department string) domain.Student {
	t.Helper()

	s := domain.Student{
		ID:         uuid.New(),
		UserRef:    "student-" + uniqueSuffix(),
		Department: department,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO students (id, user_ref, department) VALUES ($1, $2, $3)`,
		s.ID, s.UserRef, s.Department,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedStudent: %v", err)
	}

	return s
}

// SeedCaseworker creates an active caseworker with the given capacity.
func SeedCaseworker(t *testing.T, pool *pgxpool.Pool, department string, capacity int) domain.Caseworker {
	t.Helper()

	cw := domain.Caseworker{
		ID:                 uuid.New(),
		UserRef:            "caseworker-" + uniqueSuffix(),
		Department:         department,
		MaxConcurrentCases: capacity,
		Active:             true,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO caseworkers (id, user_ref, department, max_concurrent_cases, active)
		 VALUES ($1, $2, $3, $4, $5)`,
		cw.ID, cw.UserRef, cw.Department, cw.MaxConcurrentCases, cw.Active,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCaseworker: %v", err)
	}

	return cw
}

// DeactivateCaseworker flips a caseworker to inactive.
func DeactivateCaseworker(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), `UPDATE caseworkers SET active = FALSE WHERE id = $1`, id); err != nil {
		t.Fatalf("testhelper: DeactivateCaseworker: %v", err)
	}
}

// SeedCase creates a case for the submitter with the given status, submitted at submittedAt.
func SeedCase(t *testing.T, pool *pgxpool.Pool, submitterID uuid.UUID, status domain.CaseStatus, submittedAt time.Time) domain.Case {
	t.Helper()

	submittedAt = submittedAt.UTC().Truncate(time.Microsecond)
	c := domain.Case{
		ID:          uuid.New(),
		Category:    "Academic",
		Description: "Seeded grievance " + uniqueSuffix(),
		Status:      status,
		Priority:    domain.PriorityMedium,
		SubmitterID: submitterID,
		SubmittedAt: submittedAt,
		UpdatedAt:   submittedAt,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO cases (id, category, description, status, priority, submitter_id, submitted_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Category, c.Description, string(c.Status), string(c.Priority), c.SubmitterID, c.SubmittedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCase: %v", err)
	}

	return c
}

// SeedAssignment creates an active assignment of a case to a caseworker.
func SeedAssignment(t *testing.T, pool *pgxpool.Pool, caseID, caseworkerID uuid.UUID) domain.Assignment {
	t.Helper()

	a := domain.Assignment{
		ID:           uuid.New(),
		CaseID:       caseID,
		CaseworkerID: caseworkerID,
		AssignedAt:   time.Now().UTC().Truncate(time.Microsecond),
		Active:       true,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO assignments (id, case_id, caseworker_id, assigned_at, active)
		 VALUES ($1, $2, $3, $4, TRUE)`,
		a.ID, a.CaseID, a.CaseworkerID, a.AssignedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAssignment: %v", err)
	}

	return a
}

// SeedDeadline creates an unmet deadline of the given kind.
func SeedDeadline(t *testing.T, pool *pgxpool.Pool, caseID uuid.UUID, kind domain.DeadlineKind, dueAt time.Time) domain.Deadline {
	t.Helper()

	d := domain.Deadline{
		ID:        uuid.New(),
		CaseID:    caseID,
		Kind:      kind,
		DueAt:     dueAt.UTC().Truncate(time.Microsecond),
		CreatedAt: dueAt.UTC().Add(-30 * 24 * time.Hour).Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO deadlines (id, case_id, kind, due_at, created_at) VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.CaseID, string(d.Kind), d.DueAt, d.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDeadline: %v", err)
	}

	return d
}

// SeedRule creates an active escalation rule with no filters.
func SeedRule(t *testing.T, pool *pgxpool.Pool, cond domain.TriggerCondition, value float64, action domain.EscalationAction, target string) domain.EscalationRule {
	t.Helper()

	r := domain.EscalationRule{
		ID:               uuid.New(),
		RuleName:         "rule-" + uniqueSuffix(),
		TriggerCondition: cond,
		TriggerValue:     value,
		Action:           action,
		ActionTarget:     target,
		Active:           true,
		CreatedAt:        time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO escalation_rules (id, rule_name, trigger_condition, trigger_value, action, action_target, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7)`,
		r.ID, r.RuleName, string(r.TriggerCondition), r.TriggerValue, string(r.Action), r.ActionTarget, r.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRule: %v", err)
	}

	return r
}
