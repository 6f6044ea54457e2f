// Package assignment implements the Assignment repository using PostgreSQL.
// The partial unique index ux_assignments_case_active guarantees at most one
// active assignment per case; callers deactivate before inserting.
package assignment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/grievance-backend/internal/adapter/postgres"
	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// Repo provides assignment persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new assignment repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const assignmentColumns = `id, case_id, caseworker_id, assigned_at, assigned_by, note, active`

const insertAssignmentSQL = `
INSERT INTO assignments (id, case_id, caseworker_id, assigned_at, assigned_by, note, active)
VALUES ($1, $2, $3, $4, $5, $6, TRUE)`

const deactivateActiveSQL = `
UPDATE assignments SET active = FALSE
WHERE case_id = $1 AND active
RETURNING caseworker_id`

const getActiveSQL = `SELECT ` + assignmentColumns + ` FROM assignments WHERE case_id = $1 AND active`

const getActiveByCasesSQL = `SELECT ` + assignmentColumns + ` FROM assignments WHERE case_id = ANY($1::uuid[]) AND active`

const listByCaseSQL = `
SELECT ` + assignmentColumns + `
FROM assignments
WHERE case_id = $1
ORDER BY assigned_at, id`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetActive returns the active assignment of a case.
// Returns domain.ErrNotFound if the case is unassigned.
func (r *Repo) GetActive(ctx context.Context, caseID uuid.UUID) (*domain.Assignment, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	a, err := scanAssignment(q.QueryRow(ctx, getActiveSQL, caseID))
	if err != nil {
		return nil, postgres.MapError(err, "active assignment for case", caseID)
	}
	return &a, nil
}

// ListByCase returns the full assignment history of a case, oldest first.
func (r *Repo) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Assignment, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, listByCaseSQL, caseID)
	if err != nil {
		return nil, postgres.MapQueryError(err, "list assignments")
	}
	defer rows.Close()

	result := []domain.Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, postgres.MapQueryError(err, "scan assignment")
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapQueryError(err, "list assignments")
	}

	return result, nil
}

// ActiveByCaseIDs returns the active assignments of the cases in caseIDs.
// Unassigned cases have no row in the result.
func (r *Repo) ActiveByCaseIDs(ctx context.Context, caseIDs []uuid.UUID) ([]domain.Assignment, error) {
	if len(caseIDs) == 0 {
		return []domain.Assignment{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, getActiveByCasesSQL, caseIDs)
	if err != nil {
		return nil, postgres.MapQueryError(err, "list active assignments")
	}
	defer rows.Close()

	result := make([]domain.Assignment, 0, len(caseIDs))
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, postgres.MapQueryError(err, "scan assignment")
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapQueryError(err, "list active assignments")
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// DeactivateActive clears the active flag on the case's current assignment
// and returns the caseworker it pointed to, or nil if the case was unassigned.
// Must run in the same transaction as the following Create.
func (r *Repo) DeactivateActive(ctx context.Context, caseID uuid.UUID) (*uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var prev uuid.UUID
	err := q.QueryRow(ctx, deactivateActiveSQL, caseID).Scan(&prev)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, postgres.MapError(err, "deactivate assignment for case", caseID)
	}
	return &prev, nil
}

// Create inserts a new active assignment.
// Returns domain.ErrAlreadyExists if the case still has an active assignment.
func (r *Repo) Create(ctx context.Context, a *domain.Assignment) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	_, err := q.Exec(ctx, insertAssignmentSQL, a.ID, a.CaseID, a.CaseworkerID, a.AssignedAt, a.AssignedBy, a.Note)
	if err != nil {
		return postgres.MapError(err, "assignment", a.ID)
	}

	a.Active = true
	return nil
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

func scanAssignment(row pgx.Row) (domain.Assignment, error) {
	var a domain.Assignment
	if err := row.Scan(&a.ID, &a.CaseID, &a.CaseworkerID, &a.AssignedAt, &a.AssignedBy, &a.Note, &a.Active); err != nil {
		return domain.Assignment{}, fmt.Errorf("scan assignment: %w", err)
	}
	return a, nil
}
