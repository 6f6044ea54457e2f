// Package grievance implements the Case repository using PostgreSQL.
// Cases are never deleted; status and priority are the only mutable columns.
package grievance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/grievance-backend/internal/adapter/postgres"
	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// Repo provides case persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new case repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const caseColumns = `id, category, subcategory, description, status, priority, submitter_id, submitted_at, updated_at, resolved_at`

const insertCaseSQL = `
INSERT INTO cases (id, category, subcategory, description, status, priority, submitter_id, submitted_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`

const getCaseSQL = `SELECT ` + caseColumns + ` FROM cases WHERE id = $1`

const getCaseForUpdateSQL = getCaseSQL + ` FOR UPDATE`

const getCasesByIDsSQL = `SELECT ` + caseColumns + ` FROM cases WHERE id = ANY($1::uuid[]) ORDER BY submitted_at, id`

const updateStatusSQL = `
UPDATE cases SET status = $2, updated_at = $3, resolved_at = $4
WHERE id = $1`

const updatePriorityStatusSQL = `
UPDATE cases SET priority = $2, status = $3, updated_at = $4
WHERE id = $1`

// openSnapshotsSQL reads everything a scan needs in one statement so the
// last-activity and missed-deadline columns come from the same snapshot.
const openSnapshotsSQL = `
SELECT
    c.id, c.category, c.priority, c.status, c.submitted_at,
    (SELECT max(te.performed_at) FROM timeline_entries te WHERE te.case_id = c.id),
    (SELECT count(*) FROM deadlines d WHERE d.case_id = c.id AND NOT d.met AND d.due_at < $1)
FROM cases c
WHERE c.status NOT IN ('RESOLVED', 'REJECTED')
ORDER BY c.submitted_at, c.id`

const getSnapshotSQL = `
SELECT
    c.id, c.category, c.priority, c.status, c.submitted_at,
    (SELECT max(te.performed_at) FROM timeline_entries te WHERE te.case_id = c.id),
    (SELECT count(*) FROM deadlines d WHERE d.case_id = c.id AND NOT d.met AND d.due_at < $2)
FROM cases c
WHERE c.id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a case by primary key.
// Returns domain.ErrNotFound if the case does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	c, err := scanCase(q.QueryRow(ctx, getCaseSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "case", id)
	}
	return c, nil
}

// GetByIDForUpdate is GetByID with a row lock held until the surrounding
// transaction ends. Writers touching the same case serialize on it.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	c, err := scanCase(q.QueryRow(ctx, getCaseForUpdateSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "case", id)
	}
	return c, nil
}

// GetByIDs returns the cases among ids that exist. Unknown ids are skipped.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Case, error) {
	if len(ids) == 0 {
		return []domain.Case{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, getCasesByIDsSQL, ids)
	if err != nil {
		return nil, postgres.MapQueryError(err, "get cases by ids")
	}
	defer rows.Close()

	result := make([]domain.Case, 0, len(ids))
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, postgres.MapQueryError(err, "get cases by ids")
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapQueryError(err, "get cases by ids")
	}
	return result, nil
}

// OpenSnapshots returns every non-terminal case with its last timeline
// activity and the number of deadlines missed as of now.
func (r *Repo) OpenSnapshots(ctx context.Context, now time.Time) ([]domain.CaseSnapshot, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, openSnapshotsSQL, now)
	if err != nil {
		return nil, postgres.MapQueryError(err, "list open cases")
	}
	defer rows.Close()

	result := []domain.CaseSnapshot{}
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, postgres.MapQueryError(err, "scan open case")
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapQueryError(err, "list open cases")
	}

	return result, nil
}

// Snapshot returns the scan view of a single case.
func (r *Repo) Snapshot(ctx context.Context, id uuid.UUID, now time.Time) (domain.CaseSnapshot, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	s, err := scanSnapshot(q.QueryRow(ctx, getSnapshotSQL, id, now))
	if err != nil {
		return domain.CaseSnapshot{}, postgres.MapError(err, "case", id)
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new case. UpdatedAt is set to SubmittedAt.
func (r *Repo) Create(ctx context.Context, c *domain.Case) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	_, err := q.Exec(ctx, insertCaseSQL,
		c.ID, c.Category, c.Subcategory, c.Description,
		string(c.Status), string(c.Priority), c.SubmitterID, c.SubmittedAt,
	)
	if err != nil {
		return postgres.MapError(err, "case", c.ID)
	}

	c.UpdatedAt = c.SubmittedAt
	return nil
}

// UpdateStatus sets the status and resolution timestamp of a case.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CaseStatus, updatedAt time.Time, resolvedAt *time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, updateStatusSQL, id, string(status), updatedAt, resolvedAt)
	if err != nil {
		return postgres.MapError(err, "case", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("case %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// UpdatePriorityStatus sets priority and status together.
func (r *Repo) UpdatePriorityStatus(ctx context.Context, id uuid.UUID, priority domain.Priority, status domain.CaseStatus, updatedAt time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, updatePriorityStatusSQL, id, string(priority), string(status), updatedAt)
	if err != nil {
		return postgres.MapError(err, "case", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("case %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

func scanCase(row pgx.Row) (*domain.Case, error) {
	var (
		c                domain.Case
		status, priority string
	)

	err := row.Scan(
		&c.ID, &c.Category, &c.Subcategory, &c.Description, &status, &priority,
		&c.SubmitterID, &c.SubmittedAt, &c.UpdatedAt, &c.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Status = domain.CaseStatus(status)
	c.Priority = domain.Priority(priority)
	return &c, nil
}

func scanSnapshot(row pgx.Row) (domain.CaseSnapshot, error) {
	var (
		s                domain.CaseSnapshot
		status, priority string
		missed           int64
	)

	if err := row.Scan(&s.CaseID, &s.Category, &priority, &status, &s.SubmittedAt, &s.LastActivityAt, &missed); err != nil {
		return domain.CaseSnapshot{}, err
	}

	s.Status = domain.CaseStatus(status)
	s.Priority = domain.Priority(priority)
	s.MissedDeadlines = int(missed)
	return s, nil
}
