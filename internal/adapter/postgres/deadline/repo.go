// Package deadline implements the Deadline repository using PostgreSQL.
// Deadlines are inserted in batches and only ever mutated by MarkMet.
package deadline

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/grievance-backend/internal/adapter/postgres"
	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// Repo provides deadline persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new deadline repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const deadlineColumns = `d.id, d.case_id, d.kind, d.due_at, d.created_by, d.created_at, d.met, d.met_at`

const getDeadlineSQL = `SELECT ` + deadlineColumns + ` FROM deadlines d WHERE d.id = $1`

const listByCaseSQL = `
SELECT ` + deadlineColumns + `
FROM deadlines d
WHERE d.case_id = $1
ORDER BY d.due_at, d.id`

const listByCaseIDsSQL = `
SELECT ` + deadlineColumns + `
FROM deadlines d
WHERE d.case_id = ANY($1::uuid[])
ORDER BY d.case_id, d.due_at, d.id`

// markMetSQL only touches unmet rows, so a second call leaves met_at as is.
const markMetSQL = `UPDATE deadlines SET met = TRUE, met_at = $2 WHERE id = $1 AND NOT met`

const existsSQL = `SELECT EXISTS(SELECT 1 FROM deadlines WHERE id = $1)`

// viewBaseSQL lists unmet deadlines on open cases actively assigned to $1.
const viewBaseSQL = `
SELECT ` + deadlineColumns + `, c.category, c.priority
FROM deadlines d
JOIN assignments a ON a.case_id = d.case_id AND a.active
JOIN cases c ON c.id = d.case_id
WHERE a.caseworker_id = $1
  AND NOT d.met
  AND c.status NOT IN ('RESOLVED', 'REJECTED')`

const overdueSQL = viewBaseSQL + `
  AND d.due_at < $2
ORDER BY d.due_at, d.id`

const upcomingSQL = viewBaseSQL + `
  AND d.due_at >= $2 AND d.due_at <= $3
ORDER BY d.due_at, d.id`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateBatch inserts all deadlines in a single statement: either every row
// is written or none is.
func (r *Repo) CreateBatch(ctx context.Context, deadlines []domain.Deadline) error {
	if len(deadlines) == 0 {
		return nil
	}

	ins := psql.Insert("deadlines").Columns("id", "case_id", "kind", "due_at", "created_by", "created_at", "met")
	for _, d := range deadlines {
		ins = ins.Values(d.ID, d.CaseID, string(d.Kind), d.DueAt, d.CreatedBy, d.CreatedAt, false)
	}

	query, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build deadline insert: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "deadlines for case", deadlines[0].CaseID)
	}
	return nil
}

// MarkMet sets met=true and met_at=now on an unmet deadline. It reports
// whether the row changed; an already-met deadline returns (false, nil).
// Returns domain.ErrNotFound if the deadline does not exist.
func (r *Repo) MarkMet(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, markMetSQL, id, now)
	if err != nil {
		return false, postgres.MapError(err, "deadline", id)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	var exists bool
	if err := q.QueryRow(ctx, existsSQL, id).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "deadline", id)
	}
	if !exists {
		return false, fmt.Errorf("deadline %s: %w", id, domain.ErrNotFound)
	}
	return false, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a deadline by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deadline, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	d, err := scanDeadline(q.QueryRow(ctx, getDeadlineSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "deadline", id)
	}
	return &d, nil
}

// ListByCase returns all deadlines of a case ordered by due date.
func (r *Repo) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Deadline, error) {
	return r.list(ctx, "list deadlines", listByCaseSQL, caseID)
}

// ListByCaseIDs returns the deadlines of every case in caseIDs, grouped by
// case and ordered by due date within each case.
func (r *Repo) ListByCaseIDs(ctx context.Context, caseIDs []uuid.UUID) ([]domain.Deadline, error) {
	if len(caseIDs) == 0 {
		return []domain.Deadline{}, nil
	}
	return r.list(ctx, "list deadlines by cases", listByCaseIDsSQL, caseIDs)
}

func (r *Repo) list(ctx context.Context, op, query string, args ...any) ([]domain.Deadline, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapQueryError(err, op)
	}
	defer rows.Close()

	result := []domain.Deadline{}
	for rows.Next() {
		d, err := scanDeadline(rows)
		if err != nil {
			return nil, postgres.MapQueryError(err, "scan deadline")
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapQueryError(err, op)
	}

	return result, nil
}

// Overdue returns unmet deadlines past due at now for cases actively
// assigned to the caseworker.
func (r *Repo) Overdue(ctx context.Context, caseworkerID uuid.UUID, now time.Time) ([]domain.DeadlineView, error) {
	return r.listViews(ctx, now, "list overdue deadlines", overdueSQL, caseworkerID, now)
}

// Upcoming returns unmet deadlines due in [now, until] for cases actively
// assigned to the caseworker.
func (r *Repo) Upcoming(ctx context.Context, caseworkerID uuid.UUID, now, until time.Time) ([]domain.DeadlineView, error) {
	return r.listViews(ctx, now, "list upcoming deadlines", upcomingSQL, caseworkerID, now, until)
}

func (r *Repo) listViews(ctx context.Context, now time.Time, op, query string, args ...any) ([]domain.DeadlineView, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapQueryError(err, op)
	}
	defer rows.Close()

	result := []domain.DeadlineView{}
	for rows.Next() {
		var (
			v              domain.DeadlineView
			kind, priority string
		)
		err := rows.Scan(
			&v.ID, &v.CaseID, &kind, &v.DueAt, &v.CreatedBy, &v.CreatedAt, &v.Met, &v.MetAt,
			&v.CaseCategory, &priority,
		)
		if err != nil {
			return nil, postgres.MapQueryError(err, op)
		}
		v.Kind = domain.DeadlineKind(kind)
		v.CasePriority = domain.Priority(priority)
		v.DaysRemaining = domain.DaysUntil(v.DueAt, now)
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapQueryError(err, op)
	}

	return result, nil
}

func scanDeadline(row pgx.Row) (domain.Deadline, error) {
	var (
		d    domain.Deadline
		kind string
	)
	if err := row.Scan(&d.ID, &d.CaseID, &kind, &d.DueAt, &d.CreatedBy, &d.CreatedAt, &d.Met, &d.MetAt); err != nil {
		return domain.Deadline{}, err
	}
	d.Kind = domain.DeadlineKind(kind)
	return d, nil
}
