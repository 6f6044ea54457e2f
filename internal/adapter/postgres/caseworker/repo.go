// Package caseworker implements read access to the caseworker roster.
package caseworker

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/grievance-backend/internal/adapter/postgres"
	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// Repo provides caseworker lookups backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new caseworker repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const caseworkerColumns = `id, user_ref, department, specialization, max_concurrent_cases, active`

const getCaseworkerSQL = `SELECT ` + caseworkerColumns + ` FROM caseworkers WHERE id = $1`

const listActiveByDepartmentSQL = `
SELECT ` + caseworkerColumns + `
FROM caseworkers
WHERE department = $1 AND active
ORDER BY id`

const countActiveByDepartmentSQL = `SELECT count(*) FROM caseworkers WHERE department = $1 AND active`

// GetByID returns a caseworker by primary key, active or not.
// Returns domain.ErrNotFound if the caseworker does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Caseworker, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	cw, err := scanCaseworker(q.QueryRow(ctx, getCaseworkerSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "caseworker", id)
	}
	return &cw, nil
}

// ListActiveByDepartment returns the active caseworkers of a department
// ordered by id. Returns an empty slice (not nil) when there are none.
func (r *Repo) ListActiveByDepartment(ctx context.Context, department string) ([]domain.Caseworker, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, listActiveByDepartmentSQL, department)
	if err != nil {
		return nil, postgres.MapQueryError(err, "list caseworkers by department")
	}
	defer rows.Close()

	result := []domain.Caseworker{}
	for rows.Next() {
		cw, err := scanCaseworker(rows)
		if err != nil {
			return nil, postgres.MapQueryError(err, "scan caseworker")
		}
		result = append(result, cw)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapQueryError(err, "list caseworkers by department")
	}

	return result, nil
}

// CountActiveByDepartment returns how many active caseworkers serve a department.
func (r *Repo) CountActiveByDepartment(ctx context.Context, department string) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, countActiveByDepartmentSQL, department).Scan(&n); err != nil {
		return 0, postgres.MapQueryError(err, "count caseworkers by department")
	}
	return int(n), nil
}

func scanCaseworker(row pgx.Row) (domain.Caseworker, error) {
	var (
		cw       domain.Caseworker
		capacity int32
	)
	if err := row.Scan(&cw.ID, &cw.UserRef, &cw.Department, &cw.Specialization, &capacity, &cw.Active); err != nil {
		return domain.Caseworker{}, err
	}
	cw.MaxConcurrentCases = int(capacity)
	return cw, nil
}
