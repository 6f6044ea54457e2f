// Package workload computes caseworker load from active assignments.
package workload

import (
	"context"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/grievance-backend/internal/adapter/postgres"
	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// Repo reads workload summaries backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new workload repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// getWorkloadSQL counts active assignments on non-terminal cases and reads
// the capacity in one statement, so the count and the status join share a
// snapshot.
const getWorkloadSQL = `
SELECT cw.id, cw.max_concurrent_cases, count(c.id)
FROM caseworkers cw
LEFT JOIN assignments a ON a.caseworker_id = cw.id AND a.active
LEFT JOIN cases c ON c.id = a.case_id AND c.status NOT IN ('RESOLVED', 'REJECTED')
WHERE cw.id = $1
GROUP BY cw.id, cw.max_concurrent_cases`

// Get returns the workload of one caseworker.
// Returns domain.ErrNotFound if the caseworker does not exist.
func (r *Repo) Get(ctx context.Context, caseworkerID uuid.UUID) (domain.WorkloadSummary, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var (
		id               uuid.UUID
		capacity, active int64
	)
	if err := q.QueryRow(ctx, getWorkloadSQL, caseworkerID).Scan(&id, &capacity, &active); err != nil {
		return domain.WorkloadSummary{}, postgres.MapError(err, "caseworker", caseworkerID)
	}

	return domain.NewWorkloadSummary(id, int(active), int(capacity)), nil
}
