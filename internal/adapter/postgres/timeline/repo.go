// Package timeline implements the Timeline repository using PostgreSQL.
// It provides append-only operations for case activity records.
package timeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/grievance-backend/internal/adapter/postgres"
	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// Repo provides timeline persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new timeline repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const entryColumns = `id, seq, case_id, action_type, description, performed_by, performed_at, metadata`

const insertEntrySQL = `
INSERT INTO timeline_entries (id, case_id, action_type, description, performed_by, performed_at, metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING seq`

// lastPerformedAtSQL feeds the monotonic clock guard in Append.
const lastPerformedAtSQL = `SELECT max(performed_at) FROM timeline_entries WHERE case_id = $1`

const historySQL = `
SELECT ` + entryColumns + `
FROM timeline_entries
WHERE case_id = $1
ORDER BY performed_at, seq`

const historyByCasesSQL = `
SELECT ` + entryColumns + `
FROM timeline_entries
WHERE case_id = ANY($1::uuid[])
ORDER BY case_id, performed_at, seq`

const recentSQL = `
SELECT ` + entryColumns + `
FROM timeline_entries
ORDER BY performed_at DESC, seq DESC
LIMIT $1`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Append inserts a timeline entry and fills in its sequence number.
func (r *Repo) Append(ctx context.Context, e *domain.TimelineEntry) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	metadata := e.Metadata
	if metadata == nil {
		metadata = domain.Metadata{}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("timeline_entry marshal metadata: %w", err)
	}

	err = q.QueryRow(ctx, insertEntrySQL,
		e.ID, e.CaseID, string(e.ActionType), e.Description, e.PerformedBy, e.PerformedAt, metadataJSON,
	).Scan(&e.Seq)
	if err != nil {
		return postgres.MapError(err, "timeline_entry", e.ID)
	}

	e.Metadata = metadata
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// LastActivityAt returns the performed_at of the newest entry of a case, or
// nil when the case has no entries.
func (r *Repo) LastActivityAt(ctx context.Context, caseID uuid.UUID) (*time.Time, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var last *time.Time
	if err := q.QueryRow(ctx, lastPerformedAtSQL, caseID).Scan(&last); err != nil {
		return nil, postgres.MapError(err, "timeline for case", caseID)
	}
	return last, nil
}

// History returns the full timeline of a case in ascending order.
func (r *Repo) History(ctx context.Context, caseID uuid.UUID) ([]domain.TimelineEntry, error) {
	return r.list(ctx, "get timeline by case", historySQL, caseID)
}

// HistoryByCaseIDs returns the timelines of every case in caseIDs, each in
// ascending order.
func (r *Repo) HistoryByCaseIDs(ctx context.Context, caseIDs []uuid.UUID) ([]domain.TimelineEntry, error) {
	if len(caseIDs) == 0 {
		return []domain.TimelineEntry{}, nil
	}
	return r.list(ctx, "get timeline by cases", historyByCasesSQL, caseIDs)
}

// Recent returns the newest entries across all cases, most recent first.
func (r *Repo) Recent(ctx context.Context, limit int) ([]domain.TimelineEntry, error) {
	return r.list(ctx, "get recent timeline", recentSQL, limit)
}

func (r *Repo) list(ctx context.Context, op, query string, args ...any) ([]domain.TimelineEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapQueryError(err, op)
	}
	defer rows.Close()

	entries := []domain.TimelineEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, postgres.MapQueryError(err, op)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapQueryError(err, op)
	}

	return entries, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanEntry(row pgx.Row) (domain.TimelineEntry, error) {
	var (
		e          domain.TimelineEntry
		actionType string
		rawMeta    []byte
	)
	err := row.Scan(&e.ID, &e.Seq, &e.CaseID, &actionType, &e.Description, &e.PerformedBy, &e.PerformedAt, &rawMeta)
	if err != nil {
		return domain.TimelineEntry{}, err
	}

	e.ActionType = domain.TimelineAction(actionType)

	// metadata: JSONB -> map[string]any
	e.Metadata = domain.Metadata{}
	if len(rawMeta) > 0 {
		if err := json.Unmarshal(rawMeta, &e.Metadata); err != nil {
			return domain.TimelineEntry{}, fmt.Errorf("timeline_entry %s unmarshal metadata: %w", e.ID, err)
		}
	}

	return e, nil
}
