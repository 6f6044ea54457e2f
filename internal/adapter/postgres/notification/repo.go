// Package notification implements the notification outbox using PostgreSQL.
// The engine only enqueues; a separate delivery process marks rows sent.
package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/grievance-backend/internal/adapter/postgres"
	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// Repo provides outbox persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.Querier
	now func() time.Time
}

// New creates a new notification outbox.
func New(db postgres.Querier, clock domain.Clock) *Repo {
	return &Repo{db: db, now: clock.Now}
}

const insertNotificationSQL = `
INSERT INTO notifications (id, recipient, body, case_id, created_at)
VALUES ($1, $2, $3, $4, $5)`

// Notify enqueues a message for recipient. caseID may be uuid.Nil when the
// message is not about a specific case.
func (r *Repo) Notify(ctx context.Context, recipient, text string, caseID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	id := uuid.New()
	var casePtr *uuid.UUID
	if caseID != uuid.Nil {
		casePtr = &caseID
	}

	if _, err := q.Exec(ctx, insertNotificationSQL, id, recipient, text, casePtr, r.now()); err != nil {
		return postgres.MapError(err, "notification", id)
	}
	return nil
}
