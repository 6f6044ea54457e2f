// Package student reads submitter records. Students are owned by the identity
// domain; this repository never writes them.
package student

import (
	"context"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/grievance-backend/internal/adapter/postgres"
	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// Repo provides read-only student lookups backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new student repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const getStudentSQL = `SELECT id, user_ref, department FROM students WHERE id = $1`

// GetByID returns a student by primary key.
// Returns domain.ErrNotFound if the student does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var s domain.Student
	if err := q.QueryRow(ctx, getStudentSQL, id).Scan(&s.ID, &s.UserRef, &s.Department); err != nil {
		return nil, postgres.MapError(err, "student", id)
	}
	return &s, nil
}
