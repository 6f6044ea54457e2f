package deadline

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

const (
	DefaultUpcomingDays = 7
	MaxUpcomingDays     = 90
)

// AddCustomInput holds the parameters for an ad-hoc deadline.
type AddCustomInput struct {
	CaseID    uuid.UUID
	DueAt     time.Time
	CreatedBy *uuid.UUID
}

// Validate checks all fields and collects all errors. now is the reference
// time for rejecting due dates in the past.
func (i AddCustomInput) Validate(now time.Time) error {
	var errs []domain.FieldError

	if i.CaseID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "case_id", Message: "required"})
	}
	if i.DueAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "due_at", Message: "required"})
	} else if !i.DueAt.After(now) {
		errs = append(errs, domain.FieldError{Field: "due_at", Message: "must be in the future"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
