package deadline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// ListByCase returns every deadline of a case ordered by due date.
func (s *Service) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Deadline, error) {
	if _, err := s.cases.GetByID(ctx, caseID); err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}

	list, err := s.deadlines.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("list deadlines: %w", err)
	}
	return list, nil
}

// Overdue returns the unmet past-due deadlines of the caseworker's active cases.
func (s *Service) Overdue(ctx context.Context, caseworkerID uuid.UUID) ([]domain.DeadlineView, error) {
	if caseworkerID == uuid.Nil {
		return nil, domain.NewValidationError("caseworker_id", "required")
	}

	views, err := s.deadlines.Overdue(ctx, caseworkerID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("overdue deadlines: %w", err)
	}
	return views, nil
}

// Upcoming returns unmet deadlines of the caseworker's active cases falling
// due within the next withinDays days. Zero means DefaultUpcomingDays.
func (s *Service) Upcoming(ctx context.Context, caseworkerID uuid.UUID, withinDays int) ([]domain.DeadlineView, error) {
	var errs []domain.FieldError
	if caseworkerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "caseworker_id", Message: "required"})
	}
	if withinDays == 0 {
		withinDays = DefaultUpcomingDays
	}
	if withinDays < 0 || withinDays > MaxUpcomingDays {
		errs = append(errs, domain.FieldError{Field: "days", Message: fmt.Sprintf("must be between 1 and %d", MaxUpcomingDays)})
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	now := s.clock.Now()
	views, err := s.deadlines.Upcoming(ctx, caseworkerID, now, now.Add(time.Duration(withinDays)*24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("upcoming deadlines: %w", err)
	}
	return views, nil
}
