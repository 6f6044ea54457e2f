package grievance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/timeline"
)

// ChangeStatus moves a case to a new status. Closed cases reject every
// change with domain.ErrInvalidTransition; setting the current status again
// is a no-op that writes nothing.
func (s *Service) ChangeStatus(ctx context.Context, input ChangeStatusInput) (*domain.Case, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		result  *domain.Case
		changed bool
		from    domain.CaseStatus
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.cases.GetByIDForUpdate(txCtx, input.CaseID)
		if err != nil {
			return fmt.Errorf("lock case: %w", err)
		}
		result = c

		if c.Status.IsTerminal() {
			return fmt.Errorf("case %s is %s: %w", c.ID, c.Status, domain.ErrInvalidTransition)
		}
		if c.Status == input.Status {
			return nil
		}

		now := s.clock.Now()
		var resolvedAt *time.Time
		action := domain.TimelineStatusChanged
		if input.Status == domain.CaseStatusResolved {
			resolvedAt = &now
			action = domain.TimelineResolved
		}

		if err := s.cases.UpdateStatus(txCtx, c.ID, input.Status, now, resolvedAt); err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		meta := domain.Metadata{
			"from": c.Status.String(),
			"to":   input.Status.String(),
		}
		if note := trimOrNil(input.Note); note != nil {
			meta["note"] = *note
		}
		if _, err := s.timeline.Append(txCtx, timeline.AppendInput{
			CaseID:      c.ID,
			ActionType:  action,
			Description: fmt.Sprintf("Status changed from %s to %s", c.Status, input.Status),
			PerformedBy: input.PerformedBy,
			Metadata:    meta,
		}); err != nil {
			return fmt.Errorf("timeline: %w", err)
		}

		from = c.Status
		changed = true
		c.Status, c.UpdatedAt, c.ResolvedAt = input.Status, now, resolvedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.log.InfoContext(ctx, "case status changed",
			slog.String("case_id", input.CaseID.String()),
			slog.String("from", from.String()),
			slog.String("to", input.Status.String()),
		)
	}

	return result, nil
}

// GetCase returns a case by ID.
func (s *Service) GetCase(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}
	return c, nil
}
