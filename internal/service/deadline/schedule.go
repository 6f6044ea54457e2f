package deadline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/timeline"
)

// ScheduleStandard creates the INITIAL_RESPONSE, INVESTIGATION and RESOLUTION
// deadlines for a case from its priority, anchored at anchor. The three rows
// and their DEADLINE_SET timeline entry are written all-or-nothing; when ctx
// already carries a transaction they join it.
func (s *Service) ScheduleStandard(ctx context.Context, caseID uuid.UUID, priority domain.Priority, createdBy *uuid.UUID, anchor time.Time) ([]domain.Deadline, error) {
	if caseID == uuid.Nil {
		return nil, domain.NewValidationError("case_id", "required")
	}

	now := s.clock.Now()
	offsets := PolicyFor(priority)

	deadlines := make([]domain.Deadline, 0, 3)
	due := make(domain.Metadata, 3)
	for _, k := range offsets.kinds() {
		d := domain.Deadline{
			ID:        uuid.New(),
			CaseID:    caseID,
			Kind:      k.kind,
			DueAt:     anchor.Add(k.offset),
			CreatedBy: createdBy,
			CreatedAt: now,
		}
		deadlines = append(deadlines, d)
		due[k.kind.String()] = d.DueAt.UTC().Format(time.RFC3339)
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.deadlines.CreateBatch(txCtx, deadlines); err != nil {
			return fmt.Errorf("create deadlines: %w", err)
		}

		if _, err := s.timeline.Append(txCtx, timeline.AppendInput{
			CaseID:      caseID,
			ActionType:  domain.TimelineDeadlineSet,
			Description: fmt.Sprintf("Standard deadlines set for %s priority", priority.OrDefault()),
			PerformedBy: createdBy,
			Metadata: domain.Metadata{
				"priority":  priority.OrDefault().String(),
				"deadlines": due,
			},
		}); err != nil {
			return fmt.Errorf("timeline: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "standard deadlines scheduled",
		slog.String("case_id", caseID.String()),
		slog.String("priority", priority.OrDefault().String()),
	)

	return deadlines, nil
}

// AddCustom creates a CUSTOM deadline on an open case.
func (s *Service) AddCustom(ctx context.Context, input AddCustomInput) (*domain.Deadline, error) {
	now := s.clock.Now()
	if err := input.Validate(now); err != nil {
		return nil, err
	}

	d := domain.Deadline{
		ID:        uuid.New(),
		CaseID:    input.CaseID,
		Kind:      domain.DeadlineKindCustom,
		DueAt:     input.DueAt,
		CreatedBy: input.CreatedBy,
		CreatedAt: now,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.cases.GetByID(txCtx, input.CaseID)
		if err != nil {
			return fmt.Errorf("get case: %w", err)
		}
		if c.Status.IsTerminal() {
			return fmt.Errorf("case %s is %s: %w", c.ID, c.Status, domain.ErrInvalidTransition)
		}

		if err := s.deadlines.CreateBatch(txCtx, []domain.Deadline{d}); err != nil {
			return fmt.Errorf("create deadline: %w", err)
		}

		if _, err := s.timeline.Append(txCtx, timeline.AppendInput{
			CaseID:      input.CaseID,
			ActionType:  domain.TimelineDeadlineSet,
			Description: "Custom deadline set",
			PerformedBy: input.CreatedBy,
			Metadata: domain.Metadata{
				"deadline_id": d.ID.String(),
				"kind":        d.Kind.String(),
				"due_at":      d.DueAt.UTC().Format(time.RFC3339),
			},
		}); err != nil {
			return fmt.Errorf("timeline: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "custom deadline added",
		slog.String("case_id", input.CaseID.String()),
		slog.String("deadline_id", d.ID.String()),
	)

	return &d, nil
}

// MarkMet records that a deadline was met. Marking an already-met deadline
// is a no-op and keeps the original met_at.
func (s *Service) MarkMet(ctx context.Context, deadlineID uuid.UUID) (*domain.Deadline, error) {
	if deadlineID == uuid.Nil {
		return nil, domain.NewValidationError("deadline_id", "required")
	}

	changed, err := s.deadlines.MarkMet(ctx, deadlineID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("mark deadline met: %w", err)
	}

	d, err := s.deadlines.GetByID(ctx, deadlineID)
	if err != nil {
		return nil, fmt.Errorf("get deadline: %w", err)
	}

	if changed {
		s.log.InfoContext(ctx, "deadline met",
			slog.String("deadline_id", deadlineID.String()),
			slog.String("case_id", d.CaseID.String()),
			slog.String("kind", d.Kind.String()),
		)
	}

	return d, nil
}
