package grievance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/assignment"
	"github.com/heartmarshall/grievance-backend/internal/service/timeline"
)

// CreateCase submits a case. The case, its CREATED timeline entry and its
// standard deadlines are written in one transaction. Auto-assignment runs
// afterwards and its failure leaves the case unassigned without failing
// creation.
func (s *Service) CreateCase(ctx context.Context, input CreateCaseInput) (*CreateCaseResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	student, err := s.students.GetByID(ctx, input.SubmitterID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("submitter_id", "student not found")
		}
		return nil, fmt.Errorf("get submitter: %w", err)
	}

	now := s.clock.Now()
	c := &domain.Case{
		ID:          uuid.New(),
		Category:    strings.TrimSpace(input.Category),
		Subcategory: trimOrNil(input.Subcategory),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.CaseStatusSubmitted,
		Priority:    input.Priority.OrDefault(),
		SubmitterID: student.ID,
		SubmittedAt: now,
		UpdatedAt:   now,
	}

	var deadlines []domain.Deadline
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.cases.Create(txCtx, c); err != nil {
			return fmt.Errorf("create case: %w", err)
		}

		if _, err := s.timeline.Append(txCtx, timeline.AppendInput{
			CaseID:      c.ID,
			ActionType:  domain.TimelineCreated,
			Description: fmt.Sprintf("Case submitted: %s", c.Category),
			PerformedBy: input.PerformedBy,
			Metadata: domain.Metadata{
				"category": c.Category,
				"priority": c.Priority.String(),
			},
		}); err != nil {
			return fmt.Errorf("timeline: %w", err)
		}

		var err error
		deadlines, err = s.deadlines.ScheduleStandard(txCtx, c.ID, c.Priority, nil, c.SubmittedAt)
		if err != nil {
			return fmt.Errorf("schedule deadlines: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "case created",
		slog.String("case_id", c.ID.String()),
		slog.String("category", c.Category),
		slog.String("priority", c.Priority.String()),
	)

	return &CreateCaseResult{
		Case:       c,
		Deadlines:  deadlines,
		Assignment: s.autoAssign(ctx, c, student.Department),
	}, nil
}

// autoAssign routes the new case to the submitter's department when it has
// active caseworkers. Every failure is logged and leaves the case unassigned.
func (s *Service) autoAssign(ctx context.Context, c *domain.Case, department string) *domain.Assignment {
	if !s.cfg.AutoAssign || strings.TrimSpace(department) == "" {
		return nil
	}

	n, err := s.caseworkers.CountActiveByDepartment(ctx, department)
	if err != nil {
		s.log.WarnContext(ctx, "auto-assign skipped",
			slog.String("case_id", c.ID.String()),
			slog.String("department", department),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if n == 0 {
		s.log.InfoContext(ctx, "no caseworkers in department, case left unassigned",
			slog.String("case_id", c.ID.String()),
			slog.String("department", department),
		)
		return nil
	}

	a, err := s.assigner.AutoAssign(ctx, c.ID, department, nil)
	if err != nil {
		level := slog.LevelWarn
		if assignment.IsRoutingFailure(err) {
			level = slog.LevelInfo
		}
		s.log.Log(ctx, level, "auto-assign failed, case left unassigned",
			slog.String("case_id", c.ID.String()),
			slog.String("department", department),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return a
}
