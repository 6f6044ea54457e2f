// Package timeline records and reads the append-only case activity log.
package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

type timelineRepo interface {
	Append(ctx context.Context, e *domain.TimelineEntry) error
	History(ctx context.Context, caseID uuid.UUID) ([]domain.TimelineEntry, error)
	Recent(ctx context.Context, limit int) ([]domain.TimelineEntry, error)
	LastActivityAt(ctx context.Context, caseID uuid.UUID) (*time.Time, error)
}

type caseRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error)
}

const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 200
)

// Service is the timeline recorder.
type Service struct {
	entries timelineRepo
	cases   caseRepo
	clock   domain.Clock
	log     *slog.Logger
}

// NewService creates a new Timeline service.
func NewService(log *slog.Logger, entries timelineRepo, cases caseRepo, clock domain.Clock) *Service {
	return &Service{
		entries: entries,
		cases:   cases,
		clock:   clock,
		log:     log.With("service", "timeline"),
	}
}

// AppendInput describes one lifecycle event.
type AppendInput struct {
	CaseID      uuid.UUID
	ActionType  domain.TimelineAction
	Description string
	PerformedBy *uuid.UUID // nil = system
	Metadata    domain.Metadata
}

// Validate checks all fields and collects all errors.
func (i AppendInput) Validate() error {
	var errs []domain.FieldError

	if i.CaseID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "case_id", Message: "required"})
	}
	if !i.ActionType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action_type", Message: "invalid value"})
	}
	if strings.TrimSpace(i.Description) == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Append records an entry. performed_at never goes backwards within a case:
// if the clock reads earlier than the newest entry, the newest entry's time
// is reused and seq keeps the order. Run it inside the transaction of the
// change it describes.
func (s *Service) Append(ctx context.Context, input AppendInput) (*domain.TimelineEntry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	last, err := s.entries.LastActivityAt(ctx, input.CaseID)
	if err != nil {
		return nil, fmt.Errorf("last activity: %w", err)
	}
	if last != nil && last.After(now) {
		now = *last
	}

	entry := &domain.TimelineEntry{
		ID:          uuid.New(),
		CaseID:      input.CaseID,
		ActionType:  input.ActionType,
		Description: strings.TrimSpace(input.Description),
		PerformedBy: input.PerformedBy,
		PerformedAt: now,
		Metadata:    input.Metadata,
	}
	if err := s.entries.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append timeline entry: %w", err)
	}

	s.log.DebugContext(ctx, "timeline entry appended",
		slog.String("case_id", input.CaseID.String()),
		slog.String("action_type", input.ActionType.String()),
	)

	return entry, nil
}

// History returns every entry of a case in ascending order.
// Returns domain.ErrNotFound if the case does not exist.
func (s *Service) History(ctx context.Context, caseID uuid.UUID) ([]domain.TimelineEntry, error) {
	if _, err := s.cases.GetByID(ctx, caseID); err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}

	entries, err := s.entries.History(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("timeline history: %w", err)
	}
	return entries, nil
}

// RecentActivity returns the newest entries across all cases. limit <= 0
// uses DefaultRecentLimit; larger values are capped at MaxRecentLimit.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]domain.TimelineEntry, error) {
	switch {
	case limit <= 0:
		limit = DefaultRecentLimit
	case limit > MaxRecentLimit:
		limit = MaxRecentLimit
	}

	entries, err := s.entries.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	return entries, nil
}

// TimeSinceLastActivity returns how long the case has been quiet: measured
// from its newest timeline entry, or from submission if it has none.
func (s *Service) TimeSinceLastActivity(ctx context.Context, caseID uuid.UUID) (time.Duration, error) {
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return 0, fmt.Errorf("get case: %w", err)
	}

	last, err := s.entries.LastActivityAt(ctx, caseID)
	if err != nil {
		return 0, fmt.Errorf("last activity: %w", err)
	}

	return s.clock.Now().Sub(domain.LastActivityAt(last, c.SubmittedAt)), nil
}
