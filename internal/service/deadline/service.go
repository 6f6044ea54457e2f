// Package deadline derives and tracks the time-bound targets of a case.
package deadline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/timeline"
)

type deadlineRepo interface {
	CreateBatch(ctx context.Context, deadlines []domain.Deadline) error
	MarkMet(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deadline, error)
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Deadline, error)
	Overdue(ctx context.Context, caseworkerID uuid.UUID, now time.Time) ([]domain.DeadlineView, error)
	Upcoming(ctx context.Context, caseworkerID uuid.UUID, now, until time.Time) ([]domain.DeadlineView, error)
}

type caseRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error)
}

type timelineRecorder interface {
	Append(ctx context.Context, input timeline.AppendInput) (*domain.TimelineEntry, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service is the deadline scheduler.
type Service struct {
	deadlines deadlineRepo
	cases     caseRepo
	timeline  timelineRecorder
	tx        txManager
	clock     domain.Clock
	log       *slog.Logger
}

// NewService creates a new Deadline service.
func NewService(
	log *slog.Logger,
	deadlines deadlineRepo,
	cases caseRepo,
	timeline timelineRecorder,
	tx txManager,
	clock domain.Clock,
) *Service {
	return &Service{
		deadlines: deadlines,
		cases:     cases,
		timeline:  timeline,
		tx:        tx,
		clock:     clock,
		log:       log.With("service", "deadline"),
	}
}
