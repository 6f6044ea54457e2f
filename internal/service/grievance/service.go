// Package grievance implements the case lifecycle: submission, status
// changes and lookup.
package grievance

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/timeline"
)

type caseRepo interface {
	Create(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CaseStatus, updatedAt time.Time, resolvedAt *time.Time) error
}

type studentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error)
}

type caseworkerRepo interface {
	CountActiveByDepartment(ctx context.Context, department string) (int, error)
}

type deadlineScheduler interface {
	ScheduleStandard(ctx context.Context, caseID uuid.UUID, priority domain.Priority, createdBy *uuid.UUID, anchor time.Time) ([]domain.Deadline, error)
}

type assigner interface {
	AutoAssign(ctx context.Context, caseID uuid.UUID, department string, requestedBy *uuid.UUID) (*domain.Assignment, error)
}

type timelineRecorder interface {
	Append(ctx context.Context, input timeline.AppendInput) (*domain.TimelineEntry, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config tunes case submission.
type Config struct {
	// AutoAssign routes new cases to the submitter's department.
	AutoAssign bool
}

// Service manages the case lifecycle.
type Service struct {
	cfg         Config
	cases       caseRepo
	students    studentRepo
	caseworkers caseworkerRepo
	deadlines   deadlineScheduler
	assigner    assigner
	timeline    timelineRecorder
	tx          txManager
	clock       domain.Clock
	log         *slog.Logger
}

// NewService creates a new Grievance service.
func NewService(
	log *slog.Logger,
	cfg Config,
	cases caseRepo,
	students studentRepo,
	caseworkers caseworkerRepo,
	deadlines deadlineScheduler,
	assigner assigner,
	timeline timelineRecorder,
	tx txManager,
	clock domain.Clock,
) *Service {
	return &Service{
		cfg:         cfg,
		cases:       cases,
		students:    students,
		caseworkers: caseworkers,
		deadlines:   deadlines,
		assigner:    assigner,
		timeline:    timeline,
		tx:          tx,
		clock:       clock,
		log:         log.With("service", "grievance"),
	}
}
