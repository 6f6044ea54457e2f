// Package assignment routes cases to caseworkers by workload.
package assignment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/timeline"
)

type caseRepo interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Case, error)
}

type caseworkerRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Caseworker, error)
	ListActiveByDepartment(ctx context.Context, department string) ([]domain.Caseworker, error)
}

type assignmentRepo interface {
	DeactivateActive(ctx context.Context, caseID uuid.UUID) (*uuid.UUID, error)
	Create(ctx context.Context, a *domain.Assignment) error
	GetActive(ctx context.Context, caseID uuid.UUID) (*domain.Assignment, error)
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Assignment, error)
}

type workloadTracker interface {
	ForPool(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.WorkloadSummary, error)
}

type timelineRecorder interface {
	Append(ctx context.Context, input timeline.AppendInput) (*domain.TimelineEntry, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service is the assignment balancer.
type Service struct {
	cases       caseRepo
	caseworkers caseworkerRepo
	assignments assignmentRepo
	workload    workloadTracker
	timeline    timelineRecorder
	tx          txManager
	clock       domain.Clock
	log         *slog.Logger
}

// NewService creates a new Assignment service.
func NewService(
	log *slog.Logger,
	cases caseRepo,
	caseworkers caseworkerRepo,
	assignments assignmentRepo,
	workload workloadTracker,
	timeline timelineRecorder,
	tx txManager,
	clock domain.Clock,
) *Service {
	return &Service{
		cases:       cases,
		caseworkers: caseworkers,
		assignments: assignments,
		workload:    workload,
		timeline:    timeline,
		tx:          tx,
		clock:       clock,
		log:         log.With("service", "assignment"),
	}
}
