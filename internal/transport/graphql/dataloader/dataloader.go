// Package dataloader provides per-request DataLoaders that batch the
// per-case lookups of a GraphQL query into one SQL call per relation.
// Loaders call repositories directly, bypassing the service layer; the
// GraphQL endpoint is only reachable by staff.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// ---------------------------------------------------------------------------
// Repository interfaces (consumer-defined)
// ---------------------------------------------------------------------------

type caseRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Case, error)
}

type deadlineRepo interface {
	ListByCaseIDs(ctx context.Context, caseIDs []uuid.UUID) ([]domain.Deadline, error)
}

type timelineRepo interface {
	HistoryByCaseIDs(ctx context.Context, caseIDs []uuid.UUID) ([]domain.TimelineEntry, error)
}

type assignmentRepo interface {
	ActiveByCaseIDs(ctx context.Context, caseIDs []uuid.UUID) ([]domain.Assignment, error)
}

// Repos holds all repositories required by DataLoaders.
type Repos struct {
	Case       caseRepo
	Deadline   deadlineRepo
	Timeline   timelineRepo
	Assignment assignmentRepo
}

// Loaders contains the per-request DataLoaders. Created via NewLoaders.
type Loaders struct {
	CaseByID           *dataloader.Loader[uuid.UUID, *domain.Case]
	DeadlinesByCaseID  *dataloader.Loader[uuid.UUID, []domain.Deadline]
	TimelineByCaseID   *dataloader.Loader[uuid.UUID, []domain.TimelineEntry]
	AssignmentByCaseID *dataloader.Loader[uuid.UUID, *domain.Assignment]
}

// NewLoaders creates a new set of DataLoaders backed by the given repositories.
// Must be called per-request (loaders cache results within a single request).
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		CaseByID:           newLoader(newCaseBatchFn(repos.Case)),
		DeadlinesByCaseID:  newLoader(newDeadlinesBatchFn(repos.Deadline)),
		TimelineByCaseID:   newLoader(newTimelineBatchFn(repos.Timeline)),
		AssignmentByCaseID: newLoader(newAssignmentBatchFn(repos.Assignment)),
	}
}

func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (the middleware is missing).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is the middleware configured?")
	}
	return l
}
