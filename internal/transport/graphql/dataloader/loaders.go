package dataloader

import (
	"context"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Case by ID
// ---------------------------------------------------------------------------

func newCaseBatchFn(repo caseRepo) dataloader.BatchFunc[uuid.UUID, *domain.Case] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.Case] {
		cases, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.Case](len(keys), err)
		}

		byID := make(map[uuid.UUID]*domain.Case, len(cases))
		for i := range cases {
			byID[cases[i].ID] = &cases[i]
		}

		return mapResults(keys, byID, nilValue[*domain.Case])
	}
}

// ---------------------------------------------------------------------------
// Deadlines by CaseID
// ---------------------------------------------------------------------------

func newDeadlinesBatchFn(repo deadlineRepo) dataloader.BatchFunc[uuid.UUID, []domain.Deadline] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.Deadline] {
		deadlines, err := repo.ListByCaseIDs(ctx, keys)
		if err != nil {
			return errorResults[[]domain.Deadline](len(keys), err)
		}

		grouped := make(map[uuid.UUID][]domain.Deadline, len(keys))
		for _, d := range deadlines {
			grouped[d.CaseID] = append(grouped[d.CaseID], d)
		}

		return mapResults(keys, grouped, emptySlice[domain.Deadline])
	}
}

// ---------------------------------------------------------------------------
// Timeline by CaseID
// ---------------------------------------------------------------------------

func newTimelineBatchFn(repo timelineRepo) dataloader.BatchFunc[uuid.UUID, []domain.TimelineEntry] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.TimelineEntry] {
		entries, err := repo.HistoryByCaseIDs(ctx, keys)
		if err != nil {
			return errorResults[[]domain.TimelineEntry](len(keys), err)
		}

		grouped := make(map[uuid.UUID][]domain.TimelineEntry, len(keys))
		for _, e := range entries {
			grouped[e.CaseID] = append(grouped[e.CaseID], e)
		}

		return mapResults(keys, grouped, emptySlice[domain.TimelineEntry])
	}
}

// ---------------------------------------------------------------------------
// Active assignment by CaseID
// ---------------------------------------------------------------------------

func newAssignmentBatchFn(repo assignmentRepo) dataloader.BatchFunc[uuid.UUID, *domain.Assignment] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.Assignment] {
		rows, err := repo.ActiveByCaseIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.Assignment](len(keys), err)
		}

		byCase := make(map[uuid.UUID]*domain.Assignment, len(rows))
		for i := range rows {
			byCase[rows[i].CaseID] = &rows[i]
		}

		return mapResults(keys, byCase, nilValue[*domain.Assignment])
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// errorResults returns a slice of error results for all keys.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps grouped results back to key order, using defaultFn for missing keys.
func mapResults[V any](keys []uuid.UUID, grouped map[uuid.UUID]V, defaultFn func() V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := grouped[key]; ok {
			results[i] = &dataloader.Result[V]{Data: v}
		} else {
			results[i] = &dataloader.Result[V]{Data: defaultFn()}
		}
	}
	return results
}

// emptySlice returns a non-nil empty slice.
func emptySlice[T any]() []T {
	return []T{}
}

func nilValue[T any]() T {
	var zero T
	return zero
}
