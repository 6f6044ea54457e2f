// Package workload reports caseworker load against capacity.
package workload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

type workloadRepo interface {
	Get(ctx context.Context, caseworkerID uuid.UUID) (domain.WorkloadSummary, error)
}

// maxFanOut bounds concurrent workload lookups per pool.
const maxFanOut = 8

// Service computes workload summaries.
type Service struct {
	repo workloadRepo
	log  *slog.Logger
}

// NewService creates a new Workload service.
func NewService(log *slog.Logger, repo workloadRepo) *Service {
	return &Service{
		repo: repo,
		log:  log.With("service", "workload"),
	}
}

// Current returns the workload of one caseworker.
func (s *Service) Current(ctx context.Context, caseworkerID uuid.UUID) (domain.WorkloadSummary, error) {
	if caseworkerID == uuid.Nil {
		return domain.WorkloadSummary{}, domain.NewValidationError("caseworker_id", "required")
	}

	w, err := s.repo.Get(ctx, caseworkerID)
	if err != nil {
		return domain.WorkloadSummary{}, fmt.Errorf("get workload: %w", err)
	}
	return w, nil
}

// ForPool looks up every caseworker's workload concurrently and returns the
// summaries keyed by caseworker. The first store error cancels the remaining
// lookups and is returned. A caseworker that no longer exists is left out of
// the result rather than failing the whole pool.
func (s *Service) ForPool(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.WorkloadSummary, error) {
	result := make(map[uuid.UUID]domain.WorkloadSummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var (
		mu      sync.Mutex
		skipped []uuid.UUID
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxFanOut)

	for _, id := range ids {
		g.Go(func() error {
			w, err := s.repo.Get(gctx, id)
			if errors.Is(err, domain.ErrNotFound) {
				mu.Lock()
				skipped = append(skipped, id)
				mu.Unlock()
				return nil
			}
			if err != nil {
				return fmt.Errorf("workload for caseworker %s: %w", id, err)
			}

			mu.Lock()
			result[id] = w
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(skipped) > 0 {
		s.log.WarnContext(ctx, "caseworkers vanished during workload lookup",
			slog.Int("skipped", len(skipped)),
			slog.Int("pool_size", len(ids)),
		)
	}

	return result, nil
}
