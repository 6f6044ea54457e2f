package assignment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/timeline"
)

// Assign picks the least-loaded caseworker with spare capacity from the pool
// and assigns the case to them, replacing any prior active assignment.
//
// Returns domain.ErrNoCandidates when the pool is empty and
// domain.ErrAllAtCapacity when nobody in it has room.
func (s *Service) Assign(ctx context.Context, input AssignInput) (*domain.Assignment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	chosen, err := s.pick(ctx, input.Pool)
	if err != nil {
		return nil, err
	}

	a, prev, err := s.persist(ctx, input.CaseID, chosen.CaseworkerID, input.RequestedBy, trimOrNil(input.Note), "balanced")
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "case assigned",
		slog.String("case_id", input.CaseID.String()),
		slog.String("caseworker_id", chosen.CaseworkerID.String()),
		slog.Int("active_cases", chosen.ActiveCases),
		slog.Int("pool_size", len(input.Pool)),
		slog.Bool("reassigned", prev != nil),
	)

	return a, nil
}

// AutoAssign runs Assign with the active caseworkers of a department as the pool.
func (s *Service) AutoAssign(ctx context.Context, caseID uuid.UUID, department string, requestedBy *uuid.UUID) (*domain.Assignment, error) {
	department = strings.TrimSpace(department)
	if department == "" {
		return nil, domain.NewValidationError("department", "required")
	}

	pool, err := s.caseworkers.ListActiveByDepartment(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("list caseworkers: %w", err)
	}

	a, err := s.Assign(ctx, AssignInput{CaseID: caseID, Pool: pool, RequestedBy: requestedBy})
	if err != nil {
		return nil, fmt.Errorf("auto-assign to %s: %w", department, err)
	}
	return a, nil
}

// AssignTo assigns a case to a specific caseworker. The caseworker must be
// active; capacity is not enforced for explicit assignments.
func (s *Service) AssignTo(ctx context.Context, input ManualAssignInput) (*domain.Assignment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	cw, err := s.caseworkers.GetByID(ctx, input.CaseworkerID)
	if err != nil {
		return nil, fmt.Errorf("get caseworker: %w", err)
	}
	if !cw.Active {
		return nil, domain.NewValidationError("caseworker_id", "caseworker is inactive")
	}

	a, prev, err := s.persist(ctx, input.CaseID, cw.ID, input.AssignedBy, trimOrNil(input.Note), "manual")
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "case assigned manually",
		slog.String("case_id", input.CaseID.String()),
		slog.String("caseworker_id", cw.ID.String()),
		slog.Bool("reassigned", prev != nil),
	)

	return a, nil
}

// Active returns the active assignment of a case.
// Returns domain.ErrNotFound when the case is unassigned.
func (s *Service) Active(ctx context.Context, caseID uuid.UUID) (*domain.Assignment, error) {
	a, err := s.assignments.GetActive(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("get active assignment: %w", err)
	}
	return a, nil
}

// History returns every assignment a case has had, oldest first.
func (s *Service) History(ctx context.Context, caseID uuid.UUID) ([]domain.Assignment, error) {
	list, err := s.assignments.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return list, nil
}

// pick returns the workload of the caseworker to assign.
func (s *Service) pick(ctx context.Context, pool []domain.Caseworker) (domain.WorkloadSummary, error) {
	ids := make([]uuid.UUID, 0, len(pool))
	for _, cw := range pool {
		if cw.Active {
			ids = append(ids, cw.ID)
		}
	}
	if len(ids) == 0 {
		return domain.WorkloadSummary{}, domain.ErrNoCandidates
	}

	loads, err := s.workload.ForPool(ctx, ids)
	if err != nil {
		return domain.WorkloadSummary{}, fmt.Errorf("compute workload: %w", err)
	}
	// Everyone in the pool may have been removed since it was listed.
	if len(loads) == 0 {
		return domain.WorkloadSummary{}, domain.ErrNoCandidates
	}

	candidates := make([]domain.WorkloadSummary, 0, len(loads))
	for _, w := range loads {
		if w.HasCapacity() {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return domain.WorkloadSummary{}, domain.ErrAllAtCapacity
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].ActiveCases != candidates[j].ActiveCases {
			return candidates[i].ActiveCases < candidates[j].ActiveCases
		}
		return bytes.Compare(candidates[i].CaseworkerID[:], candidates[j].CaseworkerID[:]) < 0
	})

	return candidates[0], nil
}

// persist writes the assignment in one transaction: lock the case,
// deactivate the previous assignment, insert the new one and record it on
// the timeline. It returns the caseworker previously assigned, if any.
func (s *Service) persist(ctx context.Context, caseID, caseworkerID uuid.UUID, by *uuid.UUID, note *string, mode string) (*domain.Assignment, *uuid.UUID, error) {
	a := &domain.Assignment{
		ID:           uuid.New(),
		CaseID:       caseID,
		CaseworkerID: caseworkerID,
		AssignedAt:   s.clock.Now(),
		AssignedBy:   by,
		Note:         note,
	}

	var prev *uuid.UUID
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.cases.GetByIDForUpdate(txCtx, caseID)
		if err != nil {
			return fmt.Errorf("lock case: %w", err)
		}
		if c.Status.IsTerminal() {
			return fmt.Errorf("case %s is %s: %w", caseID, c.Status, domain.ErrInvalidTransition)
		}

		prev, err = s.assignments.DeactivateActive(txCtx, caseID)
		if err != nil {
			return fmt.Errorf("deactivate assignment: %w", err)
		}

		if err := s.assignments.Create(txCtx, a); err != nil {
			return fmt.Errorf("create assignment: %w", err)
		}

		meta := domain.Metadata{
			"assignment_id": a.ID.String(),
			"caseworker_id": caseworkerID.String(),
			"mode":          mode,
		}
		if prev != nil {
			meta["previous_caseworker_id"] = prev.String()
		}
		if _, err := s.timeline.Append(txCtx, timeline.AppendInput{
			CaseID:      caseID,
			ActionType:  domain.TimelineAssigned,
			Description: describeAssignment(prev, caseworkerID),
			PerformedBy: by,
			Metadata:    meta,
		}); err != nil {
			return fmt.Errorf("timeline: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return a, prev, nil
}

func describeAssignment(prev *uuid.UUID, next uuid.UUID) string {
	if prev == nil {
		return fmt.Sprintf("Assigned to caseworker %s", next)
	}
	if *prev == next {
		return fmt.Sprintf("Assignment to caseworker %s renewed", next)
	}
	return fmt.Sprintf("Reassigned from caseworker %s to %s", *prev, next)
}

// IsRoutingFailure reports whether err means no caseworker could take the case.
func IsRoutingFailure(err error) bool {
	return errors.Is(err, domain.ErrNoCandidates) || errors.Is(err, domain.ErrAllAtCapacity)
}
