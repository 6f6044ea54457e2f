package assignment

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

var _ assignmentRepo = &assignmentRepoMock{}

type assignmentRepoMock struct {
	DeactivateActiveFunc func(ctx context.Context, caseID uuid.UUID) (*uuid.UUID, error)
	CreateFunc           func(ctx context.Context, a *domain.Assignment) error
	GetActiveFunc        func(ctx context.Context, caseID uuid.UUID) (*domain.Assignment, error)
	ListByCaseFunc       func(ctx context.Context, caseID uuid.UUID) ([]domain.Assignment, error)

	calls struct {
		DeactivateActive []struct {
			Ctx    context.Context
			CaseID uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			A   *domain.Assignment
		}
		GetActive []struct {
			Ctx    context.Context
			CaseID uuid.UUID
		}
		ListByCase []struct {
			Ctx    context.Context
			CaseID uuid.UUID
		}
	}
	lockDeactivateActive sync.RWMutex
	lockCreate           sync.RWMutex
	lockGetActive        sync.RWMutex
	lockListByCase       sync.RWMutex
}

func (mock *assignmentRepoMock) DeactivateActive(ctx context.Context, caseID uuid.UUID) (*uuid.UUID, error) {
	if mock.DeactivateActiveFunc == nil {
		panic("assignmentRepoMock.DeactivateActiveFunc: method is nil but assignmentRepo.DeactivateActive was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		CaseID uuid.UUID
	}{Ctx: ctx, CaseID: caseID}
	mock.lockDeactivateActive.Lock()
	mock.calls.DeactivateActive = append(mock.calls.DeactivateActive, callInfo)
	mock.lockDeactivateActive.Unlock()
	return mock.DeactivateActiveFunc(ctx, caseID)
}

func (mock *assignmentRepoMock) DeactivateActiveCalls() []struct {
	Ctx    context.Context
	CaseID uuid.UUID
} {
	mock.lockDeactivateActive.RLock()
	calls := mock.calls.DeactivateActive
	mock.lockDeactivateActive.RUnlock()
	return calls
}

func (mock *assignmentRepoMock) Create(ctx context.Context, a *domain.Assignment) error {
	if mock.CreateFunc == nil {
		panic("assignmentRepoMock.CreateFunc: method is nil but assignmentRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   *domain.Assignment
	}{Ctx: ctx, A: a}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *assignmentRepoMock) CreateCalls() []struct {
	Ctx context.Context
	A   *domain.Assignment
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *assignmentRepoMock) GetActive(ctx context.Context, caseID uuid.UUID) (*domain.Assignment, error) {
	if mock.GetActiveFunc == nil {
		panic("assignmentRepoMock.GetActiveFunc: method is nil but assignmentRepo.GetActive was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		CaseID uuid.UUID
	}{Ctx: ctx, CaseID: caseID}
	mock.lockGetActive.Lock()
	mock.calls.GetActive = append(mock.calls.GetActive, callInfo)
	mock.lockGetActive.Unlock()
	return mock.GetActiveFunc(ctx, caseID)
}

func (mock *assignmentRepoMock) GetActiveCalls() []struct {
	Ctx    context.Context
	CaseID uuid.UUID
} {
	mock.lockGetActive.RLock()
	calls := mock.calls.GetActive
	mock.lockGetActive.RUnlock()
	return calls
}

func (mock *assignmentRepoMock) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Assignment, error) {
	if mock.ListByCaseFunc == nil {
		panic("assignmentRepoMock.ListByCaseFunc: method is nil but assignmentRepo.ListByCase was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		CaseID uuid.UUID
	}{Ctx: ctx, CaseID: caseID}
	mock.lockListByCase.Lock()
	mock.calls.ListByCase = append(mock.calls.ListByCase, callInfo)
	mock.lockListByCase.Unlock()
	return mock.ListByCaseFunc(ctx, caseID)
}

func (mock *assignmentRepoMock) ListByCaseCalls() []struct {
	Ctx    context.Context
	CaseID uuid.UUID
} {
	mock.lockListByCase.RLock()
	calls := mock.calls.ListByCase
	mock.lockListByCase.RUnlock()
	return calls
}
