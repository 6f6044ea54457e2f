package grievance

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

var _ caseRepo = &caseRepoMock{}

type caseRepoMock struct {
	CreateFunc           func(ctx context.Context, c *domain.Case) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	GetByIDForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	UpdateStatusFunc     func(ctx context.Context, id uuid.UUID, status domain.CaseStatus, updatedAt time.Time, resolvedAt *time.Time) error

	calls struct {
		Create []struct {
			Ctx context.Context
			C   *domain.Case
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetByIDForUpdate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		UpdateStatus []struct {
			Ctx        context.Context
			Id         uuid.UUID
			Status     domain.CaseStatus
			UpdatedAt  time.Time
			ResolvedAt *time.Time
		}
	}
	lockCreate           sync.RWMutex
	lockGetByID          sync.RWMutex
	lockGetByIDForUpdate sync.RWMutex
	lockUpdateStatus     sync.RWMutex
}

func (mock *caseRepoMock) Create(ctx context.Context, c *domain.Case) error {
	if mock.CreateFunc == nil {
		panic("caseRepoMock.CreateFunc: method is nil but caseRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.Case
	}{Ctx: ctx, C: c}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *caseRepoMock) CreateCalls() []struct {
	Ctx context.Context
	C   *domain.Case
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *caseRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	if mock.GetByIDFunc == nil {
		panic("caseRepoMock.GetByIDFunc: method is nil but caseRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *caseRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *caseRepoMock) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("caseRepoMock.GetByIDForUpdateFunc: method is nil but caseRepo.GetByIDForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetByIDForUpdate.Lock()
	mock.calls.GetByIDForUpdate = append(mock.calls.GetByIDForUpdate, callInfo)
	mock.lockGetByIDForUpdate.Unlock()
	return mock.GetByIDForUpdateFunc(ctx, id)
}

func (mock *caseRepoMock) GetByIDForUpdateCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByIDForUpdate.RLock()
	calls := mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *caseRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CaseStatus, updatedAt time.Time, resolvedAt *time.Time) error {
	if mock.UpdateStatusFunc == nil {
		panic("caseRepoMock.UpdateStatusFunc: method is nil but caseRepo.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		Id         uuid.UUID
		Status     domain.CaseStatus
		UpdatedAt  time.Time
		ResolvedAt *time.Time
	}{Ctx: ctx, Id: id, Status: status, UpdatedAt: updatedAt, ResolvedAt: resolvedAt}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, id, status, updatedAt, resolvedAt)
}

func (mock *caseRepoMock) UpdateStatusCalls() []struct {
	Ctx        context.Context
	Id         uuid.UUID
	Status     domain.CaseStatus
	UpdatedAt  time.Time
	ResolvedAt *time.Time
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}
