package assignment

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

var _ caseRepo = &caseRepoMock{}

type caseRepoMock struct {
	GetByIDForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Case, error)

	calls struct {
		GetByIDForUpdate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockGetByIDForUpdate sync.RWMutex
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
