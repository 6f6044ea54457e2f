package deadline

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

var _ caseRepo = &caseRepoMock{}

type caseRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Case, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
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
