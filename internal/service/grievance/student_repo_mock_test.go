package grievance

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

var _ studentRepo = &studentRepoMock{}

type studentRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Student, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *studentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	if mock.GetByIDFunc == nil {
		panic("studentRepoMock.GetByIDFunc: method is nil but studentRepo.GetByID was just called")
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

func (mock *studentRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
