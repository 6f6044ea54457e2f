package workload

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

var _ workloadRepo = &workloadRepoMock{}

type workloadRepoMock struct {
	GetFunc func(ctx context.Context, caseworkerID uuid.UUID) (domain.WorkloadSummary, error)

	calls struct {
		Get []struct {
			Ctx          context.Context
			CaseworkerID uuid.UUID
		}
	}
	lockGet sync.RWMutex
}

func (mock *workloadRepoMock) Get(ctx context.Context, caseworkerID uuid.UUID) (domain.WorkloadSummary, error) {
	if mock.GetFunc == nil {
		panic("workloadRepoMock.GetFunc: method is nil but workloadRepo.Get was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		CaseworkerID uuid.UUID
	}{Ctx: ctx, CaseworkerID: caseworkerID}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, caseworkerID)
}

func (mock *workloadRepoMock) GetCalls() []struct {
	Ctx          context.Context
	CaseworkerID uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}
