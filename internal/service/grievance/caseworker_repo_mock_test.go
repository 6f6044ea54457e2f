package grievance

import (
	"context"
	"sync"
)

var _ caseworkerRepo = &caseworkerRepoMock{}

type caseworkerRepoMock struct {
	CountActiveByDepartmentFunc func(ctx context.Context, department string) (int, error)

	calls struct {
		CountActiveByDepartment []struct {
			Ctx        context.Context
			Department string
		}
	}
	lockCountActiveByDepartment sync.RWMutex
}

func (mock *caseworkerRepoMock) CountActiveByDepartment(ctx context.Context, department string) (int, error) {
	if mock.CountActiveByDepartmentFunc == nil {
		panic("caseworkerRepoMock.CountActiveByDepartmentFunc: method is nil but caseworkerRepo.CountActiveByDepartment was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		Department string
	}{Ctx: ctx, Department: department}
	mock.lockCountActiveByDepartment.Lock()
	mock.calls.CountActiveByDepartment = append(mock.calls.CountActiveByDepartment, callInfo)
	mock.lockCountActiveByDepartment.Unlock()
	return mock.CountActiveByDepartmentFunc(ctx, department)
}

func (mock *caseworkerRepoMock) CountActiveByDepartmentCalls() []struct {
	Ctx        context.Context
	Department string
} {
	mock.lockCountActiveByDepartment.RLock()
	calls := mock.calls.CountActiveByDepartment
	mock.lockCountActiveByDepartment.RUnlock()
	return calls
}
