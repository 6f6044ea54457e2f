package assignment

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

var _ caseworkerRepo = &caseworkerRepoMock{}

type caseworkerRepoMock struct {
	GetByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.Caseworker, error)
	ListActiveByDepartmentFunc func(ctx context.Context, department string) ([]domain.Caseworker, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListActiveByDepartment []struct {
			Ctx        context.Context
			Department string
		}
	}
	lockGetByID                sync.RWMutex
	lockListActiveByDepartment sync.RWMutex
}

func (mock *caseworkerRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Caseworker, error) {
	if mock.GetByIDFunc == nil {
		panic("caseworkerRepoMock.GetByIDFunc: method is nil but caseworkerRepo.GetByID was just called")
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

func (mock *caseworkerRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *caseworkerRepoMock) ListActiveByDepartment(ctx context.Context, department string) ([]domain.Caseworker, error) {
	if mock.ListActiveByDepartmentFunc == nil {
		panic("caseworkerRepoMock.ListActiveByDepartmentFunc: method is nil but caseworkerRepo.ListActiveByDepartment was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		Department string
	}{Ctx: ctx, Department: department}
	mock.lockListActiveByDepartment.Lock()
	mock.calls.ListActiveByDepartment = append(mock.calls.ListActiveByDepartment, callInfo)
	mock.lockListActiveByDepartment.Unlock()
	return mock.ListActiveByDepartmentFunc(ctx, department)
}

func (mock *caseworkerRepoMock) ListActiveByDepartmentCalls() []struct {
	Ctx        context.Context
	Department string
} {
	mock.lockListActiveByDepartment.RLock()
	calls := mock.calls.ListActiveByDepartment
	mock.lockListActiveByDepartment.RUnlock()
	return calls
}
