package escalation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

var _ caseRepo = &caseRepoMock{}

type caseRepoMock struct {
	OpenSnapshotsFunc        func(ctx context.Context, now time.Time) ([]domain.CaseSnapshot, error)
	SnapshotFunc             func(ctx context.Context, id uuid.UUID, now time.Time) (domain.CaseSnapshot, error)
	GetByIDForUpdateFunc     func(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	UpdatePriorityStatusFunc func(ctx context.Context, id uuid.UUID, priority domain.Priority, status domain.CaseStatus, updatedAt time.Time) error

	calls struct {
		OpenSnapshots []struct {
			Ctx context.Context
			Now time.Time
		}
		Snapshot []struct {
			Ctx context.Context
			Id  uuid.UUID
			Now time.Time
		}
		GetByIDForUpdate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		UpdatePriorityStatus []struct {
			Ctx       context.Context
			Id        uuid.UUID
			Priority  domain.Priority
			Status    domain.CaseStatus
			UpdatedAt time.Time
		}
	}
	lockOpenSnapshots        sync.RWMutex
	lockSnapshot             sync.RWMutex
	lockGetByIDForUpdate     sync.RWMutex
	lockUpdatePriorityStatus sync.RWMutex
}

func (mock *caseRepoMock) OpenSnapshots(ctx context.Context, now time.Time) ([]domain.CaseSnapshot, error) {
	if mock.OpenSnapshotsFunc == nil {
		panic("caseRepoMock.OpenSnapshotsFunc: method is nil but caseRepo.OpenSnapshots was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Now time.Time
	}{Ctx: ctx, Now: now}
	mock.lockOpenSnapshots.Lock()
	mock.calls.OpenSnapshots = append(mock.calls.OpenSnapshots, callInfo)
	mock.lockOpenSnapshots.Unlock()
	return mock.OpenSnapshotsFunc(ctx, now)
}

func (mock *caseRepoMock) OpenSnapshotsCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.lockOpenSnapshots.RLock()
	calls := mock.calls.OpenSnapshots
	mock.lockOpenSnapshots.RUnlock()
	return calls
}

func (mock *caseRepoMock) Snapshot(ctx context.Context, id uuid.UUID, now time.Time) (domain.CaseSnapshot, error) {
	if mock.SnapshotFunc == nil {
		panic("caseRepoMock.SnapshotFunc: method is nil but caseRepo.Snapshot was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
		Now time.Time
	}{Ctx: ctx, Id: id, Now: now}
	mock.lockSnapshot.Lock()
	mock.calls.Snapshot = append(mock.calls.Snapshot, callInfo)
	mock.lockSnapshot.Unlock()
	return mock.SnapshotFunc(ctx, id, now)
}

func (mock *caseRepoMock) SnapshotCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
	Now time.Time
} {
	mock.lockSnapshot.RLock()
	calls := mock.calls.Snapshot
	mock.lockSnapshot.RUnlock()
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

func (mock *caseRepoMock) UpdatePriorityStatus(ctx context.Context, id uuid.UUID, priority domain.Priority, status domain.CaseStatus, updatedAt time.Time) error {
	if mock.UpdatePriorityStatusFunc == nil {
		panic("caseRepoMock.UpdatePriorityStatusFunc: method is nil but caseRepo.UpdatePriorityStatus was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Id        uuid.UUID
		Priority  domain.Priority
		Status    domain.CaseStatus
		UpdatedAt time.Time
	}{Ctx: ctx, Id: id, Priority: priority, Status: status, UpdatedAt: updatedAt}
	mock.lockUpdatePriorityStatus.Lock()
	mock.calls.UpdatePriorityStatus = append(mock.calls.UpdatePriorityStatus, callInfo)
	mock.lockUpdatePriorityStatus.Unlock()
	return mock.UpdatePriorityStatusFunc(ctx, id, priority, status, updatedAt)
}

func (mock *caseRepoMock) UpdatePriorityStatusCalls() []struct {
	Ctx       context.Context
	Id        uuid.UUID
	Priority  domain.Priority
	Status    domain.CaseStatus
	UpdatedAt time.Time
} {
	mock.lockUpdatePriorityStatus.RLock()
	calls := mock.calls.UpdatePriorityStatus
	mock.lockUpdatePriorityStatus.RUnlock()
	return calls
}
