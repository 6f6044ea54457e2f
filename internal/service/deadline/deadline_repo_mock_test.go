package deadline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

var _ deadlineRepo = &deadlineRepoMock{}

type deadlineRepoMock struct {
	CreateBatchFunc func(ctx context.Context, deadlines []domain.Deadline) error
	MarkMetFunc     func(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Deadline, error)
	ListByCaseFunc  func(ctx context.Context, caseID uuid.UUID) ([]domain.Deadline, error)
	OverdueFunc     func(ctx context.Context, caseworkerID uuid.UUID, now time.Time) ([]domain.DeadlineView, error)
	UpcomingFunc    func(ctx context.Context, caseworkerID uuid.UUID, now time.Time, until time.Time) ([]domain.DeadlineView, error)

	calls struct {
		CreateBatch []struct {
			Ctx       context.Context
			Deadlines []domain.Deadline
		}
		MarkMet []struct {
			Ctx context.Context
			Id  uuid.UUID
			Now time.Time
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListByCase []struct {
			Ctx    context.Context
			CaseID uuid.UUID
		}
		Overdue []struct {
			Ctx          context.Context
			CaseworkerID uuid.UUID
			Now          time.Time
		}
		Upcoming []struct {
			Ctx          context.Context
			CaseworkerID uuid.UUID
			Now          time.Time
			Until        time.Time
		}
	}
	lockCreateBatch sync.RWMutex
	lockMarkMet     sync.RWMutex
	lockGetByID     sync.RWMutex
	lockListByCase  sync.RWMutex
	lockOverdue     sync.RWMutex
	lockUpcoming    sync.RWMutex
}

func (mock *deadlineRepoMock) CreateBatch(ctx context.Context, deadlines []domain.Deadline) error {
	if mock.CreateBatchFunc == nil {
		panic("deadlineRepoMock.CreateBatchFunc: method is nil but deadlineRepo.CreateBatch was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Deadlines []domain.Deadline
	}{Ctx: ctx, Deadlines: deadlines}
	mock.lockCreateBatch.Lock()
	mock.calls.CreateBatch = append(mock.calls.CreateBatch, callInfo)
	mock.lockCreateBatch.Unlock()
	return mock.CreateBatchFunc(ctx, deadlines)
}

func (mock *deadlineRepoMock) CreateBatchCalls() []struct {
	Ctx       context.Context
	Deadlines []domain.Deadline
} {
	mock.lockCreateBatch.RLock()
	calls := mock.calls.CreateBatch
	mock.lockCreateBatch.RUnlock()
	return calls
}

func (mock *deadlineRepoMock) MarkMet(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	if mock.MarkMetFunc == nil {
		panic("deadlineRepoMock.MarkMetFunc: method is nil but deadlineRepo.MarkMet was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
		Now time.Time
	}{Ctx: ctx, Id: id, Now: now}
	mock.lockMarkMet.Lock()
	mock.calls.MarkMet = append(mock.calls.MarkMet, callInfo)
	mock.lockMarkMet.Unlock()
	return mock.MarkMetFunc(ctx, id, now)
}

func (mock *deadlineRepoMock) MarkMetCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
	Now time.Time
} {
	mock.lockMarkMet.RLock()
	calls := mock.calls.MarkMet
	mock.lockMarkMet.RUnlock()
	return calls
}

func (mock *deadlineRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deadline, error) {
	if mock.GetByIDFunc == nil {
		panic("deadlineRepoMock.GetByIDFunc: method is nil but deadlineRepo.GetByID was just called")
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

func (mock *deadlineRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *deadlineRepoMock) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Deadline, error) {
	if mock.ListByCaseFunc == nil {
		panic("deadlineRepoMock.ListByCaseFunc: method is nil but deadlineRepo.ListByCase was just called")
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

func (mock *deadlineRepoMock) ListByCaseCalls() []struct {
	Ctx    context.Context
	CaseID uuid.UUID
} {
	mock.lockListByCase.RLock()
	calls := mock.calls.ListByCase
	mock.lockListByCase.RUnlock()
	return calls
}

func (mock *deadlineRepoMock) Overdue(ctx context.Context, caseworkerID uuid.UUID, now time.Time) ([]domain.DeadlineView, error) {
	if mock.OverdueFunc == nil {
		panic("deadlineRepoMock.OverdueFunc: method is nil but deadlineRepo.Overdue was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		CaseworkerID uuid.UUID
		Now          time.Time
	}{Ctx: ctx, CaseworkerID: caseworkerID, Now: now}
	mock.lockOverdue.Lock()
	mock.calls.Overdue = append(mock.calls.Overdue, callInfo)
	mock.lockOverdue.Unlock()
	return mock.OverdueFunc(ctx, caseworkerID, now)
}

func (mock *deadlineRepoMock) OverdueCalls() []struct {
	Ctx          context.Context
	CaseworkerID uuid.UUID
	Now          time.Time
} {
	mock.lockOverdue.RLock()
	calls := mock.calls.Overdue
	mock.lockOverdue.RUnlock()
	return calls
}

func (mock *deadlineRepoMock) Upcoming(ctx context.Context, caseworkerID uuid.UUID, now time.Time, until time.Time) ([]domain.DeadlineView, error) {
	if mock.UpcomingFunc == nil {
		panic("deadlineRepoMock.UpcomingFunc: method is nil but deadlineRepo.Upcoming was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		CaseworkerID uuid.UUID
		Now          time.Time
		Until        time.Time
	}{Ctx: ctx, CaseworkerID: caseworkerID, Now: now, Until: until}
	mock.lockUpcoming.Lock()
	mock.calls.Upcoming = append(mock.calls.Upcoming, callInfo)
	mock.lockUpcoming.Unlock()
	return mock.UpcomingFunc(ctx, caseworkerID, now, until)
}

func (mock *deadlineRepoMock) UpcomingCalls() []struct {
	Ctx          context.Context
	CaseworkerID uuid.UUID
	Now          time.Time
	Until        time.Time
} {
	mock.lockUpcoming.RLock()
	calls := mock.calls.Upcoming
	mock.lockUpcoming.RUnlock()
	return calls
}
