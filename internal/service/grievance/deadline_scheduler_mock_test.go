package grievance

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

var _ deadlineScheduler = &deadlineSchedulerMock{}

type deadlineSchedulerMock struct {
	ScheduleStandardFunc func(ctx context.Context, caseID uuid.UUID, priority domain.Priority, createdBy *uuid.UUID, anchor time.Time) ([]domain.Deadline, error)

	calls struct {
		ScheduleStandard []struct {
			Ctx       context.Context
			CaseID    uuid.UUID
			Priority  domain.Priority
			CreatedBy *uuid.UUID
			Anchor    time.Time
		}
	}
	lockScheduleStandard sync.RWMutex
}

func (mock *deadlineSchedulerMock) ScheduleStandard(ctx context.Context, caseID uuid.UUID, priority domain.Priority, createdBy *uuid.UUID, anchor time.Time) ([]domain.Deadline, error) {
	if mock.ScheduleStandardFunc == nil {
		panic("deadlineSchedulerMock.ScheduleStandardFunc: method is nil but deadlineScheduler.ScheduleStandard was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		CaseID    uuid.UUID
		Priority  domain.Priority
		CreatedBy *uuid.UUID
		Anchor    time.Time
	}{Ctx: ctx, CaseID: caseID, Priority: priority, CreatedBy: createdBy, Anchor: anchor}
	mock.lockScheduleStandard.Lock()
	mock.calls.ScheduleStandard = append(mock.calls.ScheduleStandard, callInfo)
	mock.lockScheduleStandard.Unlock()
	return mock.ScheduleStandardFunc(ctx, caseID, priority, createdBy, anchor)
}

func (mock *deadlineSchedulerMock) ScheduleStandardCalls() []struct {
	Ctx       context.Context
	CaseID    uuid.UUID
	Priority  domain.Priority
	CreatedBy *uuid.UUID
	Anchor    time.Time
} {
	mock.lockScheduleStandard.RLock()
	calls := mock.calls.ScheduleStandard
	mock.lockScheduleStandard.RUnlock()
	return calls
}
