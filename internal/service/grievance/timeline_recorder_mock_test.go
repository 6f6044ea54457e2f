package grievance

import (
	"context"
	"sync"

	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/timeline"
)

var _ timelineRecorder = &timelineRecorderMock{}

type timelineRecorderMock struct {
	AppendFunc func(ctx context.Context, input timeline.AppendInput) (*domain.TimelineEntry, error)

	calls struct {
		Append []struct {
			Ctx   context.Context
			Input timeline.AppendInput
		}
	}
	lockAppend sync.RWMutex
}

func (mock *timelineRecorderMock) Append(ctx context.Context, input timeline.AppendInput) (*domain.TimelineEntry, error) {
	if mock.AppendFunc == nil {
		panic("timelineRecorderMock.AppendFunc: method is nil but timelineRecorder.Append was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input timeline.AppendInput
	}{Ctx: ctx, Input: input}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, input)
}

func (mock *timelineRecorderMock) AppendCalls() []struct {
	Ctx   context.Context
	Input timeline.AppendInput
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}
