package escalation

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyFunc func(ctx context.Context, recipient string, text string, caseID uuid.UUID) error

	calls struct {
		Notify []struct {
			Ctx       context.Context
			Recipient string
			Text      string
			CaseID    uuid.UUID
		}
	}
	lockNotify sync.RWMutex
}

func (mock *notifierMock) Notify(ctx context.Context, recipient string, text string, caseID uuid.UUID) error {
	if mock.NotifyFunc == nil {
		panic("notifierMock.NotifyFunc: method is nil but notifier.Notify was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Recipient string
		Text      string
		CaseID    uuid.UUID
	}{Ctx: ctx, Recipient: recipient, Text: text, CaseID: caseID}
	mock.lockNotify.Lock()
	mock.calls.Notify = append(mock.calls.Notify, callInfo)
	mock.lockNotify.Unlock()
	return mock.NotifyFunc(ctx, recipient, text, caseID)
}

func (mock *notifierMock) NotifyCalls() []struct {
	Ctx       context.Context
	Recipient string
	Text      string
	CaseID    uuid.UUID
} {
	mock.lockNotify.RLock()
	calls := mock.calls.Notify
	mock.lockNotify.RUnlock()
	return calls
}
