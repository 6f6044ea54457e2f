package escalation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

var _ escalationRepo = &escalationRepoMock{}

type escalationRepoMock struct {
	CreateRuleFunc    func(ctx context.Context, rule *domain.EscalationRule) error
	GetRuleFunc       func(ctx context.Context, id uuid.UUID) (*domain.EscalationRule, error)
	ListRulesFunc     func(ctx context.Context, activeOnly bool) ([]domain.EscalationRule, error)
	SetRuleActiveFunc func(ctx context.Context, id uuid.UUID, active bool) error
	CreateEventFunc   func(ctx context.Context, e *domain.EscalationEvent) error
	ListEventsFunc    func(ctx context.Context, f domain.EscalationEventFilter) ([]domain.EscalationEvent, int, error)
	LastFiredAtFunc   func(ctx context.Context, caseID uuid.UUID, ruleID uuid.UUID) (*time.Time, error)

	calls struct {
		CreateRule []struct {
			Ctx  context.Context
			Rule *domain.EscalationRule
		}
		GetRule []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListRules []struct {
			Ctx        context.Context
			ActiveOnly bool
		}
		SetRuleActive []struct {
			Ctx    context.Context
			Id     uuid.UUID
			Active bool
		}
		CreateEvent []struct {
			Ctx context.Context
			E   *domain.EscalationEvent
		}
		ListEvents []struct {
			Ctx context.Context
			F   domain.EscalationEventFilter
		}
		LastFiredAt []struct {
			Ctx    context.Context
			CaseID uuid.UUID
			RuleID uuid.UUID
		}
	}
	lockCreateRule    sync.RWMutex
	lockGetRule       sync.RWMutex
	lockListRules     sync.RWMutex
	lockSetRuleActive sync.RWMutex
	lockCreateEvent   sync.RWMutex
	lockListEvents    sync.RWMutex
	lockLastFiredAt   sync.RWMutex
}

func (mock *escalationRepoMock) CreateRule(ctx context.Context, rule *domain.EscalationRule) error {
	if mock.CreateRuleFunc == nil {
		panic("escalationRepoMock.CreateRuleFunc: method is nil but escalationRepo.CreateRule was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Rule *domain.EscalationRule
	}{Ctx: ctx, Rule: rule}
	mock.lockCreateRule.Lock()
	mock.calls.CreateRule = append(mock.calls.CreateRule, callInfo)
	mock.lockCreateRule.Unlock()
	return mock.CreateRuleFunc(ctx, rule)
}

func (mock *escalationRepoMock) CreateRuleCalls() []struct {
	Ctx  context.Context
	Rule *domain.EscalationRule
} {
	mock.lockCreateRule.RLock()
	calls := mock.calls.CreateRule
	mock.lockCreateRule.RUnlock()
	return calls
}

func (mock *escalationRepoMock) GetRule(ctx context.Context, id uuid.UUID) (*domain.EscalationRule, error) {
	if mock.GetRuleFunc == nil {
		panic("escalationRepoMock.GetRuleFunc: method is nil but escalationRepo.GetRule was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetRule.Lock()
	mock.calls.GetRule = append(mock.calls.GetRule, callInfo)
	mock.lockGetRule.Unlock()
	return mock.GetRuleFunc(ctx, id)
}

func (mock *escalationRepoMock) GetRuleCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetRule.RLock()
	calls := mock.calls.GetRule
	mock.lockGetRule.RUnlock()
	return calls
}

func (mock *escalationRepoMock) ListRules(ctx context.Context, activeOnly bool) ([]domain.EscalationRule, error) {
	if mock.ListRulesFunc == nil {
		panic("escalationRepoMock.ListRulesFunc: method is nil but escalationRepo.ListRules was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ActiveOnly bool
	}{Ctx: ctx, ActiveOnly: activeOnly}
	mock.lockListRules.Lock()
	mock.calls.ListRules = append(mock.calls.ListRules, callInfo)
	mock.lockListRules.Unlock()
	return mock.ListRulesFunc(ctx, activeOnly)
}

func (mock *escalationRepoMock) ListRulesCalls() []struct {
	Ctx        context.Context
	ActiveOnly bool
} {
	mock.lockListRules.RLock()
	calls := mock.calls.ListRules
	mock.lockListRules.RUnlock()
	return calls
}

func (mock *escalationRepoMock) SetRuleActive(ctx context.Context, id uuid.UUID, active bool) error {
	if mock.SetRuleActiveFunc == nil {
		panic("escalationRepoMock.SetRuleActiveFunc: method is nil but escalationRepo.SetRuleActive was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		Active bool
	}{Ctx: ctx, Id: id, Active: active}
	mock.lockSetRuleActive.Lock()
	mock.calls.SetRuleActive = append(mock.calls.SetRuleActive, callInfo)
	mock.lockSetRuleActive.Unlock()
	return mock.SetRuleActiveFunc(ctx, id, active)
}

func (mock *escalationRepoMock) SetRuleActiveCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	Active bool
} {
	mock.lockSetRuleActive.RLock()
	calls := mock.calls.SetRuleActive
	mock.lockSetRuleActive.RUnlock()
	return calls
}

func (mock *escalationRepoMock) CreateEvent(ctx context.Context, e *domain.EscalationEvent) error {
	if mock.CreateEventFunc == nil {
		panic("escalationRepoMock.CreateEventFunc: method is nil but escalationRepo.CreateEvent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   *domain.EscalationEvent
	}{Ctx: ctx, E: e}
	mock.lockCreateEvent.Lock()
	mock.calls.CreateEvent = append(mock.calls.CreateEvent, callInfo)
	mock.lockCreateEvent.Unlock()
	return mock.CreateEventFunc(ctx, e)
}

func (mock *escalationRepoMock) CreateEventCalls() []struct {
	Ctx context.Context
	E   *domain.EscalationEvent
} {
	mock.lockCreateEvent.RLock()
	calls := mock.calls.CreateEvent
	mock.lockCreateEvent.RUnlock()
	return calls
}

func (mock *escalationRepoMock) ListEvents(ctx context.Context, f domain.EscalationEventFilter) ([]domain.EscalationEvent, int, error) {
	if mock.ListEventsFunc == nil {
		panic("escalationRepoMock.ListEventsFunc: method is nil but escalationRepo.ListEvents was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.EscalationEventFilter
	}{Ctx: ctx, F: f}
	mock.lockListEvents.Lock()
	mock.calls.ListEvents = append(mock.calls.ListEvents, callInfo)
	mock.lockListEvents.Unlock()
	return mock.ListEventsFunc(ctx, f)
}

func (mock *escalationRepoMock) ListEventsCalls() []struct {
	Ctx context.Context
	F   domain.EscalationEventFilter
} {
	mock.lockListEvents.RLock()
	calls := mock.calls.ListEvents
	mock.lockListEvents.RUnlock()
	return calls
}

func (mock *escalationRepoMock) LastFiredAt(ctx context.Context, caseID uuid.UUID, ruleID uuid.UUID) (*time.Time, error) {
	if mock.LastFiredAtFunc == nil {
		panic("escalationRepoMock.LastFiredAtFunc: method is nil but escalationRepo.LastFiredAt was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		CaseID uuid.UUID
		RuleID uuid.UUID
	}{Ctx: ctx, CaseID: caseID, RuleID: ruleID}
	mock.lockLastFiredAt.Lock()
	mock.calls.LastFiredAt = append(mock.calls.LastFiredAt, callInfo)
	mock.lockLastFiredAt.Unlock()
	return mock.LastFiredAtFunc(ctx, caseID, ruleID)
}

func (mock *escalationRepoMock) LastFiredAtCalls() []struct {
	Ctx    context.Context
	CaseID uuid.UUID
	RuleID uuid.UUID
} {
	mock.lockLastFiredAt.RLock()
	calls := mock.calls.LastFiredAt
	mock.lockLastFiredAt.RUnlock()
	return calls
}
