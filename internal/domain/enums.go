package domain

// CaseStatus is the lifecycle state of a grievance case.
type CaseStatus string

const (
	CaseStatusSubmitted   CaseStatus = "SUBMITTED"
	CaseStatusInProgress  CaseStatus = "IN_PROGRESS"
	CaseStatusUnderReview CaseStatus = "UNDER_REVIEW"
	CaseStatusEscalated   CaseStatus = "ESCALATED"
	CaseStatusResolved    CaseStatus = "RESOLVED"
	CaseStatusRejected    CaseStatus = "REJECTED"
)

func (s CaseStatus) String() string { return string(s) }

func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusSubmitted, CaseStatusInProgress, CaseStatusUnderReview,
		CaseStatusEscalated, CaseStatusResolved, CaseStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s CaseStatus) IsTerminal() bool {
	return s == CaseStatusResolved || s == CaseStatusRejected
}

// TerminalStatuses lists statuses that close a case.
func TerminalStatuses() []CaseStatus {
	return []CaseStatus{CaseStatusResolved, CaseStatusRejected}
}

// Priority is the urgency of a case. Order: LOW < MEDIUM < HIGH < URGENT.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank returns the ordinal of the priority (LOW=0 .. URGENT=3), -1 if invalid.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityUrgent:
		return 3
	}
	return -1
}

// Next returns the priority one step up. ok is false when p is already URGENT
// or not a valid priority.
func (p Priority) Next() (next Priority, ok bool) {
	switch p {
	case PriorityLow:
		return PriorityMedium, true
	case PriorityMedium:
		return PriorityHigh, true
	case PriorityHigh:
		return PriorityUrgent, true
	}
	return p, false
}

// OrDefault returns p if valid, otherwise MEDIUM.
func (p Priority) OrDefault() Priority {
	if p.IsValid() {
		return p
	}
	return PriorityMedium
}

// DeadlineKind identifies which milestone a deadline tracks.
type DeadlineKind string

const (
	DeadlineKindInitialResponse DeadlineKind = "INITIAL_RESPONSE"
	DeadlineKindInvestigation   DeadlineKind = "INVESTIGATION"
	DeadlineKindResolution      DeadlineKind = "RESOLUTION"
	DeadlineKindCustom          DeadlineKind = "CUSTOM"
)

func (k DeadlineKind) String() string { return string(k) }

func (k DeadlineKind) IsValid() bool {
	switch k {
	case DeadlineKindInitialResponse, DeadlineKindInvestigation, DeadlineKindResolution, DeadlineKindCustom:
		return true
	}
	return false
}

// TriggerCondition is the closed set of conditions an escalation rule can test.
type TriggerCondition string

const (
	TriggerDeadlineMissed  TriggerCondition = "DEADLINE_MISSED"
	TriggerTimeExceeded    TriggerCondition = "TIME_EXCEEDED"
	TriggerStatusUnchanged TriggerCondition = "STATUS_UNCHANGED"
	TriggerManual          TriggerCondition = "MANUAL"
)

func (c TriggerCondition) String() string { return string(c) }

func (c TriggerCondition) IsValid() bool {
	switch c {
	case TriggerDeadlineMissed, TriggerTimeExceeded, TriggerStatusUnchanged, TriggerManual:
		return true
	}
	return false
}

// EscalationAction is the remediation an escalation rule performs.
type EscalationAction string

const (
	ActionReassign         EscalationAction = "REASSIGN"
	ActionNotifySupervisor EscalationAction = "NOTIFY_SUPERVISOR"
	ActionEscalatePriority EscalationAction = "ESCALATE_PRIORITY"
)

func (a EscalationAction) String() string { return string(a) }

func (a EscalationAction) IsValid() bool {
	switch a {
	case ActionReassign, ActionNotifySupervisor, ActionEscalatePriority:
		return true
	}
	return false
}

// TimelineAction is the kind of lifecycle event recorded on a case timeline.
type TimelineAction string

const (
	TimelineCreated       TimelineAction = "CREATED"
	TimelineAssigned      TimelineAction = "ASSIGNED"
	TimelineStatusChanged TimelineAction = "STATUS_CHANGED"
	TimelineMessageSent   TimelineAction = "MESSAGE_SENT"
	TimelineDeadlineSet   TimelineAction = "DEADLINE_SET"
	TimelineEscalated     TimelineAction = "ESCALATED"
	TimelineResolved      TimelineAction = "RESOLVED"
)

func (a TimelineAction) String() string { return string(a) }

func (a TimelineAction) IsValid() bool {
	switch a {
	case TimelineCreated, TimelineAssigned, TimelineStatusChanged, TimelineMessageSent,
		TimelineDeadlineSet, TimelineEscalated, TimelineResolved:
		return true
	}
	return false
}
