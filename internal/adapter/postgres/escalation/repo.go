// Package escalation implements persistence for escalation rules and the
// append-only escalation event history.
package escalation

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/grievance-backend/internal/adapter/postgres"
	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// Repo provides rule and event persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new escalation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var ruleColumns = []string{
	"id", "rule_name", "category_filter", "priority_filter", "trigger_condition",
	"trigger_value", "action", "action_target", "active", "created_at",
}

var eventColumns = []string{
	"id", "case_id", "rule_id", "triggered_at", "reason", "action", "success",
	"previous_status", "new_status", "previous_assignee", "new_assignee", "notes",
}

const insertRuleSQL = `
INSERT INTO escalation_rules (id, rule_name, category_filter, priority_filter, trigger_condition,
                              trigger_value, action, action_target, active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const setRuleActiveSQL = `UPDATE escalation_rules SET active = $2 WHERE id = $1`

const insertEventSQL = `
INSERT INTO escalation_events (id, case_id, rule_id, triggered_at, reason, action, success,
                               previous_status, new_status, previous_assignee, new_assignee, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const lastFiredAtSQL = `
SELECT max(triggered_at) FROM escalation_events
WHERE case_id = $1 AND rule_id = $2`

// ---------------------------------------------------------------------------
// Rules
// ---------------------------------------------------------------------------

// CreateRule inserts a new escalation rule.
func (r *Repo) CreateRule(ctx context.Context, rule *domain.EscalationRule) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	_, err := q.Exec(ctx, insertRuleSQL,
		rule.ID, rule.RuleName, rule.CategoryFilter, priorityPtrToString(rule.PriorityFilter),
		string(rule.TriggerCondition), rule.TriggerValue, string(rule.Action), rule.ActionTarget,
		rule.Active, rule.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "escalation_rule", rule.ID)
	}
	return nil
}

// GetRule returns a rule by primary key.
func (r *Repo) GetRule(ctx context.Context, id uuid.UUID) (*domain.EscalationRule, error) {
	query, args, err := psql.Select(ruleColumns...).From("escalation_rules").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build rule query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	rule, err := scanRule(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "escalation_rule", id)
	}
	return &rule, nil
}

// ListRules returns rules ordered by creation time. With activeOnly, inactive
// rules are skipped.
func (r *Repo) ListRules(ctx context.Context, activeOnly bool) ([]domain.EscalationRule, error) {
	b := psql.Select(ruleColumns...).From("escalation_rules").OrderBy("created_at", "id")
	if activeOnly {
		b = b.Where(sq.Eq{"active": true})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build rules query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapQueryError(err, "list escalation rules")
	}
	defer rows.Close()

	result := []domain.EscalationRule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, postgres.MapQueryError(err, "scan escalation rule")
		}
		result = append(result, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapQueryError(err, "list escalation rules")
	}

	return result, nil
}

// SetRuleActive enables or disables a rule.
func (r *Repo) SetRuleActive(ctx context.Context, id uuid.UUID, active bool) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, setRuleActiveSQL, id, active)
	if err != nil {
		return postgres.MapError(err, "escalation_rule", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("escalation_rule %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

// CreateEvent appends an escalation event. Events are never updated.
func (r *Repo) CreateEvent(ctx context.Context, e *domain.EscalationEvent) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	_, err := q.Exec(ctx, insertEventSQL,
		e.ID, e.CaseID, e.RuleID, e.TriggeredAt, e.Reason, string(e.Action), e.Success,
		string(e.PreviousStatus), string(e.NewStatus), e.PreviousAssignee, e.NewAssignee, e.Notes,
	)
	if err != nil {
		return postgres.MapError(err, "escalation_event", e.ID)
	}
	return nil
}

// ListEvents returns a page of escalation history, newest first, and the
// total number of matching events.
func (r *Repo) ListEvents(ctx context.Context, f domain.EscalationEventFilter) ([]domain.EscalationEvent, int, error) {
	where := sq.And{}
	if f.CaseID != nil {
		where = append(where, sq.Eq{"case_id": *f.CaseID})
	}

	countQuery, countArgs, err := psql.Select("count(*)").From("escalation_events").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build event count: %w", err)
	}

	pageQuery, pageArgs, err := psql.Select(eventColumns...).
		From("escalation_events").
		Where(where).
		OrderBy("triggered_at DESC", "id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build event page: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapQueryError(err, "count escalation events")
	}

	rows, err := q.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, postgres.MapQueryError(err, "list escalation events")
	}
	defer rows.Close()

	events := []domain.EscalationEvent{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, postgres.MapQueryError(err, "scan escalation event")
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.MapQueryError(err, "list escalation events")
	}

	return events, int(total), nil
}

// LastFiredAt returns when the rule last fired for the case, or nil if never.
func (r *Repo) LastFiredAt(ctx context.Context, caseID, ruleID uuid.UUID) (*time.Time, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var last *time.Time
	if err := q.QueryRow(ctx, lastFiredAtSQL, caseID, ruleID).Scan(&last); err != nil {
		return nil, postgres.MapError(err, "escalation history for case", caseID)
	}
	return last, nil
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

func scanRule(row pgx.Row) (domain.EscalationRule, error) {
	var (
		rule              domain.EscalationRule
		priorityFilter    *string
		condition, action string
	)
	err := row.Scan(
		&rule.ID, &rule.RuleName, &rule.CategoryFilter, &priorityFilter, &condition,
		&rule.TriggerValue, &action, &rule.ActionTarget, &rule.Active, &rule.CreatedAt,
	)
	if err != nil {
		return domain.EscalationRule{}, err
	}

	if priorityFilter != nil {
		p := domain.Priority(*priorityFilter)
		rule.PriorityFilter = &p
	}
	rule.TriggerCondition = domain.TriggerCondition(condition)
	rule.Action = domain.EscalationAction(action)
	return rule, nil
}

func scanEvent(row pgx.Row) (domain.EscalationEvent, error) {
	var (
		e                  domain.EscalationEvent
		action, prev, next string
	)
	err := row.Scan(
		&e.ID, &e.CaseID, &e.RuleID, &e.TriggeredAt, &e.Reason, &action, &e.Success,
		&prev, &next, &e.PreviousAssignee, &e.NewAssignee, &e.Notes,
	)
	if err != nil {
		return domain.EscalationEvent{}, err
	}

	e.Action = domain.EscalationAction(action)
	e.PreviousStatus = domain.CaseStatus(prev)
	e.NewStatus = domain.CaseStatus(next)
	return e, nil
}

func priorityPtrToString(p *domain.Priority) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}
