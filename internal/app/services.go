package app

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/grievance-backend/internal/adapter/postgres"
	assignmentrepo "github.com/heartmarshall/grievance-backend/internal/adapter/postgres/assignment"
	"github.com/heartmarshall/grievance-backend/internal/adapter/postgres/caseworker"
	deadlinerepo "github.com/heartmarshall/grievance-backend/internal/adapter/postgres/deadline"
	escalationrepo "github.com/heartmarshall/grievance-backend/internal/adapter/postgres/escalation"
	grievancerepo "github.com/heartmarshall/grievance-backend/internal/adapter/postgres/grievance"
	"github.com/heartmarshall/grievance-backend/internal/adapter/postgres/notification"
	"github.com/heartmarshall/grievance-backend/internal/adapter/postgres/student"
	timelinerepo "github.com/heartmarshall/grievance-backend/internal/adapter/postgres/timeline"
	workloadrepo "github.com/heartmarshall/grievance-backend/internal/adapter/postgres/workload"
	"github.com/heartmarshall/grievance-backend/internal/config"
	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/internal/service/assignment"
	"github.com/heartmarshall/grievance-backend/internal/service/deadline"
	"github.com/heartmarshall/grievance-backend/internal/service/escalation"
	"github.com/heartmarshall/grievance-backend/internal/service/grievance"
	"github.com/heartmarshall/grievance-backend/internal/service/timeline"
	"github.com/heartmarshall/grievance-backend/internal/service/workload"
	"github.com/heartmarshall/grievance-backend/internal/transport/graphql/dataloader"
)

// Services is the wired service graph shared by the server and the
// one-shot commands.
type Services struct {
	Grievance  *grievance.Service
	Assignment *assignment.Service
	Deadline   *deadline.Service
	Workload   *workload.Service
	Escalation *escalation.Service
	Timeline   *timeline.Service

	// Loaders are the repositories the GraphQL DataLoaders batch over.
	Loaders *dataloader.Repos
}

// NewServices builds repositories on top of pool and wires every service.
func NewServices(logger *slog.Logger, cfg *config.Config, pool *pgxpool.Pool) *Services {
	clock := domain.SystemClock{}
	tx := postgres.NewTxManager(pool)

	cases := grievancerepo.New(pool)
	students := student.New(pool)
	caseworkers := caseworker.New(pool)
	assignments := assignmentrepo.New(pool)
	deadlines := deadlinerepo.New(pool)
	escalations := escalationrepo.New(pool)
	entries := timelinerepo.New(pool)
	workloads := workloadrepo.New(pool)
	notifier := notification.New(pool, clock)

	timelineSvc := timeline.NewService(logger, entries, cases, clock)
	workloadSvc := workload.NewService(logger, workloads)
	deadlineSvc := deadline.NewService(logger, deadlines, cases, timelineSvc, tx, clock)
	assignmentSvc := assignment.NewService(logger, cases, caseworkers, assignments, workloadSvc, timelineSvc, tx, clock)
	grievanceSvc := grievance.NewService(logger,
		grievance.Config{AutoAssign: !cfg.Assignment.ManualOnly},
		cases, students, caseworkers, deadlineSvc, assignmentSvc, timelineSvc, tx, clock,
	)
	escalationSvc := escalation.NewService(logger,
		escalation.Config{
			Cooldown:        cfg.Escalation.Cooldown,
			NotifyOnFailure: cfg.Escalation.NotifyOnFailure,
		},
		cases, escalations, assignmentSvc, notifier, timelineSvc, tx, clock,
	)

	return &Services{
		Grievance:  grievanceSvc,
		Assignment: assignmentSvc,
		Deadline:   deadlineSvc,
		Workload:   workloadSvc,
		Escalation: escalationSvc,
		Timeline:   timelineSvc,
		Loaders: &dataloader.Repos{
			Case:       cases,
			Deadline:   deadlines,
			Timeline:   entries,
			Assignment: assignments,
		},
	}
}
