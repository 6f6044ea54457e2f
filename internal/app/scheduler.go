package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/heartmarshall/grievance-backend/internal/config"
	"github.com/heartmarshall/grievance-backend/internal/domain"
)

type scanner interface {
	RunScan(ctx context.Context) (*domain.ScanReport, error)
}

// EscalationScheduler runs the escalation scan on a cron schedule and
// remembers the outcome of the latest run for the health endpoint.
// Overlapping ticks are skipped while a scan is still running.
type EscalationScheduler struct {
	scanner scanner
	timeout time.Duration
	log     *slog.Logger

	cron     *cron.Cron
	schedule cron.Schedule
	baseCtx  context.Context

	mu         sync.Mutex
	lastAt     time.Time
	lastFailed int
	ran        bool
}

// NewEscalationScheduler parses cfg.Schedule. An empty schedule yields a
// scheduler whose Start is a no-op; RunOnce still works.
func NewEscalationScheduler(logger *slog.Logger, s scanner, cfg config.EscalationConfig) (*EscalationScheduler, error) {
	log := logger.With("component", "escalation_scheduler")
	sch := &EscalationScheduler{
		scanner: s,
		timeout: cfg.ScanTimeout,
		log:     log,
		baseCtx: context.Background(),
	}
	if !cfg.ScheduleEnabled() {
		return sch, nil
	}

	schedule, err := config.ParseSchedule(cfg.Schedule)
	if err != nil {
		return nil, err
	}
	cl := cronLogger{log: log}
	sch.schedule = schedule
	sch.cron = cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	sch.cron.Schedule(schedule, cron.FuncJob(sch.tick))
	return sch, nil
}

// Start begins ticking. Scans triggered by the schedule derive their
// context from ctx.
func (s *EscalationScheduler) Start(ctx context.Context) {
	if s.cron == nil {
		s.log.InfoContext(ctx, "escalation schedule disabled")
		return
	}
	s.baseCtx = ctx
	s.cron.Start()
	s.log.InfoContext(ctx, "escalation scheduler started",
		slog.Time("next_run", s.schedule.Next(time.Now())),
	)
}

// Stop halts the schedule and waits for a running scan to return or ctx
// to expire.
func (s *EscalationScheduler) Stop(ctx context.Context) {
	if s.cron == nil {
		return
	}
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.WarnContext(ctx, "escalation scan still running at shutdown")
	}
}

func (s *EscalationScheduler) tick() {
	s.RunOnce(s.baseCtx) //nolint:errcheck // outcome is logged and kept for LastScan
}

// RunOnce executes a single scan bounded by the configured timeout.
func (s *EscalationScheduler) RunOnce(ctx context.Context) (*domain.ScanReport, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	report, err := s.scanner.RunScan(ctx)

	failed := 0
	switch {
	case report != nil:
		failed = report.Failed
	case err != nil:
		failed = 1
	}
	s.record(started, failed)

	if report == nil {
		s.log.ErrorContext(ctx, "escalation scan aborted", slog.String("error", err.Error()))
		return nil, err
	}
	attrs := []any{
		slog.Int("evaluated", report.Evaluated),
		slog.Int("fired", report.Fired),
		slog.Int("failed", report.Failed),
		slog.Int("suppressed", report.Suppressed),
		slog.Duration("took", time.Since(started)),
	}
	if err != nil {
		s.log.WarnContext(ctx, "escalation scan finished with failures", append(attrs, slog.String("error", err.Error()))...)
	} else {
		s.log.InfoContext(ctx, "escalation scan finished", attrs...)
	}
	return report, err
}

func (s *EscalationScheduler) record(at time.Time, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAt = at
	s.lastFailed = failed
	s.ran = true
}

// LastScan reports when the latest scan started and how many actions it
// failed. An aborted scan counts as one failure. ok is false until the
// first scan has run.
func (s *EscalationScheduler) LastScan() (at time.Time, failed int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAt, s.lastFailed, s.ran
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append([]any{slog.String("error", err.Error())}, keysAndValues...)...)
}
