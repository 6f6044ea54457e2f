// Command escalate runs a single escalation scan and exits. It is intended
// for deployments that drive the scan from an external timer instead of
// the in-process schedule.
//
// Exit codes: 0 = success, 1 = scan aborted, 2 = some actions failed.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"

	"github.com/heartmarshall/grievance-backend/internal/adapter/postgres"
	"github.com/heartmarshall/grievance-backend/internal/app"
	"github.com/heartmarshall/grievance-backend/internal/config"
	"github.com/heartmarshall/grievance-backend/internal/domain"
)

func main() {
	os.Exit(run())
}

// run performs the scan and returns the process exit code. Deferred
// cleanup runs before main exits.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("load config: %v", err)
		return exitAborted
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Escalation.ScanTimeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		return exitAborted
	}
	defer pool.Close()

	svc := app.NewServices(logger, cfg, pool)

	// The schedule is irrelevant for a single run.
	scanCfg := cfg.Escalation
	scanCfg.Schedule = config.ScheduleDisabled
	scheduler, err := app.NewEscalationScheduler(logger, svc.Escalation, scanCfg)
	if err != nil {
		logger.Error("escalation scheduler", slog.String("error", err.Error()))
		return exitAborted
	}

	_, err = scheduler.RunOnce(ctx)
	return exitCode(err)
}

const (
	exitOK            = 0
	exitAborted       = 1
	exitPartialFailed = 2
)

func exitCode(scanErr error) int {
	switch {
	case scanErr == nil:
		return exitOK
	case errors.Is(scanErr, domain.ErrPartialBatchFailure):
		return exitPartialFailed
	default:
		return exitAborted
	}
}
