package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/grievance-backend/internal/adapter/postgres"
	"github.com/heartmarshall/grievance-backend/internal/auth"
	"github.com/heartmarshall/grievance-backend/internal/config"
	"github.com/heartmarshall/grievance-backend/internal/transport/graphql"
	"github.com/heartmarshall/grievance-backend/internal/transport/graphql/dataloader"
	"github.com/heartmarshall/grievance-backend/internal/transport/middleware"
	"github.com/heartmarshall/grievance-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services, starts the HTTP server and the escalation
// scheduler, and blocks until ctx is cancelled or SIGINT/SIGTERM arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	svc := NewServices(logger, cfg, pool)

	scheduler, err := NewEscalationScheduler(logger, svc.Escalation, cfg.Escalation)
	if err != nil {
		return fmt.Errorf("escalation scheduler: %w", err)
	}

	handler := NewHandler(logger, cfg, pool, svc, scheduler)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	scheduler.Start(ctx)

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			scheduler.Stop(context.Background())
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", slog.String("error", err.Error()))
	}
	scheduler.Stop(shutdownCtx)

	logger.Info("shutdown complete")
	return nil
}

// NewHandler mounts the REST API and the GraphQL read API behind the
// global middleware stack: request ID, access log, panic recovery, CORS and
// token parsing.
func NewHandler(
	logger *slog.Logger,
	cfg *config.Config,
	pool *pgxpool.Pool,
	svc *Services,
	scheduler *EscalationScheduler,
) http.Handler {
	resolver := graphql.NewResolver(svc.Grievance, svc.Workload, svc.Deadline, svc.Escalation, svc.Timeline)
	gql := dataloader.Middleware(svc.Loaders)(graphql.NewHandler(resolver, logger))

	router := rest.NewRouter(rest.Handlers{
		Health:      rest.NewHealthHandler(pool, scheduler, BuildVersion()),
		Cases:       rest.NewCaseHandler(svc.Grievance, svc.Assignment, logger),
		Deadlines:   rest.NewDeadlineHandler(svc.Deadline, logger),
		Caseworkers: rest.NewCaseworkerHandler(svc.Workload, svc.Deadline, logger),
		Escalations: rest.NewEscalationHandler(svc.Escalation, logger),
		Timeline:    rest.NewTimelineHandler(svc.Timeline, logger),
		GraphQL:     gql,
	})

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.Leeway)

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
	)(router)
}
