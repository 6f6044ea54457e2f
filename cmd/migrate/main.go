// Command migrate applies or rolls back the goose migrations in migrations/.
//
// Usage:
//
//	migrate [--dir=migrations] up|down|status
//
// The database is taken from the application config (DATABASE_DSN).
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/grievance-backend/internal/app"
	"github.com/heartmarshall/grievance-backend/internal/config"
)

func main() {
	dir := flag.String("dir", "migrations", "directory with goose SQL migrations")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: migrate [--dir=migrations] up|down|status")
		os.Exit(1)
	}
	command := flag.Arg(0)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		log.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()

	// NewProvider handles $$-delimited PL/pgSQL bodies.
	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(*dir))
	if err != nil {
		logger.Error("goose provider", slog.String("error", err.Error()))
		os.Exit(1)
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			logger.Error("migrate up", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, r := range results {
			logger.Info("applied", slog.String("migration", r.Source.Path), slog.Duration("took", r.Duration))
		}
		logger.Info("migrate up completed", slog.Int("applied", len(results)))
	case "down":
		r, err := provider.Down(ctx)
		if err != nil {
			logger.Error("migrate down", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("rolled back", slog.String("migration", r.Source.Path))
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			logger.Error("migrate status", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, s := range statuses {
			fmt.Printf("%-8s %s\n", s.State, s.Source.Path)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		os.Exit(1)
	}
}
