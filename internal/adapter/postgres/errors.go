package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// MapError converts pgx/pgconn errors for a single entity to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
// Unclassified driver errors are wrapped with domain.ErrStoreFailure and keep
// the original error in the chain.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	return mapError(err, fmt.Sprintf("%s %s", entity, id))
}

// MapQueryError is MapError for operations not tied to one row (lists, scans).
func MapQueryError(err error, op string) error {
	if err == nil {
		return nil
	}
	return mapError(err, op)
}

func mapError(err error, prefix string) error {
	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", prefix, err)
	}

	// already classified by a lower layer
	for _, known := range []error{domain.ErrNotFound, domain.ErrAlreadyExists, domain.ErrValidation, domain.ErrStoreFailure} {
		if errors.Is(err, known) {
			return fmt.Errorf("%s: %w", prefix, err)
		}
	}

	// pgx.ErrNoRows → domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", prefix, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w", prefix, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w", prefix, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s: %w", prefix, domain.ErrValidation)
		}
	}

	// Everything else is an infrastructure failure.
	return fmt.Errorf("%s: %w: %w", prefix, domain.ErrStoreFailure, err)
}
