// Package repository implements the PostgreSQL persistence layer behind the
// service interfaces.
package repository

import (
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/artbid/auction-marketplace-backend/internal/domain/errors"
)

// PostgreSQL error codes surfaced as distinct taxonomy members.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
)

// mapError converts a pgx error into the domain taxonomy. No-rows becomes
// NotFound for the named resource; serialization failures and deadlocks
// become retryable conflicts; everything else is internal.
func mapError(err error, resource string) error {
	if err == nil {
		return nil
	}

	if stderrors.Is(err, pgx.ErrNoRows) {
		return errors.NewNotFoundError(resource)
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected:
			return errors.NewConflictError("transaction serialization failure").WithCause(err)
		case pgUniqueViolation:
			return errors.NewConflictError("duplicate key violation").WithCause(err)
		case pgForeignKeyViolation:
			return errors.NewValidationError("FOREIGN_KEY_VIOLATION", "referenced record does not exist").WithCause(err)
		}
	}

	return errors.NewInternalError("database operation failed").WithCause(err)
}
