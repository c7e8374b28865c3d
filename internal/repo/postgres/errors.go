package postgres

import (
	"errors"

	"github.com/geocoder89/eventmanager/internal/apperr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	foreignKeyViolationCode = "23503"
	uniqueViolationCode     = "23505"
	checkViolationCode      = "23514"
)

// MapError translates a storage error into the entity's domain error. The
// cause is kept so it can be logged at the boundary.
func MapError(entity apperr.Entity, err error) error {
	if err == nil {
		return nil
	}

	// already translated, e.g. a parent lookup inside a nested query
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.Wrap(entity, apperr.NotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case foreignKeyViolationCode:
			return apperr.Wrap(entity, apperr.InvalidReference, err)
		case uniqueViolationCode:
			return apperr.Wrap(entity, apperr.Duplicate, err)
		case checkViolationCode:
			return apperr.Wrap(entity, apperr.ConstraintViolation, err)
		}
	}

	return apperr.Wrap(entity, apperr.Internal, err)
}
