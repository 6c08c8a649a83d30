package repository

import (
	"errors"
	"fmt"

	"speedrun/app_error"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres aborts one side of a deadlock or serialization failure. The
// other side committed, so the caller may retry.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// translate maps gorm errors onto the app_error kinds. It expects the
// connection to be opened with TranslateError enabled.
func translate(err error, entity string) error {
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", app_error.ErrNotFound, entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s already exists", app_error.ErrConflict, entity)
	case errors.As(err, &pgErr) && (pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected):
		return fmt.Errorf("%s: %w", entity, app_error.ErrConflictExternal)
	}
	return err
}

func assignId(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
