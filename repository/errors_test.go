package repository

import (
	"errors"
	"fmt"
	"testing"

	"speedrun/app_error"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "run"))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound, "run"), app_error.ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey, "gamemode"), app_error.ErrConflict)

	for _, code := range []string{pgDeadlockDetected, pgSerializationFailure} {
		err := translate(fmt.Errorf("commit: %w", &pgconn.PgError{Code: code}), "run")
		assert.ErrorIs(t, err, app_error.ErrConflictExternal, code)
		assert.True(t, app_error.IsRetryable(err))
	}

	other := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, other, translate(other, "run"))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, translate(plain, "run"))
}
