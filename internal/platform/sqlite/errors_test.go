package sqlite_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/phrazzld/expense-api/internal/platform/sqlite"
	"github.com/phrazzld/expense-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, sqlite.MapError(nil))
	assert.ErrorIs(t, sqlite.MapError(sql.ErrNoRows), store.ErrNotFound)

	plain := errors.New("disk I/O error")
	assert.Equal(t, plain, sqlite.MapError(plain))
	assert.False(t, sqlite.IsUniqueViolation(plain))
	assert.False(t, sqlite.IsUniqueViolation(nil))
}
