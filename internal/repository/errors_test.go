package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap("insert", nil))

	err := Wrap("list", sql.ErrConnDone)
	assert.EqualError(t, err, "storage list: sql: connection is already closed")
	assert.True(t, errors.Is(err, sql.ErrConnDone))

	var serr *StorageError
	assert.True(t, errors.As(fmt.Errorf("add film: %w", err), &serr))
	assert.Equal(t, "list", serr.Op)
}
