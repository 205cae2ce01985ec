package scheduler

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	serErr := &pgconn.PgError{
		Code:    "40001",
		Message: "could not serialize access due to read/write dependencies among transactions",
	}
	assert.True(t, isSerializationFailure(serErr))
	assert.True(t, isSerializationFailure(fmt.Errorf("booking: %w", serErr)),
		"wrapped serialization failures must still be recognized")

	assert.False(t, isSerializationFailure(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isSerializationFailure(fmt.Errorf("connection refused")))
	assert.False(t, isSerializationFailure(nil))
}
