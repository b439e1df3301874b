package cache

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMissingTable(t *testing.T) {
	undefined := &pq.Error{Code: "42P01", Message: `relation "cached_jobs" does not exist`}
	assert.True(t, missingTable(undefined))
	assert.True(t, missingTable(fmt.Errorf("sweep: %w", undefined)), "wrapped errors must still match")

	assert.False(t, missingTable(&pq.Error{Code: "23505"}), "other pq errors are real failures")
	assert.False(t, missingTable(errors.New("connection refused")))
	assert.False(t, missingTable(nil))
}
