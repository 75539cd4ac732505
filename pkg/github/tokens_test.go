package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenPoolRotation(t *testing.T) {
	pool := NewTokenPool([]string{"a", "b", "c"})

	for attempt, want := range []string{"a", "b", "c", "a", "b"} {
		got, ok := pool.Token(attempt)
		assert.True(t, ok)
		assert.Equal(t, want, got, "attempt %d", attempt)
	}
}

func TestTokenPoolDropsEmptyEntries(t *testing.T) {
	pool := NewTokenPool([]string{"", "a", "", "b"})

	assert.Equal(t, 2, pool.Size())

	got, ok := pool.Token(0)
	assert.True(t, ok)
	assert.Equal(t, "a", got)
}

func TestTokenPoolEmpty(t *testing.T) {
	pool := NewTokenPool(nil)

	assert.Zero(t, pool.Size())

	got, ok := pool.Token(0)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestTokenPoolNegativeAttempt(t *testing.T) {
	pool := NewTokenPool([]string{"a", "b"})

	got, ok := pool.Token(-1)
	assert.True(t, ok)
	assert.Equal(t, "b", got)
}
