package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestKeyedLimiter_BurstPerKey(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewKeyedLimiter(rate.Every(time.Minute), 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// other clients have their own bucket
	assert.True(t, l.Allow("10.0.0.2"))

	now = now.Add(time.Minute)
	assert.True(t, l.Allow("10.0.0.1"))
}

func TestKeyedLimiter_Prune(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewKeyedLimiter(rate.Limit(1), 1)
	l.now = func() time.Time { return now }

	l.Allow("old")
	now = now.Add(20 * time.Minute)
	l.Allow("fresh")

	assert.Equal(t, 1, l.Prune(10*time.Minute))
	assert.Equal(t, 1, l.Len())
}
