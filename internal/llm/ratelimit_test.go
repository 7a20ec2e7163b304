package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	t.Run("burst up to capacity", func(t *testing.T) {
		rl := newRateLimiter(3)
		for range 3 {
			assert.Zero(t, rl.reserve())
		}
		assert.Positive(t, rl.reserve())
	})

	t.Run("refills from elapsed time", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 8, 15, 0, 0, time.UTC)
		rl := newRateLimiter(60)
		rl.now = func() time.Time { return now }
		rl.lastRefill = now

		for range 60 {
			require.Zero(t, rl.reserve())
		}
		assert.Equal(t, time.Second, rl.reserve())

		now = now.Add(2500 * time.Millisecond)
		assert.Zero(t, rl.reserve())
		assert.Zero(t, rl.reserve())
		assert.Equal(t, 500*time.Millisecond, rl.reserve())
	})

	t.Run("never exceeds capacity", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		rl := newRateLimiter(2)
		rl.now = func() time.Time { return now }
		rl.lastRefill = now

		now = now.Add(time.Hour)
		assert.Zero(t, rl.reserve())
		assert.Zero(t, rl.reserve())
		assert.Positive(t, rl.reserve())
	})

	t.Run("default rate", func(t *testing.T) {
		rl := newRateLimiter(0)
		assert.Equal(t, 60, rl.capacity)
		assert.Equal(t, time.Second, rl.interval)
	})

	t.Run("context cancellation", func(t *testing.T) {
		rl := newRateLimiter(1)
		require.NoError(t, rl.wait(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := rl.wait(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
