package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHesitate(t *testing.T) {
	t.Run("Elapses", func(t *testing.T) {
		start := time.Now()
		require.NoError(t, hesitate(context.Background(), 20*time.Millisecond))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("ZeroDuration", func(t *testing.T) {
		assert.NoError(t, hesitate(context.Background(), 0))
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		start := time.Now()
		err := hesitate(ctx, time.Minute)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestWithOptionalTimeout(t *testing.T) {
	t.Run("NoTimeout", func(t *testing.T) {
		ctx, cancel := withOptionalTimeout(context.Background(), 0)
		defer cancel()
		_, ok := ctx.Deadline()
		assert.False(t, ok)
	})

	t.Run("Timeout", func(t *testing.T) {
		ctx, cancel := withOptionalTimeout(context.Background(), time.Second)
		defer cancel()
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 100*time.Millisecond)
	})
}
