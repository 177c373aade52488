package scrape

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_Attempts(t *testing.T) {
	assert.Equal(t, 1, RetryPolicy{}.Attempts())
	assert.Equal(t, 1, RetryPolicy{MaxRetries: -3}.Attempts())
	assert.Equal(t, 5, RetryPolicy{MaxRetries: 5}.Attempts())
}

func TestRetryPolicy_Delay(t *testing.T) {
	p := RetryPolicy{Cooldown: 0.2, Exponent: 2}

	assert.Equal(t, 200*time.Millisecond, p.Delay(0))
	assert.Equal(t, 400*time.Millisecond, p.Delay(1))
	assert.Equal(t, 800*time.Millisecond, p.Delay(2))
	assert.Equal(t, time.Duration(0), RetryPolicy{}.Delay(3))
}

func TestRetryPolicy_Wait(t *testing.T) {
	t.Run("zero delay returns immediately", func(t *testing.T) {
		assert.NoError(t, RetryPolicy{}.Wait(context.Background(), 0))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := RetryPolicy{Cooldown: 60, Exponent: 1}
		start := time.Now()
		assert.ErrorIs(t, p.Wait(ctx, 0), context.Canceled)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("waits for the delay", func(t *testing.T) {
		p := RetryPolicy{Cooldown: 0.01, Exponent: 1}
		assert.NoError(t, p.Wait(context.Background(), 0))
	})
}
