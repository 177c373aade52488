package scrape

import (
	"context"
	"math"
	"time"
)

// RetryPolicy describes how often a failed operation is attempted and how
// long to wait between attempts.
//
// MaxRetries counts every attempt, the first one included: 3 means one
// attempt plus two retries. The wait before retry n (0-based) is
// Cooldown * Exponent^n seconds.
type RetryPolicy struct {
	MaxRetries int
	Cooldown   float64
	Exponent   float64
}

// Attempts returns the total number of attempts, at least one.
func (p RetryPolicy) Attempts() int {
	if p.MaxRetries < 1 {
		return 1
	}
	return p.MaxRetries
}

// Delay returns the wait before retry number tries.
func (p RetryPolicy) Delay(tries int) time.Duration {
	cooldown := p.Cooldown * math.Pow(p.Exponent, float64(tries))
	return time.Duration(cooldown * float64(time.Second))
}

// Wait blocks for Delay(tries) or until ctx is done.
func (p RetryPolicy) Wait(ctx context.Context, tries int) error {
	d := p.Delay(tries)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
