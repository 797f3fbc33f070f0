// Package retry provides backoff policies for transient failures.
package retry

import (
	"context"
	"time"
)

// Mode selects how the delay grows between attempts.
type Mode string

const (
	Fixed       Mode = "fixed"
	Linear      Mode = "linear"
	Exponential Mode = "exponential"
)

// Policy is an immutable backoff configuration.
type Policy struct {
	Mode       Mode
	Initial    time.Duration // base delay
	Max        time.Duration // cap for growth
	MaxRetries int           // retries after the first failure
}

// NewPolicy builds a policy; an unknown mode falls back to linear and
// Initial is clamped to Max.
func NewPolicy(mode Mode, initial, maxDelay time.Duration, maxRetries int) Policy {
	p := Policy{Mode: Linear, Initial: initial, Max: maxDelay, MaxRetries: maxRetries}
	switch mode {
	case Fixed, Linear, Exponential:
		p.Mode = mode
	}
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.Max > 0 && p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// Delay returns the wait before retry n (1-based). Non-positive n yields 0.
func (p Policy) Delay(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	var d time.Duration
	switch p.Mode {
	case Fixed:
		d = p.Initial
	case Exponential:
		d = p.Initial << (n - 1)
	default:
		d = time.Duration(n) * p.Initial
	}
	if p.Max > 0 && (d > p.Max || d < 0) {
		return p.Max
	}
	return d
}

// Do calls fn until it succeeds, the retries are used up or ctx is done.
// It returns the last error from fn, or ctx.Err() if ctx ended first.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	err := fn()
	for n := 1; err != nil && n <= p.MaxRetries; n++ {
		t := time.NewTimer(p.Delay(n))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		err = fn()
	}
	return err
}
