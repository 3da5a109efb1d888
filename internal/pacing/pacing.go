// Package pacing spaces out calls to the upstream dictionary service.
package pacing

import (
	"context"
	"time"
)

// DefaultDelay is the pause after every lookup.
const DefaultDelay = time.Second

// Pacer blocks between two upstream calls.
type Pacer interface {
	Wait(ctx context.Context) error
}

// FixedDelay pauses for the same duration on every call, regardless of how
// long the previous request took.
type FixedDelay struct {
	delay time.Duration
}

// NewFixedDelay creates a pacer with the given pause. Negative values are
// treated as zero.
func NewFixedDelay(delay time.Duration) *FixedDelay {
	if delay < 0 {
		delay = 0
	}
	return &FixedDelay{delay: delay}
}

// Delay returns the configured pause.
func (f *FixedDelay) Delay() time.Duration {
	return f.delay
}

// Wait sleeps for the configured pause or until ctx is done.
func (f *FixedDelay) Wait(ctx context.Context) error {
	if f.delay == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(f.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
