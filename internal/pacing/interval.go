package pacing

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ModeFixed pauses for the full delay after every lookup.
	ModeFixed = "fixed"
	// ModeInterval only keeps lookups at least the delay apart; time spent
	// waiting on the network counts towards the interval.
	ModeInterval = "interval"
)

// Interval is a minimum-interval scheduler backed by a token bucket of
// size one.
type Interval struct {
	interval time.Duration
	limiter  *rate.Limiter
}

// NewInterval creates a pacer that lets one call through per interval. The
// clock starts at construction: the first Wait returns one interval after
// NewInterval, so the call made before it is spaced like every other.
func NewInterval(interval time.Duration) *Interval {
	if interval <= 0 {
		return &Interval{limiter: rate.NewLimiter(rate.Inf, 1)}
	}

	limiter := rate.NewLimiter(rate.Every(interval), 1)
	limiter.Allow()
	return &Interval{
		interval: interval,
		limiter:  limiter,
	}
}

// Interval returns the configured minimum spacing.
func (i *Interval) Interval() time.Duration {
	return i.interval
}

// Wait blocks until the next call is allowed or ctx is done.
func (i *Interval) Wait(ctx context.Context) error {
	return i.limiter.Wait(ctx)
}

// New returns the pacer for mode ("fixed" or "interval"). An empty mode
// means fixed.
func New(mode string, delay time.Duration) (Pacer, error) {
	switch mode {
	case "", ModeFixed:
		return NewFixedDelay(delay), nil
	case ModeInterval:
		return NewInterval(delay), nil
	default:
		return nil, fmt.Errorf("unknown pacing mode %q (want %s or %s)", mode, ModeFixed, ModeInterval)
	}
}
