package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Scheduler runs work items one at a time, leaving at least a fixed gap
// between the end of one item and the start of the next.
//
// It is a single-worker queue: items never overlap and are processed in
// order. The first item starts immediately.
type Scheduler struct {
	delay time.Duration
}

// NewScheduler creates a scheduler with the given inter-item delay.
// A zero or negative delay disables spacing.
func NewScheduler(delay time.Duration) *Scheduler {
	return &Scheduler{delay: delay}
}

// Delay returns the configured inter-item delay.
func (s *Scheduler) Delay() time.Duration {
	return s.delay
}

// Run calls fn for i in [0, n) in order. After each call but the last it
// waits until Delay has passed since that call returned.
// Run stops early and returns the context error if ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(ctx, i)
		if i < n-1 {
			if err := s.pause(ctx, time.Now()); err != nil {
				return err
			}
		}
	}
	return ctx.Err()
}

// pause blocks until Delay after end. The limiter's single token is spent
// at end, so Wait returns once it has refilled.
func (s *Scheduler) pause(ctx context.Context, end time.Time) error {
	if s.delay <= 0 {
		return nil
	}
	gap := rate.NewLimiter(rate.Every(s.delay), 1)
	gap.AllowN(end, 1)
	if err := gap.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}
