package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsInOrder(t *testing.T) {
	s := NewScheduler(0)
	var got []int

	err := s.Run(context.Background(), 5, func(_ context.Context, i int) {
		got = append(got, i)
	})

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestScheduler_SpacesItems(t *testing.T) {
	delay := 40 * time.Millisecond
	s := NewScheduler(delay)
	var starts []time.Time

	err := s.Run(context.Background(), 3, func(_ context.Context, _ int) {
		starts = append(starts, time.Now())
	})

	require.NoError(t, err)
	require.Len(t, starts, 3)
	// The limiter may release a few milliseconds early; allow slack.
	for i := 1; i < len(starts); i++ {
		gap := starts[i].Sub(starts[i-1])
		assert.GreaterOrEqual(t, gap, delay-10*time.Millisecond, "gap %d", i)
	}
	assert.Equal(t, delay, s.Delay())
}

func TestScheduler_GapFollowsSlowItems(t *testing.T) {
	delay := 100 * time.Millisecond
	s := NewScheduler(delay)
	var starts, ends []time.Time

	err := s.Run(context.Background(), 3, func(_ context.Context, _ int) {
		starts = append(starts, time.Now())
		time.Sleep(150 * time.Millisecond)
		ends = append(ends, time.Now())
	})

	require.NoError(t, err)
	require.Len(t, starts, 3)
	for i := 1; i < len(starts); i++ {
		gap := starts[i].Sub(ends[i-1])
		assert.GreaterOrEqual(t, gap, delay-10*time.Millisecond, "gap %d", i)
	}
}

func TestScheduler_NoPauseAfterLastItem(t *testing.T) {
	s := NewScheduler(time.Hour)
	begin := time.Now()

	err := s.Run(context.Background(), 1, func(_ context.Context, _ int) {})

	require.NoError(t, err)
	assert.Less(t, time.Since(begin), time.Second)
}

func TestScheduler_FirstItemImmediate(t *testing.T) {
	s := NewScheduler(time.Hour)
	begin := time.Now()
	called := false

	ctx, cancel := context.WithCancel(context.Background())
	err := s.Run(ctx, 1, func(_ context.Context, _ int) {
		called = true
		cancel()
	})

	assert.True(t, called)
	assert.Less(t, time.Since(begin), time.Second)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestScheduler_Cancelled(t *testing.T) {
	s := NewScheduler(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := s.Run(ctx, 3, func(_ context.Context, _ int) {
		calls++
		cancel()
	})

	assert.Equal(t, 1, calls)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestScheduler_ZeroItems(t *testing.T) {
	s := NewScheduler(time.Second)

	err := s.Run(context.Background(), 0, func(_ context.Context, _ int) {
		t.Fatal("fn must not be called")
	})

	assert.NoError(t, err)
}
