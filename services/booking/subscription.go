package booking

import (
	"context"
	"sync"
	"time"

	"horizon/models"

	"go.uber.org/zap"
)

// throttle coalesces bursts of triggers into at most one fn call per interval.
// A trigger arriving inside the interval arms a trailing-edge timer, so the last
// state is always delivered, just late.
type throttle struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func()
	last     time.Time
	timer    *time.Timer
	stopped  bool
}

func newThrottle(interval time.Duration, fn func()) *throttle {
	return &throttle{interval: interval, fn: fn}
}

// Fire delivers immediately and starts a fresh interval.
func (t *throttle) Fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.last = time.Now()
	t.mu.Unlock()
	t.fn()
}

// Offer requests a delivery. Inside the interval it schedules a single trailing
// delivery; further offers until then are absorbed.
func (t *throttle) Offer() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped || t.timer != nil {
		return
	}

	elapsed := time.Since(t.last)
	if elapsed >= t.interval {
		t.last = time.Now()
		go t.fn()
		return
	}

	t.timer = time.AfterFunc(t.interval-elapsed, func() {
		t.mu.Lock()
		t.timer = nil
		if t.stopped {
			t.mu.Unlock()
			return
		}
		t.last = time.Now()
		t.mu.Unlock()
		t.fn()
	})
}

// Stop cancels any pending trailing delivery.
func (t *throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// SubscribeToUserBookings establishes a live query over the caller's bookings
// (newest first, capped at DefaultPageSize). fn receives the full current result
// set on subscription and after every change, with bursts collapsed to at most
// one delivery per throttle interval. The returned function tears the
// subscription down.
func (s *DefaultBookingService) SubscribeToUserBookings(ctx context.Context, userID string, fn func([]models.Booking)) (func(), error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	wctx, cancel := context.WithCancel(ctx)
	events, err := s.Repo.WatchUserBookings(wctx, userID)
	if err != nil {
		cancel()
		return nil, err
	}

	deliver := func() {
		bookings, err := s.Repo.ListByUser(wctx, userID, DefaultPageSize)
		if err != nil {
			if wctx.Err() == nil {
				s.logger().Warn("subscription refresh failed",
					zap.String("userId", userID), zap.Error(err))
			}
			return
		}
		fn(bookings)
	}

	th := newThrottle(s.throttleInterval(), deliver)

	go func() {
		th.Fire()
		for range events {
			th.Offer()
		}
		th.Stop()
	}()

	return cancel, nil
}
