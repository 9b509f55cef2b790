// Package testutil provides deterministic time sources for tests.
package testutil

import (
	"sync"
	"time"

	"movereminder/internal/core/phasetimer"
)

// ManualClock is a phasetimer.Clock that only moves when told to.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*ManualTicker
}

// NewManualClock returns a clock fixed at a Monday morning.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)}
}

// Now returns the current manual time.
func (clock *ManualClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

// NewTicker registers a ticker that fires on every Advance.
func (clock *ManualClock) NewTicker(time.Duration) phasetimer.Ticker {
	ticker := &ManualTicker{ch: make(chan time.Time, 1)}
	clock.mu.Lock()
	clock.tickers = append(clock.tickers, ticker)
	clock.mu.Unlock()
	return ticker
}

// Advance moves the clock forward and fires every live ticker once.
// A ticker that has not drained its previous tick drops the new one,
// like time.Ticker does.
func (clock *ManualClock) Advance(delta time.Duration) {
	clock.mu.Lock()
	clock.now = clock.now.Add(delta)
	now := clock.now
	tickers := make([]*ManualTicker, 0, len(clock.tickers))
	for _, ticker := range clock.tickers {
		if !ticker.isStopped() {
			tickers = append(tickers, ticker)
		}
	}
	clock.tickers = tickers
	clock.mu.Unlock()

	for _, ticker := range tickers {
		select {
		case ticker.ch <- now:
		default:
		}
	}
}

// ManualTicker is returned by ManualClock.NewTicker.
type ManualTicker struct {
	mu      sync.Mutex
	ch      chan time.Time
	stopped bool
}

// C returns the tick channel.
func (ticker *ManualTicker) C() <-chan time.Time {
	return ticker.ch
}

// Stop detaches the ticker from its clock.
func (ticker *ManualTicker) Stop() {
	ticker.mu.Lock()
	ticker.stopped = true
	ticker.mu.Unlock()
}

func (ticker *ManualTicker) isStopped() bool {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	return ticker.stopped
}
