package phasetimer

import "time"

// Ticker delivers the loop cadence.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock provides time to the timer. Tests replace it with a manual clock.
type Clock interface {
	Now() time.Time
	NewTicker(interval time.Duration) Ticker
}

// SystemClock is the default Clock backed by the time package.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) NewTicker(interval time.Duration) Ticker {
	return systemTicker{ticker: time.NewTicker(interval)}
}

type systemTicker struct {
	ticker *time.Ticker
}

func (value systemTicker) C() <-chan time.Time {
	return value.ticker.C
}

func (value systemTicker) Stop() {
	value.ticker.Stop()
}
