// internal/pkg/clock/clock.go
package clock

import "time"

// Clock abstracts time so periodic tasks can be driven by a virtual
// clock in tests instead of waiting on real timers.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker is a cancellable periodic tick source
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// New returns a Clock backed by the system clock
func New() Clock {
	return &systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) NewTicker(d time.Duration) Ticker {
	return &systemTicker{ticker: time.NewTicker(d)}
}

type systemTicker struct {
	ticker *time.Ticker
}

func (t *systemTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t *systemTicker) Stop() {
	t.ticker.Stop()
}
