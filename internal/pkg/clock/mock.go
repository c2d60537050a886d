// internal/pkg/clock/mock.go
package clock

import (
	"sync"
	"time"
)

// Mock is a manually advanced Clock for tests
type Mock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*mockTicker
}

// NewMock creates a Mock clock anchored at a fixed instant
func NewMock(now time.Time) *Mock {
	return &Mock{now: now}
}

// Now returns the mock's current time
func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// NewTicker returns a ticker that only fires when Advance crosses its
// next deadline
func (m *Mock) NewTicker(d time.Duration) Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &mockTicker{
		ch:       make(chan time.Time, 1),
		interval: d,
		next:     m.now.Add(d),
	}
	m.tickers = append(m.tickers, t)
	return t
}

// Advance moves the mock clock forward, firing any tickers whose
// deadlines fall within the window. Ticks are delivered best-effort
// (buffered channel of one, matching time.Ticker's drop semantics).
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = m.now.Add(d)
	for _, t := range m.tickers {
		t.fireUpTo(m.now)
	}
}

type mockTicker struct {
	mu       sync.Mutex
	ch       chan time.Time
	interval time.Duration
	next     time.Time
	stopped  bool
}

func (t *mockTicker) C() <-chan time.Time {
	return t.ch
}

func (t *mockTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *mockTicker) fireUpTo(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for !t.stopped && !t.next.After(now) {
		select {
		case t.ch <- t.next:
		default:
		}
		t.next = t.next.Add(t.interval)
	}
}
