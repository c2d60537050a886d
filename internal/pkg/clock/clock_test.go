// internal/pkg/clock/clock_test.go
package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockNowAdvances(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMock(start)

	assert.Equal(t, start, m.Now())

	m.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), m.Now())
}

func TestMockTickerFiresOnDeadline(t *testing.T) {
	m := NewMock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	ticker := m.NewTicker(10 * time.Second)
	defer ticker.Stop()

	select {
	case <-ticker.C():
		t.Fatal("ticker fired before its deadline")
	default:
	}

	m.Advance(10 * time.Second)

	select {
	case tick := <-ticker.C():
		assert.Equal(t, m.Now(), tick)
	default:
		t.Fatal("ticker did not fire at its deadline")
	}
}

func TestMockTickerDropsOverflowTicks(t *testing.T) {
	m := NewMock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	ticker := m.NewTicker(10 * time.Second)
	defer ticker.Stop()

	// Crossing several deadlines at once delivers at most one tick,
	// matching time.Ticker's drop behavior
	m.Advance(time.Minute)

	count := 0
	for {
		select {
		case <-ticker.C():
			count++
			continue
		default:
		}
		break
	}
	assert.Equal(t, 1, count)
}

func TestStoppedMockTickerNeverFires(t *testing.T) {
	m := NewMock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	ticker := m.NewTicker(10 * time.Second)
	ticker.Stop()

	m.Advance(time.Minute)

	select {
	case <-ticker.C():
		t.Fatal("stopped ticker fired")
	default:
	}
}

func TestSystemClockIsUTC(t *testing.T) {
	c := New()
	now := c.Now()

	require.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now().UTC(), now, time.Second)
}
