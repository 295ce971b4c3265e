package clock

import (
	"sync"
	"time"
)

// Clock yields monotonically increasing readings. It is used only for
// elapsed-time arithmetic, never for calendar purposes.
type Clock interface {
	Now() time.Time
	Since(start time.Time) time.Duration
}

type systemClock struct{}

// System returns the process monotonic clock.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Since(start time.Time) time.Duration {
	d := time.Since(start)
	if d < 0 {
		return 0
	}
	return d
}

// Stopwatch fixes a start reading and derives budgets from it. Budgets are
// recomputed from the clock on every check and never persisted.
type Stopwatch struct {
	clk   Clock
	start time.Time
}

func Start(clk Clock) Stopwatch {
	return Stopwatch{clk: clk, start: clk.Now()}
}

func (s Stopwatch) Elapsed() time.Duration {
	return s.clk.Since(s.start)
}

// Remaining clamps to zero; zero means immediate timeout.
func (s Stopwatch) Remaining(budget time.Duration) time.Duration {
	rem := budget - s.Elapsed()
	if rem < 0 {
		return 0
	}
	return rem
}

func (s Stopwatch) Expired(budget time.Duration) bool {
	return s.Elapsed() > budget
}

// Manual is a hand-driven clock for deterministic tests.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Since(start time.Time) time.Duration {
	d := m.Now().Sub(start)
	if d < 0 {
		return 0
	}
	return d
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
