package arena

import "time"

// TimerKind names one interval timer.
type TimerKind uint8

const (
	TimerPlayer TimerKind = iota
	TimerEnemySpawn
	TimerFoodSpawn
	TimerFlash
	timerCount
)

// Timers remembers the last instant each cadence fired.
type Timers struct {
	last [timerCount]time.Time
}

// Due reports whether at least d has elapsed since k last fired.
func (t *Timers) Due(k TimerKind, now time.Time, d time.Duration) bool {
	return now.Sub(t.last[k]) >= d
}

// Mark records now as the last firing of k.
func (t *Timers) Mark(k TimerKind, now time.Time) {
	t.last[k] = now
}

// Last returns the last firing of k.
func (t *Timers) Last(k TimerKind) time.Time {
	return t.last[k]
}

// Reset restarts every timer at now.
func (t *Timers) Reset(now time.Time) {
	for i := range t.last {
		t.last[i] = now
	}
}

// CounterKind names one counter.
type CounterKind uint8

const (
	CounterEnemies CounterKind = iota
	CounterFlash
	counterCount
)

// Counters are small non-negative tallies.
type Counters struct {
	n [counterCount]int
}

func (c *Counters) Inc(k CounterKind) {
	c.n[k]++
}

// Dec decrements k, never below zero.
func (c *Counters) Dec(k CounterKind) {
	if c.n[k] > 0 {
		c.n[k]--
	}
}

func (c *Counters) Get(k CounterKind) int {
	return c.n[k]
}

// Less reports whether k is below limit.
func (c *Counters) Less(k CounterKind, limit int) bool {
	return c.n[k] < limit
}

func (c *Counters) Even(k CounterKind) bool {
	return c.n[k]%2 == 0
}

func (c *Counters) Reset() {
	c.n = [counterCount]int{}
}
