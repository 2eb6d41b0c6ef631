// Package clock implements the high-precision relative-time framework
// nanovc-go stamps commits with: a monotonic nano counter coupled to a
// coarse wall-clock instant, re-measured only when the two drift out of
// a configurable range (spec §4.4).
package clock

import (
	"math"
	"time"
)

// Clock produces Timestamps. It is not safe for concurrent use — it
// mutates its last-built epoch on every Now() call (spec §5). Use one
// Clock per writer, or guard it with a mutex.
type Clock struct {
	nanoSource func() int64
	buildEpoch func(nanosBefore int64) (globalInstant time.Time, nanosAfter int64)
	minRange   int64
	maxRange   int64
	lastEpoch  *Epoch
}

// DefaultMinRange and DefaultMaxRange bound delta to what fits in a
// signed 32-bit integer (~±2s at nanosecond resolution), matching the
// teacher convention of sizing bounds to the smallest type that holds
// them for compact storage.
const (
	DefaultMinRange = math.MinInt32
	DefaultMaxRange = math.MaxInt32
)

// processStart anchors SystemClock's monotonic nano source: nanos
// elapsed since this package was loaded. time.Since uses the Go
// runtime's monotonic clock reading embedded in the time.Time values,
// so this is immune to wall-clock adjustments.
var processStart = time.Now()

// NewSystemClock returns a Clock backed by a real monotonic nano
// source and the system wall clock, using DefaultMinRange/MaxRange.
func NewSystemClock() *Clock {
	return NewSystemClockWithRange(DefaultMinRange, DefaultMaxRange)
}

// NewSystemClockWithRange is NewSystemClock with an explicit rebuild
// range.
func NewSystemClockWithRange(minRange, maxRange int64) *Clock {
	return &Clock{
		nanoSource: func() int64 { return time.Since(processStart).Nanoseconds() },
		buildEpoch: func(nanosBefore int64) (time.Time, int64) {
			instant := time.Now()
			nanosAfter := time.Since(processStart).Nanoseconds()
			return instant, nanosAfter
		},
		minRange: minRange,
		maxRange: maxRange,
	}
}

// NewSimulatedClock returns a Clock driven entirely by test-controlled
// values: nanos is consumed one value per Now() call (the last value
// repeats once exhausted), and every epoch rebuild stamps
// GlobalInstant with epochInstant and reuses the current nanos value
// for both NanosBefore and NanosAfter.
func NewSimulatedClock(nanos []int64, epochInstant time.Time, minRange, maxRange int64) *Clock {
	i := 0
	next := func() int64 {
		if len(nanos) == 0 {
			return 0
		}
		if i >= len(nanos) {
			return nanos[len(nanos)-1]
		}
		v := nanos[i]
		i++
		return v
	}
	return &Clock{
		nanoSource: next,
		buildEpoch: func(nanosBefore int64) (time.Time, int64) {
			return epochInstant, nanosBefore
		},
		minRange: minRange,
		maxRange: maxRange,
	}
}

// Now implements the epoch-reuse algorithm from spec §4.4: read a nano
// value, and if there's no epoch yet or the delta against the current
// one has drifted outside [minRange, maxRange], rebuild the epoch.
func (c *Clock) Now() Timestamp {
	nanosNow := c.nanoSource()

	if c.lastEpoch == nil {
		c.rebuildEpoch(nanosNow)
	} else {
		delta := nanosNow - c.lastEpoch.NanosBefore
		if delta < c.minRange || delta > c.maxRange {
			c.rebuildEpoch(nanosNow)
		}
	}

	return Timestamp{Epoch: c.lastEpoch, NanosNow: nanosNow}
}

func (c *Clock) rebuildEpoch(nanosBefore int64) {
	globalInstant, nanosAfter := c.buildEpoch(nanosBefore)
	e := NewEpochWithVMNanos(nanosBefore, globalInstant, nanosAfter)
	c.lastEpoch = &e
}
