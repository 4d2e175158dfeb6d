// tick.go - fixed sub-day duration offsets.
//
// Ticks have no invalid points: Apply is plain addition of the effective
// duration n * unit, computed once at construction and never recomputed.
// Equality and hashing use the effective duration rather than parameter
// identity, so Hour(2) == Minute(120). Combining ticks of different kinds
// sums their durations and re-derives the coarsest kind whose unit evenly
// divides the total.

package offsets

import (
	"fmt"
	"time"
)

// Tick is a fixed sub-day duration offset. Construct concrete kinds with
// NewDay, NewHour, NewMinute, NewSecond, NewMilli, NewMicro, NewNano.
type Tick struct {
	n    int
	unit time.Duration
	code string

	// delta is the memoized effective duration n * unit, fixed for the
	// instance's lifetime.
	delta time.Duration

	// day-granularity ticks never identify a unique anchor
	dayKind bool
}

func newTick(n int, unit time.Duration, code string) Tick {
	return Tick{n: n, unit: unit, code: code, delta: time.Duration(n) * unit}
}

func NewDay(n int) Tick {
	t := newTick(n, 24*time.Hour, "D")
	t.dayKind = true
	return t
}

func NewHour(n int) Tick   { return newTick(n, time.Hour, "H") }
func NewMinute(n int) Tick { return newTick(n, time.Minute, "T") }
func NewSecond(n int) Tick { return newTick(n, time.Second, "S") }
func NewMilli(n int) Tick  { return newTick(n, time.Millisecond, "L") }
func NewMicro(n int) Tick  { return newTick(n, time.Microsecond, "U") }
func NewNano(n int) Tick   { return newTick(n, time.Nanosecond, "N") }

// Delta returns the effective duration n * unit.
func (t Tick) Delta() time.Duration { return t.delta }

// Nanos returns the effective duration in nanoseconds.
func (t Tick) Nanos() int64 { return int64(t.delta) }

func (t Tick) Apply(at time.Time) time.Time {
	return at.Add(t.delta)
}

// ApplyDuration adds the effective duration to a plain duration.
func (t Tick) ApplyDuration(d time.Duration) time.Duration {
	return d + t.delta
}

// Add combines two ticks. Same concrete kinds sum their multipliers; mixed
// kinds sum durations and re-derive the coarsest evenly-dividing kind.
func (t Tick) Add(other Tick) Tick {
	if t.code == other.code {
		return newTickLike(t, t.n+other.n)
	}
	return DeltaToTick(t.delta + other.delta)
}

func newTickLike(t Tick, n int) Tick {
	nt := newTick(n, t.unit, t.code)
	nt.dayKind = t.dayKind
	return nt
}

// DeltaToTick converts a raw duration to the coarsest tick kind whose unit
// evenly divides it, checked day > hour > minute > second > milli > micro,
// falling back to nanoseconds.
func DeltaToTick(d time.Duration) Tick {
	switch {
	case d%(24*time.Hour) == 0:
		return NewDay(int(d / (24 * time.Hour)))
	case d%time.Hour == 0:
		return NewHour(int(d / time.Hour))
	case d%time.Minute == 0:
		return NewMinute(int(d / time.Minute))
	case d%time.Second == 0:
		return NewSecond(int(d / time.Second))
	case d%time.Millisecond == 0:
		return NewMilli(int(d / time.Millisecond))
	case d%time.Microsecond == 0:
		return NewMicro(int(d / time.Microsecond))
	default:
		return NewNano(int(d))
	}
}

// OnOffset is trivially true: ticks have no invalid points.
func (t Tick) OnOffset(time.Time) bool { return true }

func (t Tick) IsAnchored() bool {
	if t.dayKind {
		return false
	}
	return t.n == 1
}

func (t Tick) N() int           { return t.n }
func (t Tick) RuleCode() string { return t.code }

func (t Tick) withN(n int) Offset {
	return newTickLike(t, n)
}

func (t Tick) family() string { return "tick-" + t.code }

// paramsKey encodes only the effective duration: equal-duration ticks of
// different units are equal and hash equal.
func (t Tick) paramsKey() string {
	return fmt.Sprintf("tick|%d", int64(t.delta))
}
