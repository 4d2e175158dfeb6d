/*
Package offsets provides calendar offset arithmetic: immutable rules that
define subsets of points in time and operations to advance, snap, and test
membership against them.

PURPOSE:
  Each offset defines a lattice of valid dates. BusinessDay defines the set
  of weekdays (Mon-Fri), MonthEnd the set of last days of months, and so on.
  Membership is tested with OnOffset, misaligned dates are snapped with
  RollForward/RollBack, and Apply advances a date n steps along the lattice.

SEMANTICS:
  Apply with n > 0 first snaps forward if the date is off-lattice, consuming
  one step for the snap. With n < 0 the snap is backward. n == 0 means "snap
  forward to the next point on or after the date" -- an intentionally
  asymmetric convention:

    date + BusinessDay(0) == RollForward(BusinessDay(1), date)

  Since 0 is a bit weird, avoid relying on it.

KEY CONCEPTS:
  - Offset: the shared contract. The interface carries unexported methods so
    the set of implementations is closed to this package.
  - Calendar families: BusinessDay, MonthEnd/Begin (plus business variants),
    Week, WeekOfMonth, Quarter and Year boundaries (plus business variants).
  - Tick: fixed sub-day durations (Day, Hour, ..., Nano) with linear,
    non-calendar arithmetic. See tick.go.

IMMUTABILITY:
  Offsets are value types, constructed once from validated parameters and
  never mutated. Mul, Neg, and Sub always produce new values.

SEE ALSO:
  - calendar.go: proleptic Gregorian month lookup and business-day helpers
  - errors.go: configuration and operand mismatch errors
  - ranges package: bounded date sequence generation on top of Apply
*/
package offsets

import (
	"fmt"
	"hash/fnv"
	"time"
)

// =============================================================================
// WEEKDAY - Monday-based index, matching the W-MON style rule codes
// =============================================================================

// Weekday is a day of the week with Monday == 0 and Sunday == 6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayCodes = [7]string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

func (w Weekday) String() string {
	if w < 0 || w > 6 {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayCodes[w]
}

var monthCodes = [13]string{"", "JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// =============================================================================
// OFFSET CONTRACT
// =============================================================================

// Offset is the contract every rule family implements. The unexported
// methods close the set of implementations to this package: offsets form a
// fixed sum of families, not an open hierarchy.
type Offset interface {
	// Apply advances the date n steps along the offset's lattice. Off-lattice
	// dates consume one step snapping in the direction of n first.
	Apply(t time.Time) time.Time

	// OnOffset reports whether the date lies on the offset's lattice. Every
	// family answers with a direct test, never by iterating.
	OnOffset(t time.Time) bool

	// IsAnchored reports whether the offset identifies exactly one canonical
	// point per period: n == 1 and no free parameter left ambiguous.
	IsAnchored() bool

	// N returns the signed step multiplier.
	N() int

	// RuleCode returns the short family identifier with any parameter suffix
	// (e.g. "B", "W-MON", "QS-JAN") for the external frequency resolver.
	RuleCode() string

	// withN returns a copy with the multiplier replaced; parameters carry over.
	withN(n int) Offset

	// family identifies the concrete kind for same-kind arithmetic.
	family() string

	// paramsKey is a canonical encoding of kind and parameters. Two offsets
	// are equal iff their keys are equal; Hash digests the same key, so
	// hashing is consistent with equality. Ticks encode only their effective
	// duration, making equal-duration ticks of different units equal.
	paramsKey() string
}

// =============================================================================
// SHARED ARITHMETIC
// =============================================================================

// RollForward snaps the date forward to the next lattice point. Dates
// already on the lattice are returned unchanged.
func RollForward(o Offset, t time.Time) time.Time {
	if !o.OnOffset(t) {
		return o.withN(1).Apply(t)
	}
	return t
}

// RollBack snaps the date backward to the previous lattice point. Dates
// already on the lattice are returned unchanged.
func RollBack(o Offset, t time.Time) time.Time {
	if !o.OnOffset(t) {
		return o.withN(-1).Apply(t)
	}
	return t
}

// Mul scales the offset's multiplier, leaving all other parameters intact.
func Mul(o Offset, k int) Offset {
	return o.withN(k * o.N())
}

// Neg flips the offset's direction.
func Neg(o Offset) Offset {
	return o.withN(-o.N())
}

// Sub yields an offset whose multiplier is the difference of the two. Both
// operands must be the same concrete family; parameters are taken from the
// left operand. Mixed families fail with a TypeMismatchError.
func Sub(a, b Offset) (Offset, error) {
	if a.family() != b.family() {
		return nil, &TypeMismatchError{Left: FreqStr(a), Right: FreqStr(b)}
	}
	return a.withN(a.N() - b.N()), nil
}

// Equal reports whether two offsets select the same lattice with the same
// step. Ticks compare by effective duration regardless of unit.
func Equal(a, b Offset) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.paramsKey() == b.paramsKey()
}

// Hash returns a digest consistent with Equal: equal offsets hash equal.
func Hash(o Offset) uint64 {
	h := fnv.New64a()
	h.Write([]byte(o.paramsKey()))
	return h.Sum64()
}

// FreqStr renders the canonical short identifier: the multiplier (omitted
// when 1), the rule code, and any parameter suffix. The external frequency
// resolver guarantees that re-resolving the string yields an equal offset.
func FreqStr(o Offset) string {
	code := o.RuleCode()
	s := code
	if o.N() != 1 {
		s = fmt.Sprintf("%d%s", o.N(), code)
	}
	if fs, ok := o.(interface{ freqSuffix() string }); ok {
		s += fs.freqSuffix()
	}
	return s
}
