/*
Package ranges generates ordered date sequences from calendar offsets.

PURPOSE:
  Given a start, end, and/or period count plus an offset, produce the finite
  sequence of lattice points between the bounds. Misaligned bounds are
  snapped inward (start rolls forward, end rolls back); a missing bound is
  completed from the other one by repeated application of the offset.

SEQUENCE MODEL:
  Generate returns a lazy, forward-only, non-restartable Sequence. It is
  single-owner: not safe for concurrent advancement by multiple consumers.
  Consumers stop simply by ceasing to call Next. Collect drains the sequence
  into a slice, returning no partial results on error.

SAFETY:
  Every advance asserts that Apply strictly increased the current point.
  A degenerate offset (for example a zero-duration tick) would otherwise
  loop forever; it fails with a NonProgressingOffsetError instead.

USAGE:
  start := time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)
  seq, err := ranges.Generate(ranges.Spec{
      Start:   &start,
      Periods: 5,
      Offset:  offsets.NewBusinessDay(1),
  })
  dates, err := seq.Collect()

SEE ALSO:
  - offsets package: the rule families driving the sequence
  - normalize.go: heterogeneous input to time.Time conversion
*/
package ranges

import (
	"errors"
	"fmt"
	"time"

	"github.com/warp/schedule-engine/offsets"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInsufficientRangeSpec is returned when fewer than two of start,
	// end, and periods are resolvable.
	ErrInsufficientRangeSpec = errors.New("must specify at least two of start, end, periods")

	// ErrNonProgressingOffset is returned when an offset's Apply fails to
	// strictly increase the current point.
	ErrNonProgressingOffset = errors.New("offset did not increment date")
)

// NonProgressingOffsetError identifies the offset and the point at which it
// stalled.
type NonProgressingOffsetError struct {
	Freq string
	At   time.Time
}

func (e *NonProgressingOffsetError) Error() string {
	return fmt.Sprintf("offset %s did not increment date %s", e.Freq, e.At.Format(time.RFC3339))
}

func (e *NonProgressingOffsetError) Unwrap() error {
	return ErrNonProgressingOffset
}

// =============================================================================
// SPEC
// =============================================================================

// Spec bounds a range. At least two of Start, End, and Periods must be set;
// Periods values below 1 mean unspecified. A nil Offset defaults to a
// single business day.
type Spec struct {
	Start   *time.Time
	End     *time.Time
	Periods int
	Offset  offsets.Offset
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate resolves the spec's bounds and returns the lazy sequence of
// lattice points from the snapped start to the snapped end inclusive.
func Generate(spec Spec) (*Sequence, error) {
	off := spec.Offset
	if off == nil {
		off = offsets.NewBusinessDay(1)
	}

	hasStart := spec.Start != nil
	hasEnd := spec.End != nil
	hasPeriods := spec.Periods > 0

	if !hasStart && !hasEnd {
		return nil, fmt.Errorf("%w: no boundary given", ErrInsufficientRangeSpec)
	}
	if (!hasStart || !hasEnd) && !hasPeriods {
		return nil, fmt.Errorf("%w: single boundary needs a period count", ErrInsufficientRangeSpec)
	}

	var start, end time.Time
	if hasStart {
		start = offsets.RollForward(off, *spec.Start)
	}
	if hasEnd {
		end = offsets.RollBack(off, *spec.End)
	}

	if hasStart && hasEnd && end.Before(start) && !hasPeriods {
		// Snapping inverted the bounds: an empty sequence, not an error.
		return &Sequence{off: off, done: true}, nil
	}

	if !hasEnd {
		end = start
		for i := 1; i < spec.Periods; i++ {
			end = off.Apply(end)
		}
	}
	if !hasStart {
		start = end
		back := offsets.Neg(off)
		for i := 1; i < spec.Periods; i++ {
			start = back.Apply(start)
		}
	}

	return &Sequence{off: off, cur: start, end: end}, nil
}

// Sequence is a lazy, finite, forward-only iterator over lattice points.
// It is not restartable and must not be shared between goroutines.
type Sequence struct {
	off  offsets.Offset
	cur  time.Time
	end  time.Time
	done bool
	err  error
}

// Next returns the next point in the sequence. It returns false once the
// sequence is exhausted or an error condition was detected; check Err after
// the final false.
func (s *Sequence) Next() (time.Time, bool) {
	if s.done {
		return time.Time{}, false
	}
	if s.cur.After(s.end) {
		s.done = true
		return time.Time{}, false
	}

	next := s.off.Apply(s.cur)
	if !next.After(s.cur) {
		s.done = true
		s.err = &NonProgressingOffsetError{Freq: offsets.FreqStr(s.off), At: s.cur}
		return time.Time{}, false
	}

	out := s.cur
	s.cur = next
	return out, true
}

// Err returns the error that terminated the sequence, if any.
func (s *Sequence) Err() error { return s.err }

// Collect drains the sequence into a slice. On error no partial results are
// returned.
func (s *Sequence) Collect() ([]time.Time, error) {
	var out []time.Time
	for {
		t, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, t)
	}
	if s.err != nil {
		return nil, s.err
	}
	return out, nil
}
