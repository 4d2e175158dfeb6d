// quarter.go - quarter boundary offsets, calendar and business variants.
//
// Quarters are month boundaries scaled by three: compute the months to the
// next matching phase of the 3-month cycle, adjust the whole-period count by
// one when the date already sits past (or before) this period's anchor, then
// shift whole months and snap. startingMonth sets the cycle phase:
// startingMonth = 1 yields quarters ending 1/31, 4/30, 7/31, 10/31.

package offsets

import (
	"fmt"
	"time"
)

func validStartingMonth(offset string, m time.Month) error {
	if m < time.January || m > time.December {
		return &ConfigurationError{
			Offset: offset, Param: "startingMonth", Value: int(m),
			Reason: "must be 1 through 12",
		}
	}
	return nil
}

// =============================================================================
// QUARTER END
// =============================================================================

// QuarterEnd advances between last days of quarter-ending months.
type QuarterEnd struct {
	n             int
	startingMonth time.Month
}

func NewQuarterEnd(n int, startingMonth time.Month) (QuarterEnd, error) {
	if err := validStartingMonth("QuarterEnd", startingMonth); err != nil {
		return QuarterEnd{}, err
	}
	return QuarterEnd{n: n, startingMonth: startingMonth}, nil
}

func (q QuarterEnd) Apply(t time.Time) time.Time {
	n := q.n

	monthsToGo := (3 - posMod(int(t.Month())-int(q.startingMonth), 3)) % 3

	if n > 0 && !(t.Day() >= daysIn(t.Year(), t.Month()) && monthsToGo == 0) {
		n--
	}
	return shiftMonth(t, monthsToGo+3*n, 31)
}

func (q QuarterEnd) OnOffset(t time.Time) bool {
	return t.Day() == daysIn(t.Year(), t.Month()) &&
		posMod(int(t.Month())-int(q.startingMonth), 3) == 0
}

func (q QuarterEnd) IsAnchored() bool { return q.n == 1 }
func (q QuarterEnd) N() int           { return q.n }

func (q QuarterEnd) RuleCode() string {
	return "Q-" + monthCodes[q.startingMonth]
}

func (q QuarterEnd) withN(n int) Offset {
	q.n = n
	return q
}

func (q QuarterEnd) family() string { return "Q" }

func (q QuarterEnd) paramsKey() string {
	return fmt.Sprintf("Q|n=%d|sm=%d", q.n, q.startingMonth)
}

// =============================================================================
// QUARTER BEGIN
// =============================================================================

// QuarterBegin advances between first days of quarter-starting months.
type QuarterBegin struct {
	n             int
	startingMonth time.Month
}

func NewQuarterBegin(n int, startingMonth time.Month) (QuarterBegin, error) {
	if err := validStartingMonth("QuarterBegin", startingMonth); err != nil {
		return QuarterBegin{}, err
	}
	return QuarterBegin{n: n, startingMonth: startingMonth}, nil
}

func (q QuarterBegin) Apply(t time.Time) time.Time {
	n := q.n

	monthsSince := posMod(int(t.Month())-int(q.startingMonth), 3)
	if n <= 0 && monthsSince != 0 {
		// Off-phase moving backward: negate so the shift rolls forward.
		monthsSince -= 3
	}
	if n < 0 && monthsSince == 0 && t.Day() > 1 {
		// Past this quarter's first day: come back one fewer period.
		n++
	}
	return shiftMonth(t, 3*n-monthsSince, 1)
}

func (q QuarterBegin) OnOffset(t time.Time) bool {
	return t.Day() == 1 &&
		posMod(int(t.Month())-int(q.startingMonth), 3) == 0
}

func (q QuarterBegin) IsAnchored() bool { return q.n == 1 }
func (q QuarterBegin) N() int           { return q.n }

func (q QuarterBegin) RuleCode() string {
	return "QS-" + monthCodes[q.startingMonth]
}

func (q QuarterBegin) withN(n int) Offset {
	q.n = n
	return q
}

func (q QuarterBegin) family() string { return "QS" }

func (q QuarterBegin) paramsKey() string {
	return fmt.Sprintf("QS|n=%d|sm=%d", q.n, q.startingMonth)
}

// =============================================================================
// BUSINESS QUARTER END
// =============================================================================

// BusinessQuarterEnd advances between last business days of quarter-ending
// months.
type BusinessQuarterEnd struct {
	n             int
	startingMonth time.Month
}

func NewBusinessQuarterEnd(n int, startingMonth time.Month) (BusinessQuarterEnd, error) {
	if err := validStartingMonth("BusinessQuarterEnd", startingMonth); err != nil {
		return BusinessQuarterEnd{}, err
	}
	return BusinessQuarterEnd{n: n, startingMonth: startingMonth}, nil
}

func (q BusinessQuarterEnd) Apply(t time.Time) time.Time {
	n := q.n
	last := lastBusinessDay(t.Year(), t.Month())

	monthsToGo := (3 - posMod(int(t.Month())-int(q.startingMonth), 3)) % 3

	if n > 0 && !(t.Day() >= last && monthsToGo == 0) {
		n--
	} else if n <= 0 && t.Day() > last && monthsToGo == 0 {
		n++
	}

	t = shiftMonth(t, monthsToGo+3*n, 31)
	if isWeekend(t) {
		t = NewBusinessDay(-1).Apply(t)
	}
	return t
}

func (q BusinessQuarterEnd) OnOffset(t time.Time) bool {
	return t.Day() == lastBusinessDay(t.Year(), t.Month()) &&
		posMod(int(t.Month())-int(q.startingMonth), 3) == 0
}

func (q BusinessQuarterEnd) IsAnchored() bool { return q.n == 1 }
func (q BusinessQuarterEnd) N() int           { return q.n }

func (q BusinessQuarterEnd) RuleCode() string {
	return "BQ-" + monthCodes[q.startingMonth]
}

func (q BusinessQuarterEnd) withN(n int) Offset {
	q.n = n
	return q
}

func (q BusinessQuarterEnd) family() string { return "BQ" }

func (q BusinessQuarterEnd) paramsKey() string {
	return fmt.Sprintf("BQ|n=%d|sm=%d", q.n, q.startingMonth)
}

// =============================================================================
// BUSINESS QUARTER BEGIN
// =============================================================================

// BusinessQuarterBegin advances between first business days of
// quarter-starting months.
type BusinessQuarterBegin struct {
	n             int
	startingMonth time.Month
}

func NewBusinessQuarterBegin(n int, startingMonth time.Month) (BusinessQuarterBegin, error) {
	if err := validStartingMonth("BusinessQuarterBegin", startingMonth); err != nil {
		return BusinessQuarterBegin{}, err
	}
	return BusinessQuarterBegin{n: n, startingMonth: startingMonth}, nil
}

func (q BusinessQuarterBegin) Apply(t time.Time) time.Time {
	n := q.n
	first := firstBusinessDay(firstWeekdayOf(t.Year(), t.Month()))

	monthsSince := posMod(int(t.Month())-int(q.startingMonth), 3)
	if n <= 0 && monthsSince != 0 {
		monthsSince -= 3
	}

	if n <= 0 && monthsSince == 0 && t.Day() > first {
		// Past the first business day: as if already rolled forward.
		n++
	} else if n > 0 && monthsSince == 0 && t.Day() < first {
		// Before the first business day: pretend to have rolled back.
		n--
	}

	y, mo := addMonths(t.Year(), t.Month(), 3*n-monthsSince)
	first = firstBusinessDay(firstWeekdayOf(y, mo))
	return time.Date(y, mo, first,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func (q BusinessQuarterBegin) OnOffset(t time.Time) bool {
	return t.Day() == firstBusinessDay(firstWeekdayOf(t.Year(), t.Month())) &&
		posMod(int(t.Month())-int(q.startingMonth), 3) == 0
}

func (q BusinessQuarterBegin) IsAnchored() bool { return q.n == 1 }
func (q BusinessQuarterBegin) N() int           { return q.n }

func (q BusinessQuarterBegin) RuleCode() string {
	return "BQS-" + monthCodes[q.startingMonth]
}

func (q BusinessQuarterBegin) withN(n int) Offset {
	q.n = n
	return q
}

func (q BusinessQuarterBegin) family() string { return "BQS" }

func (q BusinessQuarterBegin) paramsKey() string {
	return fmt.Sprintf("BQS|n=%d|sm=%d", q.n, q.startingMonth)
}
