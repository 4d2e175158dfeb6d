// month.go - month boundary offsets, calendar and business variants.
//
// None of these iterate day by day: each snaps to the current month's
// anchor, consumes one unit of n when the snap moved the date, then shifts
// whole months and snaps again via the calendar lookup.

package offsets

import (
	"fmt"
	"time"
)

// =============================================================================
// MONTH END
// =============================================================================

// MonthEnd advances between last days of months. Results are truncated to
// midnight.
type MonthEnd struct {
	n int
}

func NewMonthEnd(n int) MonthEnd {
	return MonthEnd{n: n}
}

func (m MonthEnd) Apply(t time.Time) time.Time {
	t = midnight(t)
	n := m.n
	if t.Day() != daysIn(t.Year(), t.Month()) {
		// Snap back to the previous month's end; a backward step was consumed
		// for n <= 0, a forward one is pre-paid for n > 0 by the shift below.
		t = shiftMonth(t, -1, 31)
		if n <= 0 {
			n++
		}
	}
	return shiftMonth(t, n, 31)
}

func (m MonthEnd) OnOffset(t time.Time) bool {
	return t.Day() == daysIn(t.Year(), t.Month())
}

func (m MonthEnd) IsAnchored() bool { return m.n == 1 }
func (m MonthEnd) N() int           { return m.n }
func (m MonthEnd) RuleCode() string { return "M" }

func (m MonthEnd) withN(n int) Offset {
	m.n = n
	return m
}

func (m MonthEnd) family() string    { return "M" }
func (m MonthEnd) paramsKey() string { return fmt.Sprintf("M|n=%d", m.n) }

// =============================================================================
// MONTH BEGIN
// =============================================================================

// MonthBegin advances between first days of months. The clock is preserved.
type MonthBegin struct {
	n int
}

func NewMonthBegin(n int) MonthBegin {
	return MonthBegin{n: n}
}

func (m MonthBegin) Apply(t time.Time) time.Time {
	n := m.n
	if t.Day() > 1 && n <= 0 {
		// Off-anchor moving backward: day 1 of this month is one step.
		n++
	}
	return shiftMonth(t, n, 1)
}

func (m MonthBegin) OnOffset(t time.Time) bool {
	return t.Day() == 1
}

func (m MonthBegin) IsAnchored() bool { return m.n == 1 }
func (m MonthBegin) N() int           { return m.n }
func (m MonthBegin) RuleCode() string { return "MS" }

func (m MonthBegin) withN(n int) Offset {
	m.n = n
	return m
}

func (m MonthBegin) family() string    { return "MS" }
func (m MonthBegin) paramsKey() string { return fmt.Sprintf("MS|n=%d", m.n) }

// =============================================================================
// BUSINESS MONTH END
// =============================================================================

// BusinessMonthEnd advances between last business days of months.
type BusinessMonthEnd struct {
	n int
}

func NewBusinessMonthEnd(n int) BusinessMonthEnd {
	return BusinessMonthEnd{n: n}
}

func (m BusinessMonthEnd) Apply(t time.Time) time.Time {
	t = midnight(t)
	n := m.n
	last := lastBusinessDay(t.Year(), t.Month())

	if n > 0 && t.Day() < last {
		n--
	} else if n <= 0 && t.Day() > last {
		n++
	}
	t = shiftMonth(t, n, 31)

	// Calendar month end on a weekend: back up to Friday.
	if isWeekend(t) {
		t = NewBusinessDay(-1).Apply(t)
	}
	return t
}

func (m BusinessMonthEnd) OnOffset(t time.Time) bool {
	return t.Day() == lastBusinessDay(t.Year(), t.Month())
}

func (m BusinessMonthEnd) IsAnchored() bool { return m.n == 1 }
func (m BusinessMonthEnd) N() int           { return m.n }
func (m BusinessMonthEnd) RuleCode() string { return "BM" }

func (m BusinessMonthEnd) withN(n int) Offset {
	m.n = n
	return m
}

func (m BusinessMonthEnd) family() string    { return "BM" }
func (m BusinessMonthEnd) paramsKey() string { return fmt.Sprintf("BM|n=%d", m.n) }

// =============================================================================
// BUSINESS MONTH BEGIN
// =============================================================================

// BusinessMonthBegin advances between first business days of months. Results
// are truncated to midnight.
type BusinessMonthBegin struct {
	n int
}

func NewBusinessMonthBegin(n int) BusinessMonthBegin {
	return BusinessMonthBegin{n: n}
}

func (m BusinessMonthBegin) Apply(t time.Time) time.Time {
	n := m.n
	first := firstBusinessDay(firstWeekdayOf(t.Year(), t.Month()))

	if t.Day() > first && n <= 0 {
		// As if already rolled forward.
		n++
	} else if t.Day() < first && n > 0 {
		// Snapping to this month's first business day consumes the step.
		n--
	}

	y, mo := addMonths(t.Year(), t.Month(), n)
	first = firstBusinessDay(firstWeekdayOf(y, mo))
	return time.Date(y, mo, first, 0, 0, 0, 0, t.Location())
}

func (m BusinessMonthBegin) OnOffset(t time.Time) bool {
	return t.Day() == firstBusinessDay(firstWeekdayOf(t.Year(), t.Month()))
}

func (m BusinessMonthBegin) IsAnchored() bool { return m.n == 1 }
func (m BusinessMonthBegin) N() int           { return m.n }
func (m BusinessMonthBegin) RuleCode() string { return "BMS" }

func (m BusinessMonthBegin) withN(n int) Offset {
	m.n = n
	return m
}

func (m BusinessMonthBegin) family() string    { return "BMS" }
func (m BusinessMonthBegin) paramsKey() string { return fmt.Sprintf("BMS|n=%d", m.n) }
