// year.go - year boundary offsets, calendar and business variants.
//
// The month parameter sets the fiscal year boundary: YearEnd(1, December)
// walks calendar year ends, YearEnd(1, March) walks fiscal years ending in
// March. The whole-year count is adjusted by one when the date sits before
// (End families) or after (Begin families) this year's anchor, mirroring the
// month-boundary step consumption.

package offsets

import (
	"fmt"
	"time"
)

func validMonth(offset string, m time.Month) error {
	if m < time.January || m > time.December {
		return &ConfigurationError{
			Offset: offset, Param: "month", Value: int(m),
			Reason: "must be 1 through 12",
		}
	}
	return nil
}

// =============================================================================
// YEAR END
// =============================================================================

// YearEnd advances between last days of the fiscal year-ending month.
type YearEnd struct {
	n     int
	month time.Month
}

func NewYearEnd(n int, month time.Month) (YearEnd, error) {
	if err := validMonth("YearEnd", month); err != nil {
		return YearEnd{}, err
	}
	return YearEnd{n: n, month: month}, nil
}

func (y YearEnd) Apply(t time.Time) time.Time {
	n := y.n
	dim := daysIn(t.Year(), y.month)

	years := n
	if n > 0 {
		if t.Month() < y.month || (t.Month() == y.month && t.Day() < dim) {
			years--
		}
	} else {
		if t.Month() > y.month || (t.Month() == y.month && t.Day() > dim) {
			years++
		}
	}

	yy := t.Year() + years
	return time.Date(yy, y.month, daysIn(yy, y.month),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func (y YearEnd) OnOffset(t time.Time) bool {
	return t.Month() == y.month && t.Day() == daysIn(t.Year(), y.month)
}

func (y YearEnd) IsAnchored() bool { return y.n == 1 }
func (y YearEnd) N() int           { return y.n }

func (y YearEnd) RuleCode() string {
	return "A-" + monthCodes[y.month]
}

func (y YearEnd) withN(n int) Offset {
	y.n = n
	return y
}

func (y YearEnd) family() string { return "A" }

func (y YearEnd) paramsKey() string {
	return fmt.Sprintf("A|n=%d|month=%d", y.n, y.month)
}

// =============================================================================
// YEAR BEGIN
// =============================================================================

// YearBegin advances between first days of the fiscal year-starting month.
type YearBegin struct {
	n     int
	month time.Month
}

func NewYearBegin(n int, month time.Month) (YearBegin, error) {
	if err := validMonth("YearBegin", month); err != nil {
		return YearBegin{}, err
	}
	return YearBegin{n: n, month: month}, nil
}

func (y YearBegin) Apply(t time.Time) time.Time {
	n := y.n

	years := n
	if n > 0 {
		if t.Month() < y.month {
			years--
		}
	} else {
		if t.Month() > y.month || (t.Month() == y.month && t.Day() > 1) {
			years++
		}
	}

	return time.Date(t.Year()+years, y.month, 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func (y YearBegin) OnOffset(t time.Time) bool {
	return t.Month() == y.month && t.Day() == 1
}

func (y YearBegin) IsAnchored() bool { return y.n == 1 }
func (y YearBegin) N() int           { return y.n }

func (y YearBegin) RuleCode() string {
	return "AS-" + monthCodes[y.month]
}

func (y YearBegin) withN(n int) Offset {
	y.n = n
	return y
}

func (y YearBegin) family() string { return "AS" }

func (y YearBegin) paramsKey() string {
	return fmt.Sprintf("AS|n=%d|month=%d", y.n, y.month)
}

// =============================================================================
// BUSINESS YEAR END
// =============================================================================

// BusinessYearEnd advances between last business days of the fiscal
// year-ending month.
type BusinessYearEnd struct {
	n     int
	month time.Month
}

func NewBusinessYearEnd(n int, month time.Month) (BusinessYearEnd, error) {
	if err := validMonth("BusinessYearEnd", month); err != nil {
		return BusinessYearEnd{}, err
	}
	return BusinessYearEnd{n: n, month: month}, nil
}

func (y BusinessYearEnd) Apply(t time.Time) time.Time {
	n := y.n
	last := lastBusinessDay(t.Year(), y.month)

	years := n
	if n > 0 {
		if t.Month() < y.month || (t.Month() == y.month && t.Day() < last) {
			years--
		}
	} else {
		if t.Month() > y.month || (t.Month() == y.month && t.Day() > last) {
			years++
		}
	}

	yy := t.Year() + years
	result := time.Date(yy, y.month, daysIn(yy, y.month),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if isWeekend(result) {
		result = NewBusinessDay(-1).Apply(result)
	}
	return result
}

func (y BusinessYearEnd) OnOffset(t time.Time) bool {
	return t.Month() == y.month && t.Day() == lastBusinessDay(t.Year(), y.month)
}

func (y BusinessYearEnd) IsAnchored() bool { return y.n == 1 }
func (y BusinessYearEnd) N() int           { return y.n }

func (y BusinessYearEnd) RuleCode() string {
	return "BA-" + monthCodes[y.month]
}

func (y BusinessYearEnd) withN(n int) Offset {
	y.n = n
	return y
}

func (y BusinessYearEnd) family() string { return "BA" }

func (y BusinessYearEnd) paramsKey() string {
	return fmt.Sprintf("BA|n=%d|month=%d", y.n, y.month)
}

// =============================================================================
// BUSINESS YEAR BEGIN
// =============================================================================

// BusinessYearBegin advances between first business days of the fiscal
// year-starting month. Results are truncated to midnight.
type BusinessYearBegin struct {
	n     int
	month time.Month
}

func NewBusinessYearBegin(n int, month time.Month) (BusinessYearBegin, error) {
	if err := validMonth("BusinessYearBegin", month); err != nil {
		return BusinessYearBegin{}, err
	}
	return BusinessYearBegin{n: n, month: month}, nil
}

func (y BusinessYearBegin) Apply(t time.Time) time.Time {
	n := y.n
	first := firstBusinessDay(firstWeekdayOf(t.Year(), y.month))

	years := n
	if n > 0 {
		// Roll back first for positive n.
		if t.Month() < y.month || (t.Month() == y.month && t.Day() < first) {
			years--
		}
	} else {
		// Roll forward.
		if t.Month() > y.month || (t.Month() == y.month && t.Day() > first) {
			years++
		}
	}

	yy := t.Year() + years
	first = firstBusinessDay(firstWeekdayOf(yy, y.month))
	return time.Date(yy, y.month, first, 0, 0, 0, 0, t.Location())
}

func (y BusinessYearBegin) OnOffset(t time.Time) bool {
	return t.Month() == y.month && t.Day() == firstBusinessDay(firstWeekdayOf(t.Year(), y.month))
}

func (y BusinessYearBegin) IsAnchored() bool { return y.n == 1 }
func (y BusinessYearBegin) N() int           { return y.n }

func (y BusinessYearBegin) RuleCode() string {
	return "BAS-" + monthCodes[y.month]
}

func (y BusinessYearBegin) withN(n int) Offset {
	y.n = n
	return y
}

func (y BusinessYearBegin) family() string { return "BAS" }

func (y BusinessYearBegin) paramsKey() string {
	return fmt.Sprintf("BAS|n=%d|month=%d", y.n, y.month)
}
