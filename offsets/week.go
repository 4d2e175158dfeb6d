// week.go - weekly offsets: plain 7-day steps, weekday-anchored weeks, and
// the nth-weekday-of-month rule.

package offsets

import (
	"fmt"
	"time"
)

// =============================================================================
// WEEK
// =============================================================================

// Week advances in 7-day steps. An anchored week additionally pins a
// weekday: off-anchor dates align to the next occurrence of that weekday
// first, consuming one step when n > 0.
type Week struct {
	n        int
	weekday  Weekday
	anchored bool
}

// NewWeek returns a free-running week offset: pure 7-day-multiple steps.
func NewWeek(n int) Week {
	return Week{n: n}
}

// NewWeekOn returns a week offset anchored to the given weekday.
func NewWeekOn(n int, weekday Weekday) (Week, error) {
	if weekday < Monday || weekday > Sunday {
		return Week{}, &ConfigurationError{
			Offset: "Week", Param: "weekday", Value: int(weekday),
			Reason: "must be 0 (Monday) through 6 (Sunday)",
		}
	}
	return Week{n: n, weekday: weekday, anchored: true}, nil
}

func (w Week) Apply(t time.Time) time.Time {
	if !w.anchored {
		return t.AddDate(0, 0, 7*w.n)
	}

	k := w.n
	if k > 0 {
		if weekdayOf(t) != w.weekday {
			t = t.AddDate(0, 0, daysUntil(weekdayOf(t), w.weekday))
			k--
		}
		return t.AddDate(0, 0, 7*k)
	}

	// Moving backward: align forward first without consuming a step, then
	// subtract whole weeks.
	if weekdayOf(t) != w.weekday {
		t = t.AddDate(0, 0, daysUntil(weekdayOf(t), w.weekday))
	}
	return t.AddDate(0, 0, 7*k)
}

func (w Week) OnOffset(t time.Time) bool {
	if !w.anchored {
		// A free-running week has no absolute phase; every date is a valid
		// starting point.
		return true
	}
	return weekdayOf(t) == w.weekday
}

// IsAnchored is true only when a weekday pins the lattice.
func (w Week) IsAnchored() bool { return w.n == 1 && w.anchored }
func (w Week) N() int           { return w.n }

func (w Week) RuleCode() string {
	if w.anchored {
		return "W-" + w.weekday.String()
	}
	return "W"
}

func (w Week) withN(n int) Offset {
	w.n = n
	return w
}

func (w Week) family() string { return "W" }

func (w Week) paramsKey() string {
	if w.anchored {
		return fmt.Sprintf("W|n=%d|weekday=%d", w.n, w.weekday)
	}
	return fmt.Sprintf("W|n=%d", w.n)
}

// =============================================================================
// WEEK OF MONTH
// =============================================================================

// WeekOfMonth describes monthly dates like "the Tuesday of the 2nd week of
// each month". week is 0-indexed: 0 selects the first occurrence of the
// weekday on or after the month's first day.
type WeekOfMonth struct {
	n       int
	week    int
	weekday Weekday
}

func NewWeekOfMonth(n, week int, weekday Weekday) (WeekOfMonth, error) {
	if n == 0 {
		return WeekOfMonth{}, &ConfigurationError{
			Offset: "WeekOfMonth", Param: "n", Value: 0,
			Reason: "multiplier cannot be zero",
		}
	}
	if weekday < Monday || weekday > Sunday {
		return WeekOfMonth{}, &ConfigurationError{
			Offset: "WeekOfMonth", Param: "weekday", Value: int(weekday),
			Reason: "must be 0 (Monday) through 6 (Sunday)",
		}
	}
	if week < 0 || week > 3 {
		return WeekOfMonth{}, &ConfigurationError{
			Offset: "WeekOfMonth", Param: "week", Value: week,
			Reason: "must be 0 through 3",
		}
	}
	return WeekOfMonth{n: n, week: week, weekday: weekday}, nil
}

// anchorOf returns this month's anchor: the week-th occurrence of the
// weekday on or after the month's first day, at midnight.
func (w WeekOfMonth) anchorOf(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	d = d.AddDate(0, 0, daysUntil(weekdayOf(d), w.weekday))
	return d.AddDate(0, 0, 7*w.week)
}

func (w WeekOfMonth) Apply(t time.Time) time.Time {
	anchor := w.anchorOf(t)

	months := w.n
	switch {
	case anchor.After(t):
		if w.n > 0 {
			months = w.n - 1
		}
	case anchor.Equal(t):
		// On the anchor: the full count applies.
	default:
		if w.n < 0 {
			months = w.n + 1
		}
	}

	y, m := addMonths(t.Year(), t.Month(), months)
	return w.anchorOf(time.Date(y, m, 1, 0, 0, 0, 0, t.Location()))
}

func (w WeekOfMonth) OnOffset(t time.Time) bool {
	return t.Equal(w.anchorOf(t))
}

func (w WeekOfMonth) IsAnchored() bool { return w.n == 1 }
func (w WeekOfMonth) N() int           { return w.n }

func (w WeekOfMonth) RuleCode() string {
	return fmt.Sprintf("WOM-%d%s", w.week+1, w.weekday)
}

func (w WeekOfMonth) withN(n int) Offset {
	w.n = n
	return w
}

func (w WeekOfMonth) family() string { return "WOM" }

func (w WeekOfMonth) paramsKey() string {
	return fmt.Sprintf("WOM|n=%d|week=%d|weekday=%d", w.n, w.week, w.weekday)
}
