// calendar.go - proleptic Gregorian month lookup and business-day helpers.
//
// MonthRange is the calendar collaborator every calendar family consults:
// given (year, month) it answers which weekday the month starts on and how
// many days it has. The first/last business day derivations below turn that
// answer into month-boundary corrections without iterating over days.

package offsets

import "time"

// MonthRange returns the weekday of the first day of the month and the
// number of days in the month, using proleptic Gregorian leap-year rules.
func MonthRange(year int, month time.Month) (Weekday, int) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return weekdayOf(first), daysIn(year, month)
}

// daysIn returns the number of days in the month. Day zero of the following
// month normalizes to the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func firstWeekdayOf(year int, month time.Month) Weekday {
	w, _ := MonthRange(year, month)
	return w
}

// weekdayOf converts to the Monday-based index.
func weekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

func isWeekend(t time.Time) bool {
	return weekdayOf(t) >= Saturday
}

// firstBusinessDay returns the day-of-month of the first business day given
// the weekday the month starts on: day 3 when the month opens on Saturday,
// day 2 on Sunday, day 1 otherwise.
func firstBusinessDay(first Weekday) int {
	switch first {
	case Saturday:
		return 3
	case Sunday:
		return 2
	default:
		return 1
	}
}

// lastBusinessDay returns the day-of-month of the last business day: the
// last calendar day minus a 0-2 day correction derived from the weekday the
// month ends on.
func lastBusinessDay(year int, month time.Month) int {
	first, dim := MonthRange(year, month)
	corr := (int(first)+dim-1)%7 - 4
	if corr < 0 {
		corr = 0
	}
	return dim - corr
}

// addMonths shifts a (year, month) pair by k months, k may be negative.
func addMonths(year int, month time.Month, k int) (int, time.Month) {
	m := year*12 + int(month) - 1 + k
	y, rem := m/12, m%12
	if rem < 0 {
		rem += 12
		y--
	}
	return y, time.Month(rem + 1)
}

// shiftMonth moves the date by the given number of whole months and pins the
// day of month, clamping to the month's length. The clock is preserved.
func shiftMonth(t time.Time, months, day int) time.Time {
	y, m := addMonths(t.Year(), t.Month(), months)
	if dim := daysIn(y, m); day > dim {
		day = dim
	}
	return time.Date(y, m, day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysUntil returns the forward distance in days from one weekday to
// another, in [0, 6].
func daysUntil(from, to Weekday) int {
	return (int(to-from)%7 + 7) % 7
}

// posMod is the always-nonnegative remainder.
func posMod(a, m int) int {
	return (a%m + m) % m
}
