package offsets_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/schedule-engine/offsets"
)

// =============================================================================
// MONTH END
// =============================================================================

func TestMonthEnd_Apply(t *testing.T) {
	m := offsets.NewMonthEnd(1)

	// Mid-month snaps to this month's end, leap year respected.
	assert.Equal(t, date(2016, time.February, 29), m.Apply(date(2016, time.February, 15)))

	// Already on a month end: the full step applies.
	assert.Equal(t, date(2016, time.March, 31), m.Apply(date(2016, time.February, 29)))

	assert.Equal(t, date(2023, time.January, 31), m.Apply(date(2023, time.January, 15)))
}

func TestMonthEnd_Backward(t *testing.T) {
	m := offsets.NewMonthEnd(-1)
	assert.Equal(t, date(2022, time.December, 31), m.Apply(date(2023, time.January, 15)))
	assert.Equal(t, date(2022, time.December, 31), m.Apply(date(2023, time.January, 31)))
}

func TestMonthEnd_ZeroSnapsForward(t *testing.T) {
	m := offsets.NewMonthEnd(0)
	assert.Equal(t, date(2023, time.January, 31), m.Apply(date(2023, time.January, 15)))
	assert.Equal(t, date(2023, time.January, 31), m.Apply(date(2023, time.January, 31)))
}

func TestMonthEnd_TruncatesToMidnight(t *testing.T) {
	m := offsets.NewMonthEnd(1)
	assert.Equal(t, date(2023, time.January, 31), m.Apply(at(2023, time.January, 15, 9, 30)))
}

func TestMonthEnd_OnOffset(t *testing.T) {
	m := offsets.NewMonthEnd(1)
	assert.True(t, m.OnOffset(date(2016, time.February, 29)))
	assert.False(t, m.OnOffset(date(2016, time.February, 28)))
	assert.True(t, m.OnOffset(date(2023, time.April, 30)))
}

// =============================================================================
// MONTH BEGIN
// =============================================================================

func TestMonthBegin_Apply(t *testing.T) {
	m := offsets.NewMonthBegin(1)
	assert.Equal(t, date(2023, time.February, 1), m.Apply(date(2023, time.January, 15)))
	assert.Equal(t, date(2023, time.February, 1), m.Apply(date(2023, time.January, 1)))
}

func TestMonthBegin_Backward(t *testing.T) {
	// Off-anchor backward lands on this month's first day.
	m := offsets.NewMonthBegin(-1)
	assert.Equal(t, date(2023, time.January, 1), m.Apply(date(2023, time.January, 15)))
	assert.Equal(t, date(2022, time.December, 1), m.Apply(date(2023, time.January, 1)))
}

func TestMonthBegin_PreservesClock(t *testing.T) {
	m := offsets.NewMonthBegin(1)
	assert.Equal(t, at(2023, time.February, 1, 9, 30), m.Apply(at(2023, time.January, 15, 9, 30)))
}

func TestMonthBegin_OnOffset(t *testing.T) {
	m := offsets.NewMonthBegin(1)
	assert.True(t, m.OnOffset(date(2023, time.June, 1)))
	assert.False(t, m.OnOffset(date(2023, time.June, 2)))
}

// =============================================================================
// BUSINESS MONTH END
// =============================================================================

func TestBusinessMonthEnd_Apply(t *testing.T) {
	m := offsets.NewBusinessMonthEnd(1)

	// June 2012 ends on a Saturday; the last business day is Friday the 29th.
	assert.Equal(t, date(2012, time.June, 29), m.Apply(date(2012, time.June, 15)))

	// From the last business day the full step applies.
	assert.Equal(t, date(2012, time.July, 31), m.Apply(date(2012, time.June, 29)))
}

func TestBusinessMonthEnd_OnOffset(t *testing.T) {
	m := offsets.NewBusinessMonthEnd(1)
	assert.True(t, m.OnOffset(date(2012, time.June, 29)))
	assert.False(t, m.OnOffset(date(2012, time.June, 30)))
	assert.True(t, m.OnOffset(date(2023, time.September, 29))) // Sep 30 2023 is Saturday
}

// =============================================================================
// BUSINESS MONTH BEGIN
// =============================================================================

func TestBusinessMonthBegin_Apply(t *testing.T) {
	m := offsets.NewBusinessMonthBegin(1)

	// September 2012 starts on a Saturday; first business day is Monday the 3rd.
	assert.Equal(t, date(2012, time.September, 3), m.Apply(date(2012, time.August, 15)))

	// July 2012 starts on a Sunday; first business day is Monday the 2nd.
	assert.Equal(t, date(2012, time.July, 2), m.Apply(date(2012, time.June, 29)))

	// Sunday January 1st 2012 snaps to Monday the 2nd, consuming the step.
	assert.Equal(t, date(2012, time.January, 2), m.Apply(date(2012, time.January, 1)))
}

func TestBusinessMonthBegin_OnOffset(t *testing.T) {
	m := offsets.NewBusinessMonthBegin(1)
	assert.True(t, m.OnOffset(date(2012, time.September, 3)))
	assert.False(t, m.OnOffset(date(2012, time.September, 1)))
	assert.True(t, m.OnOffset(date(2012, time.July, 2)))
	assert.True(t, m.OnOffset(date(2012, time.August, 1)))
}
