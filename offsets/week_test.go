package offsets_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/schedule-engine/offsets"
)

// =============================================================================
// WEEK
// =============================================================================

func TestWeek_FreeRunning(t *testing.T) {
	w := offsets.NewWeek(2)
	assert.Equal(t, date(2023, time.January, 18), w.Apply(date(2023, time.January, 4)))

	back := offsets.NewWeek(-1)
	assert.Equal(t, date(2022, time.December, 28), back.Apply(date(2023, time.January, 4)))

	// Every date is a valid starting point for a free-running week.
	assert.True(t, w.OnOffset(date(2023, time.January, 4)))
}

func TestWeek_Anchored(t *testing.T) {
	w, err := offsets.NewWeekOn(1, offsets.Monday)
	require.NoError(t, err)

	// Wednesday aligns to the next Monday, consuming the step.
	assert.Equal(t, date(2023, time.January, 9), w.Apply(date(2023, time.January, 4)))

	// On-anchor the full step applies.
	assert.Equal(t, date(2023, time.January, 16), w.Apply(date(2023, time.January, 9)))
}

func TestWeek_AnchoredBackward(t *testing.T) {
	w, err := offsets.NewWeekOn(-1, offsets.Monday)
	require.NoError(t, err)

	// Align forward first, then step back a whole week.
	assert.Equal(t, date(2023, time.January, 2), w.Apply(date(2023, time.January, 4)))
	assert.Equal(t, date(2023, time.January, 2), w.Apply(date(2023, time.January, 9)))
}

func TestWeek_OnOffset(t *testing.T) {
	w, err := offsets.NewWeekOn(1, offsets.Friday)
	require.NoError(t, err)
	assert.True(t, w.OnOffset(date(2023, time.January, 6)))
	assert.False(t, w.OnOffset(date(2023, time.January, 7)))
}

func TestWeek_IsAnchored(t *testing.T) {
	anchored, err := offsets.NewWeekOn(1, offsets.Monday)
	require.NoError(t, err)
	assert.True(t, anchored.IsAnchored())

	// A free weekday leaves the anchor ambiguous.
	assert.False(t, offsets.NewWeek(1).IsAnchored())

	multi, err := offsets.NewWeekOn(2, offsets.Monday)
	require.NoError(t, err)
	assert.False(t, multi.IsAnchored())
}

func TestWeek_InvalidWeekday(t *testing.T) {
	_, err := offsets.NewWeekOn(1, offsets.Weekday(7))
	require.Error(t, err)
	assert.True(t, errors.Is(err, offsets.ErrConfiguration))

	var cfg *offsets.ConfigurationError
	require.True(t, errors.As(err, &cfg))
	assert.Equal(t, "weekday", cfg.Param)
}

// =============================================================================
// WEEK OF MONTH
// =============================================================================

func TestWeekOfMonth_SecondTuesday(t *testing.T) {
	// week=1, weekday=Tuesday means "the 2nd Tuesday of the month".
	w, err := offsets.NewWeekOfMonth(1, 1, offsets.Tuesday)
	require.NoError(t, err)

	assert.Equal(t, date(2023, time.January, 10), w.Apply(date(2023, time.January, 1)))

	// On the anchor the full step moves to next month's anchor.
	assert.Equal(t, date(2023, time.February, 14), w.Apply(date(2023, time.January, 10)))

	// Past the anchor, the step lands on next month's anchor too.
	assert.Equal(t, date(2023, time.February, 14), w.Apply(date(2023, time.January, 20)))
}

func TestWeekOfMonth_Backward(t *testing.T) {
	w, err := offsets.NewWeekOfMonth(-1, 1, offsets.Tuesday)
	require.NoError(t, err)

	// Past this month's anchor: one step back is the anchor itself.
	assert.Equal(t, date(2023, time.January, 10), w.Apply(date(2023, time.January, 20)))

	// Before the anchor: one step back reaches the previous month.
	assert.Equal(t, date(2022, time.December, 13), w.Apply(date(2023, time.January, 1)))
}

func TestWeekOfMonth_OnOffset(t *testing.T) {
	w, err := offsets.NewWeekOfMonth(1, 1, offsets.Tuesday)
	require.NoError(t, err)
	assert.True(t, w.OnOffset(date(2023, time.January, 10)))
	assert.False(t, w.OnOffset(date(2023, time.January, 3)))
	assert.False(t, w.OnOffset(at(2023, time.January, 10, 9, 0)), "anchor is at midnight")
}

func TestWeekOfMonth_Validation(t *testing.T) {
	_, err := offsets.NewWeekOfMonth(0, 1, offsets.Tuesday)
	assert.True(t, errors.Is(err, offsets.ErrConfiguration), "n == 0 is rejected")

	_, err = offsets.NewWeekOfMonth(1, 4, offsets.Tuesday)
	assert.True(t, errors.Is(err, offsets.ErrConfiguration), "week out of range")

	_, err = offsets.NewWeekOfMonth(1, 1, offsets.Weekday(-1))
	assert.True(t, errors.Is(err, offsets.ErrConfiguration), "weekday out of range")
}

func TestWeekOfMonth_RuleCode(t *testing.T) {
	w, err := offsets.NewWeekOfMonth(1, 1, offsets.Tuesday)
	require.NoError(t, err)
	assert.Equal(t, "WOM-2TUE", w.RuleCode())
}
